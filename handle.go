package odbc

import "fmt"

// handleKind describes one family of native handles: the tag passed to
// SQLAllocHandle and the message reported when allocation fails.
type handleKind interface {
	nativeTag() SQLSMALLINT
	allocFailMsg() string
}

// rootKind is a handle kind allocated without a parent.
type rootKind interface {
	handleKind
	root()
}

// childKind is a handle kind that must be allocated under a live handle of kind P.
type childKind[P handleKind] interface {
	handleKind
	parent() P
}

// EnvKind marks environment handles. Environments have no parent.
type EnvKind struct{}

func (EnvKind) nativeTag() SQLSMALLINT { return SQL_HANDLE_ENV }
func (EnvKind) allocFailMsg() string   { return "failed to allocate environment handle" }
func (EnvKind) root()                  {}

// ConnKind marks connection handles, allocated under an environment.
type ConnKind struct{}

func (ConnKind) nativeTag() SQLSMALLINT { return SQL_HANDLE_DBC }
func (ConnKind) allocFailMsg() string   { return "failed to allocate connection handle" }
func (ConnKind) parent() EnvKind        { return EnvKind{} }

// StmtKind marks statement handles, allocated under a connection.
type StmtKind struct{}

func (StmtKind) nativeTag() SQLSMALLINT { return SQL_HANDLE_STMT }
func (StmtKind) allocFailMsg() string   { return "failed to allocate statement handle" }
func (StmtKind) parent() ConnKind       { return ConnKind{} }

// DescKind marks descriptor handles, allocated under a connection.
type DescKind struct{}

func (DescKind) nativeTag() SQLSMALLINT { return SQL_HANDLE_DESC }
func (DescKind) allocFailMsg() string   { return "failed to allocate descriptor handle" }
func (DescKind) parent() ConnKind       { return ConnKind{} }

// Handle owns one native ODBC handle of kind K.
//
// A Handle is either null or owns exactly one live native resource. It must
// not be copied by value; pass *Handle and use Move to transfer ownership.
// Owners release the resource with Free, which is a no-op on a null Handle.
type Handle[K handleKind] struct {
	h SQLHANDLE
}

// NewRootHandle allocates a handle of a kind that has no parent.
func NewRootHandle[K rootKind]() (*Handle[K], error) {
	var k K
	if err := initODBC(); err != nil {
		return nil, &OpError{Kind: ErrAllocation, Op: k.allocFailMsg() + ": " + err.Error()}
	}
	return allocHandle[K](SQL_HANDLE_ENV, SQL_NULL_HANDLE)
}

// NewChildHandle allocates a handle of kind K under parent. The parent's kind
// is fixed by K, so passing a handle of the wrong kind does not compile:
//
//	stmt, err := NewChildHandle[StmtKind](conn) // conn is *Handle[ConnKind]
func NewChildHandle[K childKind[P], P handleKind](parent *Handle[P]) (*Handle[K], error) {
	var k K
	if parent.IsNull() {
		return nil, &OpError{Kind: ErrAllocation, Op: k.allocFailMsg() + ": parent handle is null"}
	}
	var p P
	return allocHandle[K](p.nativeTag(), parent.h)
}

func allocHandle[K handleKind](parentTag SQLSMALLINT, parent SQLHANDLE) (*Handle[K], error) {
	var k K
	var out SQLHANDLE
	ret := AllocHandle(k.nativeTag(), parent, &out)
	if !IsSuccess(ret) {
		// The diagnostics for a failed allocation hang off the parent
		return nil, newOpError(ErrAllocation, k.allocFailMsg(), parentTag, parent)
	}
	return &Handle[K]{h: out}, nil
}

// Native returns the raw handle value.
func (h *Handle[K]) Native() SQLHANDLE {
	if h == nil {
		return SQL_NULL_HANDLE
	}
	return h.h
}

// IsNull reports whether h owns no native resource.
func (h *Handle[K]) IsNull() bool {
	return h == nil || h.h == SQL_NULL_HANDLE
}

// Kind returns the native handle type tag (SQL_HANDLE_ENV, ...).
func (h *Handle[K]) Kind() SQLSMALLINT {
	var k K
	return k.nativeTag()
}

// Move transfers ownership to a new Handle and nulls h. Moving a nil Handle
// yields a null one.
func (h *Handle[K]) Move() *Handle[K] {
	if h == nil {
		return &Handle[K]{}
	}
	m := &Handle[K]{h: h.h}
	h.h = SQL_NULL_HANDLE
	return m
}

// Free releases the native resource. The Handle is null afterwards, even if
// the driver manager reports a failure.
func (h *Handle[K]) Free() error {
	if h.IsNull() {
		return nil
	}
	var k K
	native := h.h
	h.h = SQL_NULL_HANDLE
	if ret := FreeHandle(k.nativeTag(), native); !IsSuccess(ret) {
		return &OpError{Kind: ErrRelease, Op: fmt.Sprintf("failed to free handle (%s)", FormatReturnCode(ret))}
	}
	return nil
}

// Diagnostics returns the diagnostic records currently attached to h.
func (h *Handle[K]) Diagnostics() []DiagRecord {
	if h.IsNull() {
		return nil
	}
	return GetDiagRecords(h.Kind(), h.h)
}

// ErrorMessage returns the attached diagnostics as "<SQLSTATE>: <text>"
// entries separated by " | ", or "" if there are none.
func (h *Handle[K]) ErrorMessage() string {
	return DiagMessage(h.Diagnostics())
}

// opError wraps the current diagnostics of h in an OpError.
func (h *Handle[K]) opError(kind error, op string) *OpError {
	return &OpError{Kind: kind, Op: op, Records: h.Diagnostics()}
}
