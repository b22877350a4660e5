package odbc

import (
	"fmt"
	"log"
)

// fieldNameLen is the size of the buffer column names are read into.
const fieldNameLen = 256

// Field describes one result column.
type Field struct {
	Name          string
	Type          DataType
	Size          uint64 // declared column size
	DecimalDigits int
	Nullable      bool
	NameTruncated bool // Name was cut to fit the name buffer
}

// Query executes statements on one statement handle and reads the results
// row by row.
//
// A Query starts unexecuted. Execute runs a statement and positions the
// cursor on the first row; Advance moves to the next one. Once the rows are
// exhausted the Query is empty until the next Execute.
type Query struct {
	stmt      *Handle[StmtKind]
	fields    []Field
	ready     bool
	empty     bool
	bookmarks bool
	chunkSize int
	logger    *log.Logger
	conn      *Connection
}

func newQuery(dbc *Handle[ConnKind], o options) (*Query, error) {
	stmt, err := NewChildHandle[StmtKind](dbc)
	if err != nil {
		return nil, err
	}
	return &Query{stmt: stmt, chunkSize: o.chunkSize, logger: o.logger}, nil
}

func (q *Query) native() SQLHSTMT {
	return SQLHSTMT(q.stmt.Native())
}

// Execute runs text directly, without parameters, discarding any previous
// result set. On success the Query is ready and, unless the result set is
// empty, positioned on its first row. On failure the Query is not ready.
//
// Statements that produce no result set leave the Query ready and empty.
func (q *Query) Execute(text string) error {
	if q.stmt.IsNull() {
		return fmt.Errorf("%w: query is closed", ErrNotReady)
	}
	q.ready, q.empty = false, false

	stmt := q.native()
	// Close any cursor left open by the previous statement
	FreeStmt(stmt, SQL_CLOSE)

	q.logger.Printf("execute: %s", text)
	ret := ExecDirect(stmt, text)
	if !IsSuccess(ret) && ret != SQL_NO_DATA {
		return q.stmt.opError(ErrStatement, "statement execution failed")
	}

	if err := q.refreshFields(); err != nil {
		return err
	}

	if len(q.fields) == 0 {
		q.ready, q.empty = true, true
		return nil
	}

	ret = Fetch(stmt)
	switch {
	case ret == SQL_NO_DATA:
		q.empty = true
	case !IsSuccess(ret):
		return q.stmt.opError(ErrFetch, "failed to retrieve first row")
	}
	q.ready = true
	return nil
}

// refreshFields replaces the field list with the metadata of the current
// result set.
func (q *Query) refreshFields() error {
	stmt := q.native()

	var count SQLSMALLINT
	if ret := NumResultCols(stmt, &count); !IsSuccess(ret) {
		return q.stmt.opError(ErrStatement, "unable to get field count")
	}

	fields := make([]Field, 0, count)
	name := make([]byte, fieldNameLen)
	for i := 1; i <= int(count); i++ {
		col := SQLUSMALLINT(i)
		nameLen, dataType, colSize, decDigits, nullable, ret := DescribeCol(stmt, col, name)
		if !IsSuccess(ret) {
			return q.stmt.opError(ErrStatement, "unable to get field metadata")
		}

		t, err := TypeFromColumnCode(dataType)
		if err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
		if u, ok := Unsigned(t); ok && q.columnUnsigned(col) {
			t = u
		}

		f := Field{
			Type:          t,
			Size:          uint64(colSize),
			DecimalDigits: int(decDigits),
			Nullable:      nullable != SQL_NO_NULLS,
		}
		n := int(nameLen)
		if n >= fieldNameLen {
			f.NameTruncated = true
			n = fieldNameLen - 1
		}
		if n < 0 {
			n = 0
		}
		f.Name = string(name[:n])
		fields = append(fields, f)
	}

	q.fields = fields
	return nil
}

// columnUnsigned reports whether the driver flags col as unsigned. Drivers
// that do not support the attribute are treated as signed.
func (q *Query) columnUnsigned(col SQLUSMALLINT) bool {
	_, unsigned, ret := ColAttribute(q.native(), col, SQL_DESC_UNSIGNED, nil)
	return IsSuccess(ret) && unsigned == SQL_TRUE
}

// Advance moves to the next row. Advancing an empty Query is a no-op.
func (q *Query) Advance() error {
	if !q.ready {
		return ErrNotReady
	}
	if q.empty {
		return nil
	}
	ret := Fetch(q.native())
	switch {
	case ret == SQL_NO_DATA:
		q.empty = true
	case !IsSuccess(ret):
		return q.stmt.opError(ErrFetch, "failed to retrieve next row")
	}
	return nil
}

// Ready reports whether a statement has been executed successfully.
func (q *Query) Ready() bool { return q.ready }

// Empty reports whether the cursor has moved past the last row.
func (q *Query) Empty() bool { return q.empty }

// Fields returns the column metadata of the last executed statement.
func (q *Query) Fields() ([]Field, error) {
	if !q.ready {
		return nil, ErrNotReady
	}
	out := make([]Field, len(q.fields))
	copy(out, q.fields)
	return out, nil
}

// Get retrieves column i (0-based) of the current row.
func (q *Query) Get(i int) (*Datum, error) {
	if err := q.current(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(q.fields) {
		return nil, fmt.Errorf("%w: %d (have %d columns)", ErrColumnIndex, i, len(q.fields))
	}
	return q.retrieve(SQLUSMALLINT(i+1), q.fields[i].Type)
}

// Row retrieves every column of the current row in order.
func (q *Query) Row() ([]*Datum, error) {
	if err := q.current(); err != nil {
		return nil, err
	}
	row := make([]*Datum, len(q.fields))
	for i, f := range q.fields {
		d, err := q.retrieve(SQLUSMALLINT(i+1), f.Type)
		if err != nil {
			return nil, fmt.Errorf("column %d (%s): %w", i, f.Name, err)
		}
		row[i] = d
	}
	return row, nil
}

func (q *Query) current() error {
	if !q.ready {
		return ErrNotReady
	}
	if q.empty {
		return ErrNoData
	}
	return nil
}

// RowsAffected returns the number of rows changed by the last INSERT,
// UPDATE or DELETE. Drivers report -1 when the count is not available.
func (q *Query) RowsAffected() (int64, error) {
	if !q.ready {
		return 0, ErrNotReady
	}
	var n SQLLEN
	if ret := RowCount(q.native(), &n); !IsSuccess(ret) {
		return 0, q.stmt.opError(ErrStatement, "unable to get row count")
	}
	return int64(n), nil
}

// EnableBookmarks turns on fixed-length bookmarks for the statements
// executed after it, exposing column 0 through Bookmark.
func (q *Query) EnableBookmarks() error {
	if q.stmt.IsNull() {
		return fmt.Errorf("%w: query is closed", ErrNotReady)
	}
	if ret := SetStmtAttr(q.native(), SQL_ATTR_USE_BOOKMARKS, SQL_UB_ON, 0); !IsSuccess(ret) {
		return q.stmt.opError(ErrStatement, "unable to enable bookmarks")
	}
	q.bookmarks = true
	return nil
}

// Bookmark retrieves the bookmark of the current row.
func (q *Query) Bookmark() (*Datum, error) {
	if !q.bookmarks {
		return nil, fmt.Errorf("%w: bookmarks are not enabled", ErrColumnIndex)
	}
	if err := q.current(); err != nil {
		return nil, err
	}
	return q.retrieve(0, Bookmark)
}

// Close frees the statement handle. The Query cannot be used afterwards.
// Closing a Query whose Connection is already closed is a no-op.
func (q *Query) Close() error {
	if q.conn != nil {
		q.conn.forget(q)
		q.conn = nil
	}
	return q.release()
}

func (q *Query) release() error {
	q.ready, q.empty = false, false
	q.fields = nil
	return q.stmt.Free()
}
