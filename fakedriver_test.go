package odbc

import (
	"fmt"
	"testing"
	"unsafe"
)

// =============================================================================
// Fake driver manager
// =============================================================================
//
// fakeDriver replaces the registered ODBC entry points with Go functions so
// the handle chain, metadata refresh and chunked retrieval run unmodified
// without a native library. GetData follows the ODBC rules for truncation:
// it copies what fits, writes a terminator for character targets, reports
// the remaining length (or SQL_NO_TOTAL) and returns SQL_SUCCESS_WITH_INFO.

type fakeColumn struct {
	name     string
	sqlType  SQLSMALLINT
	size     SQLULEN
	digits   SQLSMALLINT
	nullable SQLSMALLINT
	unsigned bool
}

func col(name string, sqlType SQLSMALLINT) fakeColumn {
	return fakeColumn{name: name, sqlType: sqlType, size: 10, nullable: SQL_NULLABLE}
}

type fakeResult struct {
	columns []fakeColumn
	// Row values: nil is NULL; string, []byte and []uint16 feed the
	// variable-length targets; fixed-size values must match the C type
	// requested for the column.
	rows          [][]any
	rowsAffected  int64
	failFetchAt   int // 1-based fetch call that fails, 0 for never
	failColAttrib bool
}

type fakeStmt struct {
	result    *fakeResult
	row       int
	fetches   int
	offsets   map[SQLUSMALLINT]int
	done      map[SQLUSMALLINT]bool
	noTotal   map[SQLUSMALLINT]int
	bookmarks bool
}

func (s *fakeStmt) resetRow() {
	s.offsets = map[SQLUSMALLINT]int{}
	s.done = map[SQLUSMALLINT]bool{}
	s.noTotal = map[SQLUSMALLINT]int{}
}

type getDataCall struct {
	col        SQLUSMALLINT
	targetType SQLSMALLINT
	bufLen     SQLLEN
}

type fakeDriver struct {
	t testing.TB

	next      SQLHANDLE
	live      map[SQLHANDLE]SQLSMALLINT
	parents   map[SQLHANDLE]SQLHANDLE
	frees     map[SQLHANDLE]int
	badFrees  int
	allocs    map[SQLSMALLINT]int
	allocFail map[SQLSMALLINT]bool
	diags     map[SQLHANDLE][]DiagRecord

	odbcVersion    uintptr
	connectOK      bool
	connStr        string
	completion     SQLUSMALLINT
	connected      map[SQLHANDLE]bool
	dbmsName       string
	driverName     string
	results        map[string]*fakeResult
	stmts          map[SQLHANDLE]*fakeStmt
	executed       []string
	closes         int
	noTotalChunks  int
	failGetData    bool
	getDataCalls   []getDataCall
	failSetEnvAttr bool
}

// newFakeDriver installs a fake driver manager for the duration of the test.
func newFakeDriver(t testing.TB) *fakeDriver {
	t.Helper()

	// Never load the real library
	initOnce.Do(func() {})

	fd := &fakeDriver{
		t:          t,
		next:       0x1000,
		live:       map[SQLHANDLE]SQLSMALLINT{},
		parents:    map[SQLHANDLE]SQLHANDLE{},
		frees:      map[SQLHANDLE]int{},
		allocs:     map[SQLSMALLINT]int{},
		allocFail:  map[SQLSMALLINT]bool{},
		diags:      map[SQLHANDLE][]DiagRecord{},
		connectOK:  true,
		connected:  map[SQLHANDLE]bool{},
		dbmsName:   "FakeDB",
		driverName: "libfake.so",
		results:    map[string]*fakeResult{},
		stmts:      map[SQLHANDLE]*fakeStmt{},
	}

	saved := struct {
		allocHandle   func(SQLSMALLINT, SQLHANDLE, *SQLHANDLE) SQLRETURN
		freeHandle    func(SQLSMALLINT, SQLHANDLE) SQLRETURN
		setEnvAttr    func(SQLHENV, SQLINTEGER, uintptr, SQLINTEGER) SQLRETURN
		driverConnect func(SQLHDBC, uintptr, *byte, SQLSMALLINT, *byte, SQLSMALLINT, *SQLSMALLINT, SQLUSMALLINT) SQLRETURN
		disconnect    func(SQLHDBC) SQLRETURN
		getInfo       func(SQLHDBC, SQLUSMALLINT, uintptr, SQLSMALLINT, *SQLSMALLINT) SQLRETURN
		execDirect    func(SQLHSTMT, *byte, SQLINTEGER) SQLRETURN
		numResultCols func(SQLHSTMT, *SQLSMALLINT) SQLRETURN
		describeCol   func(SQLHSTMT, SQLUSMALLINT, *byte, SQLSMALLINT, *SQLSMALLINT, *SQLSMALLINT, *SQLULEN, *SQLSMALLINT, *SQLSMALLINT) SQLRETURN
		colAttribute  func(SQLHSTMT, SQLUSMALLINT, SQLUSMALLINT, uintptr, SQLSMALLINT, *SQLSMALLINT, *SQLLEN) SQLRETURN
		fetch         func(SQLHSTMT) SQLRETURN
		getData       func(SQLHSTMT, SQLUSMALLINT, SQLSMALLINT, uintptr, SQLLEN, *SQLLEN) SQLRETURN
		rowCount      func(SQLHSTMT, *SQLLEN) SQLRETURN
		getDiagRec    func(SQLSMALLINT, SQLHANDLE, SQLSMALLINT, *byte, *SQLINTEGER, *byte, SQLSMALLINT, *SQLSMALLINT) SQLRETURN
		freeStmt      func(SQLHSTMT, SQLUSMALLINT) SQLRETURN
		setStmtAttr   func(SQLHSTMT, SQLINTEGER, uintptr, SQLINTEGER) SQLRETURN
		env           *envState
	}{
		sqlAllocHandle, sqlFreeHandle, sqlSetEnvAttr, sqlDriverConnect, sqlDisconnect,
		sqlGetInfo, sqlExecDirect, sqlNumResultCols, sqlDescribeCol, sqlColAttribute,
		sqlFetch, sqlGetData, sqlRowCount, sqlGetDiagRec, sqlFreeStmt, sqlSetStmtAttr,
		sharedEnv,
	}
	t.Cleanup(func() {
		sqlAllocHandle, sqlFreeHandle, sqlSetEnvAttr = saved.allocHandle, saved.freeHandle, saved.setEnvAttr
		sqlDriverConnect, sqlDisconnect, sqlGetInfo = saved.driverConnect, saved.disconnect, saved.getInfo
		sqlExecDirect, sqlNumResultCols, sqlDescribeCol = saved.execDirect, saved.numResultCols, saved.describeCol
		sqlColAttribute, sqlFetch, sqlGetData = saved.colAttribute, saved.fetch, saved.getData
		sqlRowCount, sqlGetDiagRec = saved.rowCount, saved.getDiagRec
		sqlFreeStmt, sqlSetStmtAttr = saved.freeStmt, saved.setStmtAttr
		sharedEnv = saved.env
	})

	sharedEnv = &envState{}
	sqlAllocHandle = fd.allocHandle
	sqlFreeHandle = fd.freeHandle
	sqlSetEnvAttr = fd.setEnvAttr
	sqlDriverConnect = fd.driverConnect
	sqlDisconnect = fd.disconnect
	sqlGetInfo = fd.getInfo
	sqlExecDirect = fd.execDirect
	sqlNumResultCols = fd.numResultCols
	sqlDescribeCol = fd.describeCol
	sqlColAttribute = fd.colAttribute
	sqlFetch = fd.fetch
	sqlGetData = fd.getData
	sqlRowCount = fd.rowCount
	sqlGetDiagRec = fd.getDiagRec
	sqlFreeStmt = fd.freeStmt
	sqlSetStmtAttr = fd.setStmtAttr
	return fd
}

// addResult registers the result set returned for statement text.
func (fd *fakeDriver) addResult(text string, columns []fakeColumn, rows ...[]any) *fakeResult {
	r := &fakeResult{columns: columns, rows: rows}
	fd.results[text] = r
	return r
}

func (fd *fakeDriver) setDiag(h SQLHANDLE, recs ...DiagRecord) {
	fd.diags[h] = recs
}

func (fd *fakeDriver) liveCount(kind SQLSMALLINT) int {
	n := 0
	for _, k := range fd.live {
		if k == kind {
			n++
		}
	}
	return n
}

func (fd *fakeDriver) stmt(h SQLHSTMT) *fakeStmt {
	st, ok := fd.stmts[SQLHANDLE(h)]
	if !ok {
		fd.t.Fatalf("fake driver: unknown statement handle %#x", h)
	}
	return st
}

func cString(p *byte) string {
	if p == nil {
		return ""
	}
	var b []byte
	for i := uintptr(0); ; i++ {
		c := *(*byte)(unsafe.Add(unsafe.Pointer(p), i))
		if c == 0 {
			break
		}
		b = append(b, c)
	}
	return string(b)
}

// writeCString copies s into the max-byte buffer at p, truncating and always
// terminating.
func writeCString(p unsafe.Pointer, max int, s string) {
	if p == nil || max <= 0 {
		return
	}
	dst := unsafe.Slice((*byte)(p), max)
	n := copy(dst[:max-1], s)
	dst[n] = 0
}

// =============================================================================
// Entry points
// =============================================================================

func (fd *fakeDriver) allocHandle(handleType SQLSMALLINT, input SQLHANDLE, out *SQLHANDLE) SQLRETURN {
	fd.allocs[handleType]++
	if handleType != SQL_HANDLE_ENV {
		if _, ok := fd.live[input]; !ok {
			*out = SQL_NULL_HANDLE
			return SQL_INVALID_HANDLE
		}
	}
	if fd.allocFail[handleType] {
		*out = SQL_NULL_HANDLE
		if input != SQL_NULL_HANDLE {
			fd.setDiag(input, DiagRecord{SQLState: "HY001", Message: "memory allocation failure"})
		}
		return SQL_ERROR
	}
	fd.next += 0x10
	h := fd.next
	fd.live[h] = handleType
	fd.parents[h] = input
	if handleType == SQL_HANDLE_STMT {
		st := &fakeStmt{row: -1}
		st.resetRow()
		fd.stmts[h] = st
	}
	*out = h
	return SQL_SUCCESS
}

func (fd *fakeDriver) freeHandle(handleType SQLSMALLINT, h SQLHANDLE) SQLRETURN {
	fd.frees[h]++
	kind, ok := fd.live[h]
	if !ok || kind != handleType {
		fd.badFrees++
		return SQL_INVALID_HANDLE
	}
	delete(fd.live, h)
	delete(fd.parents, h)
	delete(fd.stmts, h)
	return SQL_SUCCESS
}

func (fd *fakeDriver) setEnvAttr(env SQLHENV, attr SQLINTEGER, value uintptr, _ SQLINTEGER) SQLRETURN {
	if fd.failSetEnvAttr {
		fd.setDiag(SQLHANDLE(env), DiagRecord{SQLState: "HY024", Message: "invalid attribute value"})
		return SQL_ERROR
	}
	if attr == SQL_ATTR_ODBC_VERSION {
		fd.odbcVersion = value
	}
	return SQL_SUCCESS
}

func (fd *fakeDriver) driverConnect(dbc SQLHDBC, _ uintptr, in *byte, _ SQLSMALLINT, out *byte, outMax SQLSMALLINT, outLen *SQLSMALLINT, completion SQLUSMALLINT) SQLRETURN {
	fd.connStr = cString(in)
	fd.completion = completion
	if !fd.connectOK {
		fd.setDiag(SQLHANDLE(dbc),
			DiagRecord{SQLState: "08001", NativeError: 111, Message: "could not connect to server"},
			DiagRecord{SQLState: "01S00", Message: "invalid connection string attribute"})
		return SQL_ERROR
	}
	fd.connected[SQLHANDLE(dbc)] = true
	writeCString(unsafe.Pointer(out), int(outMax), fd.connStr)
	*outLen = SQLSMALLINT(len(fd.connStr))
	return SQL_SUCCESS
}

func (fd *fakeDriver) disconnect(dbc SQLHDBC) SQLRETURN {
	if !fd.connected[SQLHANDLE(dbc)] {
		return SQL_ERROR
	}
	delete(fd.connected, SQLHANDLE(dbc))
	// Statements die with the session
	for h, parent := range fd.parents {
		if parent == SQLHANDLE(dbc) && fd.live[h] == SQL_HANDLE_STMT {
			delete(fd.live, h)
			delete(fd.parents, h)
			delete(fd.stmts, h)
		}
	}
	return SQL_SUCCESS
}

func (fd *fakeDriver) getInfo(_ SQLHDBC, infoType SQLUSMALLINT, value uintptr, bufLen SQLSMALLINT, strLen *SQLSMALLINT) SQLRETURN {
	var s string
	switch infoType {
	case SQL_DBMS_NAME:
		s = fd.dbmsName
	case SQL_DRIVER_NAME:
		s = fd.driverName
	default:
		return SQL_ERROR
	}
	*strLen = SQLSMALLINT(len(s))
	if value != 0 {
		writeCString(unsafe.Pointer(value), int(bufLen), s)
	}
	return SQL_SUCCESS
}

func (fd *fakeDriver) execDirect(h SQLHSTMT, text *byte, _ SQLINTEGER) SQLRETURN {
	delete(fd.diags, SQLHANDLE(h))
	st := fd.stmt(h)
	q := cString(text)
	fd.executed = append(fd.executed, q)
	res, ok := fd.results[q]
	if !ok {
		fd.setDiag(SQLHANDLE(h), DiagRecord{SQLState: "42000", NativeError: 102, Message: fmt.Sprintf("syntax error near %q", q)})
		return SQL_ERROR
	}
	st.result = res
	st.row = -1
	st.fetches = 0
	st.resetRow()
	return SQL_SUCCESS
}

func (fd *fakeDriver) numResultCols(h SQLHSTMT, count *SQLSMALLINT) SQLRETURN {
	st := fd.stmt(h)
	if st.result == nil {
		*count = 0
		return SQL_SUCCESS
	}
	*count = SQLSMALLINT(len(st.result.columns))
	return SQL_SUCCESS
}

func (fd *fakeDriver) describeCol(h SQLHSTMT, colNum SQLUSMALLINT, name *byte, bufLen SQLSMALLINT, nameLen *SQLSMALLINT, dataType *SQLSMALLINT, colSize *SQLULEN, digits *SQLSMALLINT, nullable *SQLSMALLINT) SQLRETURN {
	st := fd.stmt(h)
	if st.result == nil || colNum < 1 || int(colNum) > len(st.result.columns) {
		fd.setDiag(SQLHANDLE(h), DiagRecord{SQLState: "07009", Message: "invalid descriptor index"})
		return SQL_ERROR
	}
	c := st.result.columns[colNum-1]
	writeCString(unsafe.Pointer(name), int(bufLen), c.name)
	*nameLen = SQLSMALLINT(len(c.name))
	*dataType = c.sqlType
	*colSize = c.size
	*digits = c.digits
	*nullable = c.nullable
	if len(c.name) >= int(bufLen) {
		return SQL_SUCCESS_WITH_INFO
	}
	return SQL_SUCCESS
}

func (fd *fakeDriver) colAttribute(h SQLHSTMT, colNum SQLUSMALLINT, field SQLUSMALLINT, _ uintptr, _ SQLSMALLINT, _ *SQLSMALLINT, num *SQLLEN) SQLRETURN {
	st := fd.stmt(h)
	if st.result == nil || st.result.failColAttrib || field != SQL_DESC_UNSIGNED {
		return SQL_ERROR
	}
	*num = SQL_FALSE
	if st.result.columns[colNum-1].unsigned {
		*num = SQL_TRUE
	}
	return SQL_SUCCESS
}

func (fd *fakeDriver) fetch(h SQLHSTMT) SQLRETURN {
	delete(fd.diags, SQLHANDLE(h))
	st := fd.stmt(h)
	if st.result == nil {
		fd.setDiag(SQLHANDLE(h), DiagRecord{SQLState: "24000", Message: "invalid cursor state"})
		return SQL_ERROR
	}
	st.fetches++
	if st.fetches == st.result.failFetchAt {
		fd.setDiag(SQLHANDLE(h), DiagRecord{SQLState: "08S01", Message: "communication link failure"})
		return SQL_ERROR
	}
	st.resetRow()
	if st.row < len(st.result.rows) {
		st.row++
	}
	if st.row >= len(st.result.rows) {
		return SQL_NO_DATA
	}
	return SQL_SUCCESS
}

func (fd *fakeDriver) getData(h SQLHSTMT, colNum SQLUSMALLINT, targetType SQLSMALLINT, target uintptr, bufLen SQLLEN, ind *SQLLEN) SQLRETURN {
	delete(fd.diags, SQLHANDLE(h))
	fd.getDataCalls = append(fd.getDataCalls, getDataCall{col: colNum, targetType: targetType, bufLen: bufLen})
	st := fd.stmt(h)
	if fd.failGetData {
		fd.setDiag(SQLHANDLE(h), DiagRecord{SQLState: "HY000", Message: "general error"})
		return SQL_ERROR
	}
	if st.result == nil || st.row < 0 || st.row >= len(st.result.rows) {
		fd.setDiag(SQLHANDLE(h), DiagRecord{SQLState: "24000", Message: "invalid cursor state"})
		return SQL_ERROR
	}

	if st.done[colNum] {
		return SQL_NO_DATA
	}

	var val any
	if colNum == 0 {
		if !st.bookmarks {
			fd.setDiag(SQLHANDLE(h), DiagRecord{SQLState: "07009", Message: "invalid descriptor index"})
			return SQL_ERROR
		}
		val = uint32(st.row + 1)
	} else {
		val = st.result.rows[st.row][colNum-1]
	}
	if val == nil {
		*ind = SQL_NULL_DATA
		st.done[colNum] = true
		return SQL_SUCCESS
	}

	switch targetType {
	case SQL_C_CHAR, SQL_C_WCHAR, SQL_C_BINARY:
		return fd.getChunk(h, st, colNum, targetType, val, target, bufLen, ind)
	}
	ret := fd.getFixed(targetType, val, target, bufLen, ind)
	if IsSuccess(ret) {
		st.done[colNum] = true
	}
	return ret
}

func payloadOf(val any) []byte {
	switch v := val.(type) {
	case string:
		return []byte(v)
	case []byte:
		return v
	case []uint16:
		if len(v) == 0 {
			return nil
		}
		return unsafe.Slice((*byte)(unsafe.Pointer(&v[0])), len(v)*2)
	}
	panic(fmt.Sprintf("fake driver: %T is not variable-length", val))
}

func (fd *fakeDriver) getChunk(h SQLHSTMT, st *fakeStmt, colNum SQLUSMALLINT, targetType SQLSMALLINT, val any, target uintptr, bufLen SQLLEN, ind *SQLLEN) SQLRETURN {
	payload := payloadOf(val)
	term := 0
	switch targetType {
	case SQL_C_CHAR:
		term = 1
	case SQL_C_WCHAR:
		term = 2
	}

	off := st.offsets[colNum]
	remaining := len(payload) - off
	room := int(bufLen) - term
	if room < 0 {
		room = 0
	}
	if term == 2 {
		room &^= 1
	}
	n := remaining
	if n > room {
		n = room
	}

	dst := unsafe.Slice((*byte)(unsafe.Pointer(target)), int(bufLen))
	copy(dst, payload[off:off+n])
	for i := 0; i < term && n+i < len(dst); i++ {
		dst[n+i] = 0
	}
	st.offsets[colNum] = off + n

	if n < remaining {
		if st.noTotal[colNum] < fd.noTotalChunks {
			st.noTotal[colNum]++
			*ind = SQL_NO_TOTAL
		} else {
			*ind = SQLLEN(remaining)
		}
		fd.setDiag(SQLHANDLE(h), DiagRecord{SQLState: "01004", Message: "string data, right truncated"})
		return SQL_SUCCESS_WITH_INFO
	}
	*ind = SQLLEN(remaining)
	st.done[colNum] = true
	return SQL_SUCCESS
}

func store[T any](fd *fakeDriver, target uintptr, bufLen SQLLEN, ind *SQLLEN, v T) SQLRETURN {
	size := SQLLEN(unsafe.Sizeof(v))
	if size > bufLen {
		fd.t.Errorf("fake driver: %T needs %d bytes, buffer has %d", v, size, bufLen)
		return SQL_ERROR
	}
	*(*T)(unsafe.Pointer(target)) = v
	*ind = size
	return SQL_SUCCESS
}

func (fd *fakeDriver) getFixed(targetType SQLSMALLINT, val any, target uintptr, bufLen SQLLEN, ind *SQLLEN) SQLRETURN {
	want := map[SQLSMALLINT]string{
		SQL_C_BIT: "bool", SQL_C_STINYINT: "int8", SQL_C_UTINYINT: "uint8",
		SQL_C_SSHORT: "int16", SQL_C_USHORT: "uint16", SQL_C_SLONG: "int32",
		SQL_C_ULONG: "uint32", SQL_C_SBIGINT: "int64", SQL_C_UBIGINT: "uint64",
		SQL_C_FLOAT: "float32", SQL_C_DOUBLE: "float64",
		SQL_C_TYPE_DATE: "odbc.SQL_DATE_STRUCT", SQL_C_TYPE_TIME: "odbc.SQL_TIME_STRUCT",
		SQL_C_TYPE_TIMESTAMP: "odbc.SQL_TIMESTAMP_STRUCT", SQL_C_GUID: "odbc.SQL_GUID_STRUCT",
	}
	if w, ok := want[targetType]; ok && w != fmt.Sprintf("%T", val) {
		fd.t.Errorf("fake driver: target type %d requested for %T value", targetType, val)
		return SQL_ERROR
	}

	switch v := val.(type) {
	case bool:
		var b uint8
		if v {
			b = 1
		}
		return store(fd, target, bufLen, ind, b)
	case int8:
		return store(fd, target, bufLen, ind, v)
	case uint8:
		return store(fd, target, bufLen, ind, v)
	case int16:
		return store(fd, target, bufLen, ind, v)
	case uint16:
		return store(fd, target, bufLen, ind, v)
	case int32:
		return store(fd, target, bufLen, ind, v)
	case uint32:
		return store(fd, target, bufLen, ind, v)
	case int64:
		return store(fd, target, bufLen, ind, v)
	case uint64:
		return store(fd, target, bufLen, ind, v)
	case float32:
		return store(fd, target, bufLen, ind, v)
	case float64:
		return store(fd, target, bufLen, ind, v)
	case SQL_DATE_STRUCT:
		return store(fd, target, bufLen, ind, v)
	case SQL_TIME_STRUCT:
		return store(fd, target, bufLen, ind, v)
	case SQL_TIMESTAMP_STRUCT:
		return store(fd, target, bufLen, ind, v)
	case SQL_GUID_STRUCT:
		return store(fd, target, bufLen, ind, v)
	case SQL_INTERVAL_STRUCT:
		return store(fd, target, bufLen, ind, v)
	}
	fd.t.Errorf("fake driver: unsupported value %T", val)
	return SQL_ERROR
}

func (fd *fakeDriver) rowCount(h SQLHSTMT, n *SQLLEN) SQLRETURN {
	st := fd.stmt(h)
	if st.result == nil {
		*n = -1
		return SQL_SUCCESS
	}
	*n = SQLLEN(st.result.rowsAffected)
	return SQL_SUCCESS
}

func (fd *fakeDriver) getDiagRec(_ SQLSMALLINT, h SQLHANDLE, recNum SQLSMALLINT, state *byte, native *SQLINTEGER, msg *byte, bufLen SQLSMALLINT, textLen *SQLSMALLINT) SQLRETURN {
	recs := fd.diags[h]
	if recNum < 1 || int(recNum) > len(recs) {
		return SQL_NO_DATA
	}
	rec := recs[recNum-1]
	writeCString(unsafe.Pointer(state), 6, rec.SQLState)
	*native = SQLINTEGER(rec.NativeError)
	writeCString(unsafe.Pointer(msg), int(bufLen), rec.Message)
	*textLen = SQLSMALLINT(len(rec.Message))
	if len(rec.Message) >= int(bufLen) {
		return SQL_SUCCESS_WITH_INFO
	}
	return SQL_SUCCESS
}

func (fd *fakeDriver) freeStmt(h SQLHSTMT, option SQLUSMALLINT) SQLRETURN {
	st := fd.stmt(h)
	if option == SQL_CLOSE {
		fd.closes++
		st.result = nil
		st.row = -1
		st.resetRow()
	}
	return SQL_SUCCESS
}

func (fd *fakeDriver) setStmtAttr(h SQLHSTMT, attr SQLINTEGER, value uintptr, _ SQLINTEGER) SQLRETURN {
	st := fd.stmt(h)
	if attr == SQL_ATTR_USE_BOOKMARKS {
		st.bookmarks = value == SQL_UB_ON
		return SQL_SUCCESS
	}
	return SQL_ERROR
}

// =============================================================================
// Helpers
// =============================================================================

// connect returns a connected Connection on the fake driver.
func connect(t testing.TB, fd *fakeDriver, opts ...Option) *Connection {
	t.Helper()
	conn, err := Open("DSN=fake", opts...)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

// execute runs text on a fresh Query.
func execute(t testing.TB, conn *Connection, text string) *Query {
	t.Helper()
	q, err := conn.MakeQuery()
	if err != nil {
		t.Fatalf("MakeQuery: %v", err)
	}
	t.Cleanup(func() { q.Close() })
	if err := q.Execute(text); err != nil {
		t.Fatalf("Execute(%q): %v", text, err)
	}
	return q
}
