// Package odbc is a typed access layer over the ODBC call interface.
//
// The driver manager (unixODBC, iODBC or odbc32.dll) is loaded at runtime
// without cgo; set GODBC_LIBRARY_PATH to use a library outside the default
// search path.
//
// A Connection owns a connection handle under the process-wide environment
// and creates Queries. A Query executes one statement at a time and returns
// each column of the current row as a Datum, which is read through a typed
// Accessor:
//
//	conn, err := odbc.Open("DSN=warehouse")
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	q, err := conn.MakeQuery()
//	if err != nil {
//		return err
//	}
//	defer q.Close()
//
//	if err := q.Execute("select id, name from users"); err != nil {
//		return err
//	}
//	for !q.Empty() {
//		d, err := q.Get(0)
//		if err != nil {
//			return err
//		}
//		id, err := odbc.Get(d, odbc.AsInteger)
//		...
//		if err := q.Advance(); err != nil {
//			return err
//		}
//	}
//
// Connections and Queries are not safe for concurrent use.
package odbc
