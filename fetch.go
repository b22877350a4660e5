package odbc

import (
	"fmt"
	"runtime"
	"unsafe"
)

const opRetrieve = "unable to retrieve data"

// errRetrieved is returned when a column of the current row is read a second
// time. Drivers answer SQL_NO_DATA once a value has been consumed.
var errRetrieved = fmt.Errorf("%w: value already retrieved", ErrNoData)

// retrieve reads column col (1-based, 0 is the bookmark column) of the
// current row as type t.
func (q *Query) retrieve(col SQLUSMALLINT, t DataType) (*Datum, error) {
	d := newDatum(t)
	var err error
	if IsVariableLength(t) {
		err = q.getVariable(col, d)
	} else {
		err = q.getFixed(col, d)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// getFixed reads a fixed-size value straight into the inline storage.
func (q *Query) getFixed(col SQLUSMALLINT, d *Datum) error {
	var ind SQLLEN
	ret := GetData(SQLHSTMT(q.stmt.Native()), col, HostCode(d.typ), d.inlinePtr(), SQLLEN(inlineSize), &ind)
	if ret == SQL_NO_DATA {
		return errRetrieved
	}
	if !IsSuccess(ret) {
		return q.stmt.opError(ErrDataRetrieval, opRetrieve)
	}
	if ind == SQL_NULL_DATA {
		d.null = true
	}
	return nil
}

// getVariable reads a variable-length value in chunks, growing the buffer
// until the driver has returned the whole value.
//
// After a truncated chunk the driver has written a terminator into the last
// element of the buffer. The next chunk is requested at the terminator's
// offset so the continuation overwrites it.
func (q *Query) getVariable(col SQLUSMALLINT, d *Datum) error {
	stmt := SQLHSTMT(q.stmt.Native())
	host := HostCode(d.typ)
	elem := ElementSize(d.typ)
	term := terminatorSize(d.typ)
	defaultChunk := q.chunkSize * elem

	var buf []byte
	filled := 0 // payload bytes received, terminator excluded
	chunk := defaultChunk
	for calls := 0; ; calls++ {
		next := make([]byte, filled+chunk)
		copy(next, buf[:filled])
		buf = next

		var ind SQLLEN
		ret := GetData(stmt, col, host, unsafe.Pointer(&buf[filled]), SQLLEN(chunk), &ind)
		runtime.KeepAlive(buf)
		if ret == SQL_NO_DATA {
			if calls == 0 {
				return errRetrieved
			}
			// Everything was consumed by the previous call
			break
		}
		if !IsSuccess(ret) {
			return q.stmt.opError(ErrDataRetrieval, opRetrieve)
		}

		if ind == SQL_NULL_DATA {
			d.null = true
			return nil
		}
		if ind == SQL_NO_TOTAL {
			filled += chunk - term
			chunk = defaultChunk
			q.logger.Printf("column %d: length unknown after %d bytes, requesting %d more", col, filled, chunk)
			continue
		}
		if got := chunk - term; int(ind) > got {
			filled += got
			chunk = int(ind) - got + term
			q.logger.Printf("column %d: %d bytes reported, growing by %d", col, int(ind)+filled-got, chunk)
			continue
		}
		filled += int(ind)
		break
	}

	d.buf = buf[:filled]
	d.n = filled / elem
	return nil
}
