package odbc

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors identifying the failure class. Every error returned by this
// package matches exactly one of them with errors.Is.
var (
	// ErrAllocation indicates that the driver manager refused to allocate a handle.
	ErrAllocation = errors.New("handle allocation failed")

	// ErrRelease indicates that the driver manager reported failure freeing a handle.
	ErrRelease = errors.New("handle release failed")

	// ErrAlreadyConnected is returned by Connect on a connected Connection.
	ErrAlreadyConnected = errors.New("attempt to connect when already connected")

	// ErrNotConnected is returned when an operation needs a live connection.
	ErrNotConnected = errors.New("connection is not connected")

	// ErrConnect wraps a driver-reported connection failure.
	ErrConnect = errors.New("connection failed")

	// ErrStatement wraps a driver-reported statement execution failure.
	ErrStatement = errors.New("statement execution failed")

	// ErrFetch wraps a driver-reported failure while advancing the cursor.
	ErrFetch = errors.New("row fetch failed")

	// ErrDataRetrieval wraps a driver-reported failure while reading a column.
	ErrDataRetrieval = errors.New("data retrieval failed")

	// ErrNotReady means no statement has been executed on the Query.
	ErrNotReady = errors.New("no executed statement")

	// ErrNoData means the result set has no current row, or the column was
	// already read from the current row.
	ErrNoData = errors.New("no data returned")

	// ErrTypeMismatch means a Datum was read with an accessor for another type.
	ErrTypeMismatch = errors.New("datum type mismatch")

	// ErrInvalidType means the driver reported a type outside the known set.
	ErrInvalidType = errors.New("unsupported data type")

	// ErrColumnIndex means a column index outside the current field list.
	ErrColumnIndex = errors.New("column index out of range")

	// ErrNullValue means a typed accessor was applied to a null Datum.
	ErrNullValue = errors.New("datum is null")
)

// Error represents an ODBC error with diagnostic information from the driver.
// It implements the error interface and provides SQLState, native error code,
// and a human-readable message.
type Error struct {
	SQLState    string
	NativeError int32
	Message     string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s (native error: %d)", e.SQLState, e.Message, e.NativeError)
}

// Is reports whether target matches this error's SQLState.
// This allows using errors.Is to check for specific ODBC errors.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.SQLState == t.SQLState
	}
	return false
}

// DiagRecord represents a single diagnostic record from ODBC
type DiagRecord struct {
	SQLState    string
	NativeError int32
	Message     string
}

// Errors represents multiple ODBC errors
type Errors []Error

// Error implements the error interface for multiple errors
func (e Errors) Error() string {
	if len(e) == 0 {
		return "unknown ODBC error"
	}
	if len(e) == 1 {
		return e[0].Error()
	}
	var sb strings.Builder
	for i, err := range e {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// diagMessageLen bounds the text read for a single diagnostic record.
const diagMessageLen = 1024

// GetDiagRecords retrieves all diagnostic records for a handle, walking
// record numbers from 1 until the driver reports no more records.
func GetDiagRecords(handleType SQLSMALLINT, handle SQLHANDLE) []DiagRecord {
	var records []DiagRecord
	sqlState := make([]byte, 6)
	message := make([]byte, diagMessageLen)

	for i := SQLSMALLINT(1); ; i++ {
		nativeError, msgLen, ret := GetDiagRec(handleType, handle, i, sqlState, message)
		if !IsSuccess(ret) {
			break
		}
		// Truncated records report their full length
		n := int(msgLen)
		if n < 0 {
			n = 0
		}
		if n > len(message)-1 {
			n = len(message) - 1
		}
		records = append(records, DiagRecord{
			SQLState:    string(sqlState[:5]),
			NativeError: int32(nativeError),
			Message:     string(message[:n]),
		})
	}
	return records
}

// DiagMessage renders diagnostic records as "<state>: <text>" entries
// separated by " | ".
func DiagMessage(records []DiagRecord) string {
	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteString(" | ")
		}
		sb.WriteString(rec.SQLState)
		sb.WriteString(": ")
		sb.WriteString(rec.Message)
	}
	return sb.String()
}

// recordsError converts diagnostic records to an *Error or Errors value.
func recordsError(records []DiagRecord) error {
	switch len(records) {
	case 0:
		return nil
	case 1:
		return &Error{
			SQLState:    records[0].SQLState,
			NativeError: records[0].NativeError,
			Message:     records[0].Message,
		}
	}
	errs := make(Errors, len(records))
	for i, rec := range records {
		errs[i] = Error{
			SQLState:    rec.SQLState,
			NativeError: rec.NativeError,
			Message:     rec.Message,
		}
	}
	return errs
}

// OpError is a failed operation together with the driver diagnostics that
// were attached to the handle involved.
type OpError struct {
	// Kind is one of the package sentinel errors.
	Kind error
	// Op describes what was being attempted.
	Op string
	// Records holds the driver diagnostics, possibly empty.
	Records []DiagRecord
}

// Error implements the error interface
func (e *OpError) Error() string {
	if len(e.Records) == 0 {
		return e.Op
	}
	return e.Op + ": " + DiagMessage(e.Records)
}

// Unwrap exposes the sentinel kind and, if present, the diagnostics as
// *Error or Errors.
func (e *OpError) Unwrap() []error {
	errs := []error{e.Kind}
	if d := recordsError(e.Records); d != nil {
		errs = append(errs, d)
	}
	return errs
}

// newOpError builds an OpError from the diagnostics currently attached to a handle.
func newOpError(kind error, op string, handleType SQLSMALLINT, handle SQLHANDLE) *OpError {
	var records []DiagRecord
	if handle != SQL_NULL_HANDLE {
		records = GetDiagRecords(handleType, handle)
	}
	return &OpError{Kind: kind, Op: op, Records: records}
}

// SQLState constants for common errors.
// These follow the ODBC specification and can be used with errors.Is.
const (
	// Connection errors (08xxx)
	SQLStateConnectionFailure  = "08001" // Unable to connect
	SQLStateConnectionNotOpen  = "08003" // Connection not open
	SQLStateConnectionRejected = "08004" // Connection rejected by server
	SQLStateConnectionError    = "08S01" // Communication link failure

	// Warning states (01xxx)
	SQLStateDataTruncation = "01004" // Data truncated

	// No data (02xxx)
	SQLStateNoData = "02000" // No data found

	// Cursor state (24xxx)
	SQLStateInvalidCursorState = "24000" // Invalid cursor state

	// Transaction errors (40xxx)
	SQLStateDeadlock          = "40001" // Serialization failure (deadlock)
	SQLStateTransactionFailed = "40003" // Statement completion unknown

	// Syntax/access errors (42xxx)
	SQLStateSyntaxError    = "42000" // Syntax error or access violation
	SQLStateTableNotFound  = "42S02" // Table not found
	SQLStateColumnNotFound = "42S22" // Column not found

	// General errors (HYxxx)
	SQLStateGeneralError          = "HY000" // General error
	SQLStateMemoryAllocationError = "HY001" // Memory allocation error
	SQLStateFunctionSequenceError = "HY010" // Function sequence error
	SQLStateTimeout               = "HYT00" // Timeout expired
	SQLStateConnectionTimeout     = "HYT01" // Connection timeout expired
)

// SQLState returns the SQLSTATE of the first diagnostic record carried by
// err, or "" if there is none.
func SQLState(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.SQLState
	}
	var es Errors
	if errors.As(err, &es) && len(es) > 0 {
		return es[0].SQLState
	}
	return ""
}

// IsConnectionError reports whether err indicates a connection problem.
// Connection errors have SQLState codes starting with "08".
func IsConnectionError(err error) bool {
	return strings.HasPrefix(SQLState(err), "08")
}

// IsDataTruncation reports whether err indicates data truncation.
func IsDataTruncation(err error) bool {
	return SQLState(err) == SQLStateDataTruncation
}

// IsRetryable reports whether err represents a transient error that may
// succeed if retried by the caller. Transient errors include connection
// failures, timeouts, and deadlocks.
func IsRetryable(err error) bool {
	sqlState := SQLState(err)
	switch sqlState {
	case "":
		return false
	case SQLStateDeadlock, SQLStateTimeout, SQLStateConnectionTimeout,
		SQLStateTransactionFailed:
		return true
	}
	return strings.HasPrefix(sqlState, "08")
}

// FormatReturnCode returns a string representation of an ODBC return code
func FormatReturnCode(ret SQLRETURN) string {
	switch ret {
	case SQL_SUCCESS:
		return "SQL_SUCCESS"
	case SQL_SUCCESS_WITH_INFO:
		return "SQL_SUCCESS_WITH_INFO"
	case SQL_ERROR:
		return "SQL_ERROR"
	case SQL_INVALID_HANDLE:
		return "SQL_INVALID_HANDLE"
	case SQL_NO_DATA:
		return "SQL_NO_DATA"
	case SQL_NEED_DATA:
		return "SQL_NEED_DATA"
	case SQL_STILL_EXECUTING:
		return "SQL_STILL_EXECUTING"
	default:
		return fmt.Sprintf("SQLRETURN(%d)", ret)
	}
}
