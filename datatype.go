package odbc

import (
	"fmt"
	"unsafe"
)

// DataType is the closed set of value types this package can retrieve.
//
// Most members correspond one-to-one to an ODBC SQL column type code. The
// unsigned integer variants and Bookmark have no column code of their own:
// unsigned columns are reported with the signed code plus the
// SQL_DESC_UNSIGNED attribute, and bookmarks live in column 0.
type DataType uint8

const (
	Char DataType = iota + 1
	VarChar
	LongVarChar
	WChar
	WVarChar
	WLongVarChar
	Binary
	VarBinary
	LongVarBinary
	Bit
	TinyInt
	UTinyInt
	SmallInt
	USmallInt
	Integer
	UInteger
	BigInt
	UBigInt
	Real
	Float
	Double
	Decimal
	Numeric
	Date
	Time
	Timestamp
	GUID
	IntervalYear
	IntervalMonth
	IntervalDay
	IntervalHour
	IntervalMinute
	IntervalSecond
	IntervalYearToMonth
	IntervalDayToHour
	IntervalDayToMinute
	IntervalDayToSecond
	IntervalHourToMinute
	IntervalHourToSecond
	IntervalMinuteToSecond
	Bookmark

	numTypes
)

// storage classes
const (
	inline = iota
	structured
	variable
)

type typeTraits struct {
	name      string
	column    SQLSMALLINT
	hasColumn bool
	host      SQLSMALLINT
	storage   int
	elemSize  int
	termSize  int
	wide      bool
	narrow    bool
}

var (
	dateSize     = int(unsafe.Sizeof(SQL_DATE_STRUCT{}))
	timeSize     = int(unsafe.Sizeof(SQL_TIME_STRUCT{}))
	timestampSz  = int(unsafe.Sizeof(SQL_TIMESTAMP_STRUCT{}))
	guidSize     = int(unsafe.Sizeof(SQL_GUID_STRUCT{}))
	intervalSize = int(unsafe.Sizeof(SQL_INTERVAL_STRUCT{}))
)

func narrowType(name string, code SQLSMALLINT) typeTraits {
	return typeTraits{name: name, column: code, hasColumn: true, host: SQL_C_CHAR,
		storage: variable, elemSize: 1, termSize: 1, narrow: true}
}

func wideType(name string, code SQLSMALLINT) typeTraits {
	return typeTraits{name: name, column: code, hasColumn: true, host: SQL_C_WCHAR,
		storage: variable, elemSize: 2, termSize: 2, wide: true}
}

func binaryType(name string, code SQLSMALLINT) typeTraits {
	return typeTraits{name: name, column: code, hasColumn: true, host: SQL_C_BINARY,
		storage: variable, elemSize: 1}
}

func scalarType(name string, code SQLSMALLINT, host SQLSMALLINT, size int) typeTraits {
	return typeTraits{name: name, column: code, hasColumn: true, host: host,
		storage: inline, elemSize: size}
}

func hostOnlyType(name string, host SQLSMALLINT, size int) typeTraits {
	return typeTraits{name: name, host: host, storage: inline, elemSize: size}
}

func structType(name string, code SQLSMALLINT, host SQLSMALLINT, size int) typeTraits {
	return typeTraits{name: name, column: code, hasColumn: true, host: host,
		storage: structured, elemSize: size}
}

// Exact numerics are requested as text: SQL_C_NUMERIC is bound with the
// driver's default scale of 0, which drops the fractional digits.
func exactNumericType(name string, code SQLSMALLINT) typeTraits {
	return typeTraits{name: name, column: code, hasColumn: true, host: SQL_C_CHAR,
		storage: variable, elemSize: 1, termSize: 1}
}

var typeTable = [numTypes]typeTraits{
	Char:          narrowType("CHAR", SQL_CHAR),
	VarChar:       narrowType("VARCHAR", SQL_VARCHAR),
	LongVarChar:   narrowType("LONGVARCHAR", SQL_LONGVARCHAR),
	WChar:         wideType("WCHAR", SQL_WCHAR),
	WVarChar:      wideType("WVARCHAR", SQL_WVARCHAR),
	WLongVarChar:  wideType("WLONGVARCHAR", SQL_WLONGVARCHAR),
	Binary:        binaryType("BINARY", SQL_BINARY),
	VarBinary:     binaryType("VARBINARY", SQL_VARBINARY),
	LongVarBinary: binaryType("LONGVARBINARY", SQL_LONGVARBINARY),
	Bit:           scalarType("BIT", SQL_BIT, SQL_C_BIT, 1),
	TinyInt:       scalarType("TINYINT", SQL_TINYINT, SQL_C_STINYINT, 1),
	UTinyInt:      hostOnlyType("UTINYINT", SQL_C_UTINYINT, 1),
	SmallInt:      scalarType("SMALLINT", SQL_SMALLINT, SQL_C_SSHORT, 2),
	USmallInt:     hostOnlyType("USMALLINT", SQL_C_USHORT, 2),
	Integer:       scalarType("INTEGER", SQL_INTEGER, SQL_C_SLONG, 4),
	UInteger:      hostOnlyType("UINTEGER", SQL_C_ULONG, 4),
	BigInt:        scalarType("BIGINT", SQL_BIGINT, SQL_C_SBIGINT, 8),
	UBigInt:       hostOnlyType("UBIGINT", SQL_C_UBIGINT, 8),
	Real:          scalarType("REAL", SQL_REAL, SQL_C_FLOAT, 4),
	Float:         scalarType("FLOAT", SQL_FLOAT, SQL_C_DOUBLE, 8),
	Double:        scalarType("DOUBLE", SQL_DOUBLE, SQL_C_DOUBLE, 8),
	Decimal:       exactNumericType("DECIMAL", SQL_DECIMAL),
	Numeric:       exactNumericType("NUMERIC", SQL_NUMERIC),
	Date:          structType("DATE", SQL_TYPE_DATE, SQL_C_TYPE_DATE, dateSize),
	Time:          structType("TIME", SQL_TYPE_TIME, SQL_C_TYPE_TIME, timeSize),
	Timestamp:     structType("TIMESTAMP", SQL_TYPE_TIMESTAMP, SQL_C_TYPE_TIMESTAMP, timestampSz),
	GUID:          structType("GUID", SQL_GUID, SQL_C_GUID, guidSize),

	IntervalYear:           structType("INTERVAL YEAR", SQL_INTERVAL_YEAR, SQL_C_INTERVAL_YEAR, intervalSize),
	IntervalMonth:          structType("INTERVAL MONTH", SQL_INTERVAL_MONTH, SQL_C_INTERVAL_MONTH, intervalSize),
	IntervalDay:            structType("INTERVAL DAY", SQL_INTERVAL_DAY, SQL_C_INTERVAL_DAY, intervalSize),
	IntervalHour:           structType("INTERVAL HOUR", SQL_INTERVAL_HOUR, SQL_C_INTERVAL_HOUR, intervalSize),
	IntervalMinute:         structType("INTERVAL MINUTE", SQL_INTERVAL_MINUTE, SQL_C_INTERVAL_MINUTE, intervalSize),
	IntervalSecond:         structType("INTERVAL SECOND", SQL_INTERVAL_SECOND, SQL_C_INTERVAL_SECOND, intervalSize),
	IntervalYearToMonth:    structType("INTERVAL YEAR TO MONTH", SQL_INTERVAL_YEAR_TO_MONTH, SQL_C_INTERVAL_YEAR_TO_MONTH, intervalSize),
	IntervalDayToHour:      structType("INTERVAL DAY TO HOUR", SQL_INTERVAL_DAY_TO_HOUR, SQL_C_INTERVAL_DAY_TO_HOUR, intervalSize),
	IntervalDayToMinute:    structType("INTERVAL DAY TO MINUTE", SQL_INTERVAL_DAY_TO_MINUTE, SQL_C_INTERVAL_DAY_TO_MINUTE, intervalSize),
	IntervalDayToSecond:    structType("INTERVAL DAY TO SECOND", SQL_INTERVAL_DAY_TO_SECOND, SQL_C_INTERVAL_DAY_TO_SECOND, intervalSize),
	IntervalHourToMinute:   structType("INTERVAL HOUR TO MINUTE", SQL_INTERVAL_HOUR_TO_MINUTE, SQL_C_INTERVAL_HOUR_TO_MINUTE, intervalSize),
	IntervalHourToSecond:   structType("INTERVAL HOUR TO SECOND", SQL_INTERVAL_HOUR_TO_SECOND, SQL_C_INTERVAL_HOUR_TO_SECOND, intervalSize),
	IntervalMinuteToSecond: structType("INTERVAL MINUTE TO SECOND", SQL_INTERVAL_MINUTE_TO_SECOND, SQL_C_INTERVAL_MINUTE_TO_SECOND, intervalSize),

	Bookmark: hostOnlyType("BOOKMARK", SQL_C_BOOKMARK, 4),
}

var byColumnCode = func() map[SQLSMALLINT]DataType {
	m := make(map[SQLSMALLINT]DataType, numTypes)
	for t := Char; t < numTypes; t++ {
		if typeTable[t].hasColumn {
			m[typeTable[t].column] = t
		}
	}
	return m
}()

// Types returns every member of the closed type set in declaration order.
func Types() []DataType {
	out := make([]DataType, 0, numTypes-1)
	for t := Char; t < numTypes; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t is a member of the closed type set.
func (t DataType) Valid() bool {
	return t >= Char && t < numTypes
}

// String returns the type name, e.g. "VARCHAR" or "INTERVAL DAY TO SECOND".
func (t DataType) String() string {
	if !t.Valid() {
		return fmt.Sprintf("DataType(%d)", uint8(t))
	}
	return typeTable[t].name
}

// TypeFromColumnCode maps a SQL column type code reported by SQLDescribeCol
// to its DataType.
func TypeFromColumnCode(code SQLSMALLINT) (DataType, error) {
	t, ok := byColumnCode[code]
	if !ok {
		return 0, fmt.Errorf("%w: SQL type code %d", ErrInvalidType, code)
	}
	return t, nil
}

// ColumnCode returns the SQL column type code for t. The unsigned integer
// types and Bookmark have none.
func ColumnCode(t DataType) (SQLSMALLINT, error) {
	if !t.Valid() || !typeTable[t].hasColumn {
		return 0, fmt.Errorf("%w: %s has no SQL column type code", ErrInvalidType, t)
	}
	return typeTable[t].column, nil
}

// HostCode returns the C type code used when retrieving values of type t.
// It panics if t is not Valid.
func HostCode(t DataType) SQLSMALLINT {
	return typeTable[t].host
}

// IsVariableLength reports whether values of type t are retrieved in chunks
// into an owned buffer.
func IsVariableLength(t DataType) bool {
	return typeTable[t].storage == variable
}

// IsScalar reports whether t is stored inline as a single number or flag.
func IsScalar(t DataType) bool {
	return typeTable[t].storage == inline
}

// IsStruct reports whether t is stored inline as a C struct (date, time,
// timestamp, GUID, interval).
func IsStruct(t DataType) bool {
	return typeTable[t].storage == structured
}

// IsWideChar reports whether t carries UTF-16 text.
func IsWideChar(t DataType) bool {
	return typeTable[t].wide
}

// IsNarrowChar reports whether t carries single-byte text.
func IsNarrowChar(t DataType) bool {
	return typeTable[t].narrow
}

// ElementSize returns the size in bytes of one element of t: one character
// for text types, one byte for binary, the whole value otherwise.
func ElementSize(t DataType) int {
	return typeTable[t].elemSize
}

// terminatorSize is the number of bytes the driver appends after each chunk
// of a variable-length value.
func terminatorSize(t DataType) int {
	return typeTable[t].termSize
}

// IsInterval reports whether t is one of the interval types.
func IsInterval(t DataType) bool {
	return t >= IntervalYear && t <= IntervalMinuteToSecond
}

// Unsigned returns the unsigned counterpart of a signed integer type.
func Unsigned(t DataType) (DataType, bool) {
	switch t {
	case TinyInt:
		return UTinyInt, true
	case SmallInt:
		return USmallInt, true
	case Integer:
		return UInteger, true
	case BigInt:
		return UBigInt, true
	}
	return t, false
}
