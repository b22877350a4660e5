package odbc

import (
	"encoding/binary"
	"fmt"
	"strings"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// inlineSize is the capacity of the inline value area, large enough for the
// biggest fixed-size C type (SQL_INTERVAL_STRUCT).
const inlineSize = int(unsafe.Sizeof([4]uint64{}))

// Datum is one retrieved column value.
//
// Fixed-size types are stored inline; variable-length types own a buffer
// that was grown during retrieval. Slices returned by the variable-length
// accessors point into that buffer and must not be used after the Datum is
// discarded and its memory reused by the caller.
type Datum struct {
	typ   DataType
	null  bool
	value [4]uint64 // inline storage, 8-byte aligned
	buf   []byte
	n     int // element count of buf for variable-length types
}

func newDatum(t DataType) *Datum {
	return &Datum{typ: t}
}

// Type returns the stored type.
func (d *Datum) Type() DataType { return d.typ }

// Valid reports whether the Datum holds a value, i.e. it is not null.
func (d *Datum) Valid() bool { return !d.null }

// IsNull reports whether the column was NULL.
func (d *Datum) IsNull() bool { return d.null }

// Len returns the number of elements of a variable-length value (characters
// for text, bytes for binary). Fixed-size values have length 1 and null
// values length 0.
func (d *Datum) Len() int {
	switch {
	case d.null:
		return 0
	case IsVariableLength(d.typ):
		return d.n
	default:
		return 1
	}
}

func (d *Datum) inlinePtr() unsafe.Pointer {
	return unsafe.Pointer(&d.value[0])
}

// Accessor is a typed view of a Datum of one specific DataType.
type Accessor[T any] struct {
	typ    DataType
	decode func(*Datum) (T, error)
}

// Type returns the DataType the accessor reads.
func (a Accessor[T]) Type() DataType { return a.typ }

// Get decodes d through a. It fails with ErrTypeMismatch if d does not hold
// a's type and with ErrNullValue if d is null. d is never modified.
//
//	n, err := odbc.Get(d, odbc.AsInteger)
func Get[T any](d *Datum, a Accessor[T]) (T, error) {
	var zero T
	if d.typ != a.typ {
		return zero, fmt.Errorf("%w: datum holds %s, requested %s", ErrTypeMismatch, d.typ, a.typ)
	}
	if d.null {
		return zero, fmt.Errorf("%w: %s", ErrNullValue, d.typ)
	}
	return a.decode(d)
}

func inlineAccessor[T any](t DataType) Accessor[T] {
	return Accessor[T]{typ: t, decode: func(d *Datum) (T, error) {
		return *(*T)(d.inlinePtr()), nil
	}}
}

func bytesAccessor(t DataType) Accessor[[]byte] {
	return Accessor[[]byte]{typ: t, decode: func(d *Datum) ([]byte, error) {
		return d.buf[:d.n:d.n], nil
	}}
}

func wideAccessor(t DataType) Accessor[[]uint16] {
	return Accessor[[]uint16]{typ: t, decode: func(d *Datum) ([]uint16, error) {
		if d.n == 0 {
			return []uint16{}, nil
		}
		return unsafe.Slice((*uint16)(unsafe.Pointer(&d.buf[0])), d.n), nil
	}}
}

func decimalAccessor(t DataType) Accessor[decimal.Decimal] {
	return Accessor[decimal.Decimal]{typ: t, decode: func(d *Datum) (decimal.Decimal, error) {
		s := strings.TrimSpace(string(d.buf[:d.n]))
		v, err := decimal.NewFromString(s)
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("decode %s %q: %w", t, s, err)
		}
		return v, nil
	}}
}

func intervalAccessor(t DataType) Accessor[Interval] {
	return Accessor[Interval]{typ: t, decode: func(d *Datum) (Interval, error) {
		return newInterval(t, (*SQL_INTERVAL_STRUCT)(d.inlinePtr())), nil
	}}
}

// Typed accessors, one per DataType.
var (
	AsChar          = bytesAccessor(Char)
	AsVarChar       = bytesAccessor(VarChar)
	AsLongVarChar   = bytesAccessor(LongVarChar)
	AsWChar         = wideAccessor(WChar)
	AsWVarChar      = wideAccessor(WVarChar)
	AsWLongVarChar  = wideAccessor(WLongVarChar)
	AsBinary        = bytesAccessor(Binary)
	AsVarBinary     = bytesAccessor(VarBinary)
	AsLongVarBinary = bytesAccessor(LongVarBinary)

	AsBit = Accessor[bool]{typ: Bit, decode: func(d *Datum) (bool, error) {
		return *(*uint8)(d.inlinePtr()) != 0, nil
	}}

	AsTinyInt   = inlineAccessor[int8](TinyInt)
	AsUTinyInt  = inlineAccessor[uint8](UTinyInt)
	AsSmallInt  = inlineAccessor[int16](SmallInt)
	AsUSmallInt = inlineAccessor[uint16](USmallInt)
	AsInteger   = inlineAccessor[int32](Integer)
	AsUInteger  = inlineAccessor[uint32](UInteger)
	AsBigInt    = inlineAccessor[int64](BigInt)
	AsUBigInt   = inlineAccessor[uint64](UBigInt)
	AsReal      = inlineAccessor[float32](Real)
	AsFloat     = inlineAccessor[float64](Float)
	AsDouble    = inlineAccessor[float64](Double)
	AsBookmark  = inlineAccessor[uint32](Bookmark)

	AsDecimal = decimalAccessor(Decimal)
	AsNumeric = decimalAccessor(Numeric)

	AsDate      = inlineAccessor[SQL_DATE_STRUCT](Date)
	AsTime      = inlineAccessor[SQL_TIME_STRUCT](Time)
	AsTimestamp = inlineAccessor[SQL_TIMESTAMP_STRUCT](Timestamp)

	AsGUID = Accessor[uuid.UUID]{typ: GUID, decode: func(d *Datum) (uuid.UUID, error) {
		return guidToUUID(*(*SQL_GUID_STRUCT)(d.inlinePtr())), nil
	}}

	AsIntervalYear           = intervalAccessor(IntervalYear)
	AsIntervalMonth          = intervalAccessor(IntervalMonth)
	AsIntervalDay            = intervalAccessor(IntervalDay)
	AsIntervalHour           = intervalAccessor(IntervalHour)
	AsIntervalMinute         = intervalAccessor(IntervalMinute)
	AsIntervalSecond         = intervalAccessor(IntervalSecond)
	AsIntervalYearToMonth    = intervalAccessor(IntervalYearToMonth)
	AsIntervalDayToHour      = intervalAccessor(IntervalDayToHour)
	AsIntervalDayToMinute    = intervalAccessor(IntervalDayToMinute)
	AsIntervalDayToSecond    = intervalAccessor(IntervalDayToSecond)
	AsIntervalHourToMinute   = intervalAccessor(IntervalHourToMinute)
	AsIntervalHourToSecond   = intervalAccessor(IntervalHourToSecond)
	AsIntervalMinuteToSecond = intervalAccessor(IntervalMinuteToSecond)
)

// guidToUUID converts the driver's native-endian GUID layout to RFC 4122
// byte order.
func guidToUUID(g SQL_GUID_STRUCT) uuid.UUID {
	var u uuid.UUID
	binary.BigEndian.PutUint32(u[0:4], g.Data1)
	binary.BigEndian.PutUint16(u[4:6], g.Data2)
	binary.BigEndian.PutUint16(u[6:8], g.Data3)
	copy(u[8:], g.Data4[:])
	return u
}

// Interval is a decoded SQL interval value.
type Interval struct {
	Type     DataType
	Negative bool

	// Year-month intervals
	Year  uint32
	Month uint32

	// Day-time intervals
	Day      uint32
	Hour     uint32
	Minute   uint32
	Second   uint32
	Fraction uint32 // microseconds, the default interval seconds precision
}

func newInterval(t DataType, s *SQL_INTERVAL_STRUCT) Interval {
	iv := Interval{Type: t, Negative: s.IntervalSign == SQL_TRUE}
	if iv.YearMonth() {
		iv.Year, iv.Month = uint32(s.Fields[0]), uint32(s.Fields[1])
		return iv
	}
	iv.Day = uint32(s.Fields[0])
	iv.Hour = uint32(s.Fields[1])
	iv.Minute = uint32(s.Fields[2])
	iv.Second = uint32(s.Fields[3])
	iv.Fraction = uint32(s.Fields[4])
	return iv
}

// YearMonth reports whether iv is a year-month interval, which has no fixed
// duration.
func (iv Interval) YearMonth() bool {
	switch iv.Type {
	case IntervalYear, IntervalMonth, IntervalYearToMonth:
		return true
	}
	return false
}

// Duration converts a day-time interval to a time.Duration. It returns false
// for year-month intervals.
func (iv Interval) Duration() (time.Duration, bool) {
	if iv.YearMonth() {
		return 0, false
	}
	d := time.Duration(iv.Day)*24*time.Hour +
		time.Duration(iv.Hour)*time.Hour +
		time.Duration(iv.Minute)*time.Minute +
		time.Duration(iv.Second)*time.Second +
		time.Duration(iv.Fraction)*time.Microsecond
	if iv.Negative {
		d = -d
	}
	return d, true
}

// Value decodes d into its natural Go type, or nil if d is null.
func (d *Datum) Value() (any, error) {
	if d.null {
		return nil, nil
	}
	switch t := d.typ; {
	case IsNarrowChar(t):
		return string(d.buf[:d.n]), nil
	case IsWideChar(t):
		return Get(d, wideAccessor(t))
	case t == Binary || t == VarBinary || t == LongVarBinary:
		return Get(d, bytesAccessor(t))
	case t == Decimal || t == Numeric:
		return Get(d, decimalAccessor(t))
	case IsInterval(t):
		return Get(d, intervalAccessor(t))
	}
	switch d.typ {
	case Bit:
		return Get(d, AsBit)
	case TinyInt:
		return Get(d, AsTinyInt)
	case UTinyInt:
		return Get(d, AsUTinyInt)
	case SmallInt:
		return Get(d, AsSmallInt)
	case USmallInt:
		return Get(d, AsUSmallInt)
	case Integer:
		return Get(d, AsInteger)
	case UInteger:
		return Get(d, AsUInteger)
	case BigInt:
		return Get(d, AsBigInt)
	case UBigInt:
		return Get(d, AsUBigInt)
	case Real:
		return Get(d, AsReal)
	case Float, Double:
		return Get(d, inlineAccessor[float64](d.typ))
	case Date:
		return Get(d, AsDate)
	case Time:
		return Get(d, AsTime)
	case Timestamp:
		return Get(d, AsTimestamp)
	case GUID:
		return Get(d, AsGUID)
	case Bookmark:
		return Get(d, AsBookmark)
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidType, d.typ)
}
