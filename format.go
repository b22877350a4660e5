package odbc

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf16"
)

// NullText is how a null Datum is rendered.
const NullText = "<NULL>"

// String renders d as text: NULL as NullText, bytes and binary as
// hexadecimal, text as is, date and time values in ISO order.
func (d *Datum) String() string {
	if d.null {
		return NullText
	}
	t := d.typ
	switch {
	case IsNarrowChar(t):
		return string(d.buf[:d.n])
	case IsWideChar(t):
		u, _ := Get(d, wideAccessor(t))
		return utf16ToString(u)
	case t == Binary || t == VarBinary || t == LongVarBinary:
		return formatHex(d.buf[:d.n])
	case t == Decimal || t == Numeric:
		v, err := Get(d, decimalAccessor(t))
		if err != nil {
			// Not a number after all; show what the driver sent
			return strings.TrimSpace(string(d.buf[:d.n]))
		}
		return v.String()
	case IsInterval(t):
		iv, _ := Get(d, intervalAccessor(t))
		return iv.String()
	}

	switch t {
	case Bit:
		v, _ := Get(d, AsBit)
		return strconv.FormatBool(v)
	case TinyInt:
		v, _ := Get(d, AsTinyInt)
		return strconv.FormatInt(int64(v), 10)
	case UTinyInt:
		v, _ := Get(d, AsUTinyInt)
		return strconv.FormatUint(uint64(v), 10)
	case SmallInt:
		v, _ := Get(d, AsSmallInt)
		return strconv.FormatInt(int64(v), 10)
	case USmallInt:
		v, _ := Get(d, AsUSmallInt)
		return strconv.FormatUint(uint64(v), 10)
	case Integer:
		v, _ := Get(d, AsInteger)
		return strconv.FormatInt(int64(v), 10)
	case UInteger:
		v, _ := Get(d, AsUInteger)
		return strconv.FormatUint(uint64(v), 10)
	case BigInt:
		v, _ := Get(d, AsBigInt)
		return strconv.FormatInt(v, 10)
	case UBigInt:
		v, _ := Get(d, AsUBigInt)
		return strconv.FormatUint(v, 10)
	case Bookmark:
		v, _ := Get(d, AsBookmark)
		return strconv.FormatUint(uint64(v), 10)
	case Real:
		v, _ := Get(d, AsReal)
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case Float, Double:
		v, _ := Get(d, inlineAccessor[float64](t))
		return strconv.FormatFloat(v, 'g', -1, 64)
	case Date:
		v, _ := Get(d, AsDate)
		return formatDate(v)
	case Time:
		v, _ := Get(d, AsTime)
		return formatTime(v)
	case Timestamp:
		v, _ := Get(d, AsTimestamp)
		return formatTimestamp(v)
	case GUID:
		v, _ := Get(d, AsGUID)
		return v.String()
	}
	return "<" + t.String() + ">"
}

// utf16ToString converts a UTF-16 encoded slice to a UTF-8 string. Unpaired
// surrogates become U+FFFD.
func utf16ToString(u []uint16) string {
	return string(utf16.Decode(u))
}

// formatHex renders b as space separated two-digit hex bytes.
func formatHex(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b) * 3)
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}

func formatDate(v SQL_DATE_STRUCT) string {
	return fmt.Sprintf("%04d-%02d-%02d", v.Year, v.Month, v.Day)
}

func formatTime(v SQL_TIME_STRUCT) string {
	return fmt.Sprintf("%02d:%02d:%02d", v.Hour, v.Minute, v.Second)
}

func formatTimestamp(v SQL_TIMESTAMP_STRUCT) string {
	s := fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d", v.Year, v.Month, v.Day, v.Hour, v.Minute, v.Second)
	return s + formatFraction(uint32(v.Fraction))
}

// formatFraction renders nanoseconds as ".nnnnnnnnn" without trailing zeros,
// or "" for zero.
func formatFraction(ns uint32) string {
	return formatDigits(ns, 9)
}

// formatMicros renders microseconds as ".nnnnnn" without trailing zeros, or
// "" for zero.
func formatMicros(us uint32) string {
	return formatDigits(us, 6)
}

func formatDigits(v uint32, width int) string {
	if v == 0 {
		return ""
	}
	return "." + strings.TrimRight(fmt.Sprintf("%0*d", width, v), "0")
}

// String renders iv in SQL literal order: "Y-M" for year-month intervals and
// "D HH:MM:SS" for day-time intervals, with a leading '-' when negative.
func (iv Interval) String() string {
	sign := ""
	if iv.Negative {
		sign = "-"
	}
	switch iv.Type {
	case IntervalYear:
		return fmt.Sprintf("%s%d", sign, iv.Year)
	case IntervalMonth:
		return fmt.Sprintf("%s%d", sign, iv.Month)
	case IntervalYearToMonth:
		return fmt.Sprintf("%s%d-%d", sign, iv.Year, iv.Month)
	}
	return fmt.Sprintf("%s%d %02d:%02d:%02d%s", sign, iv.Day, iv.Hour, iv.Minute, iv.Second, formatMicros(iv.Fraction))
}
