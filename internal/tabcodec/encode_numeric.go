package tabcodec

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/corvid-labs/tab2sql/internal/dialect"
)

// textNumeric renders one element's raw big-endian bytes as the decimal
// text spec.md §4.5/§4.7 want for delimited/IPAC/SQL-text output. d is
// nil for non-SQL formats, in which case NaN/Inf use the plain "nan"/
// "inf" spelling spec.md §8 S1 shows for delimited output.
func textNumeric(c Column, raw []byte, d dialect.Dialect) string {
	switch c.Type {
	case TypeLogical:
		if decodeBool(raw) {
			return "1"
		}
		return "0"
	case TypeByte:
		return strconv.FormatUint(uint64(decodeUint8(raw)), 10)
	case TypeSByte:
		return strconv.FormatInt(int64(decodeInt8(raw)), 10)
	case TypeShort:
		return strconv.FormatInt(int64(decodeInt16(raw)), 10)
	case TypeUShort:
		return strconv.FormatUint(uint64(decodeUint16(raw)), 10)
	case TypeInt:
		return strconv.FormatInt(int64(decodeInt32(raw)), 10)
	case TypeUInt:
		return strconv.FormatUint(uint64(decodeUint32(raw)), 10)
	case TypeLongLong:
		return strconv.FormatInt(decodeInt64(raw), 10)
	case TypeFloat:
		return formatFloat(float64(decodeFloat32(raw)), 6, d)
	case TypeDouble:
		return formatFloat(decodeFloat64(raw), 16, d)
	}
	return ""
}

// formatFloat renders a finite float at the given decimal precision —
// six places for FLOAT, sixteen for DOUBLE per spec.md §4.6's "%f
// (FLOAT) or %.16f (DOUBLE)" — special-casing NaN/±Inf per the active
// dialect (or the plain "nan"/"inf" spelling when d is nil, for
// delimited/IPAC output).
func formatFloat(v float64, prec int, d dialect.Dialect) string {
	switch {
	case math.IsNaN(v):
		if d != nil {
			return d.FloatNaN()
		}
		return "nan"
	case math.IsInf(v, 1):
		if d != nil {
			return d.FloatInf(false)
		}
		return "inf"
	case math.IsInf(v, -1):
		if d != nil {
			return d.FloatInf(true)
		}
		return "-inf"
	}
	return strconv.FormatFloat(v, 'f', prec, 64)
}

// binaryNumeric writes one element's postgres binary-COPY wire
// representation (spec.md §4.7, grounded on jackc/pgx's copy_from.go
// framing): a big-endian int32 byte-length prefix followed by the
// field's own big-endian payload, or length -1 for SQL NULL (unused
// here since the source format has no null marker).
func binaryNumeric(c Column, raw []byte, out []byte) []byte {
	return appendLenPrefixed(out, numericPayload(c, raw))
}

// numericPayload returns one element's big-endian wire payload with no
// length prefix — the building block both binaryNumeric (one field per
// element) and binaryNumericArray (one field for the whole packed
// array) append into their own length-prefixed frame.
func numericPayload(c Column, raw []byte) []byte {
	switch c.Type {
	case TypeLogical:
		v := byte(0)
		if decodeBool(raw) {
			v = 1
		}
		return []byte{v}
	case TypeByte, TypeSByte, TypeShort, TypeUShort:
		buf := make([]byte, 2)
		putUint16BE(buf, uint16(decodeScalarAsInt16(c, raw)))
		return buf
	case TypeInt, TypeUInt:
		buf := make([]byte, 4)
		putUint32BE(buf, uint32(decodeScalarAsInt32(c, raw)))
		return buf
	case TypeLongLong:
		buf := make([]byte, 8)
		putUint64BE(buf, uint64(decodeInt64(raw)))
		return buf
	case TypeFloat:
		buf := make([]byte, 4)
		putUint32BE(buf, math.Float32bits(decodeFloat32(raw)))
		return buf
	case TypeDouble:
		buf := make([]byte, 8)
		putUint64BE(buf, math.Float64bits(decodeFloat64(raw)))
		return buf
	}
	panic(fmt.Sprintf("tabcodec: numericPayload called on non-numeric type %s", c.Type))
}

// binaryNumericArray writes a non-exploded array column as Postgres
// binary COPY's single-field-per-array-column case (spec.md §4.6):
// "the entire array is one field whose length is repeat × elem_width".
func binaryNumericArray(c Column, raw []byte, out []byte) []byte {
	payload := make([]byte, 0, c.Repeat*elemWireWidth(c.Type))
	for i := 0; i < c.Repeat; i++ {
		start := i * c.Width
		payload = append(payload, numericPayload(c, raw[start:start+c.Width])...)
	}
	return appendLenPrefixed(out, payload)
}

// elemWireWidth is the wire width numericPayload produces for one
// element of type t — distinct from Column.Width for the 16-bit integer
// types, which all widen to a 2-byte payload regardless of source width.
func elemWireWidth(t ElementType) int {
	switch t {
	case TypeLogical:
		return 1
	case TypeByte, TypeSByte, TypeShort, TypeUShort:
		return 2
	case TypeInt, TypeUInt, TypeFloat:
		return 4
	case TypeLongLong, TypeDouble:
		return 8
	}
	return 0
}

// textNumericArray renders a non-exploded array column's elements,
// row-major, joined by delim and wrapped per format: quote_char(…) for
// delimited output, {…} for SQL text — spec.md §4.6's array framing.
func textNumericArray(c Column, raw []byte, delim, quoteChar byte, sql bool, d dialect.Dialect) string {
	elems := make([]string, c.Repeat)
	for i := 0; i < c.Repeat; i++ {
		start := i * c.Width
		elems[i] = textNumeric(c, raw[start:start+c.Width], d)
	}
	joined := strings.Join(elems, string(delim))
	if sql {
		return "{" + joined + "}"
	}
	return string(quoteChar) + "(" + joined + ")" + string(quoteChar)
}

func decodeScalarAsInt16(c Column, raw []byte) int16 {
	switch c.Type {
	case TypeByte:
		return int16(decodeUint8(raw))
	case TypeSByte:
		return int16(decodeInt8(raw))
	case TypeUShort:
		return int16(decodeUint16(raw))
	default:
		return decodeInt16(raw)
	}
}

func decodeScalarAsInt32(c Column, raw []byte) int32 {
	if c.Type == TypeUInt {
		return int32(decodeUint32(raw))
	}
	return decodeInt32(raw)
}

func appendLenPrefixed(out, payload []byte) []byte {
	lenBuf := make([]byte, 4)
	putUint32BE(lenBuf, uint32(len(payload)))
	out = append(out, lenBuf...)
	return append(out, payload...)
}
