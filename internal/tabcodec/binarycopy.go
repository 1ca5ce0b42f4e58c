package tabcodec

import "math"

// BinaryCopyWriter assembles the Postgres binary COPY wire format of
// spec.md §4.7, grounded on jackc/pgx's copy_from.go: an 11-byte
// signature, a 4-byte flags field, a 4-byte header-extension-length
// field (both zero, since no extension is used), then one tuple per
// row (int16 field count followed by length-prefixed big-endian field
// payloads), and a closing int16(-1) trailer.
type BinaryCopyWriter struct {
	plan *Plan
}

var binaryCopySignature = []byte("PGCOPY\n\377\r\n\000")

func NewBinaryCopyWriter(plan *Plan) *BinaryCopyWriter {
	return &BinaryCopyWriter{plan: plan}
}

func (w *BinaryCopyWriter) Header() []byte {
	buf := make([]byte, 0, len(binaryCopySignature)+8)
	buf = append(buf, binaryCopySignature...)
	buf = appendInt32BE(buf, 0) // flags
	buf = appendInt32BE(buf, 0) // header extension length
	return buf
}

func (w *BinaryCopyWriter) Trailer() []byte {
	buf := make([]byte, 2)
	putUint16BE(buf, 0xFFFF) // int16(-1)
	return buf
}

// AppendRow encodes one row's cells into dst using the plan's cellOf
// mapping, appending the tuple's field count prefix. drv supplies the
// three synthetic columns' values so binary and text framing share one
// add/sid/rid sequence.
func (w *BinaryCopyWriter) AppendRow(dst []byte, row Row, drv *RowDriver) []byte {
	dst = appendInt16BE(dst, int16(len(w.plan.Columns)))
	for i, c := range w.plan.Columns {
		ref := w.plan.cellOf[i]
		if ref.inputCol < 0 {
			if ref.inputCol == synthRID {
				// rid is typed TypeFloat ("real", 4-byte wire width, per
				// planner.go), like every other TypeFloat column.
				buf := make([]byte, 4)
				putUint32BE(buf, math.Float32bits(float32(drv.ridValue())))
				dst = appendLenPrefixed(dst, buf)
				continue
			}
			// add/sid are both typed TypeInt (4-byte wire width, per
			// planner.go) — match every other TypeInt column's payload
			// size rather than the Go int64 the driver carries them in.
			buf := make([]byte, 4)
			putUint32BE(buf, uint32(drv.synthValue(ref)))
			dst = appendLenPrefixed(dst, buf)
			continue
		}
		if c.Type.Unsupported() {
			// The tuple's field count is fixed at the top of this loop,
			// so an unsupported column still needs its own field slot —
			// Postgres binary COPY has no notion of "no field here", only
			// SQL NULL (length -1, no payload), which is what a reader
			// expects for a field it can't decode.
			drv.UnsupportedCount++
			dst = appendInt32BE(dst, -1)
			continue
		}
		var raw []byte
		if ref.whole {
			raw = row.field(ref.inputCol)
		} else {
			raw = row.cell(ref.inputCol, ref.cellIdx)
		}
		if c.Type == TypeString {
			// spec.md §4.6: strings in binary mode are copied verbatim
			// (no stripping) at their declared repeat length.
			dst = appendLenPrefixed(dst, raw)
			continue
		}
		if c.IsArray() {
			dst = binaryNumericArray(c, raw, dst)
			continue
		}
		dst = binaryNumeric(c, raw, dst)
	}
	return dst
}

func appendInt32BE(dst []byte, v int32) []byte {
	buf := make([]byte, 4)
	putUint32BE(buf, uint32(v))
	return append(dst, buf...)
}

func appendInt16BE(dst []byte, v int16) []byte {
	buf := make([]byte, 2)
	putUint16BE(buf, uint16(v))
	return append(dst, buf...)
}
