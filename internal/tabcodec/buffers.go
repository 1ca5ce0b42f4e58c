package tabcodec

// offsets computes each input column's starting byte offset within a
// single raw row, in row order, per spec.md §3's fixed-width row layout.
func offsets(input Vector) []int {
	off := make([]int, len(input))
	pos := 0
	for i, c := range input {
		off[i] = pos
		pos += c.Width * c.Repeat
	}
	return off
}

// Row is a decoded view over one raw source row: the raw bytes plus the
// precomputed column byte offsets needed to slice out a given column's
// (possibly repeated) element bytes.
type Row struct {
	raw     []byte
	offsets []int
	input   Vector
}

// cell returns the raw big-endian bytes of input column idx's single
// element at flattened position cellIdx — used for exploded array
// output columns, each of which reads exactly one element.
func (r Row) cell(idx, cellIdx int) []byte {
	c := r.input[idx]
	start := r.offsets[idx] + cellIdx*c.Width
	return r.raw[start : start+c.Width]
}

// field returns the raw bytes of input column idx's whole element span
// (Width*Repeat bytes) — the entire string, or the entire packed array
// when it isn't exploded, per spec.md §4.6's "the entire array is one
// field" case.
func (r Row) field(idx int) []byte {
	c := r.input[idx]
	start := r.offsets[idx]
	return r.raw[start : start+c.Width*c.Repeat]
}

// RowSet is a decoded window of consecutive rows backed by one raw read,
// the unit the chunk reader hands to the row driver — spec.md §5's
// "bounded in-memory window of decoded rows".
type RowSet struct {
	input   Vector
	offsets []int
	rowSize int
	raw     []byte
	n       int
}

func newRowSet(input Vector, rowSize int) *RowSet {
	return &RowSet{input: input, offsets: offsets(input), rowSize: rowSize}
}

func (rs *RowSet) resize(rows int) {
	need := rows * rs.rowSize
	if cap(rs.raw) < need {
		rs.raw = make([]byte, need)
	} else {
		rs.raw = rs.raw[:need]
	}
	rs.n = rows
}

func (rs *RowSet) Len() int { return rs.n }

func (rs *RowSet) Row(i int) Row {
	start := i * rs.rowSize
	return Row{raw: rs.raw[start : start+rs.rowSize], offsets: rs.offsets, input: rs.input}
}
