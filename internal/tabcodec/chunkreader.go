package tabcodec

import (
	"fmt"

	"github.com/corvid-labs/tab2sql/internal/source"
)

// ChunkReader pulls successive windows of decoded rows from a source
// table, sized per spec.md §5 (bounded by cfg.ChunkRows, or the table's
// own OptimalChunkRows hint when ChunkRows is left at its zero default).
// This is the generalization of sqldef's line-oriented
// database/generator.go scanning loop to the source table's native
// fixed-width row format.
type ChunkReader struct {
	tbl      source.Table
	input    Vector
	rowSize  int
	chunkLen int
	next     int64
	total    int64
	set      *RowSet
}

func NewChunkReader(tbl source.Table, input Vector, chunkRows int) *ChunkReader {
	rowSize := tbl.RowBytes()
	// spec.md §4.5: the effective chunk is min(optimal, requested_chunk,
	// remaining_rows) — optimal always bounds it, not just when no
	// explicit chunk size was requested.
	n := tbl.OptimalChunkRows()
	if n <= 0 {
		n = chunkRows
	} else if chunkRows > 0 && chunkRows < n {
		n = chunkRows
	}
	if n <= 0 {
		n = 1
	}
	return &ChunkReader{
		tbl:      tbl,
		input:    input,
		rowSize:  rowSize,
		chunkLen: n,
		total:    tbl.NumRows(),
		set:      newRowSet(input, rowSize),
	}
}

// Next reads the next window of rows, returning a RowSet of length 0 and
// no error at end of table.
func (cr *ChunkReader) Next() (*RowSet, error) {
	if cr.next >= cr.total {
		cr.set.resize(0)
		return cr.set, nil
	}
	remain := cr.total - cr.next
	n := int64(cr.chunkLen)
	if n > remain {
		n = remain
	}
	cr.set.resize(int(n))
	got, err := cr.tbl.ReadRows(cr.set.raw, cr.next, int(n))
	if err != nil {
		return nil, fmt.Errorf("tabcodec: read rows at %d: %w", cr.next, err)
	}
	if got != int(n) {
		return nil, fmt.Errorf("tabcodec: short read at row %d: wanted %d got %d", cr.next, n, got)
	}
	cr.next += n
	return cr.set, nil
}

func (cr *ChunkReader) RowsRead() int64 { return cr.next }
func (cr *ChunkReader) TotalRows() int64 { return cr.total }
