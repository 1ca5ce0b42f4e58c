package tabcodec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corvid-labs/tab2sql/internal/source"
)

// Introspect builds the input column vector from firstCol to lastCol
// (1-based, inclusive) per spec.md §4.1. Per-column errors (a missing
// optional keyword, an unparsable TDIM) are swallowed and replaced with
// defaults; only a failure to read the column's required TFORM/TTYPE at
// all is propagated, mirroring "fatal reader errors are surfaced by the
// caller".
func Introspect(tbl source.Table, firstCol, lastCol int, explode bool) (Vector, error) {
	if lastCol <= 0 || lastCol > tbl.NumCols() {
		lastCol = tbl.NumCols()
	}
	if firstCol <= 0 {
		firstCol = 1
	}

	vec := make(Vector, 0, lastCol-firstCol+1)
	for i := firstCol; i <= lastCol; i++ {
		info, err := tbl.Column(i)
		if err != nil {
			return nil, fmt.Errorf("tabcodec: introspect column %d: %w", i, err)
		}

		et, terr := typeFromCode(info.Code)
		if terr != nil {
			// Unknown code: keep the column as an unsupported marker
			// rather than aborting the whole file (spec.md §7).
			et = TypeBit
		}

		dispWidth := info.DispWidth
		if et == TypeString {
			dispWidth += 2 // spec.md §4.1: +2 for quoting
		}

		nrows, ncols, ndim := 1, info.Repeat, 1
		if info.Repeat > 1 && et != TypeString && explode {
			nrows, ncols, ndim = parseShape(info.Shape, info.Repeat)
		}

		vec = append(vec, Column{
			ColNum:    i,
			DispWidth: dispWidth,
			Type:      et,
			Width:     info.Width,
			Repeat:    info.Repeat,
			NDim:      ndim,
			NRows:     nrows,
			NCols:     ncols,
			ColName:   truncateName(info.Name),
		})
	}
	return vec, nil
}

// parseShape parses a TDIM-style "(nrows,ncols)" string; an unparsable
// or absent shape defaults to (1, repeat), per spec.md §4.1.
func parseShape(shape string, repeat int) (nrows, ncols, ndim int) {
	s := strings.TrimSpace(shape)
	s = strings.TrimPrefix(s, "(")
	s = strings.TrimSuffix(s, ")")
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return 1, repeat, 1
	}
	r, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
	c, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err1 != nil || err2 != nil || r*c != repeat {
		return 1, repeat, 1
	}
	if r > 1 {
		return r, c, 2
	}
	return 1, c, 1
}

func truncateName(name string) string {
	if len(name) > 31 {
		return name[:31]
	}
	return name
}
