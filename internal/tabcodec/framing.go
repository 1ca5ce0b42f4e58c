package tabcodec

import (
	"fmt"
	"strings"
)

// Framer emits the surrounding structure of an output stream — the
// header/prologue, the per-row text, and any epilogue — for the
// non-SQL formats (delimited and IPAC). SQL framing lives in
// framing_sql.go since it additionally depends on the dialect package.
type Framer interface {
	Prologue(plan *Plan) string
	Row(plan *Plan, cells []string) string
	Epilogue(plan *Plan) string
}

func NewFramer(cfg Config) Framer {
	if cfg.Format == FormatIPAC {
		return ipacFramer{cfg: cfg}
	}
	return delimitedFramer{cfg: cfg}
}

// delimitedFramer implements spec.md §4.5's CSV/TSV/ASV/BSV output.
type delimitedFramer struct{ cfg Config }

func (f delimitedFramer) Prologue(plan *Plan) string {
	if !f.cfg.Header {
		return ""
	}
	// spec.md §4.4/§9: the header row is always comma-joined, independent
	// of the active value delimiter — a deliberate decision preserved
	// from the source (original_source/fits2db.c's dl_printHdr has its
	// delimiter-based join commented out in favor of a hardcoded ','), so
	// this can't delegate to Row, which joins with f.cfg.Delimiter.
	return strings.Join(plan.Columns.Names(), ",") + "\n"
}

func (f delimitedFramer) Row(plan *Plan, cells []string) string {
	sep := string(f.cfg.Delimiter)
	return strings.Join(cells, sep) + "\n"
}

func (f delimitedFramer) Epilogue(*Plan) string { return "" }

// ipacFramer implements spec.md §4.6's fixed-width IPAC table format:
// four pipe-delimited header lines (names, types, units, nulls) sized
// to each column's display width, then fixed-width data rows.
//
// SPEC_FULL.md supplement: units and null-value lines are emitted blank
// (width-padded) rather than omitted, matching the four-line header
// every IPAC-table reader expects.
type ipacFramer struct{ cfg Config }

func ipacWidth(c Column) int {
	w := c.DispWidth
	if w < len(c.ColName) {
		w = len(c.ColName)
	}
	if w < len(c.ColType) {
		w = len(c.ColType)
	}
	if w < 1 {
		w = 1
	}
	return w
}

func (f ipacFramer) Prologue(plan *Plan) string {
	var b strings.Builder
	widths := make([]int, len(plan.Columns))
	for i, c := range plan.Columns {
		widths[i] = ipacWidth(c)
	}
	writeLine := func(vals []string) {
		b.WriteByte('|')
		for i, v := range vals {
			fmt.Fprintf(&b, "%-*s|", widths[i], v)
		}
		b.WriteByte('\n')
	}
	names := make([]string, len(plan.Columns))
	types := make([]string, len(plan.Columns))
	blank := make([]string, len(plan.Columns))
	for i, c := range plan.Columns {
		names[i] = c.ColName
		types[i] = c.ColType
		blank[i] = ""
	}
	writeLine(names)
	writeLine(types)
	writeLine(blank)
	writeLine(blank)
	return b.String()
}

func (f ipacFramer) Row(plan *Plan, cells []string) string {
	var b strings.Builder
	b.WriteByte(' ')
	for i, v := range cells {
		fmt.Fprintf(&b, "%-*s ", ipacWidth(plan.Columns[i]), v)
	}
	b.WriteByte('\n')
	return b.String()
}

func (f ipacFramer) Epilogue(*Plan) string { return "" }
