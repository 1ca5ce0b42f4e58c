package tabcodec

import (
	"math/rand"
	"strconv"

	"github.com/corvid-labs/tab2sql/internal/dialect"
)

// RowDriver turns decoded Rows into the plan's output cells, filling in
// the three synthetic columns (spec.md §4.2) as it goes: AddValue is a
// constant repeated on every row, SID increments monotonically from
// cfg.SIDStart, and RID is drawn from a cfg.RIDSeed-seeded generator so
// a run is reproducible given the same seed.
type RowDriver struct {
	plan     *Plan
	cfg      Config
	dia      dialect.Dialect // nil for non-SQL formats
	usesCopy bool            // Postgres COPY text framing never SQL-quotes strings
	sid      int64
	rid      *rand.Rand
	// UnsupportedCount tallies cells skipped because their column's
	// element type is Unsupported() (spec.md §7): text output leaves that
	// cell empty and binary COPY writes it as a NULL field (length -1, no
	// payload), the row terminator still fires, and rather than one
	// diagnostic per row (original_source/fits2db.c's own "Warning: N
	// rows had unreadable BIT columns" is a per-file summary too) the
	// orchestrator reports this count once at end of file.
	UnsupportedCount int
}

func NewRowDriver(plan *Plan, cfg Config, dia dialect.Dialect) *RowDriver {
	return &RowDriver{
		plan:     plan,
		cfg:      cfg,
		dia:      dia,
		usesCopy: cfg.Format == FormatPostgres && !cfg.Binary,
		sid:      cfg.SIDStart,
		rid:      rand.New(rand.NewSource(cfg.RIDSeed)),
	}
}

// ridValue draws the next uniform random id in [0.0, 100.0), per
// spec.md §4.2/§8 property 7.
func (d *RowDriver) ridValue() float64 { return d.rid.Float64() * 100 }

// EncodeTextRow renders one row's cells as text, for delimited/IPAC/
// SQL-text output; quoting is applied to string cells only when the
// format wants it (MySQL/SQLite quote unconditionally; Postgres COPY text
// never quotes and backslash-escapes instead; delimited honors
// cfg.QuoteStrings).
func (d *RowDriver) EncodeTextRow(row Row) []string {
	cells := make([]string, len(d.plan.Columns))
	for i, c := range d.plan.Columns {
		ref := d.plan.cellOf[i]
		switch ref.inputCol {
		case synthAdd:
			cells[i] = d.cfg.AddValue
		case synthSID:
			cells[i] = strconv.FormatInt(d.nextSID(), 10)
		case synthRID:
			cells[i] = formatFloat(d.ridValue(), 6, d.dia)
		default:
			if c.Type.Unsupported() {
				d.UnsupportedCount++
				cells[i] = ""
				continue
			}
			var raw []byte
			if ref.whole {
				raw = row.field(ref.inputCol)
			} else {
				raw = row.cell(ref.inputCol, ref.cellIdx)
			}
			cells[i] = d.encodeTextCell(c, raw)
		}
	}
	return cells
}

func (d *RowDriver) nextSID() int64 {
	v := d.sid
	d.sid++
	return v
}

func (d *RowDriver) encodeTextCell(c Column, raw []byte) string {
	if c.Type == TypeString {
		s := textString(raw, d.cfg.Strip)
		if d.usesCopy {
			// COPY's own text format has no string quoting; tabs,
			// newlines, and backslashes are backslash-escaped instead.
			return copyEscape(s)
		}
		if d.sqlFormat() || d.cfg.QuoteStrings {
			return quoteText(s, d.cfg.quoteCharFor(), d.cfg.Escape)
		}
		return s
	}
	if c.IsArray() {
		// Non-exploded array: the whole packed element span is one
		// field, wrapped per spec.md §4.6.
		return textNumericArray(c, raw, d.cfg.Delimiter, d.cfg.quoteCharFor(), d.sqlFormat(), d.dia)
	}
	return textNumeric(c, raw, d.dia)
}

func (d *RowDriver) sqlFormat() bool { return d.cfg.sqlSet() }

// quoteCharFor reports the quote character string cells use: SQL
// formats always use a single quote; delimited output uses cfg.QuoteChar.
func (c Config) quoteCharFor() byte {
	if c.sqlSet() {
		return '\''
	}
	return c.QuoteChar
}

// synthValue resolves the add/sid synthetic columns' integer value for
// binary encoding (BinaryCopyWriter.AppendRow calls back into this so
// the two framing paths share one source of truth). RID is a separate,
// float-typed case — see BinaryCopyWriter.AppendRow.
func (d *RowDriver) synthValue(ref cellRef) int64 {
	switch ref.inputCol {
	case synthAdd:
		v, _ := strconv.ParseInt(d.cfg.AddValue, 10, 64)
		return v
	case synthSID:
		return d.nextSID()
	}
	return 0
}
