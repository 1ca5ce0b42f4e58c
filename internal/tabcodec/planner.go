package tabcodec

import "fmt"

// Plan is the output-schema plan of spec.md §4.2: the ordered output
// column vector together with the bookkeeping needed to drive row
// encoding (which input column, and which (row,col) cell of it, feeds
// each output column).
type Plan struct {
	Columns Vector
	// cellOf[i] names the input column and, for an exploded array, the
	// flattened cell index (row*NCols+col) that output column i reads.
	// A negative inputCol marks one of the three synthetic columns.
	cellOf []cellRef
}

type cellRef struct {
	inputCol int // index into the input Vector, or a synthetic* sentinel
	cellIdx  int // 0 for scalars, 0..Repeat-1 for an exploded array cell
	// whole reports whether this output column reads the input column's
	// entire Width*Repeat element span (scalars, strings, and
	// non-exploded arrays) rather than a single exploded element.
	whole bool
}

const (
	synthAdd = -1 - iota
	synthSID
	synthRID
)

// BuildPlan builds the output schema from an input vector per spec.md §4.2:
// array columns are exploded into NRows*NCols scalar output columns when
// cfg.Explode is set (each named "<col>_<row>_<col>" per the 2-D case,
// "<col>_<i>" per the 1-D case), and the three synthetic columns (add,
// sid, rid) are appended in that fixed order when configured.
func BuildPlan(input Vector, cfg Config) (*Plan, error) {
	p := &Plan{}
	for idx, c := range input {
		c.ColType = ColType(c, cfg.Format, cfg.Explode)
		if !cfg.Explode || !c.IsArray() {
			p.Columns = append(p.Columns, c)
			p.cellOf = append(p.cellOf, cellRef{inputCol: idx, whole: true})
			continue
		}

		scalar := c
		scalar.Repeat = 1
		scalar.NRows, scalar.NCols, scalar.NDim = 1, 1, 1
		scalar.ColType = ColType(scalar, cfg.Format, true)

		// spec.md §4.2: exploded column names are 1-based ("<name>_<k>"
		// for k∈[1..repeat], "<name>_<i>_<j>" row-major), matching
		// original_source/fits2db.c's own "for (i=1; i<=...)" loops.
		if c.NDim == 2 {
			for r := 0; r < c.NRows; r++ {
				for col := 0; col < c.NCols; col++ {
					oc := scalar
					oc.ColName = fmt.Sprintf("%s_%d_%d", c.ColName, r+1, col+1)
					p.Columns = append(p.Columns, oc)
					p.cellOf = append(p.cellOf, cellRef{inputCol: idx, cellIdx: r*c.NCols + col})
				}
			}
		} else {
			for i := 0; i < c.Repeat; i++ {
				oc := scalar
				oc.ColName = fmt.Sprintf("%s_%d", c.ColName, i+1)
				p.Columns = append(p.Columns, oc)
				p.cellOf = append(p.cellOf, cellRef{inputCol: idx, cellIdx: i})
			}
		}
	}

	if cfg.AddCol != "" {
		p.Columns = append(p.Columns, Column{ColName: cfg.AddCol, Type: TypeInt, Width: 4, Repeat: 1, NRows: 1, NCols: 1, NDim: 1, ColType: ColType(Column{Type: TypeInt}, cfg.Format, true)})
		p.cellOf = append(p.cellOf, cellRef{inputCol: synthAdd, whole: true})
	}
	if cfg.SIDCol != "" {
		// spec.md §4.2: "the serial id column (type `integer` — never
		// `serial`, to permit parallel loads)" — TypeInt, not TypeLongLong,
		// so its SQL label is "integer" rather than "bigint".
		p.Columns = append(p.Columns, Column{ColName: cfg.SIDCol, Type: TypeInt, Width: 4, Repeat: 1, NRows: 1, NCols: 1, NDim: 1, ColType: ColType(Column{Type: TypeInt}, cfg.Format, true)})
		p.cellOf = append(p.cellOf, cellRef{inputCol: synthSID, whole: true})
	}
	if cfg.RIDCol != "" {
		// spec.md §4.2: the random id column is typed `real`, not an
		// integer — sqlLabel/textLabel both map TypeFloat to "real".
		p.Columns = append(p.Columns, Column{ColName: cfg.RIDCol, Type: TypeFloat, Width: 4, Repeat: 1, NRows: 1, NCols: 1, NDim: 1, ColType: ColType(Column{Type: TypeFloat}, cfg.Format, true)})
		p.cellOf = append(p.cellOf, cellRef{inputCol: synthRID, whole: true})
	}

	if len(p.Columns) == 0 {
		return nil, fmt.Errorf("tabcodec: output schema is empty")
	}
	return p, nil
}

// Equivalent reports whether two plans describe the same output schema
// (same column names, types, and order) — spec.md §4.8's schema-equality
// check used when concatenating multiple source files.
func (p *Plan) Equivalent(other *Plan) bool {
	if len(p.Columns) != len(other.Columns) {
		return false
	}
	for i := range p.Columns {
		a, b := p.Columns[i], other.Columns[i]
		if a.ColName != b.ColName || a.ColType != b.ColType || a.Type != b.Type {
			return false
		}
	}
	return true
}
