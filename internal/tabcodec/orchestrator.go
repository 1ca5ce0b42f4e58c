package tabcodec

import (
	"fmt"
	"io"

	"github.com/corvid-labs/tab2sql/internal/dialect"
	"github.com/corvid-labs/tab2sql/internal/source"
)

// Orchestrator drives one or more source tables through introspection,
// planning, and framing per spec.md §4.8/§4.9: it owns the bundle_index/
// file_index bookkeeping and the cross-file schema-equality check that
// --concat relies on. This generalizes sqldef's database/generator
// loop (iterate schema objects, apply one adapter's text templates) to
// "iterate source rows, apply one format's framer".
type Orchestrator struct {
	Cfg        Config
	FirstCol   int
	LastCol    int
	Diagnostic func(string) // optional per-file diagnostic sink, SPEC_FULL.md supplement
	// Warn receives recoverable-error diagnostics spec.md §7 requires
	// ("Skipping unmatching table", unsupported-column-type messages):
	// never fatal, never aborts the run. Nil discards.
	Warn func(string)
}

func (o *Orchestrator) warn(msg string) {
	if o.Warn != nil {
		o.Warn(msg)
	}
}

// hasArrayColumn reports whether any output column still carries more
// than one element per row. BuildPlan already explodes arrays into
// scalar columns when cfg.Explode is set, so this only trips for a
// non-exploded array column reaching binary framing.
func hasArrayColumn(cols []Column) bool {
	for _, c := range cols {
		if c.IsArray() {
			return true
		}
	}
	return false
}

// Run streams every table in tables to w using cfg's format. Tables are
// processed in order; when cfg.Concat is set, all tables must introspect
// to an equivalent output plan (spec.md §4.8) and share a single header/
// preamble and bundle sequence as if they were one logical source.
func (o *Orchestrator) Run(w io.Writer, tables []source.Table, tableName string) error {
	if len(tables) == 0 {
		return fmt.Errorf("tabcodec: no source tables given")
	}
	if err := o.Cfg.Validate(); err != nil {
		return err
	}

	var plan *Plan
	var framer Framer
	var sqlFramer *SQLFramer
	var binWriter *BinaryCopyWriter
	var drv *RowDriver
	rowsInBundle := 0
	bundleOpen := false
	totalRows := int64(0)
	// binaryActive starts as cfg.Binary but can be latched off at
	// start-of-file per spec.md §3/§7: binary COPY never carries a
	// non-exploded array column, so if one is found it degrades the
	// rest of the run to Postgres text COPY with a warning (spec.md §8
	// S6) instead of producing a malformed binary stream.
	binaryActive := o.Cfg.Binary

	closeBundle := func() error {
		if !bundleOpen {
			return nil
		}
		bundleOpen = false
		if binaryActive {
			_, err := w.Write(binWriter.Trailer())
			return err
		}
		if sqlFramer != nil && !o.Cfg.singleRowInsert() {
			_, err := io.WriteString(w, sqlFramer.CloseBundle())
			return err
		}
		return nil
	}

	openBundle := func() error {
		bundleOpen = true
		rowsInBundle = 0
		if binaryActive {
			_, err := w.Write(binWriter.Header())
			return err
		}
		if sqlFramer != nil && !o.Cfg.singleRowInsert() {
			_, err := io.WriteString(w, sqlFramer.OpenBundle(tableName))
			return err
		}
		return nil
	}

	for fileIdx, tbl := range tables {
		input, err := Introspect(tbl, o.FirstCol, o.LastCol, o.Cfg.Explode)
		if err != nil {
			return fmt.Errorf("tabcodec: file %d: %w", fileIdx, err)
		}
		filePlan, err := BuildPlan(input, o.Cfg)
		if err != nil {
			return fmt.Errorf("tabcodec: file %d: %w", fileIdx, err)
		}

		if binaryActive && hasArrayColumn(filePlan.Columns) {
			binaryActive = false
			o.warn(fmt.Sprintf("file %d: binary mode disabled (array column present); falling back to Postgres text", fileIdx))
		}

		if plan == nil {
			plan = filePlan
			framer = NewFramer(o.Cfg)
			if name, ok := o.Cfg.Format.sqlDialect(); ok {
				sqlCfg := o.Cfg
				sqlCfg.Binary = binaryActive
				sqlFramer, err = NewSQLFramer(sqlCfg, plan)
				if err != nil {
					return err
				}
				if o.Cfg.ValidatePostgresDDL && name == dialect.Postgres {
					if verr := dialect.ValidatePostgresStatements(sqlFramer.Preamble(tableName, o.Cfg.DBName)); verr != nil && o.Diagnostic != nil {
						o.Diagnostic(fmt.Sprintf("postgres DDL validation: %v", verr))
					}
				}
			}
			drvCfg := o.Cfg
			drvCfg.Binary = binaryActive
			drv = NewRowDriver(plan, drvCfg, dialectOrNil(sqlFramer))
			if binaryActive {
				binWriter = NewBinaryCopyWriter(plan)
			}

			if sqlFramer != nil {
				if _, err := io.WriteString(w, sqlFramer.Preamble(tableName, o.Cfg.DBName)); err != nil {
					return err
				}
			} else if _, err := io.WriteString(w, framer.Prologue(plan)); err != nil {
				return err
			}
		} else if o.Cfg.Concat && !plan.Equivalent(filePlan) {
			// spec.md §4.8/§7: a mismatching file under --concat is
			// skipped with a diagnostic; processing continues using the
			// schema already recorded from the prior file, not aborted.
			o.warn(fmt.Sprintf("Skipping unmatching table: file %d", fileIdx))
			continue
		} else if !o.Cfg.Concat {
			// Independent files restart framing per spec.md §4.8's
			// non-concat mode.
			if err := closeBundle(); err != nil {
				return err
			}
			plan = filePlan
			if sqlFramer != nil {
				sqlCfg := o.Cfg
				sqlCfg.Binary = binaryActive
				sqlFramer, err = NewSQLFramer(sqlCfg, plan)
				if err != nil {
					return err
				}
				if _, err := io.WriteString(w, sqlFramer.Preamble(tableName, o.Cfg.DBName)); err != nil {
					return err
				}
			} else if _, err := io.WriteString(w, framer.Prologue(plan)); err != nil {
				return err
			}
			drvCfg := o.Cfg
			drvCfg.Binary = binaryActive
			drv = NewRowDriver(plan, drvCfg, dialectOrNil(sqlFramer))
			if binaryActive {
				binWriter = NewBinaryCopyWriter(plan)
			} else {
				binWriter = nil
			}
		}

		if !o.Cfg.Load {
			// --noload (SPEC_FULL.md supplement): DDL/preamble only, no
			// bulk-load body.
			if o.Diagnostic != nil {
				o.Diagnostic(fmt.Sprintf("file %d: skipped (--noload)", fileIdx))
			}
			continue
		}

		cr := NewChunkReader(tbl, input, o.Cfg.ChunkRows)
		fileRows := int64(0)
		for {
			set, err := cr.Next()
			if err != nil {
				return err
			}
			if set.Len() == 0 {
				break
			}
			for i := 0; i < set.Len(); i++ {
				row := set.Row(i)
				if binaryActive {
					if !bundleOpen {
						if err := openBundle(); err != nil {
							return err
						}
					}
					buf := binWriter.AppendRow(nil, row, drv)
					if _, err := w.Write(buf); err != nil {
						return err
					}
				} else if sqlFramer != nil {
					if !bundleOpen {
						if err := openBundle(); err != nil {
							return err
						}
					}
					cells := drv.EncodeTextRow(row)
					isFirst := rowsInBundle == 0
					if _, err := io.WriteString(w, sqlFramer.FormatRow(tableName, cells, isFirst)); err != nil {
						return err
					}
					rowsInBundle++
					if !sqlFramer.UsesCopy() && rowsInBundle >= o.Cfg.BundleSize {
						if err := closeBundle(); err != nil {
							return err
						}
					}
				} else {
					cells := drv.EncodeTextRow(row)
					if _, err := io.WriteString(w, framer.Row(plan, cells)); err != nil {
						return err
					}
				}
				fileRows++
				totalRows++
			}
		}
		if o.Diagnostic != nil {
			o.Diagnostic(fmt.Sprintf("file %d: %d rows", fileIdx, fileRows))
		}
		if drv.UnsupportedCount > 0 {
			o.warn(fmt.Sprintf("file %d: %d cells had an unsupported element type, emitted as empty/NULL", fileIdx, drv.UnsupportedCount))
			drv.UnsupportedCount = 0
		}
	}

	if err := closeBundle(); err != nil {
		return err
	}
	if sqlFramer == nil && framer != nil {
		if _, err := io.WriteString(w, framer.Epilogue(plan)); err != nil {
			return err
		}
	}
	if o.Diagnostic != nil {
		o.Diagnostic(fmt.Sprintf("total: %d rows", totalRows))
	}
	return nil
}

func dialectOrNil(f *SQLFramer) dialect.Dialect {
	if f == nil {
		return nil
	}
	return f.Dialect()
}
