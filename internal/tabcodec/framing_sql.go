package tabcodec

import (
	"fmt"
	"strings"

	"github.com/corvid-labs/tab2sql/internal/dialect"
	"github.com/corvid-labs/tab2sql/util"
)

// SQLFramer emits the DDL preamble and the bulk-load body (COPY for
// Postgres text mode, bundled or single-row INSERT for MySQL/SQLite,
// spec.md §4.4) for one destination table. Binary COPY framing is a
// separate, byte-oriented path — see BinaryCopyWriter.
type SQLFramer struct {
	cfg      Config
	dia      dialect.Dialect
	cols     []dialect.Column
	usesCopy bool
}

func NewSQLFramer(cfg Config, plan *Plan) (*SQLFramer, error) {
	name, ok := cfg.Format.sqlDialect()
	if !ok {
		return nil, fmt.Errorf("tabcodec: %v is not a SQL format", cfg.Format)
	}
	dia, err := dialect.New(name)
	if err != nil {
		return nil, err
	}
	cols := util.TransformSlice(plan.Columns, func(c Column) dialect.Column {
		return dialect.Column{Name: c.ColName, Type: c.ColType}
	})
	return &SQLFramer{
		cfg:      cfg,
		dia:      dia,
		cols:     cols,
		usesCopy: name == dialect.Postgres && !cfg.Binary,
	}, nil
}

// Dialect exposes the underlying dialect, e.g. for Postgres DDL
// validation in the orchestrator.
func (f *SQLFramer) Dialect() dialect.Dialect { return f.dia }

// Preamble renders the DDL spec.md §4.4 issues once per table. Gated on
// cfg.Create: an optional CREATE DATABASE, an optional DROP TABLE, and
// the CREATE TABLE itself (guarded with IF NOT EXISTS). The optional
// TRUNCATE depends only on cfg.Truncate and is emitted with or without
// cfg.Create.
func (f *SQLFramer) Preamble(table, dbName string) string {
	if !f.cfg.Create {
		if f.cfg.Truncate {
			return f.dia.TruncateTableStmt(table) + "\n"
		}
		return ""
	}
	var b strings.Builder
	if dbName != "" {
		if s := f.dia.CreateDatabaseStmt(dbName); s != "" {
			b.WriteString(s)
			b.WriteString("\n")
		}
	}
	if f.cfg.Drop {
		b.WriteString(f.dia.DropTableStmt(table))
		b.WriteString("\n")
	}
	b.WriteString(f.dia.CreateTableStmt(table, f.cols, f.cfg.OIDs))
	b.WriteString("\n")
	if f.cfg.Truncate {
		b.WriteString(f.dia.TruncateTableStmt(table))
		b.WriteString("\n")
	}
	return b.String()
}

// UsesCopy reports whether the bulk body uses Postgres COPY-from-stdin
// text framing instead of INSERT bundling.
func (f *SQLFramer) UsesCopy() bool { return f.usesCopy }

func (f *SQLFramer) OpenBundle(table string) string {
	if f.usesCopy {
		return f.dia.CopyOpenStmt(table, f.cols)
	}
	if f.cfg.singleRowInsert() {
		return ""
	}
	return f.dia.InsertOpenStmt(table, f.cols)
}

func (f *SQLFramer) CloseBundle() string {
	if f.usesCopy {
		return f.dia.CopyCloseText()
	}
	if f.cfg.singleRowInsert() {
		return ""
	}
	return f.dia.StatementCloseText()
}

// FormatRow renders one row's already-text-encoded cells. isFirst tells
// an INSERT bundle whether to prefix the separator; table is only used
// for single-row INSERT mode, where every row is its own statement.
func (f *SQLFramer) FormatRow(table string, cells []string, isFirst bool) string {
	if f.usesCopy {
		row := strings.Join(cells, "\t") + "\n"
		if isFirst {
			// spec.md §8 S2: the bundle opener's trailing ";" is
			// followed by its own newline before the first data row.
			return "\n" + row
		}
		return row
	}

	row := "(" + strings.Join(cells, ",") + ")"
	if f.cfg.singleRowInsert() {
		return f.dia.InsertOpenStmt(table, f.cols) + "\n" + row + f.dia.StatementCloseText()
	}
	if isFirst {
		return "\n" + row
	}
	return f.dia.ValuesSeparator() + row
}
