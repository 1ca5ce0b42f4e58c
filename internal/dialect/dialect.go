// Package dialect builds the SQL-dialect-specific text spec.md §4.3 and
// §4.4 call for: type labels, identifier quoting, and DDL/framing
// statement text for Postgres, MySQL, and SQLite. It is grounded on the
// teacher repo's per-database adapter packages (adapter/postgres,
// adapter/mysql, adapter/sqlite3) and its GeneratorMode enum
// (schema/generator.go), generalized from "diff an existing schema" to
// "render one column vector as DDL/framing text".
package dialect

import "fmt"

// Name identifies one of the three supported SQL dialects. Mirrors the
// teacher's schema.GeneratorMode enum, trimmed to the dialects spec.md
// names (no Mssql: out of scope here, see DESIGN.md).
type Name int

const (
	Postgres Name = iota
	MySQL
	SQLite
)

func (n Name) String() string {
	switch n {
	case Postgres:
		return "postgres"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite"
	}
	return "unknown"
}

// Column is the minimal column shape the dialect layer needs: a name and
// an already-resolved SQL type label (internal/tabcodec's type mapper
// produces the label; this package never re-derives it from element
// type, keeping the two concerns — type mapping and statement text —
// independent, as spec.md §4.3/§4.4 separate them).
type Column struct {
	Name string
	Type string
}

// Dialect renders the DDL and bulk-load framing text for one SQL output
// dialect. Each concrete implementation below corresponds to one of the
// teacher's adapter/<dialect> packages.
type Dialect interface {
	Name() Name
	QuoteIdent(name string) string

	CreateDatabaseStmt(dbName string) string // "" when the dialect has no notion of a database statement
	DropTableStmt(table string) string
	CreateTableStmt(table string, cols []Column, withOIDs bool) string
	TruncateTableStmt(table string) string

	// CopyOpenStmt/CopyCloseText implement the Postgres-only "COPY …
	// from stdin" bulk-load framing (spec.md §4.4); other dialects
	// return "" and rely on InsertOpenStmt instead.
	CopyOpenStmt(table string, cols []Column) string
	CopyCloseText() string

	// InsertOpenStmt/ValuesSeparator/StatementCloseText implement the
	// MySQL/SQLite "INSERT INTO … VALUES (...),(...);" framing.
	InsertOpenStmt(table string, cols []Column) string
	ValuesSeparator() string
	StatementCloseText() string

	// FloatNaN/FloatInf give the dialect-specific text for the special
	// float values spec.md §4.6/§8 require exact fidelity for.
	FloatNaN() string
	FloatInf(negative bool) string
}

// New returns the Dialect implementation for name.
func New(name Name) (Dialect, error) {
	switch name {
	case Postgres:
		return postgresDialect{}, nil
	case MySQL:
		return mysqlDialect{}, nil
	case SQLite:
		return sqliteDialect{}, nil
	}
	return nil, fmt.Errorf("dialect: unknown dialect %v", name)
}
