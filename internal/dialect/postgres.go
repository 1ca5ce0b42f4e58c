package dialect

import "fmt"

// postgresDialect is grounded on sqldef's adapter/postgres package:
// quoting goes through the real driver's own quoting helpers
// (github.com/lib/pq's QuoteIdentifier/QuoteLiteral are pure string
// functions — no connection is opened, keeping this within spec.md's
// "no in-process database connections" Non-goal).
type postgresDialect struct{}

func (postgresDialect) Name() Name { return Postgres }

func (postgresDialect) QuoteIdent(name string) string { return pqQuoteIdentifier(name) }

// CreateDatabaseStmt emits a CREATE DATABASE guarded by a catalog
// lookup, since Postgres has no IF NOT EXISTS clause on CREATE DATABASE.
// The name appears unquoted inside the generated CREATE DATABASE text
// and, in the WHERE clause literal, through lib/pq's QuoteLiteral so it
// matches exactly what a live driver would send for the same string.
func (postgresDialect) CreateDatabaseStmt(dbName string) string {
	if dbName == "" {
		return ""
	}
	return fmt.Sprintf(
		"SELECT 'CREATE DATABASE %s' WHERE NOT EXISTS (SELECT FROM pg_database WHERE datname = %s)\\gexec",
		dbName, pqQuoteLiteral(dbName),
	)
}

func (d postgresDialect) DropTableStmt(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", d.QuoteIdent(table))
}

func (d postgresDialect) CreateTableStmt(table string, cols []Column, withOIDs bool) string {
	body := ""
	for i, c := range cols {
		sep := ","
		if i == len(cols)-1 {
			sep = ""
		}
		body += fmt.Sprintf("    %s\t%s%s\n", c.Name, c.Type, sep)
	}
	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s)", table, body)
	if withOIDs {
		stmt += " WITH OIDS"
	}
	return stmt + ";"
}

func (d postgresDialect) TruncateTableStmt(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s;", d.QuoteIdent(table))
}

// CopyOpenStmt reproduces spec.md §8 S2's literal framing: each column
// name on its own line, with the closing paren directly preceding
// " from stdin;" — e.g. "COPY foo (COL\n) from stdin;" for one column.
func (postgresDialect) CopyOpenStmt(table string, cols []Column) string {
	names := ""
	for i, c := range cols {
		sep := ",\n"
		if i == len(cols)-1 {
			sep = "\n"
		}
		names += c.Name + sep
	}
	return fmt.Sprintf("COPY %s (%s) from stdin;", table, names)
}

func (postgresDialect) CopyCloseText() string { return "\\.\n" }

func (postgresDialect) InsertOpenStmt(string, []Column) string { return "" }
func (postgresDialect) ValuesSeparator() string                 { return "" }
func (postgresDialect) StatementCloseText() string              { return "" }

func (postgresDialect) FloatNaN() string { return "NaN" }
func (postgresDialect) FloatInf(negative bool) string {
	if negative {
		return "-Infinity"
	}
	return "Infinity"
}
