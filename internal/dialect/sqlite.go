package dialect

import "fmt"

// sqliteDialect is grounded on sqldef's adapter/sqlite3 package.
// SQLite has no CASCADE clause and no notion of a CREATE DATABASE
// statement (one file is one database), unlike Postgres/MySQL. Only the
// latter is reflected here: DropTableStmt and TruncateTableStmt emit the
// same "DROP TABLE ... CASCADE;" / "TRUNCATE TABLE ...;" text as the
// other dialects (see DESIGN.md).
type sqliteDialect struct{}

func (sqliteDialect) Name() Name { return SQLite }

func (sqliteDialect) QuoteIdent(name string) string {
	return `"` + name + `"`
}

func (sqliteDialect) CreateDatabaseStmt(string) string { return "" }

func (d sqliteDialect) DropTableStmt(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", d.QuoteIdent(table))
}

func (d sqliteDialect) CreateTableStmt(table string, cols []Column, withOIDs bool) string {
	body := ""
	for i, c := range cols {
		sep := ","
		if i == len(cols)-1 {
			sep = ""
		}
		body += fmt.Sprintf("    %s\t%s%s\n", c.Name, c.Type, sep)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n%s);", table, body)
}

func (d sqliteDialect) TruncateTableStmt(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s;", d.QuoteIdent(table))
}

func (sqliteDialect) CopyOpenStmt(string, []Column) string { return "" }
func (sqliteDialect) CopyCloseText() string                { return "" }

func (sqliteDialect) InsertOpenStmt(table string, cols []Column) string {
	names := ""
	for i, c := range cols {
		sep := ",\n"
		if i == len(cols)-1 {
			sep = "\n"
		}
		names += c.Name + sep
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES", table, names)
}

func (sqliteDialect) ValuesSeparator() string     { return "," }
func (sqliteDialect) StatementCloseText() string { return ";\n" }

func (sqliteDialect) FloatNaN() string { return "'NaN'" }
func (sqliteDialect) FloatInf(negative bool) string {
	if negative {
		return "'-Infinity'"
	}
	return "'Infinity'"
}
