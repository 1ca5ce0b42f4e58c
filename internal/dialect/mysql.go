package dialect

import "fmt"

// mysqlDialect is grounded on sqldef's adapter/mysql package. It
// does not import github.com/go-sql-driver/mysql: that package only
// exposes connection/DSN helpers, nothing reusable for pure text
// quoting without a live connection (see DESIGN.md), so identifier
// quoting here is MySQL's own backtick rule implemented directly.
type mysqlDialect struct{}

func (mysqlDialect) Name() Name { return MySQL }

func (mysqlDialect) QuoteIdent(name string) string {
	return "`" + name + "`"
}

func (d mysqlDialect) CreateDatabaseStmt(dbName string) string {
	if dbName == "" {
		return ""
	}
	return fmt.Sprintf("CREATE DATABASE IF NOT EXISTS %s; USE %s;", d.QuoteIdent(dbName), d.QuoteIdent(dbName))
}

func (d mysqlDialect) DropTableStmt(table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE;", d.QuoteIdent(table))
}

func (d mysqlDialect) CreateTableStmt(table string, cols []Column, withOIDs bool) string {
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

func (d mysqlDialect) TruncateTableStmt(table string) string {
	return fmt.Sprintf("TRUNCATE TABLE %s;", d.QuoteIdent(table))
}

func (mysqlDialect) CopyOpenStmt(string, []Column) string { return "" }
func (mysqlDialect) CopyCloseText() string                { return "" }

func (mysqlDialect) InsertOpenStmt(table string, cols []Column) string {
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

func (mysqlDialect) ValuesSeparator() string     { return "," }
func (mysqlDialect) StatementCloseText() string { return ";\n" }

func (mysqlDialect) FloatNaN() string { return "'NaN'" }
func (mysqlDialect) FloatInf(negative bool) string {
	if negative {
		return "'-Infinity'"
	}
	return "'Infinity'"
}
