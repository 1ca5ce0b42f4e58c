package dialect

import "github.com/lib/pq"

// pqQuoteIdentifier delegates to lib/pq's own identifier quoting so this
// module's Postgres output matches exactly what the real client driver
// would produce for the same name — without ever opening a connection.
func pqQuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

// pqQuoteLiteral delegates to lib/pq's string-literal quoting, used for
// the database-name literal in CreateDatabaseStmt's catalog lookup.
func pqQuoteLiteral(s string) string {
	return pq.QuoteLiteral(s)
}
