package dialect

import (
	pg_query "github.com/pganalyze/pg_query_go/v2"
)

// ValidatePostgresStatements parses sql (expected to be one or more
// ';'-terminated statements) with the real Postgres grammar and returns
// an error if it would be rejected by the server. This is parsing only —
// no connection is made, so it doesn't touch spec.md's "no in-process
// database connections" Non-goal — and exists to catch a malformed
// generated CREATE TABLE/DROP/TRUNCATE/COPY preamble before it reaches a
// pipe, per SPEC_FULL.md's domain-stack wiring for pg_query_go.
func ValidatePostgresStatements(sql string) error {
	_, err := pg_query.Parse(sql)
	return err
}
