package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPostgresCreateTableSingleColumn(t *testing.T) {
	d, err := New(Postgres)
	assert.NoError(t, err)

	stmt := d.CreateTableStmt("foo", []Column{{Name: "COL", Type: "integer"}}, false)
	assert.Equal(t, "CREATE TABLE IF NOT EXISTS foo (\n    COL\tinteger\n);", stmt)
}

func TestPostgresCopyFraming(t *testing.T) {
	d, err := New(Postgres)
	assert.NoError(t, err)

	open := d.CopyOpenStmt("foo", []Column{{Name: "COL", Type: "integer"}})
	assert.Equal(t, "COPY foo (COL\n) from stdin;", open)
	assert.Equal(t, "\\.\n", d.CopyCloseText())
}

func TestPostgresFloatSpecials(t *testing.T) {
	d, _ := New(Postgres)
	assert.Equal(t, "NaN", d.FloatNaN())
	assert.Equal(t, "Infinity", d.FloatInf(false))
	assert.Equal(t, "-Infinity", d.FloatInf(true))
}

func TestPostgresWithOIDs(t *testing.T) {
	d, _ := New(Postgres)
	stmt := d.CreateTableStmt("t", []Column{{Name: "a", Type: "integer"}}, true)
	assert.Contains(t, stmt, "WITH OIDS")
}
