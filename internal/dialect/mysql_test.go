package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMySQLSingleInsertBundle(t *testing.T) {
	d, err := New(MySQL)
	assert.NoError(t, err)

	cols := []Column{{Name: "COL", Type: "real"}}
	open := d.InsertOpenStmt("t", cols)
	assert.Equal(t, "INSERT INTO t (COL\n) VALUES", open)

	row1 := "(" + "1.500000" + ")"
	row2 := d.ValuesSeparator() + "(" + d.FloatNaN() + ")"
	full := open + "\n" + row1 + row2 + d.StatementCloseText()
	assert.Equal(t, "INSERT INTO t (COL\n) VALUES\n(1.500000),('NaN');\n", full)
}

func TestMySQLIdentifierQuoting(t *testing.T) {
	d, _ := New(MySQL)
	assert.Equal(t, "`foo`", d.QuoteIdent("foo"))
}
