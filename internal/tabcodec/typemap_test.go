package tabcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColTypeScalar(t *testing.T) {
	c := Column{Type: TypeInt, Repeat: 1}
	assert.Equal(t, "integer", ColType(c, FormatPostgres, false))
}

func TestColTypeStringRepeatOne(t *testing.T) {
	c := Column{Type: TypeString, Repeat: 1}
	assert.Equal(t, "char", ColType(c, FormatPostgres, false))
}

func TestColTypeStringRepeatMany(t *testing.T) {
	c := Column{Type: TypeString, Repeat: 8}
	assert.Equal(t, "text", ColType(c, FormatPostgres, false))
}

func TestColTypeNonExplodedArray(t *testing.T) {
	c := Column{Type: TypeDouble, Repeat: 3}
	assert.Equal(t, "double precision[3]", ColType(c, FormatPostgres, false))
}

func TestColTypeExplodedArrayIsScalar(t *testing.T) {
	c := Column{Type: TypeDouble, Repeat: 1}
	assert.Equal(t, "double precision", ColType(c, FormatPostgres, true))
}

func TestColTypeIPACUsesTextLabels(t *testing.T) {
	c := Column{Type: TypeLongLong, Repeat: 1}
	assert.Equal(t, "int", ColType(c, FormatIPAC, false))
}
