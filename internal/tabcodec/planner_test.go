package tabcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPlanScalarPassthrough(t *testing.T) {
	input := Vector{{ColNum: 1, ColName: "A", Type: TypeInt, Repeat: 1, NRows: 1, NCols: 1}}
	p, err := BuildPlan(input, Config{Format: FormatDelimited})
	assert.NoError(t, err)
	assert.Equal(t, []string{"A"}, p.Columns.Names())
}

func TestBuildPlanExplodes1DArray(t *testing.T) {
	input := Vector{{ColNum: 1, ColName: "V", Type: TypeDouble, Repeat: 3, NRows: 1, NCols: 3, NDim: 1}}
	p, err := BuildPlan(input, Config{Format: FormatDelimited, Explode: true})
	assert.NoError(t, err)
	assert.Equal(t, []string{"V_1", "V_2", "V_3"}, p.Columns.Names())
}

func TestBuildPlanExplodes2DArray(t *testing.T) {
	input := Vector{{ColNum: 1, ColName: "M", Type: TypeFloat, Repeat: 4, NRows: 2, NCols: 2, NDim: 2}}
	p, err := BuildPlan(input, Config{Format: FormatDelimited, Explode: true})
	assert.NoError(t, err)
	assert.Equal(t, []string{"M_1_1", "M_1_2", "M_2_1", "M_2_2"}, p.Columns.Names())
}

func TestBuildPlanKeepsPackedArrayWhenNotExploded(t *testing.T) {
	input := Vector{{ColNum: 1, ColName: "V", Type: TypeDouble, Repeat: 3, NRows: 1, NCols: 3, NDim: 1}}
	p, err := BuildPlan(input, Config{Format: FormatPostgres})
	assert.NoError(t, err)
	assert.Equal(t, []string{"V"}, p.Columns.Names())
	assert.Equal(t, "double precision[3]", p.Columns[0].ColType)
}

func TestBuildPlanAppendsSyntheticColumnsInOrder(t *testing.T) {
	input := Vector{{ColNum: 1, ColName: "A", Type: TypeInt, Repeat: 1, NRows: 1, NCols: 1}}
	cfg := Config{Format: FormatDelimited, AddCol: "tag", SIDCol: "sid", RIDCol: "rid"}
	p, err := BuildPlan(input, cfg)
	assert.NoError(t, err)
	assert.Equal(t, []string{"A", "tag", "sid", "rid"}, p.Columns.Names())
}

func TestPlanEquivalentChecksNameTypeOrder(t *testing.T) {
	a := Vector{{ColName: "A", Type: TypeInt, Repeat: 1, NRows: 1, NCols: 1}}
	p1, _ := BuildPlan(a, Config{Format: FormatDelimited})
	p2, _ := BuildPlan(a, Config{Format: FormatDelimited})
	assert.True(t, p1.Equivalent(p2))

	b := Vector{{ColName: "B", Type: TypeInt, Repeat: 1, NRows: 1, NCols: 1}}
	p3, _ := BuildPlan(b, Config{Format: FormatDelimited})
	assert.False(t, p1.Equivalent(p3))
}
