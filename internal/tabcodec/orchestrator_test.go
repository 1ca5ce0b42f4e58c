package tabcodec

import (
	"encoding/binary"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-labs/tab2sql/internal/source"
)

// memTable is a tiny in-memory source.Table fake standing in for a real
// binary-table file, used to exercise the orchestrator end to end
// without touching the filesystem.
type memTable struct {
	cols    []source.ColumnInfo
	rowSize int
	rows    [][]byte
}

func (m *memTable) NumCols() int { return len(m.cols) }
func (m *memTable) Column(i int) (source.ColumnInfo, error) { return m.cols[i-1], nil }
func (m *memTable) Keyword(string) (string, bool)           { return "", false }
func (m *memTable) RowBytes() int                            { return m.rowSize }
func (m *memTable) NumRows() int64                           { return int64(len(m.rows)) }
func (m *memTable) OptimalChunkRows() int                    { return len(m.rows) }
func (m *memTable) Close() error                             { return nil }

func (m *memTable) ReadRows(dst []byte, startRow int64, n int) (int, error) {
	got := 0
	for i := 0; i < n; i++ {
		row := m.rows[int(startRow)+i]
		copy(dst[i*m.rowSize:], row)
		got++
	}
	return got, nil
}

// oneFloatColTable builds a single-column FLOAT (4-byte) table with one
// row per given value.
func oneFloatColTable(values ...float64) *memTable {
	row := func(v float64) []byte {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, math.Float32bits(float32(v)))
		return b
	}
	rows := make([][]byte, len(values))
	for i, v := range values {
		rows[i] = row(v)
	}
	return &memTable{
		cols: []source.ColumnInfo{
			{Name: "COL", Code: 'E', Repeat: 1, Width: 4, DispWidth: 10},
		},
		rowSize: 4,
		rows:    rows,
	}
}

func TestOrchestratorMySQLSingleBundleTwoRows(t *testing.T) {
	tbl := oneFloatColTable(1.5, math.NaN())
	cfg := Config{Format: FormatMySQL, BundleSize: 100, ChunkRows: 10, Load: true}

	var out strings.Builder
	orch := &Orchestrator{Cfg: cfg}
	err := orch.Run(&out, []source.Table{tbl}, "t")
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "INSERT INTO t (COL\n) VALUES\n(1.500000),('NaN');\n")
}

func intColTable(values ...int32) *memTable {
	rows := make([][]byte, len(values))
	for i, v := range values {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(v))
		rows[i] = b
	}
	return &memTable{
		cols:    []source.ColumnInfo{{Name: "COL", Code: 'J', Repeat: 1, Width: 4, DispWidth: 8}},
		rowSize: 4,
		rows:    rows,
	}
}

func TestOrchestratorDelimitedHeaderAndRows(t *testing.T) {
	tbl := intColTable(1, 2, 3)
	cfg := Config{Format: FormatDelimited, Header: true, BundleSize: 1, ChunkRows: 10, Delimiter: ',', Load: true}

	var out strings.Builder
	orch := &Orchestrator{Cfg: cfg}
	err := orch.Run(&out, []source.Table{tbl}, "t")
	assert.NoError(t, err)
	assert.Equal(t, "COL\n1\n2\n3\n", out.String())
}

func TestOrchestratorConcatSkipsSchemaMismatchAndContinues(t *testing.T) {
	a := oneFloatColTable(1)
	b := &memTable{
		cols:    []source.ColumnInfo{{Name: "OTHER", Code: 'J', Repeat: 1, Width: 4, DispWidth: 8}},
		rowSize: 4,
		rows:    [][]byte{{0, 0, 0, 1}},
	}
	c := oneFloatColTable(2)
	cfg := Config{Format: FormatDelimited, Concat: true, BundleSize: 1, ChunkRows: 10, Load: true}

	var out strings.Builder
	var warnings []string
	orch := &Orchestrator{Cfg: cfg, Warn: func(s string) { warnings = append(warnings, s) }}
	err := orch.Run(&out, []source.Table{a, b, c}, "t")
	assert.NoError(t, err)
	assert.Equal(t, "1.000000\n2.000000\n", out.String())
	assert.Len(t, warnings, 1)
}

func TestOrchestratorPostgresCreatePreambleGatedByCreateFlag(t *testing.T) {
	tbl := intColTable(1, 2, 3)
	cfg := Config{Format: FormatPostgres, BundleSize: 1, ChunkRows: 10, Create: true, Load: true}

	var out strings.Builder
	orch := &Orchestrator{Cfg: cfg}
	err := orch.Run(&out, []source.Table{tbl}, "foo")
	assert.NoError(t, err)
	assert.Contains(t, out.String(), "CREATE TABLE IF NOT EXISTS foo (\n    COL\tinteger\n);")
	assert.Contains(t, out.String(), "COPY foo (COL\n) from stdin;\n1\n2\n3\n\\.\n")

	out.Reset()
	cfg.Create = false
	orch = &Orchestrator{Cfg: cfg}
	err = orch.Run(&out, []source.Table{tbl}, "foo")
	assert.NoError(t, err)
	assert.NotContains(t, out.String(), "CREATE TABLE")
}

func TestOrchestratorRIDColumnIsUniformReal(t *testing.T) {
	tbl := intColTable(1, 2, 3)
	cfg := Config{Format: FormatDelimited, BundleSize: 1, ChunkRows: 10, Delimiter: ',', RIDCol: "rid", RIDSeed: 42, Load: true}

	var out strings.Builder
	orch := &Orchestrator{Cfg: cfg}
	err := orch.Run(&out, []source.Table{tbl}, "t")
	assert.NoError(t, err)
	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		parts := strings.SplitN(line, ",", 2)
		rid, perr := strconv.ParseFloat(parts[1], 64)
		assert.NoError(t, perr)
		assert.GreaterOrEqual(t, rid, 0.0)
		assert.Less(t, rid, 100.0)
	}
}

func TestOrchestratorBinaryDisabledByArrayColumn(t *testing.T) {
	row := make([]byte, 24)
	for i, v := range []float64{0, 1, 2} {
		binary.BigEndian.PutUint64(row[i*8:], math.Float64bits(v))
	}
	tbl := &memTable{
		cols:    []source.ColumnInfo{{Name: "V", Code: 'D', Repeat: 3, Width: 8, DispWidth: 10}},
		rowSize: 24,
		rows:    [][]byte{row},
	}
	cfg := Config{Format: FormatPostgres, Binary: true, BundleSize: 1, ChunkRows: 10, Load: true}
	assert.NoError(t, cfg.Validate())

	var out strings.Builder
	var warnings []string
	orch := &Orchestrator{Cfg: cfg, Warn: func(s string) { warnings = append(warnings, s) }}
	err := orch.Run(&out, []source.Table{tbl}, "t")
	assert.NoError(t, err)
	// Falls back to Postgres text COPY instead of emitting a binary frame.
	assert.Contains(t, out.String(), "COPY t (V\n) from stdin;\n")
	assert.Contains(t, out.String(), "{0.0000000000000000,1.0000000000000000,2.0000000000000000}")
	assert.Len(t, warnings, 1)
}

func TestOrchestratorNonExplodedArrayWraps(t *testing.T) {
	row := make([]byte, 24)
	for i, v := range []float64{0, 1, 2} {
		binary.BigEndian.PutUint64(row[i*8:], math.Float64bits(v))
	}
	tbl := &memTable{
		cols:    []source.ColumnInfo{{Name: "V", Code: 'D', Repeat: 3, Width: 8, DispWidth: 10}},
		rowSize: 24,
		rows:    [][]byte{row},
	}
	cfg := Config{Format: FormatDelimited, BundleSize: 1, ChunkRows: 10, Delimiter: ',', Load: true}

	var out strings.Builder
	orch := &Orchestrator{Cfg: cfg}
	err := orch.Run(&out, []source.Table{tbl}, "t")
	assert.NoError(t, err)
	assert.Equal(t, "\"(0.0000000000000000,1.0000000000000000,2.0000000000000000)\"\n", out.String())
}
