package tabcodec

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/corvid-labs/tab2sql/internal/dialect"
)

func TestTextNumericIntRoundTrip(t *testing.T) {
	raw := make([]byte, 4)
	binary.BigEndian.PutUint32(raw, uint32(int32(-12345)))
	got := textNumeric(Column{Type: TypeInt}, raw, nil)
	assert.Equal(t, "-12345", got)
}

func TestTextNumericFloatNaNDelimited(t *testing.T) {
	raw := make([]byte, 4)
	binary.BigEndian.PutUint32(raw, math.Float32bits(float32(math.NaN())))
	got := textNumeric(Column{Type: TypeFloat}, raw, nil)
	assert.Equal(t, "nan", got)
}

func TestTextNumericFloatInfPostgres(t *testing.T) {
	d, _ := dialect.New(dialect.Postgres)
	raw := make([]byte, 8)
	binary.BigEndian.PutUint64(raw, math.Float64bits(math.Inf(1)))
	got := textNumeric(Column{Type: TypeDouble}, raw, d)
	assert.Equal(t, "Infinity", got)
}

func TestBinaryNumericInt32Width(t *testing.T) {
	raw := make([]byte, 4)
	binary.BigEndian.PutUint32(raw, 42)
	out := binaryNumeric(Column{Type: TypeInt}, raw, nil)
	assert.Equal(t, 8, len(out)) // 4-byte length prefix + 4-byte payload
	assert.Equal(t, int32(4), int32(binary.BigEndian.Uint32(out[:4])))
	assert.Equal(t, uint32(42), binary.BigEndian.Uint32(out[4:]))
}

func TestDecodeStringTrimsNulAndTrailingSpace(t *testing.T) {
	raw := []byte("abc   \x00\x00\x00")
	assert.Equal(t, "abc", decodeString(raw))
}
