package rangedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_Normal(t *testing.T) {
	d, err := Decode(Normal, []byte(`{"min": 1, "max": 100}`))
	require.NoError(t, err)
	assert.False(t, d.Discrete())
	lo, hi := d.Bounds()
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 100.0, hi)
}

func TestDecode_Fixed(t *testing.T) {
	d, err := Decode(Fixed, []byte(`[1.99, 5.99, 10.99, 30.99]`))
	require.NoError(t, err)
	assert.True(t, d.Discrete())
	assert.Equal(t, []float64{1.99, 5.99, 10.99, 30.99}, d.Values())
}

func TestDecode_BadPayloads(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		data string
	}{
		{"normal not JSON", Normal, `{"min": 1,`},
		{"normal missing max", Normal, `{"min": 1}`},
		{"normal string bound", Normal, `{"min": "1", "max": 2}`},
		{"normal array", Normal, `[1, 2]`},
		{"normal empty domain", Normal, `{"min": 5, "max": 5}`},
		{"normal reversed", Normal, `{"min": 10, "max": 1}`},
		{"fixed not JSON", Fixed, `[1, 2`},
		{"fixed string value", Fixed, `[10, "20", 30, 40]`},
		{"fixed one value", Fixed, `[10]`},
		{"fixed object", Fixed, `{"min": 1, "max": 2}`},
		{"unknown kind", Kind(9), `[1, 2]`},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Decode(test.kind, []byte(test.data))
			assert.ErrorIs(t, err, ErrBadPayload)
		})
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "normal", Normal.String())
	assert.Equal(t, "fixed", Fixed.String())
	assert.Equal(t, "?", Kind(9).String())
}
