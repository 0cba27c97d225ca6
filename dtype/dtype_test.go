package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeCode(t *testing.T) {
	t.Run("ParseRoundTrip", func(t *testing.T) {
		for _, tc := range []TypeCode{None, Uint1, Uint2, Uint4, Bool, Uint8, Uint16, Uint32, Uint64, Int8, Int16, Int32, Int64, Float32, Float64, Complex64, Complex128, User} {
			parsed, err := Parse(tc.String())
			require.NoError(t, err)
			assert.Equal(t, tc, parsed)
		}
	})

	t.Run("ParseUnknown", func(t *testing.T) {
		_, err := Parse("float16")
		assert.Error(t, err)
	})

	t.Run("Size", func(t *testing.T) {
		assert.Equal(t, 1, Uint8.Size())
		assert.Equal(t, 2, Int16.Size())
		assert.Equal(t, 4, Float32.Size())
		assert.Equal(t, 8, Uint64.Size())
		assert.Equal(t, 8, Complex64.Size())
		assert.Equal(t, 16, Complex128.Size())

		// Sub-byte and opaque types are not byte-addressable.
		assert.Equal(t, 0, Uint1.Size())
		assert.Equal(t, 0, Uint4.Size())
		assert.Equal(t, 0, None.Size())
		assert.Equal(t, 0, User.Size())
	})

	t.Run("Indexable", func(t *testing.T) {
		assert.True(t, Uint8.Indexable())
		assert.True(t, Uint64.Indexable())
		assert.True(t, Int32.Indexable())
		assert.False(t, Float64.Indexable())
		assert.False(t, Bool.Indexable())
		assert.False(t, Uint4.Indexable())
	})

	t.Run("MaxUint", func(t *testing.T) {
		assert.Equal(t, uint64(255), Uint8.MaxUint())
		assert.Equal(t, uint64(127), Int8.MaxUint())
		assert.Equal(t, uint64(65535), Uint16.MaxUint())
	})

	t.Run("Valid", func(t *testing.T) {
		assert.True(t, Uint32.Valid())
		assert.False(t, TypeCode(200).Valid())
	})
}
