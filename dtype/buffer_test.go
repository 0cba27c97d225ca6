package dtype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuffer(t *testing.T) {
	t.Run("FromUint64sRoundTrip", func(t *testing.T) {
		for _, tag := range []TypeCode{Uint8, Uint16, Uint32, Uint64, Int32, Int64} {
			b, err := FromUint64s(tag, []uint64{0, 1, 42, 127})
			require.NoError(t, err, tag.String())
			require.Equal(t, 4, b.Len())

			vals, err := b.AsUint64s()
			require.NoError(t, err)
			assert.Equal(t, []uint64{0, 1, 42, 127}, vals)
		}
	})

	t.Run("Overflow", func(t *testing.T) {
		_, err := FromUint64s(Uint8, []uint64{255, 256})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrOverflow)

		_, err = FromUint64s(Int8, []uint64{128})
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("NotIndexable", func(t *testing.T) {
		_, err := FromUint64s(Float64, []uint64{1})
		assert.ErrorIs(t, err, ErrNotAddressable)
	})

	t.Run("NegativeCoordinate", func(t *testing.T) {
		// 0xFF as int8 is -1; coordinate access must reject it.
		b, err := FromBytes(Int8, 1, []byte{0xFF})
		require.NoError(t, err)
		_, err = b.Uint(0)
		assert.Error(t, err)
	})

	t.Run("FromBytesSizeCheck", func(t *testing.T) {
		_, err := FromBytes(Uint32, 2, []byte{1, 2, 3})
		assert.Error(t, err)

		// Packed sub-byte payloads carry an explicit count.
		b, err := FromBytes(Uint1, 10, []byte{0xAB, 0x03})
		require.NoError(t, err)
		assert.Equal(t, 10, b.Len())
	})

	t.Run("Elem", func(t *testing.T) {
		b := FromFloat64s([]float64{1.5, -2.25})
		e0, err := b.Elem(0)
		require.NoError(t, err)
		e1, err := b.Elem(1)
		require.NoError(t, err)
		assert.Len(t, e0, 8)
		assert.NotEqual(t, e0, e1)

		ok, err := b.ElemEqual(0, e0)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("Gather", func(t *testing.T) {
		b := FromFloat32s([]float32{10, 20, 30})
		g, err := b.Gather([]int{2, 0, 1})
		require.NoError(t, err)
		assert.True(t, g.Equal(FromFloat32s([]float32{30, 10, 20})))

		_, err = b.Gather([]int{3})
		assert.Error(t, err)
	})

	t.Run("Clone", func(t *testing.T) {
		b, err := FromUint64s(Uint32, []uint64{7})
		require.NoError(t, err)
		c := b.Clone()
		require.NoError(t, c.SetUint(0, 9))

		v, err := b.Uint(0)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), v)

		// nil buffers clone to nil.
		var nilBuf *Buffer
		assert.Nil(t, nilBuf.Clone())
		assert.Equal(t, 0, nilBuf.Len())
	})

	t.Run("Equal", func(t *testing.T) {
		a, err := FromUint64s(Uint16, []uint64{1, 2})
		require.NoError(t, err)
		b, err := FromUint64s(Uint16, []uint64{1, 2})
		require.NoError(t, err)
		c, err := FromUint64s(Uint32, []uint64{1, 2})
		require.NoError(t, err)

		assert.True(t, a.Equal(b))
		assert.False(t, a.Equal(c)) // same values, different tag
	})
}
