package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/binsparse/dtype"
)

func TestAxis(t *testing.T) {
	t.Run("KindDerivation", func(t *testing.T) {
		full := FullAxis(0, 4)
		assert.Equal(t, KindFull, full.Kind())
		assert.True(t, full.InOrder())
		assert.Equal(t, uint64(4), full.NIndex())

		sparse, err := SparseAxis(0, 2, mustBuf(t, dtype.Uint64, 0, 1, 3))
		require.NoError(t, err)
		assert.Equal(t, KindSparse, sparse.Kind())

		index, err := IndexAxis(0, 10, mustBuf(t, dtype.Uint32, 3, 1), false)
		require.NoError(t, err)
		assert.Equal(t, KindIndex, index.Kind())
		assert.Equal(t, uint64(2), index.NIndex())

		hyper, err := HyperAxis(0, 10, mustBuf(t, dtype.Uint64, 0, 2), mustBuf(t, dtype.Uint32, 7))
		require.NoError(t, err)
		assert.Equal(t, KindHyper, hyper.Kind())
	})

	t.Run("PointerMustStartAtZero", func(t *testing.T) {
		_, err := SparseAxis(0, 2, mustBuf(t, dtype.Uint64, 1, 2, 3))
		require.Error(t, err)
		var ia *ErrInvalidAxis
		assert.ErrorAs(t, err, &ia)
	})

	t.Run("PointerMustBeMonotone", func(t *testing.T) {
		_, err := SparseAxis(0, 2, mustBuf(t, dtype.Uint64, 0, 3, 2))
		require.Error(t, err)
		var ia *ErrInvalidAxis
		assert.ErrorAs(t, err, &ia)
	})

	t.Run("PointerLength", func(t *testing.T) {
		// A sparse axis of dimension 2 needs exactly 3 offsets.
		_, err := SparseAxis(0, 2, mustBuf(t, dtype.Uint64, 0, 1))
		assert.Error(t, err)
	})

	t.Run("IndexTagMustBeInteger", func(t *testing.T) {
		_, err := NewAxis(0, 4, true, nil, dtype.FromFloat32s([]float32{1}), 1)
		require.Error(t, err)
		var ia *ErrInvalidAxis
		assert.ErrorAs(t, err, &ia)
	})

	t.Run("NIndexMismatch", func(t *testing.T) {
		_, err := NewAxis(0, 4, true, nil, mustBuf(t, dtype.Uint64, 1, 2), 3)
		assert.Error(t, err)

		// Without an index buffer, nindex must equal dimension.
		_, err = NewAxis(0, 4, true, nil, nil, 3)
		assert.Error(t, err)
	})

	t.Run("InOrderRequired", func(t *testing.T) {
		// Only Index axes may declare unordered coordinates.
		_, err := NewAxis(0, 2, false, mustBuf(t, dtype.Uint64, 0, 1, 2), nil, 2)
		require.Error(t, err)

		_, err = NewAxis(0, 2, false, nil, nil, 2)
		assert.Error(t, err)
	})
}
