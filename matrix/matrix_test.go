package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/binsparse/dtype"
)

func TestMatrixConstructors(t *testing.T) {
	t.Run("COO", func(t *testing.T) {
		m, err := NewCOO(3, 3,
			mustBuf(t, dtype.Uint64, 0, 2, 1),
			mustBuf(t, dtype.Uint64, 1, 0, 2),
			dtype.FromFloat64s([]float64{10, 20, 30}),
		)
		require.NoError(t, err)

		assert.Equal(t, FormatCOO, m.Format())
		assert.Equal(t, []Kind{KindIndex, KindIndex}, m.Kinds())
		assert.Equal(t, uint64(3), m.NVals())
		assert.Equal(t, uint64(3), m.Dim(0))
		assert.Equal(t, dtype.Float64, m.ValueType())
		assert.Equal(t, dtype.Uint64, m.IndexType())
		assert.Equal(t, dtype.None, m.PointerType())
		assert.False(t, m.Iso())
		assert.False(t, m.Axis(0).InOrder()) // rows 0,2,1 are not sorted
	})

	t.Run("CSR", func(t *testing.T) {
		m, err := NewCSR(3, 3,
			mustBuf(t, dtype.Uint64, 0, 1, 2, 3),
			mustBuf(t, dtype.Uint64, 1, 2, 0),
			dtype.FromFloat64s([]float64{10, 30, 20}),
		)
		require.NoError(t, err)

		assert.Equal(t, FormatCSR, m.Format())
		assert.Equal(t, uint64(3), m.NVals())
		assert.Equal(t, dtype.Uint64, m.PointerType())
	})

	t.Run("CSC", func(t *testing.T) {
		m, err := NewCSC(3, 3,
			mustBuf(t, dtype.Uint64, 0, 1, 2, 3),
			mustBuf(t, dtype.Uint64, 2, 0, 1),
			dtype.FromFloat64s([]float64{20, 10, 30}),
		)
		require.NoError(t, err)

		assert.Equal(t, FormatCSC, m.Format())
		assert.Equal(t, 1, m.Axis(0).Order())
		assert.Equal(t, uint64(3), m.Dim(0))
	})

	t.Run("DCSR", func(t *testing.T) {
		// Rows 0 and 3 are present, rows 1 and 2 empty.
		m, err := NewDCSR(4, 3,
			mustBuf(t, dtype.Uint64, 0, 2, 3),
			mustBuf(t, dtype.Uint64, 0, 3),
			mustBuf(t, dtype.Uint64, 0, 2, 1),
			dtype.FromFloat64s([]float64{1, 2, 3}),
		)
		require.NoError(t, err)

		assert.Equal(t, FormatDCSR, m.Format())
		assert.Equal(t, uint64(3), m.NVals())
	})

	t.Run("Dense", func(t *testing.T) {
		m, err := NewDense(2, 2, dtype.FromFloat64s([]float64{1, 2, 3, 4}), true)
		require.NoError(t, err)
		assert.Equal(t, FormatDenseRowMajor, m.Format())
		assert.Equal(t, uint64(4), m.NVals())

		m, err = NewDense(2, 2, dtype.FromFloat64s([]float64{1, 3, 2, 4}), false)
		require.NoError(t, err)
		assert.Equal(t, FormatDenseColMajor, m.Format())
	})

	t.Run("IndexFull", func(t *testing.T) {
		m, err := NewIndexFull(5, 2,
			mustBuf(t, dtype.Uint64, 1, 4),
			dtype.FromFloat64s([]float64{1, 2, 3, 4}),
		)
		require.NoError(t, err)
		assert.Equal(t, FormatIndexFull, m.Format())
		assert.Equal(t, uint64(4), m.NVals())
	})

	t.Run("Vectors", func(t *testing.T) {
		sv, err := NewSparseVector(10, mustBuf(t, dtype.Uint32, 2, 7), dtype.FromFloat32s([]float32{1, 2}))
		require.NoError(t, err)
		assert.Equal(t, FormatSparseVector, sv.Format())
		assert.Equal(t, uint64(2), sv.NVals())

		dv, err := NewDenseVector(3, dtype.FromFloat32s([]float32{1, 2, 3}))
		require.NoError(t, err)
		assert.Equal(t, FormatDenseVector, dv.Format())
	})

	t.Run("Scalar", func(t *testing.T) {
		empty, err := NewScalar(nil)
		require.NoError(t, err)
		assert.Equal(t, FormatScalar, empty.Format())
		assert.Equal(t, uint64(0), empty.NVals())
		assert.Equal(t, dtype.None, empty.ValueType())

		one, err := NewScalar(dtype.FromFloat64s([]float64{4.5}))
		require.NoError(t, err)
		assert.Equal(t, uint64(1), one.NVals())
	})

	t.Run("Iso", func(t *testing.T) {
		m, err := NewCOO(3, 3,
			mustBuf(t, dtype.Uint64, 0, 1, 2),
			mustBuf(t, dtype.Uint64, 0, 1, 2),
			dtype.FromFloat64s([]float64{7}),
		)
		require.NoError(t, err)
		assert.True(t, m.Iso())
		assert.Equal(t, uint64(3), m.NVals())
		assert.Equal(t, 1, m.Values().Len())
	})

	t.Run("PatternOnly", func(t *testing.T) {
		m, err := NewCOO(2, 2,
			mustBuf(t, dtype.Uint64, 0, 1),
			mustBuf(t, dtype.Uint64, 1, 0),
			nil,
		)
		require.NoError(t, err)
		assert.Nil(t, m.Values())
		assert.Equal(t, dtype.None, m.ValueType())
	})
}

func TestMatrixValidation(t *testing.T) {
	t.Run("ValueCountMismatch", func(t *testing.T) {
		_, err := NewCOO(3, 3,
			mustBuf(t, dtype.Uint64, 0, 1),
			mustBuf(t, dtype.Uint64, 1, 0),
			dtype.FromFloat64s([]float64{1, 2, 3}),
		)
		require.Error(t, err)
		var im *ErrInvalidMatrix
		assert.ErrorAs(t, err, &im)
	})

	t.Run("CoordinateCountMismatch", func(t *testing.T) {
		// Row and column lists must be parallel: the inner index axis holds
		// 3 coordinates but the outer one implies 2 entries.
		_, err := NewCOO(3, 3,
			mustBuf(t, dtype.Uint64, 0, 1),
			mustBuf(t, dtype.Uint64, 1, 0, 2),
			nil,
		)
		require.Error(t, err)
		var im *ErrInvalidMatrix
		assert.ErrorAs(t, err, &im)
	})

	t.Run("OrdersNotPermutation", func(t *testing.T) {
		ax0, err := IndexAxis(0, 2, mustBuf(t, dtype.Uint64, 0), true)
		require.NoError(t, err)
		ax1, err := IndexAxis(0, 2, mustBuf(t, dtype.Uint64, 1), true)
		require.NoError(t, err)

		_, err = New([]Axis{ax0, ax1}, nil, 1, false, nil)
		require.Error(t, err)
		var im *ErrInvalidMatrix
		assert.ErrorAs(t, err, &im)
	})

	t.Run("MixedIndexTypes", func(t *testing.T) {
		ax0, err := IndexAxis(0, 2, mustBuf(t, dtype.Uint32, 0), true)
		require.NoError(t, err)
		ax1, err := IndexAxis(1, 2, mustBuf(t, dtype.Uint64, 1), true)
		require.NoError(t, err)

		_, err = New([]Axis{ax0, ax1}, nil, 1, false, nil)
		require.Error(t, err)
		var im *ErrInvalidMatrix
		assert.ErrorAs(t, err, &im)
	})

	t.Run("RuleViolationSurfaces", func(t *testing.T) {
		sparse, err := SparseAxis(0, 2, mustBuf(t, dtype.Uint64, 0, 1, 2))
		require.NoError(t, err)

		_, err = New([]Axis{sparse, FullAxis(1, 2)}, nil, 4, false, nil)
		require.Error(t, err)
		var rv *ErrRuleViolation
		require.ErrorAs(t, err, &rv)
		assert.Equal(t, 3, rv.Rule)
	})

	t.Run("ScalarNValsBound", func(t *testing.T) {
		_, err := New(nil, nil, 2, false, nil)
		require.Error(t, err)
		var im *ErrInvalidMatrix
		assert.ErrorAs(t, err, &im)
	})

	t.Run("DenseNValsMismatch", func(t *testing.T) {
		_, err := New([]Axis{FullAxis(0, 2), FullAxis(1, 2)}, nil, 3, false, nil)
		require.Error(t, err)
		var im *ErrInvalidMatrix
		assert.ErrorAs(t, err, &im)
	})

	t.Run("IsoRequiresSingleValue", func(t *testing.T) {
		ax, err := IndexAxis(0, 4, mustBuf(t, dtype.Uint64, 0, 2), true)
		require.NoError(t, err)

		_, err = New([]Axis{ax}, dtype.FromFloat64s([]float64{1, 2}), 2, true, nil)
		require.Error(t, err)

		_, err = New([]Axis{ax}, nil, 2, true, nil)
		assert.Error(t, err)
	})
}

func TestMatrixClone(t *testing.T) {
	m, err := NewCSR(2, 2,
		mustBuf(t, dtype.Uint32, 0, 1, 2),
		mustBuf(t, dtype.Uint32, 1, 0),
		dtype.FromFloat64s([]float64{1, 2}),
	)
	require.NoError(t, err)

	c := m.Clone()
	assert.Equal(t, m.Format(), c.Format())
	assert.Equal(t, m.NVals(), c.NVals())
	assert.True(t, m.Values().Equal(c.Values()))
	assert.True(t, m.Axis(0).Pointer().Equal(c.Axis(0).Pointer()))

	// Buffers are independent copies.
	require.NoError(t, c.Axis(0).Pointer().SetUint(1, 9))
	v, err := m.Axis(0).Pointer().Uint(1)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestBitmap(t *testing.T) {
	boolBuf := func(bits ...uint64) *dtype.Buffer {
		data := make([]byte, len(bits))
		for i, b := range bits {
			data[i] = byte(b)
		}
		buf, err := dtype.FromBytes(dtype.Bool, len(bits), data)
		require.NoError(t, err)
		return buf
	}

	pattern, err := NewDense(2, 2, boolBuf(1, 0, 1, 1), true)
	require.NoError(t, err)
	values, err := NewDense(2, 2, dtype.FromFloat64s([]float64{1, 0, 3, 4}), true)
	require.NoError(t, err)

	t.Run("Valid", func(t *testing.T) {
		bm, err := NewBitmap(pattern, values)
		require.NoError(t, err)
		assert.Equal(t, pattern, bm.Pattern)
		assert.Equal(t, values, bm.Values)
	})

	t.Run("PatternMustBeBool", func(t *testing.T) {
		_, err := NewBitmap(values, values)
		assert.Error(t, err)
	})

	t.Run("DimensionsMustMatch", func(t *testing.T) {
		other, err := NewDense(2, 3, dtype.FromFloat64s([]float64{1, 2, 3, 4, 5, 6}), true)
		require.NoError(t, err)
		_, err = NewBitmap(pattern, other)
		assert.Error(t, err)
	})

	t.Run("LayoutMustMatch", func(t *testing.T) {
		colMajor, err := NewDense(2, 2, dtype.FromFloat64s([]float64{1, 3, 0, 4}), false)
		require.NoError(t, err)
		_, err = NewBitmap(pattern, colMajor)
		assert.Error(t, err)
	})
}
