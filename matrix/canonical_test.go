package matrix

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecognize(t *testing.T) {
	rowMajor := []int{0, 1}
	colMajor := []int{1, 0}

	tests := []struct {
		name   string
		kinds  []Kind
		orders []int
		want   Format
	}{
		{"Scalar", nil, nil, FormatScalar},
		{"SparseVector", []Kind{KindIndex}, []int{0}, FormatSparseVector},
		{"DenseVector", []Kind{KindFull}, []int{0}, FormatDenseVector},
		{"COOByRow", []Kind{KindIndex, KindIndex}, rowMajor, FormatCOO},
		{"COOByCol", []Kind{KindIndex, KindIndex}, colMajor, FormatCOO},
		{"CSR", []Kind{KindSparse, KindIndex}, rowMajor, FormatCSR},
		{"CSC", []Kind{KindSparse, KindIndex}, colMajor, FormatCSC},
		{"DCSR", []Kind{KindHyper, KindIndex}, rowMajor, FormatDCSR},
		{"DCSC", []Kind{KindHyper, KindIndex}, colMajor, FormatDCSC},
		{"DenseRowMajor", []Kind{KindFull, KindFull}, rowMajor, FormatDenseRowMajor},
		{"DenseColMajor", []Kind{KindFull, KindFull}, colMajor, FormatDenseColMajor},
		{"IndexFull", []Kind{KindIndex, KindFull}, rowMajor, FormatIndexFull},
		{"IndexFullColMajor", []Kind{KindIndex, KindFull}, colMajor, FormatIndexFullColMajor},
		{"CustomVector", []Kind{KindSparse}, []int{0}, FormatCustom},
		{"CustomRank3", []Kind{KindSparse, KindSparse, KindIndex}, []int{0, 1, 2}, FormatCustom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Recognize(tt.kinds, tt.orders))
		})
	}
}

func TestFormatString(t *testing.T) {
	assert.Equal(t, "CSR", FormatCSR.String())
	assert.Equal(t, "dense-row-major", FormatDenseRowMajor.String())
	assert.Equal(t, "custom", FormatCustom.String())
	assert.Equal(t, "custom", Format(99).String())
}
