package matrix

// Format names a widely recognized axis-kind combination.
type Format uint8

const (
	// FormatCustom is any valid kind sequence without a canonical name.
	FormatCustom Format = iota
	// FormatScalar is a rank-0 container.
	FormatScalar
	// FormatSparseVector is a rank-1 Index axis.
	FormatSparseVector
	// FormatDenseVector is a rank-1 Full axis.
	FormatDenseVector
	// FormatCOO is (Index, Index) in either orientation.
	FormatCOO
	// FormatCSR is (Sparse, Index) held by row.
	FormatCSR
	// FormatCSC is (Sparse, Index) held by column.
	FormatCSC
	// FormatDCSR is (Hyper, Index) held by row.
	FormatDCSR
	// FormatDCSC is (Hyper, Index) held by column.
	FormatDCSC
	// FormatDenseRowMajor is (Full, Full) held by row.
	FormatDenseRowMajor
	// FormatDenseColMajor is (Full, Full) held by column.
	FormatDenseColMajor
	// FormatIndexFull is (Index, Full) held by row: a list of dense rows.
	FormatIndexFull
	// FormatIndexFullColMajor is (Index, Full) held by column.
	FormatIndexFullColMajor
)

func (f Format) String() string {
	switch f {
	case FormatScalar:
		return "scalar"
	case FormatSparseVector:
		return "sparse-vector"
	case FormatDenseVector:
		return "dense-vector"
	case FormatCOO:
		return "COO"
	case FormatCSR:
		return "CSR"
	case FormatCSC:
		return "CSC"
	case FormatDCSR:
		return "DCSR"
	case FormatDCSC:
		return "DCSC"
	case FormatDenseRowMajor:
		return "dense-row-major"
	case FormatDenseColMajor:
		return "dense-col-major"
	case FormatIndexFull:
		return "index-full"
	case FormatIndexFullColMajor:
		return "index-full-col-major"
	default:
		return "custom"
	}
}

// Recognize maps a validated kind sequence plus the axis order permutation to
// a canonical format name. Valid sequences that match no known layout are
// reported as FormatCustom, never as an error.
func Recognize(kinds []Kind, orders []int) Format {
	switch len(kinds) {
	case 0:
		return FormatScalar
	case 1:
		if kinds[0] == KindIndex {
			return FormatSparseVector
		}
		if kinds[0] == KindFull {
			return FormatDenseVector
		}
		return FormatCustom
	case 2:
		byRow := orders[0] == 0 && orders[1] == 1
		byCol := orders[0] == 1 && orders[1] == 0
		switch {
		case kinds[0] == KindIndex && kinds[1] == KindIndex:
			return FormatCOO
		case kinds[0] == KindSparse && kinds[1] == KindIndex && byRow:
			return FormatCSR
		case kinds[0] == KindSparse && kinds[1] == KindIndex && byCol:
			return FormatCSC
		case kinds[0] == KindHyper && kinds[1] == KindIndex && byRow:
			return FormatDCSR
		case kinds[0] == KindHyper && kinds[1] == KindIndex && byCol:
			return FormatDCSC
		case kinds[0] == KindFull && kinds[1] == KindFull && byRow:
			return FormatDenseRowMajor
		case kinds[0] == KindFull && kinds[1] == KindFull && byCol:
			return FormatDenseColMajor
		case kinds[0] == KindIndex && kinds[1] == KindFull && byRow:
			return FormatIndexFull
		case kinds[0] == KindIndex && kinds[1] == KindFull && byCol:
			return FormatIndexFullColMajor
		}
		return FormatCustom
	default:
		return FormatCustom
	}
}
