package convert

import (
	"bytes"
	"fmt"

	"github.com/hupe1980/binsparse/dtype"
	"github.com/hupe1980/binsparse/internal/conv"
	"github.com/hupe1980/binsparse/matrix"
)

// densify2 scatters a rank-2 container into a (Full, Full) layout.
// Absent positions take the supplied fill value, or zero bytes if none was
// given. Iso inputs stay iso only when they cover every position.
func densify2(src *matrix.Matrix, opts *options, rowMajor bool) (*matrix.Matrix, error) {
	if src.Rank() != 2 {
		return nil, &ErrUnsupportedConversion{From: src.Format(), To: denseFormat(rowMajor)}
	}
	if src.Values() == nil {
		return nil, &ErrLossyConversion{
			From:   src.Format(),
			To:     denseFormat(rowMajor),
			Reason: "pattern-only container has no values to densify",
		}
	}
	if isDense2(src) {
		return transposeDense(src, rowMajor)
	}

	nrows, ncols := src.Dim(0), src.Dim(1)
	total, err := conv.Uint64ToInt(nrows * ncols)
	if err != nil {
		return nil, err
	}

	// Full coverage keeps the single stored value.
	if src.Iso() && src.NVals() == nrows*ncols {
		return matrix.NewDense(nrows, ncols, src.Values().Clone(), rowMajor)
	}

	elemSize := src.ValueType().Size()
	if elemSize == 0 {
		return nil, fmt.Errorf("convert: %w for value type %s", dtype.ErrNotAddressable, src.ValueType())
	}
	fill, err := fillElem(opts, src.ValueType())
	if err != nil {
		return nil, err
	}

	out, err := dtype.NewBuffer(src.ValueType(), total)
	if err != nil {
		return nil, err
	}
	if fill != nil {
		raw := out.Bytes()
		for i := 0; i < total; i++ {
			copy(raw[i*elemSize:], fill)
		}
	}

	rows, cols, err := rank2Entries(src)
	if err != nil {
		return nil, err
	}
	raw := out.Bytes()
	for i := range rows {
		var elem []byte
		if src.Iso() {
			elem, err = src.Values().Elem(0)
		} else {
			elem, err = src.Values().Elem(i)
		}
		if err != nil {
			return nil, err
		}
		pos := rows[i]*ncols + cols[i]
		if !rowMajor {
			pos = cols[i]*nrows + rows[i]
		}
		copy(raw[int(pos)*elemSize:], elem)
	}

	m, err := matrix.NewDense(nrows, ncols, out, rowMajor)
	if err != nil {
		return nil, err
	}
	return withMetadata(m, src)
}

// transposeDense reorders a (Full, Full) value buffer between row-major and
// column-major storage.
func transposeDense(src *matrix.Matrix, rowMajor bool) (*matrix.Matrix, error) {
	srcRowMajor := src.Format() == matrix.FormatDenseRowMajor
	if srcRowMajor == rowMajor {
		return src.Clone(), nil
	}

	nrows, ncols := src.Dim(0), src.Dim(1)
	total, err := conv.Uint64ToInt(nrows * ncols)
	if err != nil {
		return nil, err
	}

	values := src.Values()
	if values != nil && !src.Iso() {
		perm := make([]int, total)
		for r := uint64(0); r < nrows; r++ {
			for c := uint64(0); c < ncols; c++ {
				dst := c*nrows + r
				srcPos := r*ncols + c
				if rowMajor {
					dst, srcPos = srcPos, dst
				}
				perm[dst] = int(srcPos)
			}
		}
		if values, err = values.Gather(perm); err != nil {
			return nil, err
		}
	} else {
		values = values.Clone()
	}

	m, err := matrix.NewDense(nrows, ncols, values, rowMajor)
	if err != nil {
		return nil, err
	}
	return withMetadata(m, src)
}

// sparsifyToCOO scans a dense container linearly and emits one entry per
// element that differs from the explicitly supplied fill value.
func sparsifyToCOO(src *matrix.Matrix, opts *options) (*matrix.Matrix, error) {
	if opts.fill == nil {
		return nil, ErrMissingFillValue
	}
	fill, err := fillElem(opts, src.ValueType())
	if err != nil {
		return nil, err
	}
	if src.Values() == nil {
		return nil, &ErrLossyConversion{
			From:   src.Format(),
			To:     matrix.FormatCOO,
			Reason: "pattern-only container has no values to compare against the fill value",
		}
	}

	nrows, ncols := src.Dim(0), src.Dim(1)
	byRow := src.Format() == matrix.FormatDenseRowMajor
	total, err := conv.Uint64ToInt(nrows * ncols)
	if err != nil {
		return nil, err
	}

	var rows, cols []uint64
	var keep []int
	for pos := 0; pos < total; pos++ {
		i := 0
		if !src.Iso() {
			i = pos
		}
		elem, err := src.Values().Elem(i)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(elem, fill) {
			continue
		}
		var r, c uint64
		if byRow {
			r, c = uint64(pos)/ncols, uint64(pos)%ncols
		} else {
			c, r = uint64(pos)/nrows, uint64(pos)%nrows
		}
		rows = append(rows, r)
		cols = append(cols, c)
		keep = append(keep, i)
	}

	idxTag := indexTag(src)
	rowind, err := dtype.FromUint64s(idxTag, rows)
	if err != nil {
		return nil, err
	}
	colind, err := dtype.FromUint64s(idxTag, cols)
	if err != nil {
		return nil, err
	}

	var values *dtype.Buffer
	if src.Iso() {
		values = src.Values().Clone()
		if len(keep) == 0 {
			// The single stored value matched the fill, so nothing survived.
			if values, err = dtype.NewBuffer(src.ValueType(), 0); err != nil {
				return nil, err
			}
		}
	} else if values, err = src.Values().Gather(keep); err != nil {
		return nil, err
	}

	var m *matrix.Matrix
	if byRow {
		m, err = matrix.NewCOO(nrows, ncols, rowind, colind, values)
	} else {
		// Keep column storage order so the scan order stays declared.
		ax0, axErr := matrix.IndexAxis(1, ncols, colind, true)
		if axErr != nil {
			return nil, axErr
		}
		ax1, axErr := matrix.IndexAxis(0, nrows, rowind, false)
		if axErr != nil {
			return nil, axErr
		}
		m, err = matrix.New([]matrix.Axis{ax0, ax1}, values, uint64(len(keep)), src.Iso() && len(keep) > 1, nil)
	}
	if err != nil {
		return nil, err
	}
	return withMetadata(m, src)
}

// densifyVector converts a rank-1 Index vector to Full.
func densifyVector(src *matrix.Matrix, opts *options) (*matrix.Matrix, error) {
	if src.Values() == nil {
		return nil, &ErrLossyConversion{
			From:   src.Format(),
			To:     matrix.FormatDenseVector,
			Reason: "pattern-only container has no values to densify",
		}
	}

	ax := src.Axis(0)
	dim, err := conv.Uint64ToInt(ax.Dimension())
	if err != nil {
		return nil, err
	}
	if src.Iso() && src.NVals() == ax.Dimension() {
		return matrix.NewDenseVector(ax.Dimension(), src.Values().Clone())
	}

	elemSize := src.ValueType().Size()
	if elemSize == 0 {
		return nil, fmt.Errorf("convert: %w for value type %s", dtype.ErrNotAddressable, src.ValueType())
	}
	fill, err := fillElem(opts, src.ValueType())
	if err != nil {
		return nil, err
	}

	out, err := dtype.NewBuffer(src.ValueType(), dim)
	if err != nil {
		return nil, err
	}
	raw := out.Bytes()
	if fill != nil {
		for i := 0; i < dim; i++ {
			copy(raw[i*elemSize:], fill)
		}
	}

	ind, err := ax.Index().AsUint64s()
	if err != nil {
		return nil, err
	}
	for i, pos := range ind {
		if pos >= ax.Dimension() {
			return nil, &matrix.ErrDimensionMismatch{Axis: ax.Order(), Coordinate: pos, Dimension: ax.Dimension()}
		}
		vi := i
		if src.Iso() {
			vi = 0
		}
		elem, err := src.Values().Elem(vi)
		if err != nil {
			return nil, err
		}
		copy(raw[int(pos)*elemSize:], elem)
	}

	m, err := matrix.NewDenseVector(ax.Dimension(), out)
	if err != nil {
		return nil, err
	}
	return withMetadata(m, src)
}

// sparsifyVector converts a rank-1 Full vector to Index form, dropping
// elements equal to the supplied fill value.
func sparsifyVector(src *matrix.Matrix, opts *options) (*matrix.Matrix, error) {
	if opts.fill == nil {
		return nil, ErrMissingFillValue
	}
	fill, err := fillElem(opts, src.ValueType())
	if err != nil {
		return nil, err
	}
	if src.Values() == nil {
		return nil, &ErrLossyConversion{
			From:   src.Format(),
			To:     matrix.FormatSparseVector,
			Reason: "pattern-only container has no values to compare against the fill value",
		}
	}

	ax := src.Axis(0)
	dim, err := conv.Uint64ToInt(ax.Dimension())
	if err != nil {
		return nil, err
	}

	var ind []uint64
	var keep []int
	for pos := 0; pos < dim; pos++ {
		i := 0
		if !src.Iso() {
			i = pos
		}
		elem, err := src.Values().Elem(i)
		if err != nil {
			return nil, err
		}
		if bytes.Equal(elem, fill) {
			continue
		}
		ind = append(ind, uint64(pos))
		keep = append(keep, i)
	}

	indBuf, err := dtype.FromUint64s(indexTag(src), ind)
	if err != nil {
		return nil, err
	}
	var values *dtype.Buffer
	if src.Iso() {
		values = src.Values().Clone()
		if len(keep) == 0 {
			// The single stored value matched the fill, so nothing survived.
			if values, err = dtype.NewBuffer(src.ValueType(), 0); err != nil {
				return nil, err
			}
		}
	} else if values, err = src.Values().Gather(keep); err != nil {
		return nil, err
	}

	m, err := matrix.NewSparseVector(ax.Dimension(), indBuf, values)
	if err != nil {
		return nil, err
	}
	return withMetadata(m, src)
}

// fillElem validates the configured fill value against the value type, or
// returns nil when no fill was supplied (zero padding).
func fillElem(opts *options, tag dtype.TypeCode) ([]byte, error) {
	if opts.fill == nil {
		return nil, nil
	}
	if size := tag.Size(); len(opts.fill) != size {
		return nil, fmt.Errorf("convert: fill value holds %d bytes, want %d for %s", len(opts.fill), size, tag)
	}
	return opts.fill, nil
}

func denseFormat(rowMajor bool) matrix.Format {
	if rowMajor {
		return matrix.FormatDenseRowMajor
	}
	return matrix.FormatDenseColMajor
}
