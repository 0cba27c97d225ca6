package matrix

import (
	"github.com/hupe1980/binsparse/dtype"
)

// The constructors below assemble the canonical layouts documented for the
// interchange format so callers cannot mis-wire axis buffers by hand.
// Ownership of every buffer transfers to the returned Matrix.
//
// When a value buffer holds a single entry for more than one structural
// entry, the container is marked iso-valued.

// NewCOO builds an (Index, Index) matrix of nrows x ncols from parallel
// coordinate buffers. nvals is taken from the coordinate buffer length.
func NewCOO(nrows, ncols uint64, rowind, colind, values *dtype.Buffer) (*Matrix, error) {
	nvals := uint64(rowind.Len())
	ax0, err := IndexAxis(0, nrows, rowind, bufferSorted(rowind))
	if err != nil {
		return nil, err
	}
	ax1, err := IndexAxis(1, ncols, colind, false)
	if err != nil {
		return nil, err
	}
	return New([]Axis{ax0, ax1}, values, nvals, isoFor(values, nvals), nil)
}

// NewCSR builds a (Sparse, Index) matrix held by row. rowPtr must hold
// nrows+1 offsets; colind holds one column per entry.
func NewCSR(nrows, ncols uint64, rowPtr, colind, values *dtype.Buffer) (*Matrix, error) {
	nvals := uint64(colind.Len())
	ax0, err := SparseAxis(0, nrows, rowPtr)
	if err != nil {
		return nil, err
	}
	ax1, err := IndexAxis(1, ncols, colind, groupsSorted(ax0.Pointer(), colind))
	if err != nil {
		return nil, err
	}
	return New([]Axis{ax0, ax1}, values, nvals, isoFor(values, nvals), nil)
}

// NewCSC builds a (Sparse, Index) matrix held by column. colPtr must hold
// ncols+1 offsets; rowind holds one row per entry.
func NewCSC(nrows, ncols uint64, colPtr, rowind, values *dtype.Buffer) (*Matrix, error) {
	nvals := uint64(rowind.Len())
	ax0, err := SparseAxis(1, ncols, colPtr)
	if err != nil {
		return nil, err
	}
	ax1, err := IndexAxis(0, nrows, rowind, groupsSorted(ax0.Pointer(), rowind))
	if err != nil {
		return nil, err
	}
	return New([]Axis{ax0, ax1}, values, nvals, isoFor(values, nvals), nil)
}

// NewDCSR builds a (Hyper, Index) matrix held by row: rowind lists the
// non-empty rows, groupPtr their offsets into colind.
func NewDCSR(nrows, ncols uint64, groupPtr, rowind, colind, values *dtype.Buffer) (*Matrix, error) {
	nvals := uint64(colind.Len())
	ax0, err := HyperAxis(0, nrows, groupPtr, rowind)
	if err != nil {
		return nil, err
	}
	ax1, err := IndexAxis(1, ncols, colind, groupsSorted(ax0.Pointer(), colind))
	if err != nil {
		return nil, err
	}
	return New([]Axis{ax0, ax1}, values, nvals, isoFor(values, nvals), nil)
}

// NewDCSC builds a (Hyper, Index) matrix held by column.
func NewDCSC(nrows, ncols uint64, groupPtr, colind, rowind, values *dtype.Buffer) (*Matrix, error) {
	nvals := uint64(rowind.Len())
	ax0, err := HyperAxis(1, ncols, groupPtr, colind)
	if err != nil {
		return nil, err
	}
	ax1, err := IndexAxis(0, nrows, rowind, groupsSorted(ax0.Pointer(), rowind))
	if err != nil {
		return nil, err
	}
	return New([]Axis{ax0, ax1}, values, nvals, isoFor(values, nvals), nil)
}

// NewDense builds a (Full, Full) matrix. The value buffer is laid out by row
// when rowMajor is true, by column otherwise.
func NewDense(nrows, ncols uint64, values *dtype.Buffer, rowMajor bool) (*Matrix, error) {
	nvals := nrows * ncols
	var axes []Axis
	if rowMajor {
		axes = []Axis{FullAxis(0, nrows), FullAxis(1, ncols)}
	} else {
		axes = []Axis{FullAxis(1, ncols), FullAxis(0, nrows)}
	}
	return New(axes, values, nvals, isoFor(values, nvals), nil)
}

// NewIndexFull builds an (Index, Full) matrix held by row: rowind lists the
// present rows, each backed by a dense slice of ncols values.
func NewIndexFull(nrows, ncols uint64, rowind, values *dtype.Buffer) (*Matrix, error) {
	nvals := uint64(rowind.Len()) * ncols
	ax0, err := IndexAxis(0, nrows, rowind, bufferSorted(rowind))
	if err != nil {
		return nil, err
	}
	return New([]Axis{ax0, FullAxis(1, ncols)}, values, nvals, isoFor(values, nvals), nil)
}

// NewSparseVector builds a rank-1 (Index) vector of the given dimension.
func NewSparseVector(dim uint64, ind, values *dtype.Buffer) (*Matrix, error) {
	nvals := uint64(ind.Len())
	ax, err := IndexAxis(0, dim, ind, bufferSorted(ind))
	if err != nil {
		return nil, err
	}
	return New([]Axis{ax}, values, nvals, isoFor(values, nvals), nil)
}

// NewDenseVector builds a rank-1 (Full) vector sized by its value buffer.
func NewDenseVector(dim uint64, values *dtype.Buffer) (*Matrix, error) {
	return New([]Axis{FullAxis(0, dim)}, values, dim, isoFor(values, dim), nil)
}

// NewScalar builds a rank-0 container. values may be nil (empty scalar,
// nvals=0) or hold exactly one entry (nvals=1).
func NewScalar(values *dtype.Buffer) (*Matrix, error) {
	nvals := uint64(0)
	if values != nil {
		nvals = uint64(values.Len())
	}
	return New(nil, values, nvals, false, nil)
}

func isoFor(values *dtype.Buffer, nvals uint64) bool {
	return values != nil && values.Len() == 1 && nvals > 1
}

// bufferSorted reports whether an index buffer is monotonically
// non-decreasing. Undecodable buffers are treated as unordered; axis
// validation reports the decode problem separately.
func bufferSorted(b *dtype.Buffer) bool {
	prev := uint64(0)
	for i := 0; i < b.Len(); i++ {
		v, err := b.Uint(i)
		if err != nil {
			return false
		}
		if v < prev {
			return false
		}
		prev = v
	}
	return true
}

// groupsSorted reports whether index values are non-decreasing within each
// group delimited by consecutive pointer offsets.
func groupsSorted(pointer, index *dtype.Buffer) bool {
	start := uint64(0)
	for g := 1; g < pointer.Len(); g++ {
		end, err := pointer.Uint(g)
		if err != nil {
			return false
		}
		prev := uint64(0)
		for i := start; i < end; i++ {
			v, err := index.Uint(int(i))
			if err != nil {
				return false
			}
			if i > start && v < prev {
				return false
			}
			prev = v
		}
		start = end
	}
	return true
}
