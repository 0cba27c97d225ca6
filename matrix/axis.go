package matrix

import (
	"github.com/hupe1980/binsparse/dtype"
)

// Kind is the storage primitive of a single axis, derived from the presence
// of its pointer and index buffers. It is never stored redundantly; Kind()
// is the one place the derivation happens.
type Kind uint8

const (
	// KindSparse has a pointer but no index: a dense list of groups, each of
	// variable size given by consecutive pointer offsets.
	KindSparse Kind = iota
	// KindHyper has both pointer and index: a sorted list of non-empty
	// groups within a larger dimension.
	KindHyper
	// KindIndex has an index but no pointer: a flat list of coordinates,
	// possibly unordered.
	KindIndex
	// KindFull has neither buffer: implicit dense enumeration 0..dimension-1.
	KindFull
)

func (k Kind) String() string {
	switch k {
	case KindSparse:
		return "sparse"
	case KindHyper:
		return "hyper"
	case KindIndex:
		return "index"
	case KindFull:
		return "full"
	default:
		return "invalid"
	}
}

// Axis describes the encoding of one dimension of a matrix.
//
// An Axis owns its pointer and index buffers. Construction validates the
// per-axis invariants; a constructed Axis is immutable.
type Axis struct {
	order     int
	dimension uint64
	inOrder   bool
	pointer   *dtype.Buffer
	index     *dtype.Buffer
	nindex    uint64
}

// NewAxis assembles an axis from raw buffers, taking ownership of both.
// Either buffer may be nil; the combination determines the axis kind.
// nindex is the index entry count; for axes without an index buffer it must
// equal dimension.
func NewAxis(order int, dimension uint64, inOrder bool, pointer, index *dtype.Buffer, nindex uint64) (Axis, error) {
	a := Axis{
		order:     order,
		dimension: dimension,
		inOrder:   inOrder,
		pointer:   pointer,
		index:     index,
		nindex:    nindex,
	}
	if err := a.validate(); err != nil {
		return Axis{}, err
	}
	return a, nil
}

// FullAxis returns a dense axis covering 0..dimension-1.
func FullAxis(order int, dimension uint64) Axis {
	return Axis{order: order, dimension: dimension, inOrder: true, nindex: dimension}
}

// SparseAxis returns an axis backed by a pointer buffer of dimension+1
// offsets. Ownership of pointer transfers to the axis.
func SparseAxis(order int, dimension uint64, pointer *dtype.Buffer) (Axis, error) {
	return NewAxis(order, dimension, true, pointer, nil, dimension)
}

// IndexAxis returns an axis backed by a flat coordinate list.
// Ownership of index transfers to the axis.
func IndexAxis(order int, dimension uint64, index *dtype.Buffer, inOrder bool) (Axis, error) {
	return NewAxis(order, dimension, inOrder, nil, index, uint64(index.Len()))
}

// HyperAxis returns an axis listing non-empty groups via index plus their
// offsets via pointer. Ownership of both buffers transfers to the axis.
func HyperAxis(order int, dimension uint64, pointer, index *dtype.Buffer) (Axis, error) {
	return NewAxis(order, dimension, true, pointer, index, uint64(index.Len()))
}

func (a *Axis) validate() error {
	kind := a.Kind()

	if !a.inOrder && kind != KindIndex {
		return &ErrInvalidAxis{Axis: a.order, Reason: "in_order must be true for " + kind.String() + " axes"}
	}

	if a.index != nil {
		if uint64(a.index.Len()) != a.nindex {
			return &ErrInvalidAxis{
				Axis:   a.order,
				Reason: "index buffer length does not match nindex",
			}
		}
		if !a.index.Tag().Indexable() {
			return &ErrInvalidAxis{Axis: a.order, Reason: "index buffer has non-integer element type " + a.index.Tag().String()}
		}
	} else if a.nindex != a.dimension {
		return &ErrInvalidAxis{Axis: a.order, Reason: "nindex must equal dimension when index is absent"}
	}

	if a.pointer != nil {
		if !a.pointer.Tag().Indexable() {
			return &ErrInvalidAxis{Axis: a.order, Reason: "pointer buffer has non-integer element type " + a.pointer.Tag().String()}
		}
		if uint64(a.pointer.Len()) != a.nindex+1 {
			return &ErrInvalidAxis{
				Axis:   a.order,
				Reason: "pointer buffer length must be nindex+1",
			}
		}
		prev := uint64(0)
		for i := 0; i < a.pointer.Len(); i++ {
			v, err := a.pointer.Uint(i)
			if err != nil {
				return &ErrInvalidAxis{Axis: a.order, Reason: "undecodable pointer entry", cause: err}
			}
			if i == 0 && v != 0 {
				return &ErrInvalidAxis{Axis: a.order, Reason: "pointer buffer must start at 0"}
			}
			if v < prev {
				return &ErrInvalidAxis{Axis: a.order, Reason: "pointer buffer must be monotonically non-decreasing"}
			}
			prev = v
		}
	}

	return nil
}

// Kind derives the axis kind from buffer presence.
func (a *Axis) Kind() Kind {
	switch {
	case a.pointer != nil && a.index == nil:
		return KindSparse
	case a.pointer != nil:
		return KindHyper
	case a.index != nil:
		return KindIndex
	default:
		return KindFull
	}
}

// Order is the logical dimension this axis stores (0 = rows for a matrix
// held by row). Across all axes of a matrix the orders form a permutation.
func (a *Axis) Order() int { return a.order }

// Dimension is the logical extent of this axis.
func (a *Axis) Dimension() uint64 { return a.dimension }

// InOrder reports whether index values along this axis are sorted within
// each parent group.
func (a *Axis) InOrder() bool { return a.inOrder }

// Pointer returns the offsets buffer, or nil for Index and Full axes.
func (a *Axis) Pointer() *dtype.Buffer { return a.pointer }

// Index returns the coordinate buffer, or nil for Sparse and Full axes.
func (a *Axis) Index() *dtype.Buffer { return a.index }

// NIndex is the index entry count, or the fixed group size (dimension) when
// no index is present.
func (a *Axis) NIndex() uint64 { return a.nindex }

func (a *Axis) clone() Axis {
	c := *a
	c.pointer = a.pointer.Clone()
	c.index = a.index.Clone()
	return c
}
