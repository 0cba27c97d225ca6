package matrix

import (
	"fmt"

	"github.com/hupe1980/binsparse/dtype"
)

// Matrix is a rank-N container of axis descriptors plus one value buffer.
//
// A Matrix exclusively owns all axis buffers and its value buffer.
// Construction validates the whole container; conversions produce new
// containers instead of mutating in place, so no partially valid Matrix is
// ever observable.
type Matrix struct {
	axes        []Axis
	valueType   dtype.TypeCode
	pointerType dtype.TypeCode
	indexType   dtype.TypeCode
	iso         bool
	values      *dtype.Buffer
	nvals       uint64
	metadata    []byte
}

// New assembles and validates a container from axes (in storage order,
// outermost first) and a value buffer. Ownership of all buffers transfers to
// the returned Matrix. values may be nil for pattern-only containers; iso
// containers carry a single stored value applying to every present entry.
// metadata is an opaque blob passed through unexamined.
func New(axes []Axis, values *dtype.Buffer, nvals uint64, iso bool, metadata []byte) (*Matrix, error) {
	m := &Matrix{
		axes:      axes,
		values:    values,
		nvals:     nvals,
		iso:       iso,
		metadata:  metadata,
		valueType: dtype.None,
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Matrix) validate() error {
	// Axis orders must form a permutation of 0..rank-1.
	seen := make([]bool, len(m.axes))
	for i := range m.axes {
		o := m.axes[i].Order()
		if o < 0 || o >= len(m.axes) || seen[o] {
			return &ErrInvalidMatrix{Reason: fmt.Sprintf("axis orders are not a permutation (axis %d has order %d)", i, o)}
		}
		seen[o] = true
	}

	// Pointer and index element types must be uniform across axes.
	for i := range m.axes {
		if p := m.axes[i].Pointer(); p != nil {
			if m.pointerType == dtype.None {
				m.pointerType = p.Tag()
			} else if m.pointerType != p.Tag() {
				return &ErrInvalidMatrix{Reason: "pointer element types differ across axes"}
			}
		}
		if idx := m.axes[i].Index(); idx != nil {
			if m.indexType == dtype.None {
				m.indexType = idx.Tag()
			} else if m.indexType != idx.Tag() {
				return &ErrInvalidMatrix{Reason: "index element types differ across axes"}
			}
		}
	}

	if _, err := Classify(m.axes); err != nil {
		return err
	}

	if err := m.validateCounts(); err != nil {
		return err
	}

	// Value buffer consistency.
	if m.values != nil {
		m.valueType = m.values.Tag()
		switch {
		case m.iso && m.values.Len() != 1:
			return &ErrInvalidMatrix{Reason: fmt.Sprintf("iso container must hold exactly one value, got %d", m.values.Len())}
		case !m.iso && uint64(m.values.Len()) != m.nvals:
			return &ErrInvalidMatrix{Reason: fmt.Sprintf("value buffer holds %d entries, want nvals=%d", m.values.Len(), m.nvals)}
		}
	} else if m.iso {
		return &ErrInvalidMatrix{Reason: "iso container requires a value buffer"}
	}

	return nil
}

// validateCounts walks the axes outermost-in and checks that the structural
// entry count implied by the encoding equals nvals.
func (m *Matrix) validateCounts() error {
	if len(m.axes) == 0 {
		if m.nvals > 1 {
			return &ErrInvalidMatrix{Reason: fmt.Sprintf("scalar container has nvals=%d", m.nvals)}
		}
		return nil
	}

	n := uint64(1)
	for i := range m.axes {
		a := &m.axes[i]
		switch a.Kind() {
		case KindFull:
			n *= a.Dimension()
		case KindSparse, KindHyper:
			last, err := a.Pointer().Uint(a.Pointer().Len() - 1)
			if err != nil {
				return &ErrInvalidMatrix{Reason: "undecodable pointer buffer", cause: err}
			}
			n = last
		case KindIndex:
			if i > 0 && a.NIndex() != n {
				return &ErrInvalidMatrix{
					Reason: fmt.Sprintf("axis %d index holds %d entries but parent axes imply %d", i, a.NIndex(), n),
				}
			}
			n = a.NIndex()
		}
	}
	if n != m.nvals {
		return &ErrInvalidMatrix{Reason: fmt.Sprintf("axes imply %d entries but nvals=%d", n, m.nvals)}
	}
	return nil
}

// Rank returns the number of axes.
func (m *Matrix) Rank() int { return len(m.axes) }

// Axes returns the axis descriptors in storage order, outermost first.
// The returned slice is owned by the matrix and must not be modified.
func (m *Matrix) Axes() []Axis { return m.axes }

// Axis returns the descriptor at storage position k.
func (m *Matrix) Axis(k int) *Axis { return &m.axes[k] }

// Kinds derives the per-axis kind sequence. The sequence is valid by
// construction.
func (m *Matrix) Kinds() []Kind {
	kinds := make([]Kind, len(m.axes))
	for i := range m.axes {
		kinds[i] = m.axes[i].Kind()
	}
	return kinds
}

// Format names the canonical layout of this container, or FormatCustom for
// valid but unnamed kind sequences.
func (m *Matrix) Format() Format {
	orders := make([]int, len(m.axes))
	for i := range m.axes {
		orders[i] = m.axes[i].Order()
	}
	return Recognize(m.Kinds(), orders)
}

// Dim returns the extent of the given logical dimension (not storage
// position): Dim(0) is the row count of a matrix regardless of orientation.
func (m *Matrix) Dim(logical int) uint64 {
	for i := range m.axes {
		if m.axes[i].Order() == logical {
			return m.axes[i].Dimension()
		}
	}
	return 0
}

// ValueType returns the element type of the value buffer (None if absent).
func (m *Matrix) ValueType() dtype.TypeCode { return m.valueType }

// PointerType returns the uniform element type of pointer buffers, or None
// if no axis has a pointer.
func (m *Matrix) PointerType() dtype.TypeCode { return m.pointerType }

// IndexType returns the uniform element type of index buffers, or None if no
// axis has an index.
func (m *Matrix) IndexType() dtype.TypeCode { return m.indexType }

// Iso reports whether a single stored value applies to every present entry.
func (m *Matrix) Iso() bool { return m.iso }

// Values returns the value buffer (nil for pattern-only containers).
func (m *Matrix) Values() *dtype.Buffer { return m.values }

// NVals is the count of structurally present entries.
func (m *Matrix) NVals() uint64 { return m.nvals }

// Metadata returns the opaque metadata blob (may be nil). It is passed
// through unparsed.
func (m *Matrix) Metadata() []byte { return m.metadata }

// Clone returns a deep copy with freshly owned buffers.
func (m *Matrix) Clone() *Matrix {
	axes := make([]Axis, len(m.axes))
	for i := range m.axes {
		axes[i] = m.axes[i].clone()
	}
	var metadata []byte
	if m.metadata != nil {
		metadata = append([]byte(nil), m.metadata...)
	}
	return &Matrix{
		axes:        axes,
		valueType:   m.valueType,
		pointerType: m.pointerType,
		indexType:   m.indexType,
		iso:         m.iso,
		values:      m.values.Clone(),
		nvals:       m.nvals,
		metadata:    metadata,
	}
}
