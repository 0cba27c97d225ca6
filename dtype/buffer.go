package dtype

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

var (
	// ErrOverflow is returned when a value does not fit the element type.
	ErrOverflow = errors.New("dtype: value overflows element type")
	// ErrNotAddressable is returned for per-element access on sub-byte,
	// None or User typed buffers.
	ErrNotAddressable = errors.New("dtype: element type is not byte-addressable")
)

// Buffer is an owned, length-tracked element buffer.
//
// A Buffer has exactly one owner at a time; passing a Buffer into a matrix
// constructor or receiving one from a conversion transfers ownership. Use
// Clone for an independent copy. All typed access goes through the tag-keyed
// decode methods below; callers never reinterpret the raw bytes themselves.
//
// Layout is little-endian regardless of host byte order, matching the
// persisted representation.
type Buffer struct {
	tag  TypeCode
	n    int
	data []byte
}

// NewBuffer returns a zero-filled buffer of n elements.
func NewBuffer(tag TypeCode, n int) (*Buffer, error) {
	if !tag.Valid() {
		return nil, fmt.Errorf("dtype: invalid type code %d", uint8(tag))
	}
	if n < 0 {
		return nil, fmt.Errorf("dtype: negative element count %d", n)
	}
	size := tag.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotAddressable, tag)
	}
	return &Buffer{tag: tag, n: n, data: make([]byte, n*size)}, nil
}

// FromBytes wraps raw little-endian bytes as a buffer of n elements.
// The buffer takes ownership of data. For byte-addressable types the length
// must be exactly n*Size; packed (sub-byte) and User payloads are accepted
// as opaque bytes with the caller-supplied count.
func FromBytes(tag TypeCode, n int, data []byte) (*Buffer, error) {
	if !tag.Valid() {
		return nil, fmt.Errorf("dtype: invalid type code %d", uint8(tag))
	}
	if n < 0 {
		return nil, fmt.Errorf("dtype: negative element count %d", n)
	}
	if size := tag.Size(); size > 0 && len(data) != n*size {
		return nil, fmt.Errorf("dtype: %s buffer holds %d bytes, want %d for %d elements",
			tag, len(data), n*size, n)
	}
	return &Buffer{tag: tag, n: n, data: data}, nil
}

// FromUint64s encodes vals into a buffer of the given indexable type.
// Returns ErrOverflow if any value does not fit.
func FromUint64s(tag TypeCode, vals []uint64) (*Buffer, error) {
	if !tag.Indexable() {
		return nil, fmt.Errorf("%w: %s", ErrNotAddressable, tag)
	}
	b, err := NewBuffer(tag, len(vals))
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if err := b.SetUint(i, v); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// FromFloat64s encodes vals as a Float64 buffer.
func FromFloat64s(vals []float64) *Buffer {
	data := make([]byte, len(vals)*8)
	for i, v := range vals {
		binary.LittleEndian.PutUint64(data[i*8:], math.Float64bits(v))
	}
	return &Buffer{tag: Float64, n: len(vals), data: data}
}

// FromFloat32s encodes vals as a Float32 buffer.
func FromFloat32s(vals []float32) *Buffer {
	data := make([]byte, len(vals)*4)
	for i, v := range vals {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}
	return &Buffer{tag: Float32, n: len(vals), data: data}
}

// Tag returns the element type code.
func (b *Buffer) Tag() TypeCode { return b.tag }

// Len returns the element count.
func (b *Buffer) Len() int {
	if b == nil {
		return 0
	}
	return b.n
}

// Bytes returns the raw little-endian payload. The slice is owned by the
// buffer; callers must not retain it past the buffer's lifetime.
func (b *Buffer) Bytes() []byte { return b.data }

// Clone returns an independent copy.
func (b *Buffer) Clone() *Buffer {
	if b == nil {
		return nil
	}
	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Buffer{tag: b.tag, n: b.n, data: data}
}

// Uint decodes element i of an integer buffer as an unsigned value.
// This is the single decode point for all coordinate and offset access.
func (b *Buffer) Uint(i int) (uint64, error) {
	if i < 0 || i >= b.n {
		return 0, fmt.Errorf("dtype: index %d out of range [0,%d)", i, b.n)
	}
	switch b.tag {
	case Uint8:
		return uint64(b.data[i]), nil
	case Uint16:
		return uint64(binary.LittleEndian.Uint16(b.data[i*2:])), nil
	case Uint32:
		return uint64(binary.LittleEndian.Uint32(b.data[i*4:])), nil
	case Uint64:
		return binary.LittleEndian.Uint64(b.data[i*8:]), nil
	case Int8:
		v := int8(b.data[i])
		if v < 0 {
			return 0, fmt.Errorf("dtype: negative coordinate %d at index %d", v, i)
		}
		return uint64(v), nil
	case Int16:
		v := int16(binary.LittleEndian.Uint16(b.data[i*2:]))
		if v < 0 {
			return 0, fmt.Errorf("dtype: negative coordinate %d at index %d", v, i)
		}
		return uint64(v), nil
	case Int32:
		v := int32(binary.LittleEndian.Uint32(b.data[i*4:]))
		if v < 0 {
			return 0, fmt.Errorf("dtype: negative coordinate %d at index %d", v, i)
		}
		return uint64(v), nil
	case Int64:
		v := int64(binary.LittleEndian.Uint64(b.data[i*8:]))
		if v < 0 {
			return 0, fmt.Errorf("dtype: negative coordinate %d at index %d", v, i)
		}
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s", ErrNotAddressable, b.tag)
	}
}

// SetUint encodes v into element i of an integer buffer.
// Returns ErrOverflow if v does not fit the element type.
func (b *Buffer) SetUint(i int, v uint64) error {
	if i < 0 || i >= b.n {
		return fmt.Errorf("dtype: index %d out of range [0,%d)", i, b.n)
	}
	if !b.tag.Indexable() {
		return fmt.Errorf("%w: %s", ErrNotAddressable, b.tag)
	}
	if v > b.tag.MaxUint() {
		return fmt.Errorf("%w: %d does not fit %s", ErrOverflow, v, b.tag)
	}
	switch b.tag {
	case Uint8, Int8:
		b.data[i] = byte(v)
	case Uint16, Int16:
		binary.LittleEndian.PutUint16(b.data[i*2:], uint16(v))
	case Uint32, Int32:
		binary.LittleEndian.PutUint32(b.data[i*4:], uint32(v))
	case Uint64, Int64:
		binary.LittleEndian.PutUint64(b.data[i*8:], v)
	}
	return nil
}

// AsUint64s decodes the whole buffer into a fresh []uint64.
func (b *Buffer) AsUint64s() ([]uint64, error) {
	if b == nil {
		return nil, nil
	}
	out := make([]uint64, b.n)
	for i := range out {
		v, err := b.Uint(i)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// Elem returns the raw bytes of element i as a view into the buffer.
func (b *Buffer) Elem(i int) ([]byte, error) {
	size := b.tag.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotAddressable, b.tag)
	}
	if i < 0 || i >= b.n {
		return nil, fmt.Errorf("dtype: index %d out of range [0,%d)", i, b.n)
	}
	return b.data[i*size : (i+1)*size], nil
}

// ElemEqual reports whether element i equals the given raw element bytes.
func (b *Buffer) ElemEqual(i int, elem []byte) (bool, error) {
	e, err := b.Elem(i)
	if err != nil {
		return false, err
	}
	return bytes.Equal(e, elem), nil
}

// Gather returns a new buffer with out[i] = b[perm[i]].
// Used by conversions to reorder value buffers without interpreting them.
func (b *Buffer) Gather(perm []int) (*Buffer, error) {
	size := b.tag.Size()
	if size == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotAddressable, b.tag)
	}
	data := make([]byte, len(perm)*size)
	for i, src := range perm {
		if src < 0 || src >= b.n {
			return nil, fmt.Errorf("dtype: gather index %d out of range [0,%d)", src, b.n)
		}
		copy(data[i*size:], b.data[src*size:(src+1)*size])
	}
	return &Buffer{tag: b.tag, n: len(perm), data: data}, nil
}

// Equal reports whether two buffers have the same tag, length and payload.
func (b *Buffer) Equal(other *Buffer) bool {
	if b == nil || other == nil {
		return b.Len() == 0 && other.Len() == 0
	}
	return b.tag == other.tag && b.n == other.n && bytes.Equal(b.data, other.data)
}
