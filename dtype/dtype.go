package dtype

import "fmt"

// TypeCode identifies the element type of a pointer, index or value buffer.
//
// The enumeration is fixed and shared with every binsparse binding; codes are
// stable and must not be renumbered. The library treats value types opaquely:
// it never performs numeric coercion between them.
type TypeCode uint8

const (
	// None means no values buffer is present (pattern-only matrices).
	None TypeCode = iota
	// Uint1 is a single bit.
	Uint1
	// Uint2 is a 2-bit unsigned integer.
	Uint2
	// Uint4 is a 4-bit unsigned integer.
	Uint4
	// Bool is a boolean stored as one byte.
	Bool
	Uint8
	Uint16
	Uint32
	Uint64
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	// Complex64 is a pair of float32 (real, imaginary).
	Complex64
	// Complex128 is a pair of float64 (real, imaginary).
	Complex128
	// User is a user-defined type described by container metadata.
	User
)

var typeNames = map[TypeCode]string{
	None:       "none",
	Uint1:      "uint1",
	Uint2:      "uint2",
	Uint4:      "uint4",
	Bool:       "bool",
	Uint8:      "uint8",
	Uint16:     "uint16",
	Uint32:     "uint32",
	Uint64:     "uint64",
	Int8:       "int8",
	Int16:      "int16",
	Int32:      "int32",
	Int64:      "int64",
	Float32:    "float32",
	Float64:    "float64",
	Complex64:  "complex64",
	Complex128: "complex128",
	User:       "user",
}

// Valid reports whether t is a known type code.
func (t TypeCode) Valid() bool {
	_, ok := typeNames[t]
	return ok
}

// String returns the stable textual name of the type code.
func (t TypeCode) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("typecode(%d)", uint8(t))
}

// Parse returns the type code for its stable textual name.
func Parse(name string) (TypeCode, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return None, fmt.Errorf("dtype: unknown type name %q", name)
}

// Bits returns the width of one element in bits, or 0 for None and User.
func (t TypeCode) Bits() int {
	switch t {
	case Uint1:
		return 1
	case Uint2:
		return 2
	case Uint4:
		return 4
	case Bool, Uint8, Int8:
		return 8
	case Uint16, Int16:
		return 16
	case Uint32, Int32, Float32:
		return 32
	case Uint64, Int64, Float64, Complex64:
		return 64
	case Complex128:
		return 128
	default:
		return 0
	}
}

// Size returns the width of one element in bytes.
// Sub-byte types (Uint1, Uint2, Uint4), None and User return 0; buffers of
// those types are handled as opaque packed bytes with an explicit count.
func (t TypeCode) Size() int {
	bits := t.Bits()
	if bits < 8 {
		return 0
	}
	return bits / 8
}

// IsUnsigned reports whether t is an unsigned integer type (including the
// sub-byte bit types and Bool).
func (t TypeCode) IsUnsigned() bool {
	switch t {
	case Uint1, Uint2, Uint4, Bool, Uint8, Uint16, Uint32, Uint64:
		return true
	default:
		return false
	}
}

// IsSigned reports whether t is a signed integer type.
func (t TypeCode) IsSigned() bool {
	switch t {
	case Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// IsInteger reports whether t is any integer type.
func (t TypeCode) IsInteger() bool { return t.IsUnsigned() || t.IsSigned() }

// IsFloat reports whether t is a floating-point type.
func (t TypeCode) IsFloat() bool { return t == Float32 || t == Float64 }

// IsComplex reports whether t is a complex type.
func (t TypeCode) IsComplex() bool { return t == Complex64 || t == Complex128 }

// Indexable reports whether t may be used for pointer or index buffers.
// Pointers and indices must be byte-addressable integers.
func (t TypeCode) Indexable() bool {
	switch t {
	case Uint8, Uint16, Uint32, Uint64, Int8, Int16, Int32, Int64:
		return true
	default:
		return false
	}
}

// MaxUint returns the largest coordinate value representable by an indexable
// type code. It panics for non-indexable codes.
func (t TypeCode) MaxUint() uint64 {
	switch t {
	case Uint8:
		return 1<<8 - 1
	case Uint16:
		return 1<<16 - 1
	case Uint32:
		return 1<<32 - 1
	case Uint64:
		return 1<<64 - 1
	case Int8:
		return 1<<7 - 1
	case Int16:
		return 1<<15 - 1
	case Int32:
		return 1<<31 - 1
	case Int64:
		return 1<<63 - 1
	default:
		panic(fmt.Sprintf("dtype: MaxUint on non-indexable type %s", t))
	}
}
