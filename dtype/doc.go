// Package dtype defines the element type vocabulary shared by all binsparse
// buffers and the owned Buffer abstraction that carries them.
//
// Type codes are a fixed enumeration; the library treats value types as
// opaque tags and never coerces between them. Buffer is the single ownership
// boundary for pointer, index and value payloads: each buffer has one owner,
// an explicit element count and little-endian layout, and all typed access
// goes through tag-keyed decode methods.
package dtype
