// Package conv provides safe integer type conversion utilities.
//
// These functions perform bounds checking to prevent overflow when
// converting between Go's int and the fixed-width types carried in array
// headers, dimensions and offsets read from untrusted data.
package conv
