package datastore

import (
	"context"
	"errors"

	"github.com/hupe1980/binsparse/dtype"
)

// ErrNotFound is returned when a named array or attribute document does not
// exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`.
var ErrNotFound = errors.New("datastore: not found")

// Array is one named, contiguous, typed buffer as seen at the storage
// boundary. Count is the element count; Data is the little-endian payload.
// Sub-byte and user types carry packed bytes with an explicit count.
type Array struct {
	Tag   dtype.TypeCode
	Count int
	Data  []byte
}

// Store persists and loads individual named arrays plus per-container
// attribute documents. The core calls it with a fixed naming convention and
// treats every call as an opaque blocking operation: no retries, no
// timeouts. Byte order, on-media representation and durability are the
// store's concern.
//
// Implementations must be safe for concurrent use.
type Store interface {
	// PutArray writes a named array atomically.
	PutArray(ctx context.Context, name string, arr Array) error

	// GetArray reads a named array. The returned Array owns its payload.
	GetArray(ctx context.Context, name string) (Array, error)

	// PutAttrs writes the encoded attribute document for a name.
	PutAttrs(ctx context.Context, name string, data []byte) error

	// GetAttrs reads the encoded attribute document for a name.
	GetAttrs(ctx context.Context, name string) ([]byte, error)

	// Delete removes a named array and its attribute document, if present.
	// Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the array names matching the prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}
