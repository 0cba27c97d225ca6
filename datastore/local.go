package datastore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/binsparse/internal/mmap"
)

const attrsSuffix = ".attrs"

// LocalStore implements Store on the local file system. Each named array is
// one file holding the binary array encoding; attribute documents sit next
// to their name with an ".attrs" suffix. Writes go through a temp file plus
// rename so readers never observe a partial array.
type LocalStore struct {
	root        string
	compression Compression
}

// LocalOption configures a LocalStore.
type LocalOption func(*LocalStore)

// WithCompression selects the block compression for array payloads.
// Reads are self-describing; stores with different settings can share a
// directory.
func WithCompression(c Compression) LocalOption {
	return func(s *LocalStore) {
		s.compression = c
	}
}

// NewLocalStore creates a LocalStore rooted at the given directory.
func NewLocalStore(root string, optFns ...LocalOption) *LocalStore {
	s := &LocalStore{root: root, compression: CompressionZSTD}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

func (s *LocalStore) path(name string) string {
	return filepath.Join(s.root, filepath.FromSlash(name))
}

// PutArray writes the array atomically.
func (s *LocalStore) PutArray(_ context.Context, name string, arr Array) error {
	data, err := EncodeArray(arr, s.compression)
	if err != nil {
		return err
	}
	return s.writeFile(s.path(name), data)
}

// GetArray reads a named array. Uncompressed payloads are decoded straight
// out of a read-only mapping.
func (s *LocalStore) GetArray(_ context.Context, name string) (Array, error) {
	m, err := mmap.Open(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Array{}, ErrNotFound
		}
		return Array{}, err
	}
	defer m.Close()

	// DecodeArray copies the payload out, so the mapping can be dropped.
	return DecodeArray(m.Data)
}

// PutAttrs writes the attribute document atomically.
func (s *LocalStore) PutAttrs(_ context.Context, name string, data []byte) error {
	return s.writeFile(s.path(name)+attrsSuffix, data)
}

// GetAttrs reads the attribute document.
func (s *LocalStore) GetAttrs(_ context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name) + attrsSuffix)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

// Delete removes the array file and its attribute document.
func (s *LocalStore) Delete(_ context.Context, name string) error {
	if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.Remove(s.path(name) + attrsSuffix); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// List returns array names under the root matching the prefix, as
// slash-separated names relative to the root.
func (s *LocalStore) List(_ context.Context, prefix string) ([]string, error) {
	var names []string
	err := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || strings.HasSuffix(path, attrsSuffix) {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(rel)
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (s *LocalStore) writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
