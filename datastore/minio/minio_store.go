package minio

import (
	"bytes"
	"context"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/minio/minio-go/v7"

	"github.com/hupe1980/binsparse/datastore"
)

const attrsSuffix = ".attrs"

// Store implements datastore.Store for MinIO and S3-compatible storage.
// Each named array is one object holding the binary array encoding;
// attribute documents sit next to their name with an ".attrs" suffix.
type Store struct {
	client      *minio.Client
	bucket      string
	prefix      string
	compression datastore.Compression
}

// Option configures a Store.
type Option func(*Store)

// WithCompression selects the block compression for array payloads.
func WithCompression(c datastore.Compression) Option {
	return func(s *Store) {
		s.compression = c
	}
}

// NewStore creates a new MinIO array store.
// bucket is the bucket name; rootPrefix is prepended to all keys
// (e.g. "matrices/").
func NewStore(client *minio.Client, bucket, rootPrefix string, optFns ...Option) *Store {
	s := &Store{
		client:      client,
		bucket:      bucket,
		prefix:      rootPrefix,
		compression: datastore.CompressionZSTD,
	}
	for _, fn := range optFns {
		fn(s)
	}
	return s
}

func (s *Store) key(name string) string {
	return path.Join(s.prefix, name)
}

// PutArray writes an array object.
func (s *Store) PutArray(ctx context.Context, name string, arr datastore.Array) error {
	data, err := datastore.EncodeArray(arr, s.compression)
	if err != nil {
		return err
	}
	return s.putObject(ctx, s.key(name), data)
}

// GetArray reads an array object.
func (s *Store) GetArray(ctx context.Context, name string) (datastore.Array, error) {
	data, err := s.getObject(ctx, s.key(name))
	if err != nil {
		return datastore.Array{}, err
	}
	return datastore.DecodeArray(data)
}

// PutAttrs writes the attribute document.
func (s *Store) PutAttrs(ctx context.Context, name string, data []byte) error {
	return s.putObject(ctx, s.key(name)+attrsSuffix, data)
}

// GetAttrs reads the attribute document.
func (s *Store) GetAttrs(ctx context.Context, name string) ([]byte, error) {
	return s.getObject(ctx, s.key(name)+attrsSuffix)
}

// Delete removes the array object and its attribute document.
func (s *Store) Delete(ctx context.Context, name string) error {
	for _, key := range []string{s.key(name), s.key(name) + attrsSuffix} {
		err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
		if err != nil && !isNotFound(err) {
			return err
		}
	}
	return nil
}

// List returns all array names with the given prefix.
func (s *Store) List(ctx context.Context, prefix string) ([]string, error) {
	// path.Join drops trailing slashes, which would widen the match
	// (listing "m/" must not return "m2/values").
	fullPrefix := s.key(prefix)
	if strings.HasSuffix(prefix, "/") {
		fullPrefix += "/"
	}

	var names []string
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    fullPrefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, obj.Err
		}
		if strings.HasSuffix(obj.Key, attrsSuffix) {
			continue
		}
		// Strip our root prefix
		name := strings.TrimPrefix(obj.Key, s.prefix)
		name = strings.TrimPrefix(name, "/")
		if name != "" {
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names, nil
}

func (s *Store) putObject(ctx context.Context, key string, data []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	return err
}

func (s *Store) getObject(ctx context.Context, key string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if isNotFound(err) {
			return nil, datastore.ErrNotFound
		}
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNotFound(err) {
			return nil, datastore.ErrNotFound
		}
		return nil, err
	}
	return data, nil
}

func isNotFound(err error) bool {
	errResp := minio.ToErrorResponse(err)
	return errResp.Code == "NoSuchKey" || errResp.Code == "NotFound"
}
