package binsparse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/binsparse/convert"
	"github.com/hupe1980/binsparse/datastore"
	"github.com/hupe1980/binsparse/dtype"
	"github.com/hupe1980/binsparse/matrix"
)

// Array names under a container name. A buffer that is not materialized for
// an axis is simply not written; Load treats absence as the discriminator,
// never a separate flag.
const (
	valuesArray = "values"
)

func pointerArray(k int) string { return fmt.Sprintf("axis_%d_pointer", k) }
func indexArray(k int) string   { return fmt.Sprintf("axis_%d_index", k) }

func arrayName(name, array string) string { return name + "/" + array }

// attrsDoc is the attribute document stored next to the named arrays. It
// carries everything the buffers do not: shape, counts, type codes and the
// caller's opaque metadata.
type attrsDoc struct {
	Rank        int       `json:"rank"`
	NVals       uint64    `json:"number_of_stored_values"`
	IsoValued   bool      `json:"iso_valued,omitempty"`
	ValueType   string    `json:"value_type,omitempty"`
	PointerType string    `json:"pointer_type,omitempty"`
	IndexType   string    `json:"index_type,omitempty"`
	Axes        []axisDoc `json:"axes"`
	Metadata    []byte    `json:"metadata,omitempty"`
}

type axisDoc struct {
	Order     int    `json:"order"`
	Dimension uint64 `json:"dimension"`
	InOrder   bool   `json:"in_order"`
	NIndex    uint64 `json:"nindex"`
}

// Save persists m under name in store. Each materialized buffer becomes one
// named array (axis_<k>_pointer, axis_<k>_index, values) and the remaining
// attributes become one encoded document. Stale arrays from a previous
// container under the same name are removed, so a later Load sees exactly
// the buffers m materializes.
func Save(ctx context.Context, store datastore.Store, name string, m *matrix.Matrix, optFns ...Option) error {
	o := applyOptions(optFns)
	start := time.Now()

	written, bytes, err := save(ctx, store, name, m, o)
	if err == nil {
		err = pruneStale(ctx, store, name, written)
	}

	o.metricsCollector.RecordSave(bytes, time.Since(start), err)
	o.logger.LogSave(ctx, name, m, err)

	return err
}

func save(ctx context.Context, store datastore.Store, name string, m *matrix.Matrix, o options) (map[string]struct{}, int64, error) {
	written := make(map[string]struct{})
	var bytes int64

	put := func(array string, b *dtype.Buffer) error {
		n := arrayName(name, array)
		arr := datastore.Array{Tag: b.Tag(), Count: b.Len(), Data: b.Bytes()}
		if err := store.PutArray(ctx, n, arr); err != nil {
			return storageError("put array", n, err)
		}
		written[n] = struct{}{}
		bytes += int64(len(arr.Data))
		return nil
	}

	doc := attrsDoc{
		Rank:      m.Rank(),
		NVals:     m.NVals(),
		IsoValued: m.Iso(),
		Axes:      make([]axisDoc, 0, m.Rank()),
		Metadata:  m.Metadata(),
	}
	if m.ValueType() != dtype.None {
		doc.ValueType = m.ValueType().String()
	}
	if m.PointerType() != dtype.None {
		doc.PointerType = m.PointerType().String()
	}
	if m.IndexType() != dtype.None {
		doc.IndexType = m.IndexType().String()
	}

	for k := range m.Axes() {
		ax := m.Axis(k)
		doc.Axes = append(doc.Axes, axisDoc{
			Order:     ax.Order(),
			Dimension: ax.Dimension(),
			InOrder:   ax.InOrder(),
			NIndex:    ax.NIndex(),
		})
		if p := ax.Pointer(); p != nil {
			if err := put(pointerArray(k), p); err != nil {
				return written, bytes, err
			}
		}
		if idx := ax.Index(); idx != nil {
			if err := put(indexArray(k), idx); err != nil {
				return written, bytes, err
			}
		}
	}
	if v := m.Values(); v != nil {
		if err := put(valuesArray, v); err != nil {
			return written, bytes, err
		}
	}

	data, err := o.codec.Marshal(doc)
	if err != nil {
		return written, bytes, fmt.Errorf("encode attributes: %w", err)
	}
	if err := store.PutAttrs(ctx, name, data); err != nil {
		return written, bytes, storageError("put attrs", name, err)
	}
	bytes += int64(len(data))

	return written, bytes, nil
}

// pruneStale removes arrays under name that the latest Save did not write.
func pruneStale(ctx context.Context, store datastore.Store, name string, written map[string]struct{}) error {
	existing, err := store.List(ctx, name+"/")
	if err != nil {
		return storageError("list", name, err)
	}
	for _, n := range existing {
		if _, ok := written[n]; ok {
			continue
		}
		if err := store.Delete(ctx, n); err != nil {
			return storageError("delete", n, err)
		}
	}
	return nil
}

// Load reads the container stored under name and rebuilds the Matrix. The
// loaded container is re-validated in full; a document or buffer set that no
// longer forms a valid container fails with a typed error rather than a
// partially constructed result.
func Load(ctx context.Context, store datastore.Store, name string, optFns ...Option) (*matrix.Matrix, error) {
	o := applyOptions(optFns)
	start := time.Now()

	m, bytes, err := load(ctx, store, name, o)

	o.metricsCollector.RecordLoad(bytes, time.Since(start), err)
	o.logger.LogLoad(ctx, name, m, err)

	return m, err
}

func load(ctx context.Context, store datastore.Store, name string, o options) (*matrix.Matrix, int64, error) {
	data, err := store.GetAttrs(ctx, name)
	if err != nil {
		return nil, 0, storageError("get attrs", name, err)
	}
	bytes := int64(len(data))

	var doc attrsDoc
	if err := o.codec.Unmarshal(data, &doc); err != nil {
		return nil, bytes, &ErrMalformedAttrs{Name: name, Reason: "undecodable document", cause: err}
	}
	if doc.Rank < 0 || doc.Rank != len(doc.Axes) {
		return nil, bytes, &ErrMalformedAttrs{
			Name:   name,
			Reason: fmt.Sprintf("rank %d does not match %d axis entries", doc.Rank, len(doc.Axes)),
		}
	}

	get := func(array string) (*dtype.Buffer, error) {
		n := arrayName(name, array)
		arr, err := store.GetArray(ctx, n)
		if err != nil {
			if isNotFound(err) {
				return nil, nil
			}
			return nil, storageError("get array", n, err)
		}
		bytes += int64(len(arr.Data))
		return dtype.FromBytes(arr.Tag, arr.Count, arr.Data)
	}

	axes := make([]matrix.Axis, 0, doc.Rank)
	for k, ad := range doc.Axes {
		pointer, err := get(pointerArray(k))
		if err != nil {
			return nil, bytes, err
		}
		index, err := get(indexArray(k))
		if err != nil {
			return nil, bytes, err
		}
		ax, err := matrix.NewAxis(ad.Order, ad.Dimension, ad.InOrder, pointer, index, ad.NIndex)
		if err != nil {
			return nil, bytes, reconstructError(name, err)
		}
		axes = append(axes, ax)
	}

	values, err := get(valuesArray)
	if err != nil {
		return nil, bytes, err
	}

	m, err := matrix.New(axes, values, doc.NVals, doc.IsoValued, doc.Metadata)
	if err != nil {
		return nil, bytes, reconstructError(name, err)
	}

	return m, bytes, nil
}

// Delete removes the container stored under name, including all of its
// named arrays and the attribute document. Deleting a missing container is
// not an error.
func Delete(ctx context.Context, store datastore.Store, name string, optFns ...Option) error {
	o := applyOptions(optFns)
	start := time.Now()

	err := remove(ctx, store, name)

	o.metricsCollector.RecordDelete(time.Since(start), err)
	o.logger.LogDelete(ctx, name, err)

	return err
}

func remove(ctx context.Context, store datastore.Store, name string) error {
	arrays, err := store.List(ctx, name+"/")
	if err != nil {
		return storageError("list", name, err)
	}
	for _, n := range arrays {
		if err := store.Delete(ctx, n); err != nil {
			return storageError("delete", n, err)
		}
	}
	if err := store.Delete(ctx, name); err != nil {
		return storageError("delete", name, err)
	}
	return nil
}

// Convert rewrites src into the target canonical format with logging and
// metrics around convert.Convert. Conversion behavior itself (fill values,
// parallelism) is configured through convOpts.
func Convert(ctx context.Context, src *matrix.Matrix, target matrix.Format, convOpts []convert.Option, optFns ...Option) (*matrix.Matrix, error) {
	o := applyOptions(optFns)
	start := time.Now()

	out, err := convert.Convert(src, target, convOpts...)

	o.metricsCollector.RecordConvert(time.Since(start), err)
	o.logger.LogConvert(ctx, src.Format(), target, err)

	return out, err
}

func isNotFound(err error) bool {
	return errors.Is(err, datastore.ErrNotFound)
}
