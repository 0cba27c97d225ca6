package convert

import (
	"runtime"

	"github.com/hupe1980/binsparse/dtype"
	"github.com/hupe1980/binsparse/matrix"
)

// parallelThreshold is the entry count above which counting passes are
// partitioned across goroutines. Below it the serial path is faster.
const parallelThreshold = 1 << 16

type options struct {
	fill        []byte
	parallelism int
}

// Option configures a conversion.
type Option func(*options)

// WithFillValue supplies the raw element bytes that mean "empty" when
// scanning a dense container into a sparse one, and that pad absent
// positions when densifying. It is never inferred from the data.
func WithFillValue(elem []byte) Option {
	return func(o *options) {
		o.fill = elem
	}
}

// WithParallelism caps the number of goroutines used for counting passes.
// Values below 1 select runtime.NumCPU. The result is bit-identical to the
// serial path regardless of the setting.
func WithParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// Convert returns a new container holding the same entries as src in the
// target canonical format. src is never modified; a container already in the
// target format round-trips to a value-equal copy.
//
// Entry values are carried verbatim: no numeric coercion ever happens and
// the iso flag survives every structure-only transform. Pointer and index
// widths are kept; use Widths for explicit width changes.
func Convert(src *matrix.Matrix, target matrix.Format, optFns ...Option) (*matrix.Matrix, error) {
	opts := options{parallelism: runtime.NumCPU()}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.parallelism < 1 {
		opts.parallelism = runtime.NumCPU()
	}

	from := src.Format()
	if from == target {
		return src.Clone(), nil
	}

	switch target {
	case matrix.FormatCOO:
		return toCOO(src, &opts)
	case matrix.FormatCSR:
		return toCompressed(src, &opts, true)
	case matrix.FormatCSC:
		return toCompressed(src, &opts, false)
	case matrix.FormatDCSR:
		return toHyper(src, &opts, true)
	case matrix.FormatDCSC:
		return toHyper(src, &opts, false)
	case matrix.FormatDenseRowMajor:
		return densify2(src, &opts, true)
	case matrix.FormatDenseColMajor:
		return densify2(src, &opts, false)
	case matrix.FormatDenseVector:
		if from == matrix.FormatSparseVector {
			return densifyVector(src, &opts)
		}
	case matrix.FormatSparseVector:
		if from == matrix.FormatDenseVector {
			return sparsifyVector(src, &opts)
		}
	}

	return nil, &ErrUnsupportedConversion{From: from, To: target}
}

// Widths returns a copy of src with pointer and index buffers re-encoded to
// the requested element types. It fails with ErrWidthOverflow if any stored
// offset or coordinate does not fit the narrower type. Value buffers are
// never touched.
func Widths(src *matrix.Matrix, pointerType, indexType dtype.TypeCode) (*matrix.Matrix, error) {
	axes := make([]matrix.Axis, src.Rank())
	for k := 0; k < src.Rank(); k++ {
		a := src.Axis(k)
		pointer, err := reencode(a.Pointer(), pointerType)
		if err != nil {
			return nil, err
		}
		index, err := reencode(a.Index(), indexType)
		if err != nil {
			return nil, err
		}
		axes[k], err = matrix.NewAxis(a.Order(), a.Dimension(), a.InOrder(), pointer, index, a.NIndex())
		if err != nil {
			return nil, err
		}
	}
	return matrix.New(axes, src.Values().Clone(), src.NVals(), src.Iso(), cloneMetadata(src))
}

func reencode(b *dtype.Buffer, tag dtype.TypeCode) (*dtype.Buffer, error) {
	if b == nil {
		return nil, nil
	}
	if b.Tag() == tag {
		return b.Clone(), nil
	}
	vals, err := b.AsUint64s()
	if err != nil {
		return nil, err
	}
	out, err := dtype.FromUint64s(tag, vals)
	if err != nil {
		return nil, &ErrWidthOverflow{Target: tag, cause: err}
	}
	return out, nil
}

func cloneMetadata(src *matrix.Matrix) []byte {
	if src.Metadata() == nil {
		return nil
	}
	return append([]byte(nil), src.Metadata()...)
}

// pointerTag picks the element type for pointer buffers the converter has to
// invent (e.g. COO input has none). Existing widths are kept where present.
func pointerTag(src *matrix.Matrix) dtype.TypeCode {
	if t := src.PointerType(); t != dtype.None {
		return t
	}
	if t := src.IndexType(); t != dtype.None {
		return t
	}
	return dtype.Uint64
}

func indexTag(src *matrix.Matrix) dtype.TypeCode {
	if t := src.IndexType(); t != dtype.None {
		return t
	}
	if t := src.PointerType(); t != dtype.None {
		return t
	}
	return dtype.Uint64
}
