package convert

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/binsparse/dtype"
	"github.com/hupe1980/binsparse/internal/conv"
	"github.com/hupe1980/binsparse/matrix"
)

// rank2Entries enumerates the structurally present entries of a rank-2
// container as parallel logical (row, col) coordinate slices, in storage
// order. Entry i corresponds to value i of a non-iso value buffer.
// Every coordinate is bounds-checked against its declared dimension.
func rank2Entries(src *matrix.Matrix) (rows, cols []uint64, err error) {
	ax0, ax1 := src.Axis(0), src.Axis(1)

	var primary, secondary []uint64
	switch {
	case ax0.Kind() == matrix.KindIndex && ax1.Kind() == matrix.KindIndex:
		if primary, err = ax0.Index().AsUint64s(); err != nil {
			return nil, nil, err
		}
		if secondary, err = ax1.Index().AsUint64s(); err != nil {
			return nil, nil, err
		}

	case (ax0.Kind() == matrix.KindSparse || ax0.Kind() == matrix.KindHyper) && ax1.Kind() == matrix.KindIndex:
		offsets, err := ax0.Pointer().AsUint64s()
		if err != nil {
			return nil, nil, err
		}
		var groups []uint64
		if ax0.Kind() == matrix.KindHyper {
			if groups, err = ax0.Index().AsUint64s(); err != nil {
				return nil, nil, err
			}
		}
		primary = make([]uint64, 0, src.NVals())
		for g := 0; g+1 < len(offsets); g++ {
			id := uint64(g)
			if groups != nil {
				id = groups[g]
			}
			for n := offsets[g]; n < offsets[g+1]; n++ {
				primary = append(primary, id)
			}
		}
		if secondary, err = ax1.Index().AsUint64s(); err != nil {
			return nil, nil, err
		}

	case ax0.Kind() == matrix.KindIndex && ax1.Kind() == matrix.KindFull:
		listed, err := ax0.Index().AsUint64s()
		if err != nil {
			return nil, nil, err
		}
		inner := ax1.Dimension()
		primary = make([]uint64, 0, uint64(len(listed))*inner)
		secondary = make([]uint64, 0, uint64(len(listed))*inner)
		for _, id := range listed {
			for c := uint64(0); c < inner; c++ {
				primary = append(primary, id)
				secondary = append(secondary, c)
			}
		}

	default:
		return nil, nil, &ErrUnsupportedConversion{From: src.Format(), To: matrix.FormatCOO}
	}

	for _, v := range primary {
		if v >= ax0.Dimension() {
			return nil, nil, &matrix.ErrDimensionMismatch{Axis: ax0.Order(), Coordinate: v, Dimension: ax0.Dimension()}
		}
	}
	for _, v := range secondary {
		if v >= ax1.Dimension() {
			return nil, nil, &matrix.ErrDimensionMismatch{Axis: ax1.Order(), Coordinate: v, Dimension: ax1.Dimension()}
		}
	}

	if ax0.Order() == 0 {
		return primary, secondary, nil
	}
	return secondary, primary, nil
}

// countingSort computes a stable counting sort of keys over [0,dim).
// It returns the group offsets (dim+1 entries, first 0) and the permutation
// such that output position j takes input entry perm[j]. Keys must already
// be bounds-checked. The counting phase is partitioned across goroutines
// for large inputs; results are identical to the serial path.
func countingSort(keys []uint64, dim int, parallelism int) (offsets []uint64, perm []int) {
	counts := make([]uint64, dim)

	if len(keys) >= parallelThreshold && parallelism > 1 {
		chunks := parallelism
		local := make([][]uint64, chunks)
		chunkSize := (len(keys) + chunks - 1) / chunks

		var g errgroup.Group
		for ci := 0; ci < chunks; ci++ {
			lo := ci * chunkSize
			hi := min(lo+chunkSize, len(keys))
			if lo >= hi {
				break
			}
			ci := ci
			g.Go(func() error {
				hist := make([]uint64, dim)
				for _, k := range keys[lo:hi] {
					hist[k]++
				}
				local[ci] = hist
				return nil
			})
		}
		_ = g.Wait() // workers cannot fail

		for _, hist := range local {
			for k, c := range hist {
				counts[k] += c
			}
		}
	} else {
		for _, k := range keys {
			counts[k]++
		}
	}

	offsets = make([]uint64, dim+1)
	for k := 0; k < dim; k++ {
		offsets[k+1] = offsets[k] + counts[k]
	}

	next := make([]uint64, dim)
	copy(next, offsets[:dim])
	perm = make([]int, len(keys))
	for i, k := range keys {
		perm[next[k]] = i
		next[k]++
	}
	return offsets, perm
}

// gatherValues reorders a value buffer by perm. Iso and pattern-only value
// buffers are structure-independent and pass through as copies.
func gatherValues(src *matrix.Matrix, perm []int) (*dtype.Buffer, error) {
	if src.Values() == nil || src.Iso() {
		return src.Values().Clone(), nil
	}
	return src.Values().Gather(perm)
}

func toCOO(src *matrix.Matrix, opts *options) (*matrix.Matrix, error) {
	if src.Rank() != 2 {
		return nil, &ErrUnsupportedConversion{From: src.Format(), To: matrix.FormatCOO}
	}
	if isDense2(src) {
		return sparsifyToCOO(src, opts)
	}
	rows, cols, err := rank2Entries(src)
	if err != nil {
		return nil, err
	}

	idxTag := indexTag(src)
	rowind, err := dtype.FromUint64s(idxTag, rows)
	if err != nil {
		return nil, err
	}
	colind, err := dtype.FromUint64s(idxTag, cols)
	if err != nil {
		return nil, err
	}
	values := src.Values().Clone()

	m, err := matrix.NewCOO(src.Dim(0), src.Dim(1), rowind, colind, values)
	if err != nil {
		return nil, err
	}
	return withMetadata(m, src)
}

func toCompressed(src *matrix.Matrix, opts *options, byRow bool) (*matrix.Matrix, error) {
	if src.Rank() != 2 {
		want := matrix.FormatCSR
		if !byRow {
			want = matrix.FormatCSC
		}
		return nil, &ErrUnsupportedConversion{From: src.Format(), To: want}
	}
	// A hyper container with every group present compacts to sparse by
	// dropping its group list; the pointer carries over unchanged.
	if (src.Format() == matrix.FormatDCSR && byRow) || (src.Format() == matrix.FormatDCSC && !byRow) {
		return hyperToSparse(src)
	}
	if isDense2(src) {
		coo, err := sparsifyToCOO(src, opts)
		if err != nil {
			return nil, err
		}
		return toCompressed(coo, opts, byRow)
	}

	rows, cols, err := rank2Entries(src)
	if err != nil {
		return nil, err
	}

	primary, secondary := rows, cols
	pdim := src.Dim(0)
	if !byRow {
		primary, secondary = cols, rows
		pdim = src.Dim(1)
	}
	dim, err := conv.Uint64ToInt(pdim)
	if err != nil {
		return nil, err
	}

	offsets, perm := countingSort(primary, dim, opts.parallelism)

	sorted := make([]uint64, len(secondary))
	for j, i := range perm {
		sorted[j] = secondary[i]
	}

	ptr, err := dtype.FromUint64s(pointerTag(src), offsets)
	if err != nil {
		return nil, err
	}
	ind, err := dtype.FromUint64s(indexTag(src), sorted)
	if err != nil {
		return nil, err
	}
	values, err := gatherValues(src, perm)
	if err != nil {
		return nil, err
	}

	var m *matrix.Matrix
	if byRow {
		m, err = matrix.NewCSR(src.Dim(0), src.Dim(1), ptr, ind, values)
	} else {
		m, err = matrix.NewCSC(src.Dim(0), src.Dim(1), ptr, ind, values)
	}
	if err != nil {
		return nil, err
	}
	return withMetadata(m, src)
}

// hyperToSparse drops the group list of a hyper outer axis. Legal only when
// every group 0..dimension-1 is listed; gaps would silently become empty
// groups, which the caller did not ask for.
func hyperToSparse(src *matrix.Matrix) (*matrix.Matrix, error) {
	ax0 := src.Axis(0)
	groups, err := ax0.Index().AsUint64s()
	if err != nil {
		return nil, err
	}

	present := roaring64.New()
	for _, g := range groups {
		if g >= ax0.Dimension() {
			return nil, &matrix.ErrDimensionMismatch{Axis: ax0.Order(), Coordinate: g, Dimension: ax0.Dimension()}
		}
		present.Add(g)
	}
	if present.GetCardinality() != ax0.Dimension() {
		target := matrix.FormatCSR
		if src.Format() == matrix.FormatDCSC {
			target = matrix.FormatCSC
		}
		return nil, &ErrLossyConversion{
			From:   src.Format(),
			To:     target,
			Reason: "hyper axis has absent groups",
		}
	}

	ptr := ax0.Pointer().Clone()
	ind := src.Axis(1).Index().Clone()
	values := src.Values().Clone()

	var m *matrix.Matrix
	if src.Format() == matrix.FormatDCSR {
		m, err = matrix.NewCSR(src.Dim(0), src.Dim(1), ptr, ind, values)
	} else {
		m, err = matrix.NewCSC(src.Dim(0), src.Dim(1), ptr, ind, values)
	}
	if err != nil {
		return nil, err
	}
	return withMetadata(m, src)
}

func toHyper(src *matrix.Matrix, opts *options, byRow bool) (*matrix.Matrix, error) {
	want := matrix.FormatCSR
	if !byRow {
		want = matrix.FormatCSC
	}
	if src.Rank() != 2 {
		target := matrix.FormatDCSR
		if !byRow {
			target = matrix.FormatDCSC
		}
		return nil, &ErrUnsupportedConversion{From: src.Format(), To: target}
	}
	// Build the matching compressed layout first, then compact empty groups.
	compressed := src
	if src.Format() != want {
		var err error
		if compressed, err = toCompressed(src, opts, byRow); err != nil {
			return nil, err
		}
	}

	offsets, err := compressed.Axis(0).Pointer().AsUint64s()
	if err != nil {
		return nil, err
	}

	var listed []uint64
	compact := []uint64{0}
	for g := 0; g+1 < len(offsets); g++ {
		if offsets[g+1] > offsets[g] {
			listed = append(listed, uint64(g))
			compact = append(compact, offsets[g+1])
		}
	}

	groupPtr, err := dtype.FromUint64s(compressed.PointerType(), compact)
	if err != nil {
		return nil, err
	}
	groupInd, err := dtype.FromUint64s(indexTag(compressed), listed)
	if err != nil {
		return nil, err
	}
	ind := compressed.Axis(1).Index().Clone()
	values := compressed.Values().Clone()

	var m *matrix.Matrix
	if byRow {
		m, err = matrix.NewDCSR(src.Dim(0), src.Dim(1), groupPtr, groupInd, ind, values)
	} else {
		m, err = matrix.NewDCSC(src.Dim(0), src.Dim(1), groupPtr, groupInd, ind, values)
	}
	if err != nil {
		return nil, err
	}
	return withMetadata(m, src)
}

func isDense2(src *matrix.Matrix) bool {
	f := src.Format()
	return f == matrix.FormatDenseRowMajor || f == matrix.FormatDenseColMajor
}

// withMetadata carries the opaque metadata blob onto a converted container.
func withMetadata(m, src *matrix.Matrix) (*matrix.Matrix, error) {
	if src.Metadata() == nil {
		return m, nil
	}
	axes := make([]matrix.Axis, m.Rank())
	for k := 0; k < m.Rank(); k++ {
		a := m.Axis(k)
		var err error
		axes[k], err = matrix.NewAxis(a.Order(), a.Dimension(), a.InOrder(), a.Pointer(), a.Index(), a.NIndex())
		if err != nil {
			return nil, err
		}
	}
	return matrix.New(axes, m.Values(), m.NVals(), m.Iso(), cloneMetadata(src))
}
