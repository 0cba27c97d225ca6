package matrix

import (
	"github.com/hupe1980/binsparse/dtype"
)

// Bitmap is the bitmap layout: a pair of full containers with identical
// dimensions and axis order. Pattern is a Bool matrix marking structurally
// present positions; Values holds the value at every position (present or
// not).
type Bitmap struct {
	Pattern *Matrix
	Values  *Matrix
}

// NewBitmap validates and pairs a pattern matrix with a value matrix.
func NewBitmap(pattern, values *Matrix) (*Bitmap, error) {
	if pattern.ValueType() != dtype.Bool {
		return nil, &ErrInvalidMatrix{Reason: "bitmap pattern must be bool-valued, got " + pattern.ValueType().String()}
	}
	if pattern.Rank() != values.Rank() {
		return nil, &ErrInvalidMatrix{Reason: "bitmap pattern and values differ in rank"}
	}
	for i := 0; i < pattern.Rank(); i++ {
		pa, va := pattern.Axis(i), values.Axis(i)
		if pa.Kind() != KindFull || va.Kind() != KindFull {
			return nil, &ErrInvalidMatrix{Reason: "bitmap requires full axes on both matrices"}
		}
		if pa.Order() != va.Order() || pa.Dimension() != va.Dimension() {
			return nil, &ErrInvalidMatrix{Reason: "bitmap pattern and values differ in dimensions or axis order"}
		}
	}
	return &Bitmap{Pattern: pattern, Values: values}, nil
}
