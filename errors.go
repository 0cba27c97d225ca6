package binsparse

import (
	"errors"
	"fmt"

	"github.com/hupe1980/binsparse/datastore"
	"github.com/hupe1980/binsparse/matrix"
)

var (
	// ErrNotFound is returned by Load when no container exists under the
	// given name.
	ErrNotFound = errors.New("container not found")
)

// StorageError indicates a failure at the storage boundary during Save or
// Load. Op names the failing operation and Name the array or attribute
// document involved.
//
// The original underlying error can be accessed via errors.Unwrap.
type StorageError struct {
	Op    string
	Name  string
	cause error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Name, e.cause)
}

func (e *StorageError) Unwrap() error { return e.cause }

// ErrMalformedAttrs indicates an attribute document that decoded but does
// not describe a loadable container.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrMalformedAttrs struct {
	Name   string
	Reason string
	cause  error
}

func (e *ErrMalformedAttrs) Error() string {
	return fmt.Sprintf("malformed attributes for %q: %s", e.Name, e.Reason)
}

func (e *ErrMalformedAttrs) Unwrap() error { return e.cause }

func storageError(op, name string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, datastore.ErrNotFound) {
		return fmt.Errorf("%w: %s %q: %w", ErrNotFound, op, name, err)
	}
	return &StorageError{Op: op, Name: name, cause: err}
}

// reconstructError classifies a failure to rebuild a Matrix from loaded
// buffers. Descriptor and classification errors stay typed so callers can
// match them; anything else is a malformed attribute document.
func reconstructError(name string, err error) error {
	if err == nil {
		return nil
	}
	var ia *matrix.ErrInvalidAxis
	var rv *matrix.ErrRuleViolation
	var dm *matrix.ErrDimensionMismatch
	var im *matrix.ErrInvalidMatrix
	if errors.As(err, &ia) || errors.As(err, &rv) || errors.As(err, &dm) || errors.As(err, &im) {
		return err
	}
	return &ErrMalformedAttrs{Name: name, Reason: "stored buffers do not form a valid container", cause: err}
}
