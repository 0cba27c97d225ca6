package convert

import (
	"errors"
	"fmt"

	"github.com/hupe1980/binsparse/dtype"
	"github.com/hupe1980/binsparse/matrix"
)

// ErrMissingFillValue is returned when a dense-to-sparse conversion is asked
// to drop "empty" elements without being told what empty means. The fill
// value is always supplied explicitly, never inferred.
var ErrMissingFillValue = errors.New("fill value required for dense to sparse conversion")

// ErrLossyConversion indicates a conversion that would discard structural
// information, e.g. compacting a hyper axis with absent groups.
type ErrLossyConversion struct {
	From   matrix.Format
	To     matrix.Format
	Reason string
}

func (e *ErrLossyConversion) Error() string {
	return fmt.Sprintf("lossy conversion %s -> %s: %s", e.From, e.To, e.Reason)
}

// ErrWidthOverflow indicates that a requested pointer/index width change
// would truncate a stored value.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrWidthOverflow struct {
	Target dtype.TypeCode
	cause  error
}

func (e *ErrWidthOverflow) Error() string {
	return fmt.Sprintf("width conversion to %s would truncate", e.Target)
}

func (e *ErrWidthOverflow) Unwrap() error { return e.cause }

// ErrUnsupportedConversion indicates a source/target pair the converter does
// not implement.
type ErrUnsupportedConversion struct {
	From matrix.Format
	To   matrix.Format
}

func (e *ErrUnsupportedConversion) Error() string {
	return fmt.Sprintf("unsupported conversion %s -> %s", e.From, e.To)
}
