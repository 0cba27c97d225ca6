package matrix

import "fmt"

// ErrInvalidAxis indicates a malformed axis descriptor: wrong pointer/index
// buffer length, a non-monotone pointer, or an illegal in_order flag.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidAxis struct {
	Axis   int
	Reason string
	cause  error
}

func (e *ErrInvalidAxis) Error() string {
	return fmt.Sprintf("invalid axis %d: %s", e.Axis, e.Reason)
}

func (e *ErrInvalidAxis) Unwrap() error { return e.cause }

// ruleDescriptions are the structural rules a kind sequence must satisfy,
// indexed by rule number.
var ruleDescriptions = map[int]string{
	1: "once an axis is full, every following axis must be full",
	2: "the last axis must be index or full",
	3: "a sparse axis must not be followed by a full axis",
	4: "a hyper axis must not be followed by a full axis",
	5: "once an axis is index, every following axis must be index or full",
}

// ErrRuleViolation indicates that an axis kind sequence is structurally
// illegal. Rule is in 1..5.
type ErrRuleViolation struct {
	Rule int
	// Axis is the storage position at which the violation was detected.
	Axis int
}

func (e *ErrRuleViolation) Error() string {
	return fmt.Sprintf("format rule %d violated at axis %d: %s", e.Rule, e.Axis, ruleDescriptions[e.Rule])
}

// ErrDimensionMismatch indicates a coordinate outside its declared axis
// dimension.
type ErrDimensionMismatch struct {
	Axis       int
	Coordinate uint64
	Dimension  uint64
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("coordinate %d out of range for axis %d of dimension %d",
		e.Coordinate, e.Axis, e.Dimension)
}

// ErrInvalidMatrix indicates an inconsistency between axes, values and
// scalar fields detected during container construction.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrInvalidMatrix struct {
	Reason string
	cause  error
}

func (e *ErrInvalidMatrix) Error() string {
	return "invalid matrix: " + e.Reason
}

func (e *ErrInvalidMatrix) Unwrap() error { return e.cause }
