package matrix

// Classify derives the kind of every axis and validates the sequence against
// the five structural rules, applied left to right over storage order:
//
//  1. Once an axis is Full, every following axis must be Full.
//  2. The last axis must be Index or Full.
//  3. A Sparse axis immediately followed by a Full axis is redundant
//     (representable as Full,Full) and is rejected.
//  4. A Hyper axis immediately followed by a Full axis is rejected
//     (representable as Index,Full with a sorted index).
//  5. Once an axis is Index, every following axis must be Index or Full.
//
// Rules 3 and 4 reject combinations that are representable but never useful;
// they are hard errors here, not merely unnamed formats.
//
// The rules form a finite-state machine over {Sparse, Hyper, Index, Full}:
// Sparse and Hyper self-loop and may transition anywhere except directly to
// Full, Index absorbs into {Index, Full}, and Full absorbs into {Full}.
// A rank-0 (scalar) sequence is trivially valid.
func Classify(axes []Axis) ([]Kind, error) {
	kinds := make([]Kind, len(axes))
	for i := range axes {
		kinds[i] = axes[i].Kind()
	}

	for i := 1; i < len(kinds); i++ {
		prev, cur := kinds[i-1], kinds[i]
		switch {
		case prev == KindFull && cur != KindFull:
			return nil, &ErrRuleViolation{Rule: 1, Axis: i}
		case prev == KindSparse && cur == KindFull:
			return nil, &ErrRuleViolation{Rule: 3, Axis: i}
		case prev == KindHyper && cur == KindFull:
			return nil, &ErrRuleViolation{Rule: 4, Axis: i}
		case prev == KindIndex && cur != KindIndex && cur != KindFull:
			return nil, &ErrRuleViolation{Rule: 5, Axis: i}
		}
	}

	if n := len(kinds); n > 0 {
		if last := kinds[n-1]; last != KindIndex && last != KindFull {
			return nil, &ErrRuleViolation{Rule: 2, Axis: n - 1}
		}
	}

	return kinds, nil
}
