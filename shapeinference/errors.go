package shapeinference

import (
	"github.com/pkg/errors"
)

// Error classes surfaced by an inference run. Every failure returned by the
// engine wraps exactly one of these, with a message carrying the concrete
// operator, sizes or counts involved, so callers can match the class with
// errors.Is and still diagnose from the text without re-running.
//
// Internal invariant violations (a shape-map entry missing for an edge that
// must already have one) are not part of this taxonomy: those indicate a
// defective upstream graph and panic instead.
var (
	// ErrArityMismatch: wrong number of inputs for an operator, or a count
	// mismatch between the graph's declared inputs and the supplied values.
	ErrArityMismatch = errors.New("arity mismatch")

	// ErrRankMismatch: an operand's rank is not the one the operator requires.
	ErrRankMismatch = errors.New("rank mismatch")

	// ErrDimensionMismatch: two dimensions that must agree do not.
	ErrDimensionMismatch = errors.New("dimension mismatch")

	// ErrDimensionOutOfRange: a normalized axis attribute falls outside
	// [0, rank) for its operand.
	ErrDimensionOutOfRange = errors.New("dimension out of range")

	// ErrUnsupportedOperator: the node's operator kind has no inference rule.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrUnsupportedInputType: a runtime input value of an unrecognized kind.
	ErrUnsupportedInputType = errors.New("unsupported input type")
)
