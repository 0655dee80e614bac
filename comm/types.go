package comm

import (
	"errors"
)

// Sentinel errors for collective operations.
var (
	// ErrAborted indicates the group was cancelled while a collective was pending.
	ErrAborted = errors.New("comm: collective aborted")

	// ErrMismatch indicates ranks issued different collectives at the same step,
	// or a rank left the group while others were still communicating.
	ErrMismatch = errors.New("comm: mismatched collective participation")

	// ErrInvalidRoot indicates a root rank outside [0, Size).
	ErrInvalidRoot = errors.New("comm: invalid root rank")

	// ErrSizeMismatch indicates contributions of differing lengths.
	ErrSizeMismatch = errors.New("comm: contribution sizes differ")

	// ErrPeerFailed indicates another rank failed inside a checked section.
	ErrPeerFailed = errors.New("comm: peer rank failed")

	// ErrInvalidSize indicates a group size below one.
	ErrInvalidSize = errors.New("comm: group size must be at least 1")
)

// Root is the rank that owns centralized buffers.
const Root = 0

// Op is an aggregation operation used by Allreduce.
type Op int

const (
	// OpSum adds contributions.
	OpSum Op = iota
	// OpMax keeps the largest contribution.
	OpMax
	// OpMin keeps the smallest contribution.
	OpMin
	// OpLOR yields 1 if any contribution is non-zero, 0 otherwise.
	OpLOR
)

// String returns the lowercase name of the operation.
func (op Op) String() string {
	switch op {
	case OpSum:
		return "sum"
	case OpMax:
		return "max"
	case OpMin:
		return "min"
	case OpLOR:
		return "lor"
	}
	return "unknown"
}

// Number is the set of element types the reductions accept.
type Number interface {
	~int | ~int32 | ~int64 | ~float64
}
