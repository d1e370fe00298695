package crosspred

import "errors"

// The harness only fails on structural or configuration problems, never
// transient ones, so none of these are retryable.
var (
	// ErrGroupMismatch reports a fold whose train rows and test rows do not
	// cover the same essay sets. It aborts the cross-prediction call.
	ErrGroupMismatch = errors.New("train and test essay sets differ")

	// ErrDegenerateSplit reports a partition whose train:test ratios spread
	// beyond the tolerance across (fold, essay set) pairs. It aborts harness
	// construction.
	ErrDegenerateSplit = errors.New("train:test ratio spread exceeds tolerance")

	// ErrFoldCount reports a fold count larger than the smallest essay set.
	ErrFoldCount = errors.New("fold count exceeds smallest essay set")
)
