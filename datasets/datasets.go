package datasets

import "fmt"

// This file provides the in-memory dataset used by the cross-prediction
// harness and the learners.
//
// A Dataset holds a numeric feature matrix X, a label vector Y and a group
// label vector Group (the ASAP "essay_set"), all index-aligned. The harness
// never mutates a Dataset after construction; row-subset views are produced
// with Select, which copies the selected rows so the source and the view
// cannot alias each other.
//
// Notes on gomlx tensors:
//   - Converting batches into gomlx tensors is left as a small, well-defined
//     step. We return contiguous float32 buffers along with shape metadata
//     (see FeatureBatchFlat in tensors.go); these are trivial to convert into
//     gomlx tensors in training code.

// Dataset is an immutable rows x features table with one label and one group
// label per row.
type Dataset struct {
	// X is the feature matrix, one row per example.
	X [][]float32

	// Y is the label vector (e.g. essay score), index-aligned with X.
	Y []float32

	// Group is the group label per row (e.g. essay set 1..8), index-aligned
	// with X and Y.
	Group []int
}

// New builds a Dataset and checks the alignment invariant
// len(X) == len(Y) == len(Group).
func New(x [][]float32, y []float32, group []int) (*Dataset, error) {
	if len(x) != len(y) || len(x) != len(group) {
		return nil, fmt.Errorf("misaligned dataset: %d feature rows, %d labels, %d group labels",
			len(x), len(y), len(group))
	}
	return &Dataset{X: x, Y: y, Group: group}, nil
}

// Len returns the number of rows.
func (d *Dataset) Len() int {
	return len(d.Y)
}

// Select returns a new Dataset restricted to the given rows, in the given
// order. Feature rows are copied, so mutating the returned dataset cannot
// affect the source (and vice versa).
func (d *Dataset) Select(indices []int) (*Dataset, error) {
	x := make([][]float32, len(indices))
	y := make([]float32, len(indices))
	group := make([]int, len(indices))
	for i, idx := range indices {
		if idx < 0 || idx >= d.Len() {
			return nil, fmt.Errorf("select: index %d out of range [0, %d)", idx, d.Len())
		}
		row := make([]float32, len(d.X[idx]))
		copy(row, d.X[idx])
		x[i] = row
		y[i] = d.Y[idx]
		group[i] = d.Group[idx]
	}
	return &Dataset{X: x, Y: y, Group: group}, nil
}

// Batch returns features and labels for the provided row indices.
func (d *Dataset) Batch(indices []int) ([][]float32, []float32, error) {
	sub, err := d.Select(indices)
	if err != nil {
		return nil, nil, err
	}
	return sub.X, sub.Y, nil
}

// NumFeatures returns the width of the feature matrix (0 for an empty
// dataset).
func (d *Dataset) NumFeatures() int {
	if len(d.X) == 0 {
		return 0
	}
	return len(d.X[0])
}
