// Package learners provides the pluggable models fitted by the
// cross-prediction harness: a small pure-Go MLP regressor, a KNN regressor
// and a trivial mean baseline. Every learner is constructed fresh from a
// Config and never shares state with other instances.
package learners

// Config holds configurable hyperparameters shared by all learner kinds.
// Fields a learner does not use are ignored by it.
type Config struct {
	// HiddenSizes is the list of hidden layer sizes for the MLP.
	// Example: []int{64, 32}. If empty, a single hidden layer of size 64
	// will be used.
	HiddenSizes []int

	// LearningRate used by the MLP's SGD updates.
	LearningRate float64

	// Epochs to train for (default if 0 will be set by NewMLP to 10).
	Epochs int

	// BatchSize for mini-batch updates (default if 0 will be set by NewMLP
	// to 8).
	BatchSize int

	// Seed controls RNG for weight init and shuffling. The harness always
	// sets this so training is reproducible.
	Seed int64

	// K is the neighbor count for the KNN learner (default 8).
	K int
}

// Clone returns a deep copy of the configuration. The harness clones the
// shared Config at every learner construction so no training unit can
// observe another unit's mutations.
func (c Config) Clone() Config {
	out := c
	if c.HiddenSizes != nil {
		out.HiddenSizes = make([]int, len(c.HiddenSizes))
		copy(out.HiddenSizes, c.HiddenSizes)
	}
	return out
}

// Dataset is the minimal interface learners require from a training dataset.
// This keeps learners decoupled from the concrete datasets package while
// allowing callers to pass *datasets.Dataset (it matches these methods).
type Dataset interface {
	Len() int
	// Batch returns features and labels for the provided row indices.
	Batch(indices []int) ([][]float32, []float32, error)
}

// Learner is the contract the harness trains against: fit on a dataset, then
// produce one prediction per input feature row, in input order.
type Learner interface {
	Train(ds Dataset) error
	Predict(x [][]float32) ([]float32, error)
}

// Factory constructs a fresh Learner from a configuration. The harness calls
// the factory once per (fold, essay set) combination.
type Factory func(cfg Config) (Learner, error)
