package learners

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
)

// KNN is a k-nearest-neighbor regressor over the essay feature space. Train
// memorizes the training rows; Predict scores each query as the
// inverse-distance-weighted mean of its K nearest training labels.
type KNN struct {
	K int

	trainX [][]float32
	trainY []float32
}

// NewKNN creates a new KNN learner. cfg.K defaults to 8.
func NewKNN(cfg Config) (Learner, error) {
	k := cfg.K
	if k == 0 {
		k = 8
	}
	if k < 1 {
		return nil, fmt.Errorf("k must be >= 1, got %d", k)
	}
	return &KNN{K: k}, nil
}

// Train copies the training rows into the learner.
func (m *KNN) Train(ds Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	n := ds.Len()
	if n == 0 {
		return errors.New("dataset has no examples")
	}
	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}
	x, y, err := ds.Batch(indices)
	if err != nil {
		return err
	}
	m.trainX = x
	m.trainY = y
	return nil
}

// neighbor holds a training-row candidate for a single query.
type neighbor struct {
	idx      int
	distance float64
}

// Predict scores the query rows concurrently with a worker pool; each query
// is independent so results land in preallocated slots.
func (m *KNN) Predict(inputs [][]float32) ([]float32, error) {
	if m.trainX == nil {
		return nil, errors.New("model has not been trained")
	}

	out := make([]float32, len(inputs))
	errs := make([]error, len(inputs))

	jobs := make(chan int, len(inputs))
	workerCount := runtime.NumCPU()
	if workerCount > len(inputs) {
		workerCount = len(inputs)
	}

	var wg sync.WaitGroup
	wg.Add(workerCount)
	for w := 0; w < workerCount; w++ {
		go func() {
			defer wg.Done()
			for q := range jobs {
				out[q], errs[q] = m.predictOne(inputs[q])
			}
		}()
	}
	for q := range inputs {
		jobs <- q
	}
	close(jobs)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// predictOne does a linear-scan KNN search over the training rows and
// returns the inverse-distance-weighted mean label of the K nearest.
func (m *KNN) predictOne(query []float32) (float32, error) {
	candidates := make([]neighbor, len(m.trainX))
	for i, row := range m.trainX {
		candidates[i] = neighbor{idx: i, distance: math.Sqrt(euclideanDistanceSquared(query, row))}
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].distance < candidates[j].distance
	})

	k := m.K
	if k > len(candidates) {
		k = len(candidates)
	}

	// weights inverse to distance (with epsilon)
	eps := 1e-6
	var sum, totalWeight float64
	for _, nb := range candidates[:k] {
		w := 1.0 / (nb.distance + eps)
		sum += w * float64(m.trainY[nb.idx])
		totalWeight += w
	}
	if totalWeight == 0 {
		return 0, errors.New("no usable neighbors")
	}
	return float32(sum / totalWeight), nil
}

// euclideanDistanceSquared computes squared Euclidean distance between two
// equal-length float32 slices.
func euclideanDistanceSquared(a, b []float32) float64 {
	sum := 0.0
	for i := 0; i < len(a) && i < len(b); i++ {
		d := float64(a[i] - b[i])
		sum += d * d
	}
	return sum
}
