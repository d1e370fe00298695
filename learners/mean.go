package learners

import "errors"

// Mean is a baseline learner predicting the mean training label for every
// query. Useful as a floor when comparing real learners and in harness tests.
type Mean struct {
	fitted bool
	mean   float32
}

// NewMean creates the baseline learner; it ignores the configuration.
func NewMean(Config) (Learner, error) {
	return &Mean{}, nil
}

// Train computes the mean training label.
func (m *Mean) Train(ds Dataset) error {
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
	_, y, err := ds.Batch(indices)
	if err != nil {
		return err
	}
	var sum float64
	for _, v := range y {
		sum += float64(v)
	}
	m.mean = float32(sum / float64(n))
	m.fitted = true
	return nil
}

// Predict returns the training mean for every input row.
func (m *Mean) Predict(inputs [][]float32) ([]float32, error) {
	if !m.fitted {
		return nil, errors.New("model has not been trained")
	}
	out := make([]float32, len(inputs))
	for i := range out {
		out[i] = m.mean
	}
	return out, nil
}
