package learners

import (
	"math"
	"testing"
)

// mockDataset implements the minimal Dataset interface required by learners.
type mockDataset struct {
	inputs [][]float32
	labels []float32
}

func (m *mockDataset) Len() int { return len(m.inputs) }

func (m *mockDataset) Batch(indices []int) ([][]float32, []float32, error) {
	in := make([][]float32, len(indices))
	la := make([]float32, len(indices))
	for i, idx := range indices {
		in[i] = m.inputs[idx]
		la[i] = m.labels[idx]
	}
	return in, la, nil
}

func mse(preds, labels []float32) float64 {
	if len(preds) == 0 {
		return 0.0
	}
	var sum float64
	for i := range preds {
		d := float64(preds[i] - labels[i])
		sum += d * d
	}
	return sum / float64(len(preds))
}

// linearDataset synthesizes rows where the label is a linear function of the
// first two features.
func linearDataset(n int) *mockDataset {
	inputs := make([][]float32, n)
	labels := make([]float32, n)
	for i := 0; i < n; i++ {
		x := float32(i % 10)
		y := float32((i / 10) % 10)
		in := make([]float32, 4)
		in[0] = x
		in[1] = y
		inputs[i] = in
		labels[i] = 2*x + 0.5*y
	}
	return &mockDataset{inputs: inputs, labels: labels}
}

// TestMLPTrainReducesMSE verifies the pure-Go trainer reduces MSE on a
// simple synthetic regression dataset.
func TestMLPTrainReducesMSE(t *testing.T) {
	ds := linearDataset(120)

	cfg := Config{
		HiddenSizes:  []int{32, 16},
		LearningRate: 0.01,
		Epochs:       30,
		BatchSize:    16,
		Seed:         42,
	}
	model, err := NewMLP(cfg)
	if err != nil {
		t.Fatalf("NewMLP error: %v", err)
	}

	if err := model.Train(ds); err != nil {
		t.Fatalf("Train error: %v", err)
	}

	holdN := 20
	preds, err := model.Predict(ds.inputs[:holdN])
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	if len(preds) != holdN {
		t.Fatalf("got %d predictions, want %d", len(preds), holdN)
	}

	// An untrained model's predictions are near zero; trained MSE should be
	// far below the variance of the labels.
	got := mse(preds, ds.labels[:holdN])
	var mean float64
	for _, l := range ds.labels[:holdN] {
		mean += float64(l)
	}
	mean /= float64(holdN)
	var variance float64
	for _, l := range ds.labels[:holdN] {
		variance += (float64(l) - mean) * (float64(l) - mean)
	}
	variance /= float64(holdN)

	if got >= variance {
		t.Fatalf("trained MSE %v not below label variance %v", got, variance)
	}
	for _, p := range preds {
		if math.IsNaN(float64(p)) {
			t.Fatal("prediction is NaN")
		}
	}
}

func TestMLPPredictBeforeTrain(t *testing.T) {
	model, err := NewMLP(Config{Seed: 1})
	if err != nil {
		t.Fatalf("NewMLP error: %v", err)
	}
	if _, err := model.Predict([][]float32{{1, 2}}); err == nil {
		t.Fatal("expected error predicting with an untrained model")
	}
}

func TestMLPDeterministicUnderSeed(t *testing.T) {
	ds := linearDataset(60)
	cfg := Config{HiddenSizes: []int{16}, LearningRate: 0.01, Epochs: 5, BatchSize: 8, Seed: 7}

	train := func() []float32 {
		m, err := NewMLP(cfg.Clone())
		if err != nil {
			t.Fatalf("NewMLP error: %v", err)
		}
		if err := m.Train(ds); err != nil {
			t.Fatalf("Train error: %v", err)
		}
		preds, err := m.Predict(ds.inputs[:5])
		if err != nil {
			t.Fatalf("Predict error: %v", err)
		}
		return preds
	}

	a := train()
	b := train()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("prediction %d differs across seeded runs: %v != %v", i, a[i], b[i])
		}
	}
}

func TestConfigCloneIsDeep(t *testing.T) {
	cfg := Config{HiddenSizes: []int{64, 32}, Seed: 3}
	clone := cfg.Clone()
	clone.HiddenSizes[0] = -1
	if cfg.HiddenSizes[0] != 64 {
		t.Fatalf("Clone shares HiddenSizes backing array: %v", cfg.HiddenSizes)
	}
}
