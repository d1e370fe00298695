package learners

import (
	"math"
	"testing"
)

func TestKNNPredictsNearestLabels(t *testing.T) {
	// Two well-separated clusters with distinct labels.
	ds := &mockDataset{
		inputs: [][]float32{
			{0, 0}, {0.1, 0}, {0, 0.1},
			{10, 10}, {10.1, 10}, {10, 10.1},
		},
		labels: []float32{1, 1, 1, 5, 5, 5},
	}

	m, err := NewKNN(Config{K: 3})
	if err != nil {
		t.Fatalf("NewKNN error: %v", err)
	}
	if err := m.Train(ds); err != nil {
		t.Fatalf("Train error: %v", err)
	}

	preds, err := m.Predict([][]float32{{0.05, 0.05}, {10.05, 10.05}})
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	if math.Abs(float64(preds[0]-1)) > 1e-3 {
		t.Errorf("cluster A prediction %v, want ~1", preds[0])
	}
	if math.Abs(float64(preds[1]-5)) > 1e-3 {
		t.Errorf("cluster B prediction %v, want ~5", preds[1])
	}
}

func TestKNNValidatesK(t *testing.T) {
	if _, err := NewKNN(Config{K: -1}); err == nil {
		t.Fatal("expected error for negative k")
	}
}

func TestKNNPredictBeforeTrain(t *testing.T) {
	m, err := NewKNN(Config{})
	if err != nil {
		t.Fatalf("NewKNN error: %v", err)
	}
	if _, err := m.Predict([][]float32{{1}}); err == nil {
		t.Fatal("expected error predicting with an untrained model")
	}
}

func TestMeanBaseline(t *testing.T) {
	ds := &mockDataset{
		inputs: [][]float32{{1}, {2}, {3}, {4}},
		labels: []float32{2, 4, 6, 8},
	}
	m, err := NewMean(Config{})
	if err != nil {
		t.Fatalf("NewMean error: %v", err)
	}
	if err := m.Train(ds); err != nil {
		t.Fatalf("Train error: %v", err)
	}
	preds, err := m.Predict([][]float32{{0}, {100}})
	if err != nil {
		t.Fatalf("Predict error: %v", err)
	}
	for i, p := range preds {
		if p != 5 {
			t.Errorf("prediction %d = %v, want 5", i, p)
		}
	}
}
