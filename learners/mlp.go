package learners

import (
	"errors"
	"math"
	"math/rand"
)

// MLP is a small configurable multilayer perceptron regressing a single
// score from an essay feature vector. It uses a lightweight, self-contained
// trainer implemented in pure Go (no external deep-learning dependencies) so
// cross-prediction runs are fast and deterministic under a fixed seed.
type MLP struct {
	// Config used for training / initialization.
	Config Config

	// layerSizes includes input size, hidden sizes, then output size (1).
	// Populated on the first Train call, once the feature width is known.
	layerSizes []int

	// weights[l] is a matrix of shape [out][in] for layer l -> l+1
	weights [][][]float32

	// biases[l] is a vector of length out for layer l -> l+1
	biases [][]float32

	// rng used for weight initialization and shuffling
	rng *rand.Rand
}

// NewMLP creates a new MLP with the provided configuration. Weights are
// allocated lazily on the first Train call, when the input dimension is
// discovered from the dataset.
func NewMLP(cfg Config) (Learner, error) {
	// defaults
	if len(cfg.HiddenSizes) == 0 {
		cfg.HiddenSizes = []int{64}
	}
	if cfg.LearningRate == 0 {
		cfg.LearningRate = 0.001
	}
	if cfg.Epochs == 0 {
		cfg.Epochs = 10
	}
	if cfg.BatchSize == 0 {
		cfg.BatchSize = 8
	}

	return &MLP{
		Config: cfg,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// initLayers allocates weights and biases for the given input dimension.
func (m *MLP) initLayers(inputDim int) {
	const outputDim = 1

	sizes := make([]int, 0, 2+len(m.Config.HiddenSizes))
	sizes = append(sizes, inputDim)
	sizes = append(sizes, m.Config.HiddenSizes...)
	sizes = append(sizes, outputDim)
	m.layerSizes = sizes

	L := len(sizes) - 1
	m.weights = make([][][]float32, L)
	m.biases = make([][]float32, L)
	for l := 0; l < L; l++ {
		in := sizes[l]
		out := sizes[l+1]
		mat := make([][]float32, out)
		for j := 0; j < out; j++ {
			row := make([]float32, in)
			for i := 0; i < in; i++ {
				// Xavier/Glorot uniform initialization heuristic
				limit := float32(math.Sqrt(6.0 / float64(in+out)))
				row[i] = (m.rng.Float32()*2.0 - 1.0) * limit * 0.5
			}
			mat[j] = row
		}
		m.weights[l] = mat
		m.biases[l] = make([]float32, out)
	}
}

// activationReLU applies ReLU in-place over the slice.
func activationReLU(x []float32) {
	for i := range x {
		if x[i] < 0 {
			x[i] = 0
		}
	}
}

// activationReLUDeriv returns elementwise derivative of ReLU applied to preact.
func activationReLUDeriv(preact []float32) []float32 {
	d := make([]float32, len(preact))
	for i := range preact {
		if preact[i] > 0 {
			d[i] = 1.0
		}
	}
	return d
}

// forwardSingle performs a forward pass for a single input vector, returning:
// - preActivations: list of pre-activation vectors per layer (len = L)
// - activations: list of activation vectors per layer (len = L+1, activations[0] = input)
func (m *MLP) forwardSingle(input []float32) (preActs [][]float32, acts [][]float32, err error) {
	if m.layerSizes == nil {
		return nil, nil, errors.New("model has not been trained")
	}
	if len(input) != m.layerSizes[0] {
		return nil, nil, errors.New("input has incorrect dimension")
	}
	L := len(m.weights)
	acts = make([][]float32, L+1)
	acts[0] = make([]float32, len(input))
	copy(acts[0], input)

	preActs = make([][]float32, L)
	for l := 0; l < L; l++ {
		inVec := acts[l]
		outDim := len(m.biases[l])
		inDim := len(inVec)
		pre := make([]float32, outDim)
		W := m.weights[l]
		b := m.biases[l]
		for j := 0; j < outDim; j++ {
			sum := float32(0.0)
			row := W[j]
			for i := 0; i < inDim; i++ {
				sum += row[i] * inVec[i]
			}
			sum += b[j]
			pre[j] = sum
		}
		preActs[l] = pre

		// Activation: ReLU for hidden, linear for last layer
		act := make([]float32, outDim)
		copy(act, pre)
		if l < L-1 {
			activationReLU(act)
		}
		acts[l+1] = act
	}
	return preActs, acts, nil
}

// Predict returns one predicted score per input row. It does a purely
// forward pass (no training).
func (m *MLP) Predict(inputs [][]float32) ([]float32, error) {
	out := make([]float32, len(inputs))
	for i, in := range inputs {
		_, acts, err := m.forwardSingle(in)
		if err != nil {
			return nil, err
		}
		out[i] = acts[len(acts)-1][0]
	}
	return out, nil
}

// Train fits the MLP with mini-batch SGD and a mean-squared-error loss.
func (m *MLP) Train(ds Dataset) error {
	if ds == nil {
		return errors.New("dataset is nil")
	}
	n := ds.Len()
	if n == 0 {
		return errors.New("dataset has no examples")
	}

	epochs := m.Config.Epochs
	batchSize := m.Config.BatchSize
	lr := float32(m.Config.LearningRate)

	// Discover the input dimension from the first example and allocate layers.
	if m.layerSizes == nil {
		first, _, err := ds.Batch([]int{0})
		if err != nil {
			return err
		}
		if len(first[0]) == 0 {
			return errors.New("dataset has zero-width features")
		}
		m.initLayers(len(first[0]))
	}

	indices := make([]int, n)
	for i := 0; i < n; i++ {
		indices[i] = i
	}

	// training loop
	for ep := 0; ep < epochs; ep++ {
		m.rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		// iterate minibatches, accumulating gradients over the minibatch and
		// applying an averaged SGD update
		for bstart := 0; bstart < n; bstart += batchSize {
			bend := bstart + batchSize
			if bend > n {
				bend = n
			}
			batchIdx := indices[bstart:bend]

			inputs, labels, err := ds.Batch(batchIdx)
			if err != nil {
				return err
			}
			batchN := len(inputs)
			if batchN == 0 {
				continue
			}

			// Initialize gradient accumulators (same shape as weights/biases)
			L := len(m.weights)
			gradW := make([][][]float32, L)
			gradB := make([][]float32, L)
			for l := 0; l < L; l++ {
				outDim := len(m.biases[l])
				inDim := len(m.weights[l][0])
				gradW[l] = make([][]float32, outDim)
				for j := 0; j < outDim; j++ {
					gradW[l][j] = make([]float32, inDim)
				}
				gradB[l] = make([]float32, outDim)
			}

			// Accumulate gradients for each example in the batch
			for ex := 0; ex < batchN; ex++ {
				in := inputs[ex]
				la := labels[ex]

				preacts, acts, err := m.forwardSingle(in)
				if err != nil {
					return err
				}

				// dLoss/dOutput = 2*(pred - label)
				outAct := acts[len(acts)-1]
				delta := []float32{2.0 * (outAct[0] - la)}

				// Backprop, accumulating into gradW/gradB
				for l := len(m.weights) - 1; l >= 0; l-- {
					inAct := acts[l]
					outDim := len(delta)
					inDim := len(inAct)

					for j := 0; j < outDim; j++ {
						gradB[l][j] += delta[j]
						for i := 0; i < inDim; i++ {
							gradW[l][j][i] += delta[j] * inAct[i]
						}
					}

					// propagate delta to previous layer if needed
					if l > 0 {
						prevLen := len(m.weights[l][0])
						newDelta := make([]float32, prevLen)
						for i := 0; i < prevLen; i++ {
							sum := float32(0.0)
							for j := 0; j < outDim; j++ {
								sum += m.weights[l][j][i] * delta[j]
							}
							newDelta[i] = sum
						}
						deriv := activationReLUDeriv(preacts[l-1])
						for i := 0; i < prevLen; i++ {
							newDelta[i] *= deriv[i]
						}
						delta = newDelta
					}
				}
			}

			// Apply averaged gradients (SGD) over the minibatch
			bInv := float32(1.0 / float64(batchN))
			for l := 0; l < L; l++ {
				outDim := len(m.biases[l])
				inDim := len(m.weights[l][0])
				for j := 0; j < outDim; j++ {
					m.biases[l][j] -= lr * gradB[l][j] * bInv
					for i := 0; i < inDim; i++ {
						m.weights[l][j][i] -= lr * gradW[l][j][i] * bInv
					}
				}
			}
		} // end batches
	} // end epochs

	return nil
}
