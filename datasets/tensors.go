package datasets

import (
	"fmt"

	"github.com/gomlx/gomlx/pkg/core/tensors"
)

// FeatureBatchFlat stores a batch in flat contiguous buffers. Labels are one
// scalar score per example.
type FeatureBatchFlat struct {
	Inputs    []float32
	Labels    []float32
	BatchSize int
	InputDim  int
}

// MakeFeatureBatchFlat flattens a batch into contiguous buffers.
func MakeFeatureBatchFlat(inputs [][]float32, labels []float32) (*FeatureBatchFlat, error) {
	if len(inputs) != len(labels) {
		return nil, fmt.Errorf("inputs and labels batch sizes don't match: %d != %d", len(inputs), len(labels))
	}
	if len(inputs) == 0 {
		return &FeatureBatchFlat{}, nil
	}

	batchSize := len(inputs)
	inputDim := len(inputs[0])

	flatInputs := make([]float32, batchSize*inputDim)
	flatLabels := make([]float32, batchSize)

	for i := range batchSize {
		if len(inputs[i]) != inputDim {
			return nil, fmt.Errorf("inconsistent input dimensions at example %d: expected %d, got %d",
				i, inputDim, len(inputs[i]))
		}
		copy(flatInputs[i*inputDim:], inputs[i])
		flatLabels[i] = labels[i]
	}

	return &FeatureBatchFlat{
		Inputs:    flatInputs,
		Labels:    flatLabels,
		BatchSize: batchSize,
		InputDim:  inputDim,
	}, nil
}

// ToGomlxTensors converts FeatureBatchFlat to gomlx tensors: inputs shaped
// [batch][inputDim], labels shaped [batch][1].
func (b *FeatureBatchFlat) ToGomlxTensors() (*tensors.Tensor, *tensors.Tensor, error) {
	// handle empty batch gracefully
	if b.BatchSize == 0 || b.InputDim == 0 {
		emptyInputs := make([][]float32, 0)
		emptyLabels := make([][]float32, 0)
		return tensors.FromAnyValue(emptyInputs), tensors.FromAnyValue(emptyLabels), nil
	}
	inputs := make([][]float32, b.BatchSize)
	labels := make([][]float32, b.BatchSize)
	for i := range b.BatchSize {
		inputs[i] = b.Inputs[i*b.InputDim : (i+1)*b.InputDim]
		labels[i] = b.Labels[i : i+1]
	}
	return tensors.FromAnyValue(inputs), tensors.FromAnyValue(labels), nil
}

// Tensors reads a batch of examples and returns them as gomlx tensors, for
// callers training with a gomlx-backed learner.
func (d *Dataset) Tensors(indices []int) (inputs *tensors.Tensor, labels *tensors.Tensor, err error) {
	inData, labData, err := d.Batch(indices)
	if err != nil {
		return nil, nil, err
	}
	batch, err := MakeFeatureBatchFlat(inData, labData)
	if err != nil {
		return nil, nil, err
	}
	return batch.ToGomlxTensors()
}
