package embed

import (
	"encoding/gob"
	"fmt"
	"math/rand"
	"os"
)

// Doc2VecConfig holds PV-DBOW hyperparameters. Zero fields take the pipeline
// defaults noted per field.
type Doc2VecConfig struct {
	// VectorSize is the document vector dimension (default 50).
	VectorSize int

	// Epochs is the number of passes over the corpus (default 55).
	Epochs int

	// Negative is the number of negative samples per word (default 5).
	Negative int

	// LearningRate for SGD updates (default 0.025).
	LearningRate float64

	// Seed for weight init and negative sampling.
	Seed int64
}

func (c Doc2VecConfig) withDefaults() Doc2VecConfig {
	if c.VectorSize == 0 {
		c.VectorSize = 50
	}
	if c.Epochs == 0 {
		c.Epochs = 55
	}
	if c.Negative == 0 {
		c.Negative = 5
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.025
	}
	return c
}

// Doc2VecModel is the fitted PV-DBOW model. All fields are exported so the
// artifact round-trips through gob; DocVecs is the per-document output used
// by the pipeline, Vocab and Out make the artifact reusable for scoring new
// documents against the trained word outputs.
type Doc2VecModel struct {
	Dim     int
	DocVecs [][]float32
	Vocab   []string
	Out     [][]float32
}

// FitDoc2Vec trains one vector per document: each document vector is
// optimized to predict its own words (PV-DBOW) against negative samples.
func FitDoc2Vec(docs [][]string, cfg Doc2VecConfig) (*Doc2VecModel, error) {
	cfg = cfg.withDefaults()
	vocab := buildCorpusVocab(docs)
	if vocab.total == 0 {
		return nil, fmt.Errorf("corpus has no tokens")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	dim := cfg.VectorSize
	docVecs := initMatrix(len(docs), dim, 1.0, rng)
	out := make([][]float32, len(vocab.toks))
	for i := range out {
		out[i] = make([]float32, dim)
	}
	table := vocab.unigramTable(1 << 17)
	lr := float32(cfg.LearningRate)

	grad := make([]float32, dim)
	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		for d, doc := range docs {
			dv := docVecs[d]
			for _, tok := range doc {
				word := vocab.index[tok]

				for i := range grad {
					grad[i] = 0
				}
				for s := 0; s <= cfg.Negative; s++ {
					var target int
					var label float64
					if s == 0 {
						target = word
						label = 1.0
					} else {
						target = table[rng.Intn(len(table))]
						if target == word {
							continue
						}
						label = 0.0
					}
					ov := out[target]
					var dot float64
					for i := range dv {
						dot += float64(dv[i] * ov[i])
					}
					g := float32(label-sigmoid(dot)) * lr
					for i := range dv {
						grad[i] += g * ov[i]
						ov[i] += g * dv[i]
					}
				}
				for i := range dv {
					dv[i] += grad[i]
				}
			}
		}
	}

	return &Doc2VecModel{
		Dim:     dim,
		DocVecs: docVecs,
		Vocab:   vocab.toks,
		Out:     out,
	}, nil
}

// Save writes the model artifact to path with gob.
func (m *Doc2VecModel) Save(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create model file %s: %w", path, err)
	}
	defer file.Close()
	if err := gob.NewEncoder(file).Encode(m); err != nil {
		return fmt.Errorf("failed to encode doc2vec model: %w", err)
	}
	return nil
}

// LoadDoc2Vec reads a model artifact written by Save.
func LoadDoc2Vec(path string) (*Doc2VecModel, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open model file %s: %w", path, err)
	}
	defer file.Close()
	var m Doc2VecModel
	if err := gob.NewDecoder(file).Decode(&m); err != nil {
		return nil, fmt.Errorf("failed to decode doc2vec model: %w", err)
	}
	return &m, nil
}
