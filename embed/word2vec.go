package embed

import (
	"fmt"
	"math/rand"
)

// Word2VecConfig holds skip-gram hyperparameters. Zero fields take the
// pipeline defaults noted per field.
type Word2VecConfig struct {
	// VectorSize is the embedding dimension (default 100).
	VectorSize int

	// Iters is the number of passes over the corpus (default 25).
	Iters int

	// Window is the maximum context distance (default 5). The effective
	// window per position is sampled uniformly from [1, Window].
	Window int

	// Negative is the number of negative samples per context pair (default 5).
	Negative int

	// LearningRate for SGD updates (default 0.025).
	LearningRate float64

	// Seed for weight init, window sampling and negative sampling.
	Seed int64
}

func (c Word2VecConfig) withDefaults() Word2VecConfig {
	if c.VectorSize == 0 {
		c.VectorSize = 100
	}
	if c.Iters == 0 {
		c.Iters = 25
	}
	if c.Window == 0 {
		c.Window = 5
	}
	if c.Negative == 0 {
		c.Negative = 5
	}
	if c.LearningRate == 0 {
		c.LearningRate = 0.025
	}
	return c
}

// WordVectors is the fitted token -> vector table.
type WordVectors struct {
	Dim     int
	Vectors map[string][]float32
}

// Vector returns the embedding for tok, if present.
func (w *WordVectors) Vector(tok string) ([]float32, bool) {
	v, ok := w.Vectors[tok]
	return v, ok
}

// FitWord2Vec trains skip-gram embeddings with negative sampling over the
// tokenized documents. Each document is treated as a single long sentence;
// keeping punctuation as tokens preserves some of the sentence structure
// that is otherwise ignored.
func FitWord2Vec(docs [][]string, cfg Word2VecConfig) (*WordVectors, error) {
	cfg = cfg.withDefaults()
	vocab := buildCorpusVocab(docs)
	if vocab.total == 0 {
		return nil, fmt.Errorf("corpus has no tokens")
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	dim := cfg.VectorSize
	syn0 := initMatrix(len(vocab.toks), dim, 1.0, rng) // input (word) vectors
	syn1 := make([][]float32, len(vocab.toks))         // output (context) vectors
	for i := range syn1 {
		syn1[i] = make([]float32, dim)
	}
	table := vocab.unigramTable(1 << 17)
	lr := float32(cfg.LearningRate)

	grad := make([]float32, dim)
	for iter := 0; iter < cfg.Iters; iter++ {
		for _, doc := range docs {
			ids := make([]int, 0, len(doc))
			for _, tok := range doc {
				ids = append(ids, vocab.index[tok])
			}
			for pos, center := range ids {
				window := rng.Intn(cfg.Window) + 1
				for off := -window; off <= window; off++ {
					ctxPos := pos + off
					if off == 0 || ctxPos < 0 || ctxPos >= len(ids) {
						continue
					}
					ctx := ids[ctxPos]

					// One positive pair plus cfg.Negative sampled negatives.
					in := syn0[center]
					for i := range grad {
						grad[i] = 0
					}
					for s := 0; s <= cfg.Negative; s++ {
						var target int
						var label float64
						if s == 0 {
							target = ctx
							label = 1.0
						} else {
							target = table[rng.Intn(len(table))]
							if target == ctx {
								continue
							}
							label = 0.0
						}
						out := syn1[target]
						var dot float64
						for i := range in {
							dot += float64(in[i] * out[i])
						}
						g := float32(label-sigmoid(dot)) * lr
						for i := range in {
							grad[i] += g * out[i]
							out[i] += g * in[i]
						}
					}
					for i := range in {
						in[i] += grad[i]
					}
				}
			}
		}
	}

	vectors := make(map[string][]float32, len(vocab.toks))
	for i, tok := range vocab.toks {
		vectors[tok] = syn0[i]
	}
	return &WordVectors{Dim: dim, Vectors: vectors}, nil
}
