package vocab

import "fmt"

// DocFeaturizer turns reduced documents into fixed-length feature vectors by
// averaging the embedding vectors of their tokens. A document with no
// embedded tokens maps to the zero vector.
type DocFeaturizer struct {
	embedding map[string][]float32
	dim       int
}

// NewDocFeaturizer wraps a token -> vector table. All vectors must share one
// length.
func NewDocFeaturizer(embedding map[string][]float32) (*DocFeaturizer, error) {
	if len(embedding) == 0 {
		return nil, fmt.Errorf("empty embedding table")
	}
	dim := 0
	for tok, vec := range embedding {
		if dim == 0 {
			dim = len(vec)
		}
		if len(vec) != dim {
			return nil, fmt.Errorf("embedding for %q has length %d, expected %d", tok, len(vec), dim)
		}
	}
	if dim == 0 {
		return nil, fmt.Errorf("embedding vectors are zero-length")
	}
	return &DocFeaturizer{embedding: embedding, dim: dim}, nil
}

// Dim returns the feature vector length.
func (f *DocFeaturizer) Dim() int {
	return f.dim
}

// Featurize returns the mean embedding of the document's tokens.
func (f *DocFeaturizer) Featurize(doc []string) []float32 {
	sum := make([]float64, f.dim)
	count := 0
	for _, tok := range doc {
		vec, ok := f.embedding[tok]
		if !ok {
			continue
		}
		for i, v := range vec {
			sum[i] += float64(v)
		}
		count++
	}
	out := make([]float32, f.dim)
	if count == 0 {
		return out
	}
	for i, v := range sum {
		out[i] = float32(v / float64(count))
	}
	return out
}

// FeaturizeCorpus featurizes every document, one feature row per document in
// input order.
func (f *DocFeaturizer) FeaturizeCorpus(docs [][]string) [][]float32 {
	out := make([][]float32, len(docs))
	for i, doc := range docs {
		out[i] = f.Featurize(doc)
	}
	return out
}
