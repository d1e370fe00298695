// Package embed provides small pure-Go embedding trainers: a skip-gram
// word2vec with negative sampling and a PV-DBOW doc2vec. Both run plain SGD
// with no external deep-learning dependencies, so fits are fast enough for
// the pipeline and deterministic under a fixed seed.
package embed

import (
	"math"
	"math/rand"
	"sort"
)

// sigmoid with clamped input so extreme dot products cannot overflow.
func sigmoid(x float64) float64 {
	if x > 6 {
		return 1.0
	}
	if x < -6 {
		return 0.0
	}
	return 1.0 / (1.0 + math.Exp(-x))
}

// corpusVocab maps tokens to dense ids, ranked by frequency (ties broken
// lexicographically for determinism).
type corpusVocab struct {
	toks   []string
	index  map[string]int
	counts []int
	total  int
}

func buildCorpusVocab(docs [][]string) *corpusVocab {
	counts := make(map[string]int)
	total := 0
	for _, doc := range docs {
		for _, tok := range doc {
			counts[tok]++
			total++
		}
	}
	toks := make([]string, 0, len(counts))
	for tok := range counts {
		toks = append(toks, tok)
	}
	sort.Slice(toks, func(i, j int) bool {
		if counts[toks[i]] != counts[toks[j]] {
			return counts[toks[i]] > counts[toks[j]]
		}
		return toks[i] < toks[j]
	})

	v := &corpusVocab{
		toks:   toks,
		index:  make(map[string]int, len(toks)),
		counts: make([]int, len(toks)),
		total:  total,
	}
	for i, tok := range toks {
		v.index[tok] = i
		v.counts[i] = counts[tok]
	}
	return v
}

// unigramTable is the sampling table for negative examples, built from token
// frequencies raised to the 3/4 power.
func (v *corpusVocab) unigramTable(size int) []int {
	table := make([]int, size)
	var norm float64
	for _, c := range v.counts {
		norm += math.Pow(float64(c), 0.75)
	}
	i := 0
	cum := math.Pow(float64(v.counts[0]), 0.75) / norm
	for t := 0; t < size; t++ {
		table[t] = i
		if float64(t)/float64(size) > cum && i < len(v.counts)-1 {
			i++
			cum += math.Pow(float64(v.counts[i]), 0.75) / norm
		}
	}
	return table
}

// initMatrix allocates a rows x dim matrix with small random entries.
func initMatrix(rows, dim int, scale float32, rng *rand.Rand) [][]float32 {
	m := make([][]float32, rows)
	for i := range m {
		row := make([]float32, dim)
		for j := range row {
			row[j] = (rng.Float32() - 0.5) * scale / float32(dim)
		}
		m[i] = row
	}
	return m
}
