// Package vocab builds fixed-size vocabularies over tokenized documents and
// reduces documents to them, plus a featurizer aggregating token embeddings
// into per-document feature vectors.
package vocab

import (
	"fmt"
	"sort"
)

// DefaultSize is the vocabulary size used by the pipeline.
const DefaultSize = 3000

// Vocab is a fixed-size vocabulary of the most frequent tokens in a corpus.
type Vocab struct {
	// Size is the maximum number of tokens retained.
	Size int

	index map[string]int
	toks  []string
}

// New creates an empty Vocab. size <= 0 selects DefaultSize.
func New(size int) *Vocab {
	if size <= 0 {
		size = DefaultSize
	}
	return &Vocab{Size: size}
}

// BuildFromTokenizedDocs ranks tokens by corpus frequency (ties broken
// lexicographically, so builds are deterministic) and retains the top Size.
func (v *Vocab) BuildFromTokenizedDocs(docs [][]string) {
	counts := make(map[string]int)
	for _, doc := range docs {
		for _, tok := range doc {
			counts[tok]++
		}
	}

	ranked := make([]string, 0, len(counts))
	for tok := range counts {
		ranked = append(ranked, tok)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if counts[ranked[i]] != counts[ranked[j]] {
			return counts[ranked[i]] > counts[ranked[j]]
		}
		return ranked[i] < ranked[j]
	})
	if len(ranked) > v.Size {
		ranked = ranked[:v.Size]
	}

	v.toks = ranked
	v.index = make(map[string]int, len(ranked))
	for i, tok := range ranked {
		v.index[tok] = i
	}
}

// Len returns the number of retained tokens.
func (v *Vocab) Len() int {
	return len(v.toks)
}

// Contains reports whether tok is in the vocabulary.
func (v *Vocab) Contains(tok string) bool {
	_, ok := v.index[tok]
	return ok
}

// Tokens returns the retained tokens in rank order. The returned slice must
// not be modified.
func (v *Vocab) Tokens() []string {
	return v.toks
}

// ReduceDocs filters out-of-vocabulary tokens from every document,
// preserving token order. The input documents are not modified.
func (v *Vocab) ReduceDocs(docs [][]string) ([][]string, error) {
	if v.index == nil {
		return nil, fmt.Errorf("vocabulary has not been built")
	}
	reduced := make([][]string, len(docs))
	for i, doc := range docs {
		kept := make([]string, 0, len(doc))
		for _, tok := range doc {
			if v.Contains(tok) {
				kept = append(kept, tok)
			}
		}
		reduced[i] = kept
	}
	return reduced, nil
}
