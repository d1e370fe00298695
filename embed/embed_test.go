package embed

import (
	"path/filepath"
	"reflect"
	"testing"
)

var corpus = [][]string{
	{"the", "cat", "sat", "on", "the", "mat"},
	{"the", "dog", "sat", "on", "the", "rug"},
	{"a", "cat", "and", "a", "dog", "played"},
	{"the", "mat", "and", "the", "rug", "overlapped"},
}

// Small dimensions and few passes keep the tests fast; the defaults are for
// real corpora.
var smallW2V = Word2VecConfig{VectorSize: 8, Iters: 3, Window: 2, Negative: 2, Seed: 1}
var smallD2V = Doc2VecConfig{VectorSize: 6, Epochs: 3, Negative: 2, Seed: 1}

func TestFitWord2VecShapes(t *testing.T) {
	wv, err := FitWord2Vec(corpus, smallW2V)
	if err != nil {
		t.Fatalf("FitWord2Vec error: %v", err)
	}
	if wv.Dim != 8 {
		t.Fatalf("Dim = %d, want 8", wv.Dim)
	}

	distinct := map[string]bool{}
	for _, doc := range corpus {
		for _, tok := range doc {
			distinct[tok] = true
		}
	}
	if len(wv.Vectors) != len(distinct) {
		t.Fatalf("got %d vectors, want %d (one per distinct token)", len(wv.Vectors), len(distinct))
	}
	for tok := range distinct {
		vec, ok := wv.Vector(tok)
		if !ok {
			t.Fatalf("no vector for token %q", tok)
		}
		if len(vec) != 8 {
			t.Fatalf("vector for %q has length %d, want 8", tok, len(vec))
		}
	}
}

func TestFitWord2VecDeterministic(t *testing.T) {
	a, err := FitWord2Vec(corpus, smallW2V)
	if err != nil {
		t.Fatalf("FitWord2Vec error: %v", err)
	}
	b, err := FitWord2Vec(corpus, smallW2V)
	if err != nil {
		t.Fatalf("FitWord2Vec error: %v", err)
	}
	if !reflect.DeepEqual(a.Vectors, b.Vectors) {
		t.Fatal("word2vec fits differ under the same seed")
	}
}

func TestFitWord2VecEmptyCorpus(t *testing.T) {
	if _, err := FitWord2Vec(nil, smallW2V); err == nil {
		t.Fatal("expected error for empty corpus")
	}
	if _, err := FitWord2Vec([][]string{{}, {}}, smallW2V); err == nil {
		t.Fatal("expected error for corpus with no tokens")
	}
}

func TestFitDoc2VecShapes(t *testing.T) {
	m, err := FitDoc2Vec(corpus, smallD2V)
	if err != nil {
		t.Fatalf("FitDoc2Vec error: %v", err)
	}
	if m.Dim != 6 {
		t.Fatalf("Dim = %d, want 6", m.Dim)
	}
	if len(m.DocVecs) != len(corpus) {
		t.Fatalf("got %d doc vectors, want %d", len(m.DocVecs), len(corpus))
	}
	for i, dv := range m.DocVecs {
		if len(dv) != 6 {
			t.Fatalf("doc vector %d has length %d, want 6", i, len(dv))
		}
	}
	if len(m.Vocab) != len(m.Out) {
		t.Fatalf("vocab (%d) and output weights (%d) misaligned", len(m.Vocab), len(m.Out))
	}
}

func TestDoc2VecModelRoundTrip(t *testing.T) {
	m, err := FitDoc2Vec(corpus, smallD2V)
	if err != nil {
		t.Fatalf("FitDoc2Vec error: %v", err)
	}

	path := filepath.Join(t.TempDir(), "doc2vec.gob")
	if err := m.Save(path); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	got, err := LoadDoc2Vec(path)
	if err != nil {
		t.Fatalf("LoadDoc2Vec error: %v", err)
	}
	if !reflect.DeepEqual(m, got) {
		t.Fatal("model artifact did not round-trip through gob")
	}
}

func TestBuildCorpusVocabOrdering(t *testing.T) {
	v := buildCorpusVocab(corpus)
	if v.toks[0] != "the" {
		t.Fatalf("most frequent token = %q, want \"the\"", v.toks[0])
	}
	for i := 1; i < len(v.counts); i++ {
		if v.counts[i] > v.counts[i-1] {
			t.Fatalf("counts not descending at %d: %v", i, v.counts)
		}
	}
}
