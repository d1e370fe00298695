package vocab

import (
	"reflect"
	"testing"
)

func TestBuildRanksByFrequency(t *testing.T) {
	docs := [][]string{
		{"the", "cat", "sat", "the", "mat"},
		{"the", "dog", "sat"},
	}
	v := New(3)
	v.BuildFromTokenizedDocs(docs)

	if v.Len() != 3 {
		t.Fatalf("v.Len() = %d, want 3", v.Len())
	}
	// "the" x3, "sat" x2, then ties broken lexicographically: "cat".
	want := []string{"the", "sat", "cat"}
	if !reflect.DeepEqual(v.Tokens(), want) {
		t.Fatalf("Tokens() = %v, want %v", v.Tokens(), want)
	}
	if v.Contains("dog") {
		t.Fatal("dog should have been cut by the size limit")
	}
}

func TestReduceDocsDropsOOV(t *testing.T) {
	docs := [][]string{
		{"the", "cat", "sat", "the", "mat"},
		{"the", "dog", "sat"},
	}
	v := New(3)
	v.BuildFromTokenizedDocs(docs)

	reduced, err := v.ReduceDocs(docs)
	if err != nil {
		t.Fatalf("ReduceDocs error: %v", err)
	}
	want := [][]string{
		{"the", "cat", "sat", "the"},
		{"the", "sat"},
	}
	if !reflect.DeepEqual(reduced, want) {
		t.Fatalf("ReduceDocs = %v, want %v", reduced, want)
	}
	// Source docs untouched.
	if len(docs[0]) != 5 {
		t.Fatal("ReduceDocs mutated its input")
	}
}

func TestReduceDocsSeparateTarget(t *testing.T) {
	basis := [][]string{{"alpha", "beta", "alpha"}}
	v := New(1)
	v.BuildFromTokenizedDocs(basis)

	target := [][]string{{"alpha", "gamma"}, {"beta"}}
	reduced, err := v.ReduceDocs(target)
	if err != nil {
		t.Fatalf("ReduceDocs error: %v", err)
	}
	want := [][]string{{"alpha"}, {}}
	if !reflect.DeepEqual(reduced, want) {
		t.Fatalf("ReduceDocs = %v, want %v", reduced, want)
	}
}

func TestReduceBeforeBuildFails(t *testing.T) {
	v := New(10)
	if _, err := v.ReduceDocs([][]string{{"a"}}); err == nil {
		t.Fatal("expected error reducing with an unbuilt vocabulary")
	}
}

func TestDocFeaturizerAveragesEmbeddings(t *testing.T) {
	embedding := map[string][]float32{
		"cat": {1, 3},
		"dog": {3, 5},
	}
	f, err := NewDocFeaturizer(embedding)
	if err != nil {
		t.Fatalf("NewDocFeaturizer error: %v", err)
	}
	if f.Dim() != 2 {
		t.Fatalf("Dim() = %d, want 2", f.Dim())
	}

	rows := f.FeaturizeCorpus([][]string{
		{"cat", "dog"},
		{"cat", "unknown"},
		{},
	})
	if !reflect.DeepEqual(rows[0], []float32{2, 4}) {
		t.Errorf("mean of cat+dog = %v, want [2 4]", rows[0])
	}
	if !reflect.DeepEqual(rows[1], []float32{1, 3}) {
		t.Errorf("unknown tokens must be skipped, got %v", rows[1])
	}
	if !reflect.DeepEqual(rows[2], []float32{0, 0}) {
		t.Errorf("empty doc must map to zero vector, got %v", rows[2])
	}
}

func TestDocFeaturizerValidatesEmbedding(t *testing.T) {
	if _, err := NewDocFeaturizer(nil); err == nil {
		t.Fatal("expected error for empty embedding")
	}
	bad := map[string][]float32{"a": {1, 2}, "b": {1}}
	if _, err := NewDocFeaturizer(bad); err == nil {
		t.Fatal("expected error for ragged embedding vectors")
	}
}
