package tokens

import (
	"reflect"
	"testing"
)

func TestTokenizeLowercasesAndKeepsPunctuation(t *testing.T) {
	tk := NewTokenizer()
	got := tk.Tokenize("Dear Newspaper, computers are GREAT!")
	want := []string{"dear", "newspaper", ",", "computers", "are", "great", "!"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeKeepsInternalApostrophes(t *testing.T) {
	tk := NewTokenizer()
	got := tk.Tokenize("don't stop")
	want := []string{"don't", "stop"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}

	// A trailing apostrophe is punctuation, not part of a word.
	got = tk.Tokenize("students' work")
	want = []string{"students", "'", "work"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Tokenize = %v, want %v", got, want)
	}
}

func TestTokenizeEmptyAndWhitespace(t *testing.T) {
	tk := NewTokenizer()
	if got := tk.Tokenize(""); len(got) != 0 {
		t.Fatalf("Tokenize(\"\") = %v, want empty", got)
	}
	if got := tk.Tokenize("   \n\t "); len(got) != 0 {
		t.Fatalf("Tokenize(whitespace) = %v, want empty", got)
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	tk := NewTokenizer()
	docs := tk.Apply([]string{"first essay", "second essay"})
	if len(docs) != 2 {
		t.Fatalf("Apply returned %d docs, want 2", len(docs))
	}
	if docs[0][0] != "first" || docs[1][0] != "second" {
		t.Fatalf("Apply reordered documents: %v", docs)
	}
}
