// Package tokens turns raw essay text into ordered token lists. Tokens are
// lowercased words (letters, digits, internal apostrophes) and single
// punctuation marks; punctuation is kept as tokens so downstream embedding
// fits retain some sentence structure.
package tokens

import (
	"strings"
	"unicode"
)

// Tokenizer splits essay text into tokens. The zero value is ready to use.
type Tokenizer struct{}

// NewTokenizer creates a Tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Apply tokenizes every essay in the slice, returning one token list per
// essay in input order.
func (t *Tokenizer) Apply(essays []string) [][]string {
	docs := make([][]string, len(essays))
	for i, essay := range essays {
		docs[i] = t.Tokenize(essay)
	}
	return docs
}

// Tokenize splits a single essay into lowercase word and punctuation tokens.
func (t *Tokenizer) Tokenize(essay string) []string {
	var toks []string
	var word strings.Builder

	flush := func() {
		if word.Len() > 0 {
			toks = append(toks, word.String())
			word.Reset()
		}
	}

	runes := []rune(essay)
	for i, r := range runes {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			word.WriteRune(unicode.ToLower(r))
		case r == '\'' && word.Len() > 0 && i+1 < len(runes) && unicode.IsLetter(runes[i+1]):
			// internal apostrophe, e.g. don't
			word.WriteRune(r)
		case unicode.IsSpace(r):
			flush()
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			flush()
			toks = append(toks, string(r))
		default:
			flush()
		}
	}
	flush()
	return toks
}
