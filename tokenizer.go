package minnow

import (
	"fmt"
	"strings"
	"unicode"
)

// Tokenizer splits filtered text into a token stream. String must return a
// stable description of the tokenizer, it feeds the analyzer fingerprint.
type Tokenizer interface {
	Tokenize(string) TokenStream
	String() string
}

// StandardTokenizer splits on any rune that is neither a letter nor a digit.
// Punctuation separates tokens and is never retained.
type StandardTokenizer struct{}

func NewStandardTokenizer() StandardTokenizer {
	return StandardTokenizer{}
}

func (t StandardTokenizer) Tokenize(s string) TokenStream {
	terms := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	tokens := make([]Token, len(terms))
	for i, term := range terms {
		tokens[i] = NewToken(term)
	}
	return NewTokenStream(tokens)
}

func (t StandardTokenizer) String() string {
	return "standard"
}

// NgramTokenizer splits text into overlapping runs of n runes. Useful for
// substring-style matching where word boundaries are unreliable.
type NgramTokenizer struct {
	n int
}

func NewNgramTokenizer(n int) NgramTokenizer {
	return NgramTokenizer{n: n}
}

func (t NgramTokenizer) Tokenize(s string) TokenStream {
	runes := []rune(s)
	if len(runes) < t.n {
		return NewTokenStream([]Token{})
	}
	tokens := make([]Token, 0, len(runes)-t.n+1)
	for i := 0; i+t.n <= len(runes); i++ {
		tokens = append(tokens, NewToken(string(runes[i:i+t.n])))
	}
	return NewTokenStream(tokens)
}

func (t NgramTokenizer) String() string {
	return fmt.Sprintf("ngram(%d)", t.n)
}
