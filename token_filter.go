package minnow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kljensen/snowball"
	farmhash "github.com/leemcloughlin/gofarmhash"
)

// TokenFilter transforms or drops tokens after tokenization. String must
// return a stable description of the filter configuration, it feeds the
// analyzer fingerprint.
type TokenFilter interface {
	Filter(TokenStream) TokenStream
	String() string
}

type LowercaseFilter struct{}

func NewLowercaseFilter() LowercaseFilter {
	return LowercaseFilter{}
}

func (f LowercaseFilter) Filter(tokenStream TokenStream) TokenStream {
	r := make([]Token, tokenStream.Size())
	for i, token := range tokenStream.Tokens {
		lower := strings.ToLower(token.Term)
		r[i] = NewToken(lower)
	}
	return NewTokenStream(r)
}

func (f LowercaseFilter) String() string {
	return "lowercase"
}

type StopWordFilter struct {
	stopWords map[string]struct{}
}

func NewStopWordFilter(stopWords []string) StopWordFilter {
	m := make(map[string]struct{}, len(stopWords))
	for _, w := range stopWords {
		m[w] = struct{}{}
	}
	return StopWordFilter{
		stopWords: m,
	}
}

func (f StopWordFilter) Filter(tokenStream TokenStream) TokenStream {
	r := make([]Token, 0, tokenStream.Size())
	for _, token := range tokenStream.Tokens {
		if _, ok := f.stopWords[token.Term]; !ok {
			r = append(r, token)
		}
	}
	return NewTokenStream(r)
}

func (f StopWordFilter) String() string {
	words := make([]string, 0, len(f.stopWords))
	for w := range f.stopWords {
		words = append(words, w)
	}
	sort.Strings(words)
	h := farmhash.Hash32WithSeed([]byte(strings.Join(words, " ")), 0)
	return fmt.Sprintf("stop(n=%d,hash=%d)", len(words), h)
}

// DefaultStopWords is a common English stopword set. Callers can pass their
// own list to NewStopWordFilter instead.
func DefaultStopWords() []string {
	return []string{
		"a", "an", "the", "and", "or", "but",
		"to", "in", "of", "on", "for", "with", "as", "at", "by", "from",
		"is", "are", "was", "were", "be", "been", "being",
		"this", "that", "these", "those", "it", "its", "itself",
		"i", "me", "my", "we", "our", "you", "your",
		"he", "him", "his", "she", "her", "they", "them", "their",
		"do", "does", "did", "doing",
		"have", "has", "had", "having",
		"not", "no", "nor", "only", "very", "too",
		"can", "could", "should", "would", "may", "might", "must", "will",
		"if", "then", "else", "than", "so", "because", "while", "when", "where",
		"about", "above", "below", "under", "over", "into", "out", "up", "down",
		"again", "further", "once", "here", "there",
	}
}

type StemmerFilter struct {
	language string
}

func NewStemmerFilter(language string) StemmerFilter {
	return StemmerFilter{
		language: language,
	}
}

func (f StemmerFilter) Filter(tokenStream TokenStream) TokenStream {
	r := make([]Token, tokenStream.Size())
	for i, token := range tokenStream.Tokens {
		stemmed, err := snowball.Stem(token.Term, f.language, false)
		if err != nil {
			// An unsupported language is caught at config validation, so
			// this only guards odd single tokens. Keep the original term.
			r[i] = NewToken(token.Term)
			continue
		}
		r[i] = NewToken(stemmed)
	}
	return NewTokenStream(r)
}

func (f StemmerFilter) String() string {
	return fmt.Sprintf("stem(%s)", f.language)
}

// SupportedStemmerLanguages lists the languages the snowball stemmer accepts.
func SupportedStemmerLanguages() []string {
	return []string{"english", "spanish", "french", "russian", "swedish", "norwegian", "hungarian"}
}
