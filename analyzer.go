package minnow

import (
	"strings"

	farmhash "github.com/leemcloughlin/gofarmhash"
)

// Analyzer is the normalization pipeline: char filters, then the tokenizer,
// then token filters. The same analyzer value must be used at index-build
// time and at query time, otherwise term identity and positions drift apart.
// Fingerprint makes that explicit: it is stored in the built bundle and
// checked on load.
type Analyzer struct {
	charFilters  []CharFilter
	tokenizer    Tokenizer
	tokenFilters []TokenFilter
}

func NewAnalyzer(charFilters []CharFilter, tokenizer Tokenizer, tokenFilters []TokenFilter) Analyzer {
	return Analyzer{
		charFilters:  charFilters,
		tokenizer:    tokenizer,
		tokenFilters: tokenFilters,
	}
}

// NewStandardAnalyzer is the default English pipeline: standard tokenizer,
// lowercase, stopword removal, snowball stemming.
func NewStandardAnalyzer(stopWords []string, stemmerLanguage string) Analyzer {
	return NewAnalyzer(
		[]CharFilter{},
		NewStandardTokenizer(),
		[]TokenFilter{
			NewLowercaseFilter(),
			NewStopWordFilter(stopWords),
			NewStemmerFilter(stemmerLanguage),
		},
	)
}

func (a Analyzer) Analyze(s string) TokenStream {
	for _, c := range a.charFilters {
		s = c.Filter(s)
	}
	tokenStream := a.tokenizer.Tokenize(s)
	for _, f := range a.tokenFilters {
		tokenStream = f.Filter(tokenStream)
	}
	return tokenStream
}

// Fingerprint is a stable hash of the pipeline configuration.
func (a Analyzer) Fingerprint() uint32 {
	parts := make([]string, 0, len(a.charFilters)+1+len(a.tokenFilters))
	for _, c := range a.charFilters {
		parts = append(parts, c.String())
	}
	parts = append(parts, a.tokenizer.String())
	for _, f := range a.tokenFilters {
		parts = append(parts, f.String())
	}
	return farmhash.Hash32WithSeed([]byte(strings.Join(parts, "|")), 0)
}
