package minnow

import "strings"

// Query is a parsed search request. Searcher binds it to the bundle it will
// run against.
type Query interface {
	Searcher(*Bundle) Searcher
}

// ParseQuery selects the query mode from the raw text: a query wrapped in a
// double-quote pair is a phrase query, anything else is free text. A lone or
// unbalanced quote is treated as free text.
func ParseQuery(text string, analyzer Analyzer) Query {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) >= 2 && strings.HasPrefix(trimmed, `"`) && strings.HasSuffix(trimmed, `"`) {
		return NewPhraseQuery(trimmed[1:len(trimmed)-1], analyzer)
	}
	return NewMatchQuery(trimmed, analyzer)
}

// MatchQuery is free-text retrieval: boolean AND over all distinct
// normalized query terms.
type MatchQuery struct {
	text     string
	analyzer Analyzer
}

func NewMatchQuery(text string, analyzer Analyzer) *MatchQuery {
	return &MatchQuery{
		text:     text,
		analyzer: analyzer,
	}
}

func (q *MatchQuery) Searcher(bundle *Bundle) Searcher {
	return NewMatchSearcher(q.analyzer.Analyze(q.text), bundle)
}

// PhraseQuery requires its terms to appear contiguously and in order.
type PhraseQuery struct {
	phrase   string
	analyzer Analyzer
}

func NewPhraseQuery(phrase string, analyzer Analyzer) *PhraseQuery {
	return &PhraseQuery{
		phrase:   phrase,
		analyzer: analyzer,
	}
}

func (q *PhraseQuery) Searcher(bundle *Bundle) Searcher {
	return NewPhraseSearcher(q.analyzer.Analyze(q.phrase), bundle)
}
