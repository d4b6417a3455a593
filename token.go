package minnow

type TokenID uint64

// Token is a single unit of analyzed text. Term is the normalized form used
// for indexing and matching. ID is assigned by storage when persisted.
type Token struct {
	ID   TokenID `db:"id"`
	Term string  `db:"term"`
}

func NewToken(term string) Token {
	return Token{Term: term}
}

// TokenStream is an ordered sequence of tokens. The order defines the
// positions recorded in postings, so it must never be reordered.
type TokenStream struct {
	Tokens []Token
}

func NewTokenStream(tokens []Token) TokenStream {
	return TokenStream{
		Tokens: tokens,
	}
}

func (ts TokenStream) Size() int {
	return len(ts.Tokens)
}

func (ts TokenStream) Terms() []string {
	terms := make([]string, ts.Size())
	for i, t := range ts.Tokens {
		terms[i] = t.Term
	}
	return terms
}

// DistinctTerms returns the terms with duplicates removed, preserving the
// order of first appearance.
func (ts TokenStream) DistinctTerms() []string {
	seen := make(map[string]struct{}, ts.Size())
	terms := make([]string, 0, ts.Size())
	for _, t := range ts.Tokens {
		if _, ok := seen[t.Term]; ok {
			continue
		}
		seen[t.Term] = struct{}{}
		terms = append(terms, t.Term)
	}
	return terms
}
