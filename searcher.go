package minnow

import "sort"

// Searcher runs one retrieval pass against a bundle. Search returns matching
// documents ascending by document id; QueryTerms exposes the normalized
// query terms for the ranking stage.
type Searcher interface {
	Search() ([]Document, error)
	QueryTerms() []string
}

// MatchSearcher performs strict boolean AND retrieval: a document matches
// only if every distinct query term occurs in it. The intersection is an
// ascending merge across posting lists, never a corpus scan.
type MatchSearcher struct {
	tokenStream TokenStream
	bundle      *Bundle
}

func NewMatchSearcher(tokenStream TokenStream, bundle *Bundle) MatchSearcher {
	return MatchSearcher{
		tokenStream: tokenStream,
		bundle:      bundle,
	}
}

func (ms MatchSearcher) QueryTerms() []string {
	return ms.tokenStream.DistinctTerms()
}

func (ms MatchSearcher) Search() ([]Document, error) {
	terms := ms.tokenStream.DistinctTerms()
	if len(terms) == 0 {
		return []Document{}, nil
	}
	cursors := make([]*Postings, len(terms))
	for i, term := range terms {
		postingList := ms.bundle.InvertedIndex.PostingList(term)
		if postingList.Postings == nil {
			// A term absent from the index empties the whole AND.
			return []Document{}, nil
		}
		cursors[i] = postingList.Postings
	}

	var matched []DocumentID
	intersectPostings(cursors, func(nodes []*Postings) {
		matched = append(matched, nodes[0].DocumentID)
	})
	return ms.bundle.collectDocuments(matched), nil
}

// PhraseSearcher performs phrase retrieval: boolean AND over the phrase
// terms, then a positional adjacency check per candidate document.
type PhraseSearcher struct {
	tokenStream TokenStream
	bundle      *Bundle
}

func NewPhraseSearcher(tokenStream TokenStream, bundle *Bundle) PhraseSearcher {
	return PhraseSearcher{
		tokenStream: tokenStream,
		bundle:      bundle,
	}
}

func (ps PhraseSearcher) QueryTerms() []string {
	return ps.tokenStream.DistinctTerms()
}

func (ps PhraseSearcher) Search() ([]Document, error) {
	terms := ps.tokenStream.Terms() // order and duplicates matter here
	if len(terms) == 0 {
		return []Document{}, nil
	}
	cursors := make([]*Postings, len(terms))
	for i, term := range terms {
		postingList := ps.bundle.InvertedIndex.PostingList(term)
		if postingList.Postings == nil {
			return []Document{}, nil
		}
		cursors[i] = postingList.Postings
	}

	var matched []DocumentID
	intersectPostings(cursors, func(nodes []*Postings) {
		if isPhraseMatch(nodes) {
			matched = append(matched, nodes[0].DocumentID)
		}
	})
	return ps.bundle.collectDocuments(matched), nil
}

// intersectPostings walks the posting lists in lockstep and calls onMatch
// with the aligned nodes each time every cursor sits on the same document.
// All lists must ascend by document id.
func intersectPostings(cursors []*Postings, onMatch func([]*Postings)) {
	for {
		var max DocumentID
		aligned := true
		for _, c := range cursors {
			if c == nil {
				return
			}
			if c.DocumentID > max {
				max = c.DocumentID
			}
		}
		for _, c := range cursors {
			if c.DocumentID != max {
				aligned = false
			}
		}
		if aligned {
			onMatch(cursors)
			for i := range cursors {
				cursors[i] = cursors[i].Next
			}
			continue
		}
		// Advance every cursor that is behind the current maximum.
		for i, c := range cursors {
			for c != nil && c.DocumentID < max {
				c = c.Next
			}
			cursors[i] = c
		}
	}
}

// isPhraseMatch reports whether the aligned postings contain positions
// p, p+1, ..., p+k-1 for terms 0..k-1. Subtracting each term's offset turns
// adjacency into equality, so it reduces to intersecting position lists.
func isPhraseMatch(nodes []*Postings) bool {
	for _, start := range nodes[0].Positions {
		match := true
		for i := 1; i < len(nodes); i++ {
			if !positionsContain(nodes[i].Positions, start+uint64(i)) {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

// positionsContain binary-searches an ascending position list.
func positionsContain(positions []uint64, target uint64) bool {
	i := sort.Search(len(positions), func(i int) bool { return positions[i] >= target })
	return i < len(positions) && positions[i] == target
}

// collectDocuments joins matched ids with the document store, preserving the
// ascending id order produced by the merge.
func (b *Bundle) collectDocuments(ids []DocumentID) []Document {
	docs := make([]Document, 0, len(ids))
	for _, id := range ids {
		if doc, ok := b.Docs.Get(id); ok {
			docs = append(docs, doc)
		}
	}
	return docs
}
