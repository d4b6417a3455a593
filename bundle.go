package minnow

import (
	"errors"
	"fmt"
	"time"
)

var ErrInconsistentBundle = errors.New("inconsistent index bundle")

// Bundle is the immutable output of one build pass: the inverted index, the
// autocomplete trie and the document store, built together from the same
// normalized vocabulary. Once built it is never mutated; a rebuild produces
// a fresh bundle that replaces the old one atomically.
type Bundle struct {
	InvertedIndex       InvertedIndex
	Trie                *Trie
	Docs                DocumentStore
	DocumentCount       int
	AnalyzerFingerprint uint32
	BuiltAt             time.Time
}

// Validate checks the structural invariants that queries rely on. A bundle
// failing validation must never be served.
func (b *Bundle) Validate() error {
	if b.InvertedIndex == nil || b.Trie == nil || b.Docs == nil {
		return fmt.Errorf("%w: missing component", ErrInconsistentBundle)
	}
	if b.DocumentCount != b.Docs.Count() {
		return fmt.Errorf("%w: document count %d does not match store size %d",
			ErrInconsistentBundle, b.DocumentCount, b.Docs.Count())
	}

	// The set of complete trie terms must equal the index vocabulary.
	vocabulary := b.InvertedIndex.Vocabulary()
	trieTerms := b.Trie.Terms()
	if len(vocabulary) != len(trieTerms) {
		return fmt.Errorf("%w: trie holds %d terms, index holds %d",
			ErrInconsistentBundle, len(trieTerms), len(vocabulary))
	}
	for i, term := range vocabulary {
		if trieTerms[i] != term {
			return fmt.Errorf("%w: trie and index vocabularies diverge at %q vs %q",
				ErrInconsistentBundle, trieTerms[i], term)
		}
	}

	// Posting lists ascend by document id, positions ascend strictly, and
	// every posting points at a stored document.
	for term, postingList := range b.InvertedIndex {
		if postingList.Postings == nil {
			return fmt.Errorf("%w: term %q has an empty posting list", ErrInconsistentBundle, term)
		}
		var prevDocID DocumentID
		for p := postingList.Postings; p != nil; p = p.Next {
			if p.DocumentID <= prevDocID && prevDocID != 0 {
				return fmt.Errorf("%w: term %q postings not ascending at document %d",
					ErrInconsistentBundle, term, p.DocumentID)
			}
			prevDocID = p.DocumentID
			if _, ok := b.Docs.Get(p.DocumentID); !ok {
				return fmt.Errorf("%w: term %q posted in unknown document %d",
					ErrInconsistentBundle, term, p.DocumentID)
			}
			if len(p.Positions) == 0 {
				return fmt.Errorf("%w: term %q has no positions in document %d",
					ErrInconsistentBundle, term, p.DocumentID)
			}
			for i := 1; i < len(p.Positions); i++ {
				if p.Positions[i] <= p.Positions[i-1] {
					return fmt.Errorf("%w: term %q positions not strictly ascending in document %d",
						ErrInconsistentBundle, term, p.DocumentID)
				}
			}
		}
	}
	return nil
}
