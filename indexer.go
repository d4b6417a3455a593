package minnow

import (
	"fmt"
	"time"
)

// Indexer builds the inverted index, the trie and the document store in one
// deterministic pass. It is single-writer: feed documents sequentially, then
// call Build once. The returned bundle is immutable.
type Indexer struct {
	Analyzer      Analyzer
	InvertedIndex InvertedIndex
	Docs          DocumentStore
}

func NewIndexer(analyzer Analyzer) *Indexer {
	return &Indexer{
		Analyzer:      analyzer,
		InvertedIndex: NewInvertedIndex(),
		Docs:          NewDocumentStore(),
	}
}

// AddDocument analyzes one document and folds it into the in-memory index.
// The document id must be unique within the build; a duplicate aborts the
// build with an error.
func (i *Indexer) AddDocument(doc Document) error {
	tokenStream := i.Analyzer.Analyze(doc.Body)
	doc.TokenCount = tokenStream.Size()
	if err := i.Docs.Add(doc); err != nil {
		return fmt.Errorf("index build: %w", err)
	}
	for pos, token := range tokenStream.Tokens {
		i.updatePostingList(doc.ID, token.Term, uint64(pos))
	}
	return nil
}

// updatePostingList records one term occurrence, keeping posting lists
// ascending by document id and position lists ascending by construction.
func (i *Indexer) updatePostingList(docID DocumentID, term string, pos uint64) {
	postingList, ok := i.InvertedIndex[term]
	if !ok {
		i.InvertedIndex[term] = NewPostingList(NewPostings(docID, []uint64{pos}, nil))
		return
	}

	// Find the posting for this document if it exists.
	var p *Postings = postingList.Postings
	for p != nil && p.DocumentID != docID {
		p = p.Next
	}
	if p != nil {
		p.Positions = append(p.Positions, pos)
		i.InvertedIndex[term] = postingList
		return
	}

	// New document for this term: insert keeping document ids ascending.
	if docID < postingList.Postings.DocumentID {
		postingList.Postings = NewPostings(docID, []uint64{pos}, postingList.Postings)
		i.InvertedIndex[term] = postingList
		return
	}
	var t *Postings = postingList.Postings
	for t.Next != nil && t.Next.DocumentID < docID {
		t = t.Next
	}
	t.PushBack(NewPostings(docID, []uint64{pos}, nil))
	i.InvertedIndex[term] = postingList
}

// Build constructs the trie from the index vocabulary and seals everything
// into a bundle. The trie is weighted by total corpus frequency so that
// frequent terms rank first in suggestions.
func (i *Indexer) Build() (*Bundle, error) {
	trie := NewTrie()
	for term, postingList := range i.InvertedIndex {
		trie.Insert(term, postingList.TotalAppearanceCount())
	}
	bundle := &Bundle{
		InvertedIndex:       i.InvertedIndex,
		Trie:                trie,
		Docs:                i.Docs,
		DocumentCount:       i.Docs.Count(),
		AnalyzerFingerprint: i.Analyzer.Fingerprint(),
		BuiltAt:             time.Now(),
	}
	if err := bundle.Validate(); err != nil {
		return nil, err
	}
	return bundle, nil
}

// BuildBundle indexes a whole document collection at once. Nothing is
// published if any document fails ingestion.
func BuildBundle(analyzer Analyzer, docs []Document) (*Bundle, error) {
	indexer := NewIndexer(analyzer)
	for _, doc := range docs {
		if err := indexer.AddDocument(doc); err != nil {
			return nil, err
		}
	}
	return indexer.Build()
}
