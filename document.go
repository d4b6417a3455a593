package minnow

import "fmt"

type DocumentID uint64

// Document is a fixed-shape ingestion record. ID is assigned by the caller
// and must be unique and non-zero within one build. TokenCount is filled in
// by the indexer: the number of normalized tokens, used as document length
// for scoring.
type Document struct {
	ID         DocumentID `db:"id"`
	Title      string     `db:"title"`
	SourcePath string     `db:"source_path"`
	Body       string     `db:"body"`
	TokenCount int        `db:"token_count"`
}

func NewDocument(id DocumentID, title, sourcePath, body string) Document {
	return Document{
		ID:         id,
		Title:      title,
		SourcePath: sourcePath,
		Body:       body,
	}
}

// DocumentStore maps document id to the record used for result display. It
// is not consulted during matching or scoring.
type DocumentStore map[DocumentID]Document

func NewDocumentStore() DocumentStore {
	return make(DocumentStore)
}

func (ds DocumentStore) Get(id DocumentID) (Document, bool) {
	doc, ok := ds[id]
	return doc, ok
}

func (ds DocumentStore) Count() int {
	return len(ds)
}

func (ds DocumentStore) Add(doc Document) error {
	if doc.ID == 0 {
		return fmt.Errorf("document id must be non-zero (title=%q)", doc.Title)
	}
	if _, ok := ds[doc.ID]; ok {
		return fmt.Errorf("duplicate document id %d (title=%q)", doc.ID, doc.Title)
	}
	ds[doc.ID] = doc
	return nil
}
