package minnow

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
)

var (
	// ErrNoIndex means no bundle has been built or loaded yet.
	ErrNoIndex = errors.New("no index available")
	// ErrAnalyzerMismatch means the stored bundle was built with a different
	// analyzer configuration than the one serving queries.
	ErrAnalyzerMismatch = errors.New("analyzer configuration does not match stored index")
)

// SearchResult is one ranked hit joined with display metadata.
type SearchResult struct {
	DocumentID DocumentID
	Score      float64
	Title      string
	SourcePath string
}

// Engine ties the analyzer, the persisted bundle and the query path
// together. Readers always see a complete bundle: BuildIndex and LoadIndex
// swap the served bundle atomically, and queries hold the bundle they
// started with for their whole duration. All query methods are safe for
// concurrent use.
type Engine struct {
	analyzer Analyzer
	storage  Storage
	logger   *slog.Logger
	bundle   atomic.Pointer[Bundle]
}

// NewEngine creates an engine. storage may be nil for a memory-only engine
// that never persists.
func NewEngine(analyzer Analyzer, storage Storage) *Engine {
	return &Engine{
		analyzer: analyzer,
		storage:  storage,
		logger:   slog.Default(),
	}
}

// BuildIndex indexes the document collection, persists the bundle and then
// publishes it. On any error the previously served bundle stays in place.
func (e *Engine) BuildIndex(docs []Document) error {
	bundle, err := BuildBundle(e.analyzer, docs)
	if err != nil {
		return err
	}
	if e.storage != nil {
		if err := e.storage.SaveBundle(bundle); err != nil {
			return fmt.Errorf("persist index bundle: %w", err)
		}
	}
	e.bundle.Store(bundle)
	e.logger.Info("index built",
		slog.Int("documents", bundle.DocumentCount),
		slog.Int("terms", len(bundle.InvertedIndex)),
	)
	return nil
}

// LoadIndex loads the persisted bundle and publishes it. A bundle built with
// a different analyzer configuration is rejected: serving it would silently
// break term and position matching.
func (e *Engine) LoadIndex() error {
	if e.storage == nil {
		return ErrNoIndex
	}
	bundle, err := e.storage.LoadBundle()
	if err != nil {
		e.logger.Error("index load failed", slog.String("error", err.Error()))
		return err
	}
	if bundle.AnalyzerFingerprint != e.analyzer.Fingerprint() {
		return fmt.Errorf("%w: stored=%d current=%d",
			ErrAnalyzerMismatch, bundle.AnalyzerFingerprint, e.analyzer.Fingerprint())
	}
	e.bundle.Store(bundle)
	e.logger.Info("index loaded",
		slog.Int("documents", bundle.DocumentCount),
		slog.Time("built_at", bundle.BuiltAt),
	)
	return nil
}

// Search runs a free-text or phrase query (selected by quoting) and returns
// up to limit ranked results. limit <= 0 means no truncation. An empty or
// all-stopword query returns empty results, not an error.
func (e *Engine) Search(query string, limit int) ([]SearchResult, error) {
	bundle := e.bundle.Load()
	if bundle == nil {
		return nil, ErrNoIndex
	}
	searcher := ParseQuery(query, e.analyzer).Searcher(bundle)
	docs, err := searcher.Search()
	if err != nil {
		return nil, err
	}
	scored := NewTfIdfSorter(bundle).Sort(docs, searcher.QueryTerms())
	if limit > 0 && len(scored) > limit {
		scored = scored[:limit]
	}
	results := make([]SearchResult, len(scored))
	for i, s := range scored {
		results[i] = SearchResult{
			DocumentID: s.Document.ID,
			Score:      s.Score,
			Title:      s.Document.Title,
			SourcePath: s.Document.SourcePath,
		}
	}
	return results, nil
}

// Suggest returns up to limit vocabulary terms completing the prefix. The
// prefix goes through the same analyzer as indexed text (only the first
// token is used), so suggestions always come from the normalized vocabulary.
func (e *Engine) Suggest(prefix string, limit int) []string {
	bundle := e.bundle.Load()
	if bundle == nil {
		return []string{}
	}
	tokenStream := e.analyzer.Analyze(prefix)
	if tokenStream.Size() == 0 {
		return []string{}
	}
	return bundle.Trie.Suggest(tokenStream.Tokens[0].Term, limit)
}

// Document looks up display metadata by id.
func (e *Engine) Document(id DocumentID) (Document, bool) {
	bundle := e.bundle.Load()
	if bundle == nil {
		return Document{}, false
	}
	return bundle.Docs.Get(id)
}

// Bundle returns the currently served bundle, or nil before the first build
// or load.
func (e *Engine) Bundle() *Bundle {
	return e.bundle.Load()
}
