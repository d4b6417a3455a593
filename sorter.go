package minnow

import (
	"math"
	"sort"
)

// ScoredDocument pairs a matched document with its relevance score.
type ScoredDocument struct {
	Document Document
	Score    float64
}

func NewScoredDocument(doc Document, score float64) ScoredDocument {
	return ScoredDocument{
		Document: doc,
		Score:    score,
	}
}

type Sorter interface {
	Sort(docs []Document, terms []string) []ScoredDocument
}

// TfIdfSorter ranks candidates by summed tf-idf over the distinct query
// terms. tf is the raw occurrence count in the document; idf is
// ln(N/(1+df))+1, where the +1 keeps the score positive and finite even for
// a term present in every document.
type TfIdfSorter struct {
	bundle *Bundle
}

func NewTfIdfSorter(bundle *Bundle) *TfIdfSorter {
	return &TfIdfSorter{
		bundle: bundle,
	}
}

func (s *TfIdfSorter) Sort(docs []Document, terms []string) []ScoredDocument {
	n := float64(s.bundle.DocumentCount)
	scored := make([]ScoredDocument, len(docs))
	for i, doc := range docs {
		var sum float64
		for _, term := range terms {
			postingList := s.bundle.InvertedIndex.PostingList(term)
			tf := float64(postingList.AppearanceCountInDocument(doc.ID))
			idf := math.Log(n/float64(1+postingList.Size())) + 1
			sum += tf * idf
		}
		scored[i] = NewScoredDocument(doc, sum)
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Document.ID < scored[j].Document.ID
	})
	return scored
}
