package minnow

import (
	"fmt"
	"reflect"
	"testing"
)

// scenarioBundle is the corpus from the ranking scenario: stopword "the"
// filtered, no stemming.
func scenarioBundle(t *testing.T) *Bundle {
	t.Helper()
	bundle, err := BuildBundle(testAnalyzer(), []Document{
		NewDocument(1, "doc1", "data/1.txt", "the quick brown fox"),
		NewDocument(2, "doc2", "data/2.txt", "the lazy dog"),
		NewDocument(3, "doc3", "data/3.txt", "quick fox jumps"),
	})
	if err != nil {
		t.Fatal(err)
	}
	return bundle
}

func matchedIDs(t *testing.T, s Searcher) []DocumentID {
	t.Helper()
	docs, err := s.Search()
	if err != nil {
		t.Fatal(err)
	}
	ids := make([]DocumentID, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	return ids
}

func TestMatchSearch(t *testing.T) {
	bundle := scenarioBundle(t)
	analyzer := testAnalyzer()

	cases := []struct {
		query    string
		expected []DocumentID
	}{
		{
			query:    "quick fox",
			expected: []DocumentID{1, 3},
		},
		{
			query:    "quick",
			expected: []DocumentID{1, 3},
		},
		{
			query:    "lazy dog",
			expected: []DocumentID{2},
		},
		{
			// One unknown term empties the whole AND.
			query:    "quick zebra",
			expected: []DocumentID{},
		},
		{
			query:    "",
			expected: []DocumentID{},
		},
		{
			// Normalizes to nothing.
			query:    "the",
			expected: []DocumentID{},
		},
	}
	for _, tt := range cases {
		t.Run(fmt.Sprintf("query = %v", tt.query), func(t *testing.T) {
			searcher := NewMatchSearcher(analyzer.Analyze(tt.query), bundle)
			got := matchedIDs(t, searcher)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("MatchSearcher.Search() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestMatchSearchBooleanAnd(t *testing.T) {
	bundle := scenarioBundle(t)
	searcher := NewMatchSearcher(testAnalyzer().Analyze("quick fox"), bundle)
	for _, id := range matchedIDs(t, searcher) {
		for _, term := range []string{"quick", "fox"} {
			if bundle.InvertedIndex.PostingList(term).AppearanceCountInDocument(id) == 0 {
				t.Errorf("document %d returned without term %q", id, term)
			}
		}
	}
}

func TestPhraseSearch(t *testing.T) {
	bundle := scenarioBundle(t)
	analyzer := testAnalyzer()

	cases := []struct {
		phrase   string
		expected []DocumentID
	}{
		{
			// doc1 has quick..fox with "brown" between, only doc3 is adjacent.
			phrase:   "quick fox",
			expected: []DocumentID{3},
		},
		{
			phrase:   "quick brown fox",
			expected: []DocumentID{1},
		},
		{
			phrase:   "fox jumps",
			expected: []DocumentID{3},
		},
		{
			// Reversed order must not match.
			phrase:   "fox quick",
			expected: []DocumentID{},
		},
		{
			phrase:   "lazy dog",
			expected: []DocumentID{2},
		},
		{
			phrase:   "",
			expected: []DocumentID{},
		},
	}
	for _, tt := range cases {
		t.Run(fmt.Sprintf("phrase = %v", tt.phrase), func(t *testing.T) {
			searcher := NewPhraseSearcher(analyzer.Analyze(tt.phrase), bundle)
			got := matchedIDs(t, searcher)
			if len(got) == 0 && len(tt.expected) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("PhraseSearcher.Search() = %v, expected %v", got, tt.expected)
			}
		})
	}
}

func TestPhraseSearchRepeatedTerm(t *testing.T) {
	bundle, err := BuildBundle(testAnalyzer(), []Document{
		NewDocument(1, "doc1", "", "buffalo buffalo buffalo"),
		NewDocument(2, "doc2", "", "buffalo grass buffalo"),
	})
	if err != nil {
		t.Fatal(err)
	}
	searcher := NewPhraseSearcher(testAnalyzer().Analyze("buffalo buffalo"), bundle)
	got := matchedIDs(t, searcher)
	if !reflect.DeepEqual(got, []DocumentID{1}) {
		t.Errorf("PhraseSearcher.Search() = %v, expected [1]", got)
	}
}

func TestIntersectPostings(t *testing.T) {
	a := NewPostings(1, []uint64{0}, NewPostings(3, []uint64{1}, NewPostings(7, []uint64{0}, nil)))
	b := NewPostings(3, []uint64{2}, NewPostings(5, []uint64{0}, NewPostings(7, []uint64{4}, nil)))

	var got []DocumentID
	intersectPostings([]*Postings{a, b}, func(nodes []*Postings) {
		got = append(got, nodes[0].DocumentID)
	})
	if !reflect.DeepEqual(got, []DocumentID{3, 7}) {
		t.Errorf("intersectPostings matched %v, expected [3 7]", got)
	}
}
