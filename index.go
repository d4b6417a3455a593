package minnow

import "sort"

// Postings is one node of a posting list: the positions (offsets into the
// normalized token stream) of a term in one document. Lists are singly
// linked, ascending by document id.
type Postings struct {
	DocumentID DocumentID
	Positions  []uint64
	Next       *Postings
}

func NewPostings(documentID DocumentID, positions []uint64, next *Postings) *Postings {
	return &Postings{
		DocumentID: documentID,
		Positions:  positions,
		Next:       next,
	}
}

func (p *Postings) PushBack(e *Postings) {
	e.Next = p.Next
	p.Next = e
}

// PostingList is the per-term list of postings.
type PostingList struct {
	Postings *Postings
}

func NewPostingList(head *Postings) PostingList {
	return PostingList{
		Postings: head,
	}
}

// Size is the number of documents in the list, i.e. the document frequency.
func (pl PostingList) Size() int {
	size := 0
	for p := pl.Postings; p != nil; p = p.Next {
		size++
	}
	return size
}

// AppearanceCountInDocument is the raw term frequency in one document.
func (pl PostingList) AppearanceCountInDocument(docID DocumentID) int {
	for p := pl.Postings; p != nil; p = p.Next {
		if p.DocumentID == docID {
			return len(p.Positions)
		}
	}
	return 0
}

// TotalAppearanceCount is the term's occurrence count over the whole corpus,
// used as the suggestion weight in the trie.
func (pl PostingList) TotalAppearanceCount() int {
	count := 0
	for p := pl.Postings; p != nil; p = p.Next {
		count += len(p.Positions)
	}
	return count
}

// InvertedIndex maps a normalized term to its posting list.
type InvertedIndex map[string]PostingList

func NewInvertedIndex() InvertedIndex {
	return make(InvertedIndex)
}

// PostingList returns the term's posting list, or an empty list if the term
// was never indexed.
func (ii InvertedIndex) PostingList(term string) PostingList {
	return ii[term]
}

// DocumentFrequency is the number of documents containing the term.
func (ii InvertedIndex) DocumentFrequency(term string) int {
	return ii[term].Size()
}

// Vocabulary returns every indexed term in lexicographic order.
func (ii InvertedIndex) Vocabulary() []string {
	terms := make([]string, 0, len(ii))
	for term := range ii {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

// merge combines two posting lists that are each ascending by document id
// into one ascending list. Postings for the same document are kept once
// (origin wins).
func merge(origin, target PostingList) PostingList {
	if origin.Postings == nil {
		return target
	}
	if target.Postings == nil {
		return origin
	}

	merged := PostingList{
		Postings: nil,
	}
	var smaller, larger *Postings
	if origin.Postings.DocumentID <= target.Postings.DocumentID {
		merged.Postings = origin.Postings
		smaller, larger = origin.Postings, target.Postings
	} else {
		merged.Postings = target.Postings
		smaller, larger = target.Postings, origin.Postings
	}

	for larger != nil {
		if smaller.Next == nil {
			smaller.Next = larger
			break
		}

		if smaller.Next.DocumentID < larger.DocumentID {
			smaller = smaller.Next
		} else if smaller.Next.DocumentID > larger.DocumentID {
			largerNext, smallerNext := larger.Next, smaller.Next
			smaller.Next, larger.Next = larger, smallerNext
			smaller = larger
			larger = largerNext
		} else if smaller.Next.DocumentID == larger.DocumentID {
			smaller, larger = smaller.Next, larger.Next
		}
	}
	return merged
}

// Merge folds another index into this one, merging posting lists term by
// term. Both indexes must hold ascending posting lists.
func (ii InvertedIndex) Merge(other InvertedIndex) {
	for term, postingList := range other {
		ii[term] = merge(ii[term], postingList)
	}
}
