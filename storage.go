package minnow

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
)

var (
	// ErrBundleNotFound means no bundle has been persisted yet.
	ErrBundleNotFound = errors.New("no index bundle stored")
	// ErrCorruptBundle means stored data could not be decoded or failed
	// validation. A corrupt bundle is never served.
	ErrCorruptBundle = errors.New("stored index bundle is corrupt")
)

// Storage persists a built bundle and reloads it. A loaded bundle must
// satisfy the same invariants as the one written; implementations call
// Bundle.Validate before returning it.
type Storage interface {
	SaveBundle(*Bundle) error
	LoadBundle() (*Bundle, error)
}

// encodedPosting is the serialized form of one posting. Document ids are
// delta-encoded against the previous posting so gob output stays small.
type encodedPosting struct {
	DocumentID DocumentID
	Positions  []uint64
}

func encodePostingList(pl PostingList) ([]byte, error) {
	var records []encodedPosting
	var prev DocumentID
	for p := pl.Postings; p != nil; p = p.Next {
		records = append(records, encodedPosting{
			DocumentID: p.DocumentID - prev,
			Positions:  p.Positions,
		})
		prev = p.DocumentID
	}
	buf := bytes.NewBuffer(nil)
	if err := gob.NewEncoder(buf).Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decodePostingList(data []byte) (PostingList, error) {
	var records []encodedPosting
	if err := gob.NewDecoder(bytes.NewBuffer(data)).Decode(&records); err != nil {
		return PostingList{}, fmt.Errorf("%w: %v", ErrCorruptBundle, err)
	}
	var head, tail *Postings
	var prev DocumentID
	for _, r := range records {
		docID := r.DocumentID + prev
		prev = docID
		node := NewPostings(docID, r.Positions, nil)
		if head == nil {
			head = node
		} else {
			tail.Next = node
		}
		tail = node
	}
	return NewPostingList(head), nil
}

// rebuildTrie reconstructs the autocomplete trie from a loaded inverted
// index. Because the trie vocabulary is by construction exactly the index
// vocabulary and weights are derived from postings, the trie does not need
// to be persisted at all.
func rebuildTrie(ii InvertedIndex) *Trie {
	trie := NewTrie()
	for term, postingList := range ii {
		trie.Insert(term, postingList.TotalAppearanceCount())
	}
	return trie
}
