package minnow

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketDocuments = []byte("documents")
	bucketPostings  = []byte("postings")
	bucketMeta      = []byte("meta")

	metaDocumentCount = []byte("document_count")
	metaFingerprint   = []byte("analyzer_fingerprint")
	metaBuiltAt       = []byte("built_at")
)

// StorageBoltImpl persists the bundle in a single bbolt file. SaveBundle
// rewrites the buckets inside one write transaction, so readers of the file
// see either the old bundle or the new one, never a mix.
type StorageBoltImpl struct {
	DB *bolt.DB
}

func NewStorageBoltImpl(path string) (*StorageBoltImpl, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt storage: %w", err)
	}
	return &StorageBoltImpl{DB: db}, nil
}

func (s *StorageBoltImpl) Close() error {
	return s.DB.Close()
}

func (s *StorageBoltImpl) SaveBundle(bundle *Bundle) error {
	return s.DB.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{bucketDocuments, bucketPostings, bucketMeta} {
			if tx.Bucket(name) != nil {
				if err := tx.DeleteBucket(name); err != nil {
					return err
				}
			}
			if _, err := tx.CreateBucket(name); err != nil {
				return err
			}
		}

		docs := tx.Bucket(bucketDocuments)
		for id, doc := range bundle.Docs {
			buf := bytes.NewBuffer(nil)
			if err := gob.NewEncoder(buf).Encode(doc); err != nil {
				return err
			}
			if err := docs.Put(u64key(uint64(id)), buf.Bytes()); err != nil {
				return err
			}
		}

		postings := tx.Bucket(bucketPostings)
		for term, postingList := range bundle.InvertedIndex {
			encoded, err := encodePostingList(postingList)
			if err != nil {
				return err
			}
			if err := postings.Put([]byte(term), encoded); err != nil {
				return err
			}
		}

		meta := tx.Bucket(bucketMeta)
		if err := meta.Put(metaDocumentCount, u64key(uint64(bundle.DocumentCount))); err != nil {
			return err
		}
		if err := meta.Put(metaFingerprint, u64key(uint64(bundle.AnalyzerFingerprint))); err != nil {
			return err
		}
		return meta.Put(metaBuiltAt, []byte(bundle.BuiltAt.UTC().Format(time.RFC3339Nano)))
	})
}

func (s *StorageBoltImpl) LoadBundle() (*Bundle, error) {
	bundle := &Bundle{
		InvertedIndex: NewInvertedIndex(),
		Docs:          NewDocumentStore(),
	}
	err := s.DB.View(func(tx *bolt.Tx) error {
		docs := tx.Bucket(bucketDocuments)
		postings := tx.Bucket(bucketPostings)
		meta := tx.Bucket(bucketMeta)
		if docs == nil || postings == nil || meta == nil {
			return ErrBundleNotFound
		}

		if err := docs.ForEach(func(k, v []byte) error {
			var doc Document
			if err := gob.NewDecoder(bytes.NewBuffer(v)).Decode(&doc); err != nil {
				return fmt.Errorf("%w: document %d: %v", ErrCorruptBundle, binary.BigEndian.Uint64(k), err)
			}
			bundle.Docs[doc.ID] = doc
			return nil
		}); err != nil {
			return err
		}

		if err := postings.ForEach(func(k, v []byte) error {
			postingList, err := decodePostingList(v)
			if err != nil {
				return fmt.Errorf("term %q: %w", string(k), err)
			}
			bundle.InvertedIndex[string(k)] = postingList
			return nil
		}); err != nil {
			return err
		}

		count := meta.Get(metaDocumentCount)
		fingerprint := meta.Get(metaFingerprint)
		builtAt := meta.Get(metaBuiltAt)
		if count == nil || fingerprint == nil || builtAt == nil {
			return fmt.Errorf("%w: missing metadata", ErrCorruptBundle)
		}
		bundle.DocumentCount = int(binary.BigEndian.Uint64(count))
		bundle.AnalyzerFingerprint = uint32(binary.BigEndian.Uint64(fingerprint))
		t, err := time.Parse(time.RFC3339Nano, string(builtAt))
		if err != nil {
			return fmt.Errorf("%w: bad built_at: %v", ErrCorruptBundle, err)
		}
		bundle.BuiltAt = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	bundle.Trie = rebuildTrie(bundle.InvertedIndex)
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBundle, err)
	}
	return bundle, nil
}

func u64key(v uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	return b
}
