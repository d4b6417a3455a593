package minnow

import (
	"os"
	"reflect"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
)

// Requires a running MySQL with the schema from storage_rdb_impl.go.
// Skipped unless MINNOW_TEST_MYSQL is set, e.g.
// MINNOW_TEST_MYSQL=1 go test -run TestRdb ./...
func newTestDBClient(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv("MINNOW_TEST_MYSQL") == "" {
		t.Skip("MINNOW_TEST_MYSQL not set")
	}
	config := NewDBConfig("root", "password", "127.0.0.1", "3306", "minnow")
	db, err := NewDBClient(config)
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func truncateTableAll(db *sqlx.DB) {
	db.Exec("truncate table documents")
	db.Exec("truncate table tokens")
	db.Exec("truncate table inverted_indexes")
	db.Exec("truncate table index_meta")
}

func TestRdbSaveLoadRoundTrip(t *testing.T) {
	db := newTestDBClient(t)
	truncateTableAll(db)
	storage := NewStorageRdbImpl(db)

	bundle, err := BuildBundle(testAnalyzer(), []Document{
		NewDocument(1, "doc1", "data/1.txt", "the quick brown fox"),
		NewDocument(2, "doc2", "data/2.txt", "the lazy dog"),
		NewDocument(3, "doc3", "data/3.txt", "quick fox jumps"),
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := storage.SaveBundle(bundle); err != nil {
		t.Fatal(err)
	}
	loaded, err := storage.LoadBundle()
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(loaded.InvertedIndex, bundle.InvertedIndex); diff != "" {
		t.Errorf("inverted index diff: (-loaded +saved)\n%s", diff)
	}
	if diff := cmp.Diff(loaded.Docs, bundle.Docs); diff != "" {
		t.Errorf("document store diff: (-loaded +saved)\n%s", diff)
	}
	if loaded.DocumentCount != bundle.DocumentCount {
		t.Errorf("DocumentCount = %v, expected %v", loaded.DocumentCount, bundle.DocumentCount)
	}
	if loaded.AnalyzerFingerprint != bundle.AnalyzerFingerprint {
		t.Errorf("AnalyzerFingerprint = %v, expected %v", loaded.AnalyzerFingerprint, bundle.AnalyzerFingerprint)
	}
	if !reflect.DeepEqual(loaded.Trie.Terms(), bundle.Trie.Terms()) {
		t.Error("reloaded trie vocabulary differs")
	}
}

func TestRdbGetDocuments(t *testing.T) {
	db := newTestDBClient(t)
	truncateTableAll(db)
	storage := NewStorageRdbImpl(db)

	docs := []Document{
		{ID: 1, Title: "doc1", Body: "body1", TokenCount: 1},
		{ID: 2, Title: "doc2", Body: "body2", TokenCount: 1},
		{ID: 3, Title: "doc3", Body: "body3", TokenCount: 1},
	}
	for _, doc := range docs {
		if err := storage.AddDocument(doc); err != nil {
			t.Fatal(err)
		}
	}

	cases := []struct {
		ids      []DocumentID
		expected []Document
	}{
		{
			ids:      []DocumentID{},
			expected: []Document{},
		},
		{
			ids:      []DocumentID{2},
			expected: []Document{docs[1]},
		},
		{
			ids:      []DocumentID{1, 3},
			expected: []Document{docs[0], docs[2]},
		},
	}
	for _, tt := range cases {
		got, err := storage.GetDocuments(tt.ids)
		if err != nil {
			t.Fatal(err)
		}
		if diff := cmp.Diff(got, tt.expected); diff != "" {
			t.Errorf("Diff: (-got +want)\n%s", diff)
		}
	}

	count, err := storage.CountDocuments()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("CountDocuments() = %v, expected 3", count)
	}
}

func TestRdbAddTokenIdempotent(t *testing.T) {
	db := newTestDBClient(t)
	truncateTableAll(db)
	storage := NewStorageRdbImpl(db)

	if err := storage.AddToken(NewToken("fox")); err != nil {
		t.Fatal(err)
	}
	// Duplicate key is swallowed, the existing id stays.
	if err := storage.AddToken(NewToken("fox")); err != nil {
		t.Fatal(err)
	}
	token, err := storage.GetTokenByTerm("fox")
	if err != nil {
		t.Fatal(err)
	}
	if token.Term != "fox" || token.ID == 0 {
		t.Errorf("GetTokenByTerm(fox) = %+v", token)
	}
}

func TestRdbUpsertInvertedIndexMerges(t *testing.T) {
	db := newTestDBClient(t)
	truncateTableAll(db)
	storage := NewStorageRdbImpl(db)

	if err := storage.AddToken(NewToken("fox")); err != nil {
		t.Fatal(err)
	}
	token, err := storage.GetTokenByTerm("fox")
	if err != nil {
		t.Fatal(err)
	}

	first := map[TokenID]PostingList{
		token.ID: NewPostingList(NewPostings(1, []uint64{0}, NewPostings(4, []uint64{2}, nil))),
	}
	if err := storage.UpsertInvertedIndex(first); err != nil {
		t.Fatal(err)
	}
	second := map[TokenID]PostingList{
		token.ID: NewPostingList(NewPostings(2, []uint64{1}, nil)),
	}
	if err := storage.UpsertInvertedIndex(second); err != nil {
		t.Fatal(err)
	}

	stored, err := storage.GetInvertedIndexByTokenIDs([]TokenID{token.ID})
	if err != nil {
		t.Fatal(err)
	}
	expected := NewPostingList(
		NewPostings(1, []uint64{0},
			NewPostings(2, []uint64{1},
				NewPostings(4, []uint64{2}, nil))))
	if diff := cmp.Diff(stored[token.ID], expected); diff != "" {
		t.Errorf("Diff: (-got +want)\n%s", diff)
	}
}
