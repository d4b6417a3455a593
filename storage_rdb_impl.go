package minnow

import (
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
)

// StorageRdbImpl persists the bundle in MySQL.
//
// Schema:
//
//	documents(id BIGINT UNSIGNED PRIMARY KEY, title VARCHAR(512), source_path VARCHAR(1024), body MEDIUMTEXT, token_count INT)
//	tokens(id BIGINT UNSIGNED AUTO_INCREMENT PRIMARY KEY, term VARCHAR(512) UNIQUE)
//	inverted_indexes(token_id BIGINT UNSIGNED PRIMARY KEY, posting_list MEDIUMBLOB)
//	index_meta(id TINYINT PRIMARY KEY, document_count BIGINT, analyzer_fingerprint BIGINT UNSIGNED, built_at DATETIME(6))
type StorageRdbImpl struct {
	DB *sqlx.DB
}

func NewStorageRdbImpl(db *sqlx.DB) *StorageRdbImpl {
	return &StorageRdbImpl{
		DB: db,
	}
}

type DBConfig struct {
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Addr     string `yaml:"addr"`
	Port     string `yaml:"port"`
	DB       string `yaml:"db"`
}

func NewDBConfig(user, password, addr, port, db string) *DBConfig {
	return &DBConfig{
		User:     user,
		Password: password,
		Addr:     addr,
		Port:     port,
		DB:       db,
	}
}

func NewDBClient(dbConfig *DBConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open(
		"mysql",
		fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", dbConfig.User, dbConfig.Password, dbConfig.Addr, dbConfig.Port, dbConfig.DB),
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}

func (s *StorageRdbImpl) SaveBundle(bundle *Bundle) error {
	for _, table := range []string{"documents", "tokens", "inverted_indexes", "index_meta"} {
		if _, err := s.DB.Exec("truncate table " + table); err != nil {
			return err
		}
	}

	for _, doc := range bundle.Docs {
		if err := s.AddDocument(doc); err != nil {
			return err
		}
	}

	inverted := make(map[TokenID]PostingList, len(bundle.InvertedIndex))
	for term, postingList := range bundle.InvertedIndex {
		if err := s.AddToken(NewToken(term)); err != nil {
			return err
		}
		token, err := s.GetTokenByTerm(term)
		if err != nil {
			return err
		}
		inverted[token.ID] = postingList
	}
	if err := s.UpsertInvertedIndex(inverted); err != nil {
		return err
	}

	_, err := s.DB.NamedExec(
		`insert into index_meta (id, document_count, analyzer_fingerprint, built_at)
		values (1, :document_count, :analyzer_fingerprint, :built_at)`,
		map[string]interface{}{
			"document_count":       bundle.DocumentCount,
			"analyzer_fingerprint": bundle.AnalyzerFingerprint,
			"built_at":             bundle.BuiltAt.UTC(),
		})
	return err
}

func (s *StorageRdbImpl) LoadBundle() (*Bundle, error) {
	bundle := &Bundle{
		InvertedIndex: NewInvertedIndex(),
		Docs:          NewDocumentStore(),
	}

	var meta struct {
		DocumentCount       int          `db:"document_count"`
		AnalyzerFingerprint uint32       `db:"analyzer_fingerprint"`
		BuiltAt             sql.NullTime `db:"built_at"`
	}
	if err := s.DB.Get(&meta, `select document_count, analyzer_fingerprint, built_at from index_meta where id = 1`); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBundleNotFound
		}
		return nil, err
	}
	bundle.DocumentCount = meta.DocumentCount
	bundle.AnalyzerFingerprint = meta.AnalyzerFingerprint
	bundle.BuiltAt = meta.BuiltAt.Time

	docs, err := s.GetAllDocuments()
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		bundle.Docs[doc.ID] = doc
	}

	type termPostingList struct {
		Term        string `db:"term"`
		PostingList []byte `db:"posting_list"`
	}
	var rows []termPostingList
	if err := s.DB.Select(&rows,
		`select t.term, i.posting_list from inverted_indexes i join tokens t on t.id = i.token_id`); err != nil {
		return nil, err
	}
	for _, row := range rows {
		postingList, err := decodePostingList(row.PostingList)
		if err != nil {
			return nil, fmt.Errorf("term %q: %w", row.Term, err)
		}
		bundle.InvertedIndex[row.Term] = postingList
	}

	bundle.Trie = rebuildTrie(bundle.InvertedIndex)
	if err := bundle.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptBundle, err)
	}
	return bundle, nil
}

func (s *StorageRdbImpl) CountDocuments() (int, error) {
	var count int
	row := s.DB.QueryRow(`select count(*) from documents`)
	if err := row.Scan(&count); err != nil {
		return -1, err
	}
	return count, nil
}

func (s *StorageRdbImpl) GetAllDocuments() ([]Document, error) {
	var docs []Document
	if err := s.DB.Select(&docs, `select * from documents order by id`); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *StorageRdbImpl) GetDocuments(ids []DocumentID) ([]Document, error) {
	if len(ids) == 0 {
		return []Document{}, nil
	}
	intDocIDs := make([]int, len(ids))
	for i, id := range ids {
		intDocIDs[i] = int(id)
	}

	query, params, err := sqlx.In(`select * from documents where id in (?) order by id`, intDocIDs)
	if err != nil {
		return nil, err
	}
	var docs []Document
	if err = s.DB.Select(&docs, query, params...); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *StorageRdbImpl) AddDocument(doc Document) error {
	_, err := s.DB.NamedExec(
		`insert into documents (id, title, source_path, body, token_count)
		values (:id, :title, :source_path, :body, :token_count)`,
		map[string]interface{}{
			"id":          doc.ID,
			"title":       doc.Title,
			"source_path": doc.SourcePath,
			"body":        doc.Body,
			"token_count": doc.TokenCount,
		})
	return err
}

func (s *StorageRdbImpl) AddToken(token Token) error {
	_, err := s.DB.NamedExec(`insert into tokens (term) values (:term)`,
		map[string]interface{}{
			"term": token.Term,
		},
	)
	if err != nil {
		if mysqlErr, ok := err.(*mysql.MySQLError); ok && mysqlErr.Number == 1062 {
			// Already registered, storage keeps the existing id.
			return nil
		}
		return err
	}
	return nil
}

func (s *StorageRdbImpl) GetTokenByTerm(term string) (Token, error) {
	var token Token
	if err := s.DB.Get(&token, `select * from tokens where term = ?`, term); err != nil {
		if err != sql.ErrNoRows {
			return Token{}, err
		}
		return Token{}, nil
	}
	return token, nil
}

func (s *StorageRdbImpl) GetTokensByTerms(terms []string) ([]Token, error) {
	if len(terms) == 0 {
		return []Token{}, nil
	}
	query, args, err := sqlx.In(`select * from tokens where term in (?) order by field (term, ?)`, terms, terms)
	if err != nil {
		return nil, err
	}
	var tokens []Token
	if err := s.DB.Select(&tokens, query, args...); err != nil {
		return nil, err
	}
	return tokens, nil
}

// GetInvertedIndexByTokenIDs reads the stored posting lists for the given
// token ids. Tokens without a stored list are absent from the result.
func (s *StorageRdbImpl) GetInvertedIndexByTokenIDs(ids []TokenID) (map[TokenID]PostingList, error) {
	if len(ids) == 0 {
		return map[TokenID]PostingList{}, nil
	}
	type encodedInvertedIndex struct {
		TokenID     TokenID `db:"token_id"`
		PostingList []byte  `db:"posting_list"`
	}
	var encoded []encodedInvertedIndex
	query, args, err := sqlx.In(
		`select token_id, posting_list from inverted_indexes where token_id in (?)`, ids)
	if err != nil {
		return nil, err
	}
	if err = s.DB.Select(&encoded, query, args...); err != nil {
		return nil, err
	}

	m := make(map[TokenID]PostingList, len(encoded))
	for _, e := range encoded {
		postingList, err := decodePostingList(e.PostingList)
		if err != nil {
			return nil, err
		}
		m[e.TokenID] = postingList
	}
	return m, nil
}

// UpsertInvertedIndex merges the given posting lists into the stored ones
// and writes the result back.
func (s *StorageRdbImpl) UpsertInvertedIndex(inverted map[TokenID]PostingList) error {
	ids := make([]TokenID, 0, len(inverted))
	for id := range inverted {
		ids = append(ids, id)
	}
	stored, err := s.GetInvertedIndexByTokenIDs(ids)
	if err != nil {
		return err
	}

	for id, postingList := range inverted {
		merged := merge(postingList, stored[id])
		encoded, err := encodePostingList(merged)
		if err != nil {
			return err
		}
		_, err = s.DB.NamedExec(
			`insert into inverted_indexes (token_id, posting_list)
			values (:token_id, :posting_list)
			on duplicate key update posting_list = :posting_list`,
			map[string]interface{}{
				"token_id":     id,
				"posting_list": encoded,
			})
		if err != nil {
			return err
		}
	}
	return nil
}
