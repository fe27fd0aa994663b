package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/cognicore/textlens/pkg/textlens/analysis"
	"github.com/cognicore/textlens/pkg/textlens/corpus"
	"github.com/cognicore/textlens/pkg/textlens/freq"
	"github.com/cognicore/textlens/pkg/textlens/internalerr"
	"github.com/cognicore/textlens/pkg/textlens/sentiment"
)

// sqliteStore implements the corpus.Store interface using SQLite
type sqliteStore struct {
	db *sql.DB
}

// OpenSQLite opens a SQLite database with WAL mode enabled.
func OpenSQLite(ctx context.Context, path string) (corpus.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable WAL mode for better concurrency
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	// Enable foreign keys
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", internalerr.ErrStoreUnavailable, err)
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist. docs.id doubles as the
// registration order, so an overwritten label keeps its position.
func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS docs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	label TEXT UNIQUE NOT NULL,
	num_words INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS doc_words (
	doc_id INTEGER NOT NULL,
	ordinal INTEGER NOT NULL,
	token TEXT NOT NULL,
	count INTEGER NOT NULL,
	polarity REAL NOT NULL,
	subjectivity REAL NOT NULL,
	PRIMARY KEY(doc_id, token),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_doc_words_ordinal ON doc_words(doc_id, ordinal);

CREATE TABLE IF NOT EXISTS doc_lengths (
	doc_id INTEGER NOT NULL,
	length INTEGER NOT NULL,
	count INTEGER NOT NULL,
	PRIMARY KEY(doc_id, length),
	FOREIGN KEY(doc_id) REFERENCES docs(id) ON DELETE CASCADE
);
`

	_, err := db.ExecContext(ctx, schema)
	return err
}

// Register writes every metric for label in one transaction.
func (s *sqliteStore) Register(ctx context.Context, label string, r analysis.Result) error {
	if err := corpus.CheckEntry(label, r); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin: %v", internalerr.ErrStoreUnavailable, err)
	}
	defer tx.Rollback()

	const stmt = `
INSERT INTO docs (label, num_words)
VALUES (?, ?)
ON CONFLICT(label) DO UPDATE SET
	num_words=excluded.num_words
RETURNING id;
`

	var docID int64
	if err := tx.QueryRowContext(ctx, stmt, label, r.NumWords).Scan(&docID); err != nil {
		return fmt.Errorf("%w: upsert doc %q: %v", internalerr.ErrStoreUnavailable, label, err)
	}

	if err := replaceWords(ctx, tx, docID, r); err != nil {
		return fmt.Errorf("%w: words for %q: %v", internalerr.ErrStoreUnavailable, label, err)
	}
	if err := replaceLengths(ctx, tx, docID, r.WordLengths); err != nil {
		return fmt.Errorf("%w: lengths for %q: %v", internalerr.ErrStoreUnavailable, label, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit: %v", internalerr.ErrStoreUnavailable, err)
	}
	return nil
}

func replaceWords(ctx context.Context, tx *sql.Tx, docID int64, r analysis.Result) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_words WHERE doc_id = ?`, docID); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
INSERT INTO doc_words (doc_id, ordinal, token, count, polarity, subjectivity)
VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, e := range r.WordCount.Entries() {
		score := r.Sentiment[e.Token]
		if _, err := stmt.ExecContext(ctx, docID, i, e.Token, e.Count, score.Polarity, score.Subjectivity); err != nil {
			return err
		}
	}
	return nil
}

func replaceLengths(ctx context.Context, tx *sql.Tx, docID int64, h *freq.Histogram) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM doc_lengths WHERE doc_id = ?`, docID); err != nil {
		return err
	}

	for _, l := range h.Lengths() {
		if _, err := tx.ExecContext(ctx, `INSERT INTO doc_lengths (doc_id, length, count) VALUES (?, ?, ?)`, docID, l, h.Get(l)); err != nil {
			return err
		}
	}
	return nil
}

// Get returns the document registered under label.
func (s *sqliteStore) Get(ctx context.Context, label string) (corpus.Document, bool, error) {
	var (
		docID    int64
		numWords int
	)
	err := s.db.QueryRowContext(ctx, `SELECT id, num_words FROM docs WHERE label = ?`, label).Scan(&docID, &numWords)
	if err == sql.ErrNoRows {
		return corpus.Document{}, false, nil
	}
	if err != nil {
		return corpus.Document{}, false, err
	}

	r, err := s.loadResult(ctx, docID, numWords)
	if err != nil {
		return corpus.Document{}, false, err
	}
	return corpus.Document{Label: label, Result: r}, true, nil
}

// Labels returns labels in registration order.
func (s *sqliteStore) Labels(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT label FROM docs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var label string
		if err := rows.Scan(&label); err != nil {
			return nil, err
		}
		out = append(out, label)
	}
	return out, rows.Err()
}

// Documents loads every document in label order.
func (s *sqliteStore) Documents(ctx context.Context) ([]corpus.Document, error) {
	type header struct {
		id       int64
		label    string
		numWords int
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, label, num_words FROM docs ORDER BY id`)
	if err != nil {
		return nil, err
	}
	var headers []header
	for rows.Next() {
		var h header
		if err := rows.Scan(&h.id, &h.label, &h.numWords); err != nil {
			rows.Close()
			return nil, err
		}
		headers = append(headers, h)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	out := make([]corpus.Document, 0, len(headers))
	for _, h := range headers {
		r, err := s.loadResult(ctx, h.id, h.numWords)
		if err != nil {
			return nil, err
		}
		out = append(out, corpus.Document{Label: h.label, Result: r})
	}
	return out, nil
}

// Len returns the number of registered documents.
func (s *sqliteStore) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM docs`).Scan(&n)
	return n, err
}

func (s *sqliteStore) loadResult(ctx context.Context, docID int64, numWords int) (analysis.Result, error) {
	r := analysis.Result{
		WordCount:   freq.NewCounter(),
		NumWords:    numWords,
		WordLengths: freq.NewHistogram(),
		Sentiment:   make(map[string]sentiment.Score),
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT token, count, polarity, subjectivity
FROM doc_words
WHERE doc_id = ?
ORDER BY ordinal`, docID)
	if err != nil {
		return analysis.Result{}, err
	}
	for rows.Next() {
		var (
			token string
			count int
			score sentiment.Score
		)
		if err := rows.Scan(&token, &count, &score.Polarity, &score.Subjectivity); err != nil {
			rows.Close()
			return analysis.Result{}, err
		}
		r.WordCount.Add(token, count)
		r.Sentiment[token] = score
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return analysis.Result{}, err
	}
	rows.Close()

	lrows, err := s.db.QueryContext(ctx, `SELECT length, count FROM doc_lengths WHERE doc_id = ?`, docID)
	if err != nil {
		return analysis.Result{}, err
	}
	defer lrows.Close()
	for lrows.Next() {
		var length, count int
		if err := lrows.Scan(&length, &count); err != nil {
			return analysis.Result{}, err
		}
		r.WordLengths.Add(length, count)
	}
	return r, lrows.Err()
}
