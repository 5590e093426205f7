// Package vectordb provides vector index adapters.
// Clean Architecture: Adapters implementing ports.VectorIndex.
// Each legal domain owns one self-contained SQLite file; the serialized
// format is private to this package.
package vectordb

import (
	"context"
	"database/sql"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
	"github.com/pkg/errors"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

// SQLiteIndex implements ports.VectorIndex and ports.IndexWriter with
// SQLite-based persistence. Search is brute-force cosine similarity, which
// is adequate for clause libraries and statute sections of a few thousand rows.
type SQLiteIndex struct {
	mu     sync.RWMutex
	db     *sql.DB
	domain entities.Domain
}

// Open opens (creating if necessary) the index file for a domain.
func Open(path string, domain entities.Domain) (*SQLiteIndex, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "creating index directory")
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrap(err, "opening index database")
	}

	idx := &SQLiteIndex{db: db, domain: domain}
	if err := idx.initSchema(); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "initializing index schema")
	}
	return idx, nil
}

func (s *SQLiteIndex) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS passages (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		section_id TEXT NOT NULL,
		title TEXT NOT NULL,
		body TEXT NOT NULL,
		law TEXT,
		embedding BLOB NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_section_id ON passages(section_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Store saves passages with their embeddings. embeddings[i] belongs to passages[i].
func (s *SQLiteIndex) Store(ctx context.Context, passages []entities.Passage, embeddings [][]float32) error {
	if len(passages) != len(embeddings) {
		return errors.Errorf("passage/embedding count mismatch: %d vs %d", len(passages), len(embeddings))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO passages (section_id, title, body, law, embedding)
		VALUES (?, ?, ?, ?, ?)
	`)
	if err != nil {
		return errors.Wrap(err, "preparing statement")
	}
	defer stmt.Close()

	for i, p := range passages {
		blob, err := json.Marshal(embeddings[i])
		if err != nil {
			return errors.Wrap(err, "encoding embedding")
		}
		if _, err := stmt.ExecContext(ctx, p.SectionID, p.Title, p.Body, p.Law, blob); err != nil {
			return errors.Wrap(err, "inserting passage")
		}
	}

	return tx.Commit()
}

// Search finds the topK most similar passages to a query embedding.
func (s *SQLiteIndex) Search(ctx context.Context, embedding []float32, topK int) ([]entities.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT section_id, title, body, law, embedding FROM passages
	`)
	if err != nil {
		return nil, errors.Wrap(err, "querying passages")
	}
	defer rows.Close()

	type scored struct {
		passage entities.Passage
		score   float64
	}

	var results []scored
	for rows.Next() {
		var p entities.Passage
		var law sql.NullString
		var blob []byte
		if err := rows.Scan(&p.SectionID, &p.Title, &p.Body, &law, &blob); err != nil {
			return nil, errors.Wrap(err, "scanning passage")
		}
		var vec []float32
		if err := json.Unmarshal(blob, &vec); err != nil {
			continue // skip corrupted embeddings
		}
		p.Law = law.String
		p.Domain = s.domain
		results = append(results, scored{passage: p, score: cosineSimilarity(embedding, vec)})
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterating passages")
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	passages := make([]entities.Passage, len(results))
	for i, r := range results {
		passages[i] = r.passage
	}
	return passages, nil
}

// Count returns the number of indexed passages.
func (s *SQLiteIndex) Count(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM passages").Scan(&count)
	return count, err
}

// Clear removes all passages from the index.
func (s *SQLiteIndex) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM passages")
	return err
}

// Close closes the database connection.
func (s *SQLiteIndex) Close() error {
	return s.db.Close()
}

// cosineSimilarity calculates cosine similarity between two vectors.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
