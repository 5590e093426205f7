package vectordb

import (
	"context"
	"sort"
	"sync"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

// InMemoryIndex is a non-persistent vector index. Useful for tests and as a
// scratch index before an on-disk build exists.
type InMemoryIndex struct {
	mu         sync.RWMutex
	domain     entities.Domain
	passages   []entities.Passage
	embeddings [][]float32
}

// NewInMemoryIndex creates an empty in-memory index for a domain.
func NewInMemoryIndex(domain entities.Domain) *InMemoryIndex {
	return &InMemoryIndex{domain: domain}
}

// Store saves passages with their embeddings.
func (s *InMemoryIndex) Store(ctx context.Context, passages []entities.Passage, embeddings [][]float32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range passages {
		p := passages[i]
		p.Domain = s.domain
		s.passages = append(s.passages, p)
		s.embeddings = append(s.embeddings, embeddings[i])
	}
	return nil
}

// Search finds the topK most similar passages to a query embedding.
func (s *InMemoryIndex) Search(ctx context.Context, embedding []float32, topK int) ([]entities.Passage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type scored struct {
		idx   int
		score float64
	}
	results := make([]scored, len(s.passages))
	for i := range s.passages {
		results[i] = scored{idx: i, score: cosineSimilarity(embedding, s.embeddings[i])}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})
	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}

	passages := make([]entities.Passage, len(results))
	for i, r := range results {
		passages[i] = s.passages[r.idx]
	}
	return passages, nil
}

// Count returns the number of indexed passages.
func (s *InMemoryIndex) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.passages), nil
}

// Clear removes all passages.
func (s *InMemoryIndex) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.passages = nil
	s.embeddings = nil
	return nil
}

// Close is a no-op for the in-memory index.
func (s *InMemoryIndex) Close() error { return nil }
