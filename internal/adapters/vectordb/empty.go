package vectordb

import (
	"context"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

// EmptyIndex represents a domain whose index has not been built yet.
// Searching it returns zero passages, never an error: the service can run
// in model-knowledge-only mode before an index exists.
type EmptyIndex struct{}

// NewEmptyIndex returns the explicit empty-index variant.
func NewEmptyIndex() EmptyIndex { return EmptyIndex{} }

// Search returns no passages.
func (EmptyIndex) Search(ctx context.Context, embedding []float32, topK int) ([]entities.Passage, error) {
	return nil, nil
}

// Count returns zero.
func (EmptyIndex) Count(ctx context.Context) (int, error) { return 0, nil }

// Close is a no-op.
func (EmptyIndex) Close() error { return nil }
