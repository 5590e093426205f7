// Package ports defines interfaces for external dependencies.
// Clean Architecture: These are the boundaries - usecases depend on these abstractions,
// not concrete implementations. Adapters implement these interfaces.
package ports

import (
	"context"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

// MessageRole tags a prompt message for the language model.
type MessageRole string

const (
	MessageRoleSystem MessageRole = "system"
	MessageRoleUser   MessageRole = "user"
)

// Message is one role-tagged element of a model prompt.
type Message struct {
	Role    MessageRole
	Content string
}

// LLMService invokes the hosted chat-completion model.
type LLMService interface {
	// Complete sends the messages and returns the full response text.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Stream sends the messages and returns incremental text fragments.
	// The channel is closed after the final token; a mid-stream failure is
	// delivered as a token carrying Err.
	Stream(ctx context.Context, messages []Message) (<-chan StreamToken, error)
}

// StreamToken is a single fragment of a streaming model response.
type StreamToken struct {
	Content string
	Done    bool
	Err     error
}

// EmbeddingService generates vector embeddings for text.
type EmbeddingService interface {
	// Embed generates a vector embedding for the given text.
	Embed(ctx context.Context, text string) ([]float32, error)

	// EmbedBatch generates embeddings for multiple texts efficiently.
	EmbedBatch(ctx context.Context, texts []string) ([][]float32, error)
}

// VectorIndex performs similarity search over one domain's passages.
// An absent or unbuilt index is represented by an implementation that
// returns zero passages, never an error.
type VectorIndex interface {
	// Search returns the topK most similar passages, relevance-descending.
	Search(ctx context.Context, embedding []float32, topK int) ([]entities.Passage, error)

	// Count returns the number of indexed passages.
	Count(ctx context.Context) (int, error)

	// Close releases resources held by the index.
	Close() error
}

// IndexWriter persists passages with their embeddings. Implemented by
// on-disk indexes for the offline build step.
type IndexWriter interface {
	// Store saves passages with their embeddings. embeddings[i] belongs to passages[i].
	Store(ctx context.Context, passages []entities.Passage, embeddings [][]float32) error

	// Clear removes all passages from the index.
	Clear(ctx context.Context) error
}

// IndexEvent signals that an index file changed on disk.
type IndexEvent struct {
	Path string
}

// IndexWatcher monitors the index data directory for rebuilt index files.
type IndexWatcher interface {
	// Watch starts monitoring the directory and emits events.
	Watch(ctx context.Context, dir string) (<-chan IndexEvent, error)

	// Stop stops the watcher.
	Stop() error
}
