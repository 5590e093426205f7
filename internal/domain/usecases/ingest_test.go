package usecases

import (
	"context"
	"testing"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

// mockWriter implements ports.IndexWriter for testing
type mockWriter struct {
	cleared  bool
	passages []entities.Passage
	vectors  [][]float32
}

func (m *mockWriter) Store(ctx context.Context, passages []entities.Passage, embeddings [][]float32) error {
	m.passages = append(m.passages, passages...)
	m.vectors = append(m.vectors, embeddings...)
	return nil
}

func (m *mockWriter) Clear(ctx context.Context) error {
	m.cleared = true
	return nil
}

func TestBuildIndex_StoresAllPassages(t *testing.T) {
	embedder := &mockEmbedder{}
	writer := &mockWriter{}
	ing := NewIngestor(embedder)

	passages := []entities.Passage{
		{SectionID: "66", Title: "Computer related offences", Body: "text one"},
		{SectionID: "67", Title: "Obscene material", Body: "text two"},
	}
	if err := ing.BuildIndex(context.Background(), writer, passages); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if !writer.cleared {
		t.Error("index must be cleared before a rebuild")
	}
	if len(writer.passages) != 2 || len(writer.vectors) != 2 {
		t.Errorf("expected 2 stored passages with embeddings, got %d/%d", len(writer.passages), len(writer.vectors))
	}
}

func TestBuildIndex_EmptyInput(t *testing.T) {
	ing := NewIngestor(&mockEmbedder{})
	if err := ing.BuildIndex(context.Background(), &mockWriter{}, nil); err == nil {
		t.Error("empty input must be rejected")
	}
}
