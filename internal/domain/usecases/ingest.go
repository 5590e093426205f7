// Package usecases - ingest.go builds a domain index from prepared passages.
package usecases

import (
	"context"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/tanaybasak/lawai/internal/domain/entities"
	"github.com/tanaybasak/lawai/internal/domain/ports"
)

// embedBatchSize bounds the number of texts per embedding request.
const embedBatchSize = 64

// Ingestor embeds prepared passages and writes them to a domain index.
// Passages arrive pre-chunked (statute sections, NDA clauses), so no
// splitting happens here.
type Ingestor struct {
	embedder ports.EmbeddingService
}

// NewIngestor creates an ingestor with the injected embedder.
func NewIngestor(embedder ports.EmbeddingService) *Ingestor {
	return &Ingestor{embedder: embedder}
}

// BuildIndex clears the target index and stores all passages with fresh
// embeddings.
func (ing *Ingestor) BuildIndex(ctx context.Context, writer ports.IndexWriter, passages []entities.Passage) error {
	if len(passages) == 0 {
		return errors.New("no passages to index")
	}

	if err := writer.Clear(ctx); err != nil {
		return errors.Wrap(err, "clearing index")
	}

	for start := 0; start < len(passages); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(passages) {
			end = len(passages)
		}
		batch := passages[start:end]

		texts := make([]string, len(batch))
		for i, p := range batch {
			texts[i] = p.Body
		}
		embeddings, err := ing.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return errors.Wrap(err, "embedding passages")
		}
		if err := writer.Store(ctx, batch, embeddings); err != nil {
			return errors.Wrap(err, "storing passages")
		}
		log.Info().Int("stored", end).Int("total", len(passages)).Msg("indexing progress")
	}

	return nil
}
