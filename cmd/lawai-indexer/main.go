// Command lawai-indexer builds a domain's vector index from a JSON file of
// prepared passages (statute sections or NDA clauses).
//
// Input format: a JSON array of {"section": ..., "title": ..., "content": ...,
// "law": ...} objects, as produced by the extraction scripts.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/tanaybasak/lawai/internal/adapters/embedding"
	"github.com/tanaybasak/lawai/internal/adapters/vectordb"
	"github.com/tanaybasak/lawai/internal/config"
	"github.com/tanaybasak/lawai/internal/domain/entities"
	"github.com/tanaybasak/lawai/internal/domain/usecases"
	"github.com/tanaybasak/lawai/internal/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	domainName := flag.String("domain", "", "domain to build (criminal, nda_mutual, nda_unilateral)")
	inputPath := flag.String("input", "", "path to JSON passages file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Pretty)

	domain := entities.Domain(*domainName)
	if !domain.Valid() {
		log.Fatal().Str("domain", *domainName).Msg("unknown domain")
	}
	if *inputPath == "" {
		log.Fatal().Msg("-input is required")
	}

	passages, err := loadPassages(*inputPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading passages")
	}

	indexFile := ""
	for _, d := range cfg.Domains {
		if d.Name == domain {
			indexFile = filepath.Join(cfg.Retrieval.DataDir, d.File)
		}
	}
	if indexFile == "" {
		log.Fatal().Str("domain", *domainName).Msg("domain not present in config")
	}

	index, err := vectordb.Open(indexFile, domain)
	if err != nil {
		log.Fatal().Err(err).Msg("opening index")
	}
	defer index.Close()

	embedder := embedding.NewOpenAIAdapter(
		cfg.OpenAI.APIKey(), cfg.OpenAI.BaseURL, cfg.OpenAI.EmbeddingModel,
		cfg.OpenAI.Timeout())
	ingestor := usecases.NewIngestor(embedder)

	if err := ingestor.BuildIndex(context.Background(), index, passages); err != nil {
		log.Fatal().Err(err).Msg("building index")
	}
	log.Info().Str("domain", *domainName).Str("file", indexFile).
		Int("passages", len(passages)).Msg("index built")
}

func loadPassages(path string) ([]entities.Passage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var passages []entities.Passage
	if err := json.Unmarshal(data, &passages); err != nil {
		return nil, err
	}
	return passages, nil
}
