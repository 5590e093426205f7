// Command lawai runs the legal assistant HTTP server.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/tanaybasak/lawai/internal/adapters/embedding"
	"github.com/tanaybasak/lawai/internal/adapters/indexwatcher"
	"github.com/tanaybasak/lawai/internal/adapters/llm"
	"github.com/tanaybasak/lawai/internal/adapters/vectordb"
	"github.com/tanaybasak/lawai/internal/config"
	"github.com/tanaybasak/lawai/internal/domain/entities"
	"github.com/tanaybasak/lawai/internal/domain/ports"
	"github.com/tanaybasak/lawai/internal/domain/usecases"
	httpserver "github.com/tanaybasak/lawai/internal/infrastructure/http"
	"github.com/tanaybasak/lawai/internal/logging"
	"github.com/tanaybasak/lawai/internal/metrics"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading config")
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Pretty)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigs
		log.Info().Msg("shutting down")
		cancel()
	}()

	llmClient := llm.NewOpenAIAdapter(
		cfg.OpenAI.APIKey(), cfg.OpenAI.BaseURL, cfg.OpenAI.LLMModel,
		cfg.OpenAI.Temperature, cfg.OpenAI.Timeout())
	embedder := embedding.NewOpenAIAdapter(
		cfg.OpenAI.APIKey(), cfg.OpenAI.BaseURL, cfg.OpenAI.EmbeddingModel,
		cfg.OpenAI.Timeout())

	registry := usecases.NewRegistry(embedder, indexOpener(cfg), domainNames(cfg))
	orchestrator := usecases.NewOrchestrator(llmClient, registry, cfg.Retrieval.TopK)
	drafter := usecases.NewAgreementDrafter(orchestrator, registry)
	assistant := usecases.NewAssistant(registry, orchestrator, drafter)

	if err := assistant.Initialize(ctx); err != nil {
		log.Fatal().Err(err).Msg("initializing assistant")
	}

	m := metrics.New(nil)
	if cfg.Retrieval.WatchReload {
		go watchIndexDir(ctx, assistant, m, cfg.Retrieval.DataDir)
	}

	server := httpserver.NewServer(assistant, m, cfg)
	if err := server.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

// indexOpener binds each domain to its index file under the data directory.
// A missing file yields the explicit empty index: the service runs in
// model-knowledge-only mode until the index is built.
func indexOpener(cfg *config.AppConfig) usecases.IndexOpener {
	files := make(map[entities.Domain]string, len(cfg.Domains))
	for _, d := range cfg.Domains {
		files[d.Name] = filepath.Join(cfg.Retrieval.DataDir, d.File)
	}
	return func(domain entities.Domain) (ports.VectorIndex, error) {
		path, ok := files[domain]
		if !ok {
			return vectordb.NewEmptyIndex(), nil
		}
		if _, err := os.Stat(path); err != nil {
			log.Warn().Str("domain", string(domain)).Str("path", path).
				Msg("no index file, serving with empty index")
			return vectordb.NewEmptyIndex(), nil
		}
		return vectordb.Open(path, domain)
	}
}

func domainNames(cfg *config.AppConfig) []entities.Domain {
	names := make([]entities.Domain, len(cfg.Domains))
	for i, d := range cfg.Domains {
		names[i] = d.Name
	}
	return names
}

// watchIndexDir reloads the assistant whenever an index file is rebuilt.
func watchIndexDir(ctx context.Context, assistant *usecases.Assistant, m *metrics.Metrics, dir string) {
	watcher, err := indexwatcher.NewFSNotifyWatcher(nil)
	if err != nil {
		log.Warn().Err(err).Msg("index watcher unavailable")
		return
	}
	defer watcher.Stop()

	events, err := watcher.Watch(ctx, dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", dir).Msg("cannot watch index directory")
		return
	}
	for ev := range events {
		log.Info().Str("path", ev.Path).Msg("index file changed, reloading")
		if err := assistant.Reload(ctx); err != nil {
			log.Error().Err(err).Msg("automatic reload failed")
			continue
		}
		m.ReloadsTotal.Inc()
	}
}
