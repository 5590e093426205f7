package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("missing config file must not fail: %v", err)
	}

	if cfg.Server.Port != 8000 {
		t.Errorf("expected default port 8000, got %d", cfg.Server.Port)
	}
	if cfg.Retrieval.TopK != 5 {
		t.Errorf("expected default top_k 5, got %d", cfg.Retrieval.TopK)
	}
	if len(cfg.Domains) != 3 {
		t.Fatalf("expected 3 default domains, got %d", len(cfg.Domains))
	}
	if cfg.Domains[0].Name != entities.DomainCriminal || cfg.Domains[0].File != "criminal.db" {
		t.Errorf("unexpected first domain binding: %+v", cfg.Domains[0])
	}
	if len(cfg.LegalSources) == 0 {
		t.Error("expected default legal sources")
	}
}

func TestLoad_YAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  port: 9090
openai:
  llm_model: gpt-4o
retrieval:
  top_k: 3
  data_dir: /var/lib/lawai
domains:
  - name: criminal
    file: ipc.db
logging:
  level: debug
  pretty: true
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.OpenAI.LLMModel != "gpt-4o" {
		t.Errorf("expected overridden model, got %q", cfg.OpenAI.LLMModel)
	}
	if cfg.Retrieval.TopK != 3 || cfg.Retrieval.DataDir != "/var/lib/lawai" {
		t.Errorf("unexpected retrieval config: %+v", cfg.Retrieval)
	}
	if len(cfg.Domains) != 1 || cfg.Domains[0].File != "ipc.db" {
		t.Errorf("unexpected domains: %+v", cfg.Domains)
	}
	if cfg.Logging.Level != "debug" || !cfg.Logging.Pretty {
		t.Errorf("unexpected logging config: %+v", cfg.Logging)
	}
	// untouched fields keep defaults
	if cfg.OpenAI.EmbeddingModel != "text-embedding-3-small" {
		t.Errorf("expected default embedding model, got %q", cfg.OpenAI.EmbeddingModel)
	}
	if cfg.Server.WriteTimeoutSecs != 300 {
		t.Errorf("expected default write timeout, got %d", cfg.Server.WriteTimeoutSecs)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML must be rejected")
	}
}

func TestOpenAIConfig_APIKey(t *testing.T) {
	t.Setenv("LAWAI_TEST_KEY", "sk-test")
	c := OpenAIConfig{APIKeyEnv: "LAWAI_TEST_KEY"}
	if got := c.APIKey(); got != "sk-test" {
		t.Errorf("expected key from env, got %q", got)
	}
}
