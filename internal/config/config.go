// Package config loads application configuration from YAML and the environment.
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/tanaybasak/lawai/internal/domain/entities"
)

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host             string `yaml:"host"`
	Port             int    `yaml:"port"`
	ReadTimeoutSecs  int    `yaml:"read_timeout_secs"`
	WriteTimeoutSecs int    `yaml:"write_timeout_secs"`
}

// OpenAIConfig configures the hosted model clients.
type OpenAIConfig struct {
	BaseURL        string  `yaml:"base_url"`
	APIKeyEnv      string  `yaml:"api_key_env"`
	LLMModel       string  `yaml:"llm_model"`
	EmbeddingModel string  `yaml:"embedding_model"`
	Temperature    float32 `yaml:"temperature"`
	TimeoutSecs    int     `yaml:"timeout_secs"`
}

// RetrievalConfig configures similarity search.
type RetrievalConfig struct {
	TopK        int    `yaml:"top_k"`
	DataDir     string `yaml:"data_dir"`
	WatchReload bool   `yaml:"watch_reload"`
}

// DomainConfig binds a domain identifier to an index file under DataDir.
type DomainConfig struct {
	Name entities.Domain `yaml:"name"`
	File string          `yaml:"file"`
}

// LegalSource describes one configured legal act.
type LegalSource struct {
	ActName     string `yaml:"act_name" json:"act_name"`
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description" json:"description"`
}

// LoggingConfig configures structured logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// AppConfig is the root application configuration.
type AppConfig struct {
	Server       ServerConfig    `yaml:"server"`
	OpenAI       OpenAIConfig    `yaml:"openai"`
	Retrieval    RetrievalConfig `yaml:"retrieval"`
	Domains      []DomainConfig  `yaml:"domains"`
	LegalSources []LegalSource   `yaml:"legal_sources"`
	Logging      LoggingConfig   `yaml:"logging"`
}

// Load reads a config from the given path. A missing file yields defaults.
// A .env file next to the process, if present, is loaded first so the API
// key env var referenced by the config can come from it.
func Load(path string) (*AppConfig, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, errors.Wrap(err, "reading config")
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	applyDefaults(cfg)
	return cfg, nil
}

// APIKey resolves the model API key from the configured env var.
func (c *OpenAIConfig) APIKey() string {
	return os.Getenv(c.APIKeyEnv)
}

// Timeout returns the model request timeout as a duration.
func (c *OpenAIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSecs) * time.Second
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Host:             "0.0.0.0",
			Port:             8000,
			ReadTimeoutSecs:  15,
			WriteTimeoutSecs: 300,
		},
		OpenAI: OpenAIConfig{
			APIKeyEnv:      "OPENAI_API_KEY",
			LLMModel:       "gpt-4-turbo-preview",
			EmbeddingModel: "text-embedding-3-small",
			Temperature:    0.1,
			TimeoutSecs:    120,
		},
		Retrieval: RetrievalConfig{
			TopK:        5,
			DataDir:     "./data",
			WatchReload: true,
		},
		Domains: []DomainConfig{
			{Name: entities.DomainCriminal, File: "criminal.db"},
			{Name: entities.DomainNDAMutual, File: "nda_mutual.db"},
			{Name: entities.DomainNDAUnilateral, File: "nda_unilateral.db"},
		},
		LegalSources: []LegalSource{
			{
				ActName:     "Bharatiya Nyaya Sanhita, 2023 (BNS)",
				URL:         "https://www.indiacode.nic.in/handle/123456789/20062",
				Description: "India's criminal code, replacing the Indian Penal Code, 1860.",
			},
			{
				ActName:     "Information Technology Act, 2000",
				URL:         "https://www.indiacode.nic.in/handle/123456789/15442",
				Description: "Legal framework for electronic governance and e-commerce.",
			},
			{
				ActName:     "Indian Penal Code, 1860 (IPC)",
				URL:         "https://www.indiacode.nic.in/handle/123456789/12850",
				Description: "The official criminal code of India until replaced by BNS in 2024.",
			},
		},
		Logging: LoggingConfig{Level: "info", Pretty: false},
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8000
	}
	if cfg.Server.ReadTimeoutSecs == 0 {
		cfg.Server.ReadTimeoutSecs = 15
	}
	if cfg.Server.WriteTimeoutSecs == 0 {
		cfg.Server.WriteTimeoutSecs = 300
	}
	if cfg.OpenAI.APIKeyEnv == "" {
		cfg.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.OpenAI.LLMModel == "" {
		cfg.OpenAI.LLMModel = "gpt-4-turbo-preview"
	}
	if cfg.OpenAI.EmbeddingModel == "" {
		cfg.OpenAI.EmbeddingModel = "text-embedding-3-small"
	}
	if cfg.OpenAI.TimeoutSecs == 0 {
		cfg.OpenAI.TimeoutSecs = 120
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 5
	}
	if cfg.Retrieval.DataDir == "" {
		cfg.Retrieval.DataDir = "./data"
	}
	if len(cfg.Domains) == 0 {
		cfg.Domains = defaultConfig().Domains
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}
