// Package file loads advisor configuration from a TOML file.
//
// Configuration lives at ~/.advisor/config.toml by default. Every field has
// a working default, so a missing file yields a usable local-Ollama setup.
// API keys may come from the environment instead of the file, which keeps
// secrets out of dotfiles.
package file

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/campuslabs/advisor-cli/internal/core/domain"
)

// Environment variables consulted when the file omits an API key.
const (
	envOpenAIKey    = "OPENAI_API_KEY"
	envAnthropicKey = "ANTHROPIC_API_KEY"
)

// Default configuration values.
const (
	DefaultEmbeddingModel = "nomic-embed-text"
	DefaultLLMModel       = "llama3.2"
	DefaultMaxTokens      = 1024
	DefaultTemperature    = 0.3
	DefaultTopK           = 4
)

// Config is the full advisor configuration.
type Config struct {
	Catalog   CatalogConfig   `toml:"catalog"`
	Index     IndexConfig     `toml:"index"`
	Embedding EmbeddingConfig `toml:"embedding"`
	LLM       LLMConfig       `toml:"llm"`
	Retrieval RetrievalConfig `toml:"retrieval"`
}

// CatalogConfig locates the course catalog.
type CatalogConfig struct {
	// Path is the course catalog JSON file.
	Path string `toml:"path"`
}

// IndexConfig locates the persisted vector index.
type IndexConfig struct {
	// Path is the SQLite snapshot file.
	Path string `toml:"path"`
}

// EmbeddingConfig selects and configures the embedding provider.
type EmbeddingConfig struct {
	Provider   string `toml:"provider"`
	Model      string `toml:"model"`
	BaseURL    string `toml:"base_url"`
	APIKey     string `toml:"api_key"`
	Dimensions int    `toml:"dimensions"`
}

// LLMConfig selects and configures the generation provider.
type LLMConfig struct {
	Provider  string `toml:"provider"`
	Model     string `toml:"model"`
	BaseURL   string `toml:"base_url"`
	APIKey    string `toml:"api_key"`
	MaxTokens int    `toml:"max_tokens"`

	// Temperature is a pointer so an explicit 0.0 (deterministic
	// sampling) is distinguishable from an absent key.
	Temperature *float64 `toml:"temperature"`
}

// RetrievalConfig tunes the retrieval stage.
type RetrievalConfig struct {
	// TopK is the number of courses retrieved per question.
	TopK int `toml:"top_k"`
}

// DefaultDir returns the advisor configuration directory (~/.advisor).
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".advisor"), nil
}

// DefaultPath returns the default configuration file path.
func DefaultPath() (string, error) {
	dir, err := DefaultDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the configuration at path. A missing file is not an error;
// defaults apply. An empty path resolves to the default location.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

// Save writes the configuration to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	// Restricted permissions, the file may hold API keys.
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// applyDefaults fills unset fields with working local defaults.
func (c *Config) applyDefaults() {
	if c.Catalog.Path == "" {
		c.Catalog.Path = "courses.json"
	}
	if c.Index.Path == "" {
		if dir, err := DefaultDir(); err == nil {
			c.Index.Path = filepath.Join(dir, "index.db")
		} else {
			c.Index.Path = "index.db"
		}
	}
	if c.Embedding.Provider == "" {
		c.Embedding.Provider = string(domain.AIProviderOllama)
	}
	if c.Embedding.Model == "" {
		c.Embedding.Model = DefaultEmbeddingModel
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = string(domain.AIProviderOllama)
	}
	if c.LLM.Model == "" {
		c.LLM.Model = DefaultLLMModel
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = DefaultMaxTokens
	}
	if c.LLM.Temperature == nil {
		temperature := float64(DefaultTemperature)
		c.LLM.Temperature = &temperature
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = DefaultTopK
	}
}

// EmbeddingSettings converts the embedding section to domain settings,
// falling back to the environment for the API key.
func (c *Config) EmbeddingSettings() domain.EmbeddingSettings {
	apiKey := c.Embedding.APIKey
	if apiKey == "" {
		apiKey = keyFromEnv(domain.AIProvider(c.Embedding.Provider))
	}
	return domain.EmbeddingSettings{
		Provider:   domain.AIProvider(c.Embedding.Provider),
		Model:      c.Embedding.Model,
		BaseURL:    c.Embedding.BaseURL,
		APIKey:     apiKey,
		Dimensions: c.Embedding.Dimensions,
	}
}

// LLMSettings converts the llm section to domain settings, falling back to
// the environment for the API key.
func (c *Config) LLMSettings() domain.LLMSettings {
	apiKey := c.LLM.APIKey
	if apiKey == "" {
		apiKey = keyFromEnv(domain.AIProvider(c.LLM.Provider))
	}
	temperature := float64(DefaultTemperature)
	if c.LLM.Temperature != nil {
		temperature = *c.LLM.Temperature
	}
	return domain.LLMSettings{
		Provider:    domain.AIProvider(c.LLM.Provider),
		Model:       c.LLM.Model,
		BaseURL:     c.LLM.BaseURL,
		APIKey:      apiKey,
		MaxTokens:   c.LLM.MaxTokens,
		Temperature: temperature,
	}
}

// keyFromEnv returns the conventional environment API key for a provider.
func keyFromEnv(provider domain.AIProvider) string {
	switch provider {
	case domain.AIProviderOpenAI:
		return os.Getenv(envOpenAIKey)
	case domain.AIProviderAnthropic:
		return os.Getenv(envAnthropicKey)
	default:
		return ""
	}
}
