package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	BaseURL   string `yaml:"base_url"`
	APIKeyEnv string `yaml:"api_key_env"`
	Model     string `yaml:"model"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
	// Stopwords are dropped by the tfidf embedder. Empty by default since the
	// knowledge base is Vietnamese.
	Stopwords []string `yaml:"stopwords,omitempty"`
}

// OpenAIGeneratorConfig holds configuration for the OpenAI-compatible chat model.
type OpenAIGeneratorConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
}

// GeneratorConfig selects and configures the answer generator.
type GeneratorConfig struct {
	Type   string                 `yaml:"type"`
	OpenAI *OpenAIGeneratorConfig `yaml:"openai,omitempty"`
}

// SourceConfig points at the knowledge base workbook.
type SourceConfig struct {
	Path string `yaml:"path"`
}

// RetrievalConfig configures vector retrieval.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// SymptomsConfig configures the symptom matcher.
type SymptomsConfig struct {
	MinScore   float64 `yaml:"min_score"`
	MaxResults int     `yaml:"max_results"`
}

// LogConfig configures structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// File receives log output while the terminal UI runs.
	File string `yaml:"file,omitempty"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Source    SourceConfig    `yaml:"source"`
	Embedder  EmbedderConfig  `yaml:"embedder"`
	Generator GeneratorConfig `yaml:"generator"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Symptoms  SymptomsConfig  `yaml:"symptoms"`
	Log       LogConfig       `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	// Start from defaults so keys absent from the file keep their values.
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	return cfg, nil
}

// LoadDefault tries ./medrag.yaml first, then ~/.config/medrag/config.yaml.
// If neither exists it returns the compiled defaults and an empty path.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "medrag.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err == nil {
		if _, err := os.Stat(userPath); err == nil {
			cfg, err := Load(userPath)
			return cfg, userPath, err
		}
	}
	return defaultConfig(), "", nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate reports the first setting the application cannot run with.
func (c *AppConfig) Validate() error {
	switch c.Embedder.Type {
	case "openai", "tfidf":
	default:
		return fmt.Errorf("unknown embedder type %q", c.Embedder.Type)
	}
	if c.Generator.Type != "openai" {
		return fmt.Errorf("unknown generator type %q", c.Generator.Type)
	}
	if c.Source.Path == "" {
		return errors.New("source.path is empty")
	}
	if c.Retrieval.TopK < 1 {
		return fmt.Errorf("retrieval.top_k must be at least 1, got %d", c.Retrieval.TopK)
	}
	if c.Symptoms.MinScore < 0 || c.Symptoms.MinScore > 1 {
		return fmt.Errorf("symptoms.min_score must be within [0, 1], got %g", c.Symptoms.MinScore)
	}
	if c.Symptoms.MaxResults < 1 {
		return fmt.Errorf("symptoms.max_results must be at least 1, got %d", c.Symptoms.MaxResults)
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return level, nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "medrag", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Source:    SourceConfig{Path: "datasjet.xlsx"},
		Embedder:  EmbedderConfig{Type: "openai"},
		Generator: GeneratorConfig{Type: "openai"},
		Retrieval: RetrievalConfig{TopK: 4},
		Symptoms:  SymptomsConfig{MinScore: 0.9, MaxResults: 5},
		Log:       LogConfig{Level: "info"},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "openai" {
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = &OpenAIEmbedderConfig{}
		}
		if cfg.Embedder.OpenAI.APIKeyEnv == "" {
			cfg.Embedder.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Embedder.OpenAI.Model == "" {
			cfg.Embedder.OpenAI.Model = "text-embedding-3-small"
		}
	}
	if cfg.Generator.Type == "openai" {
		if cfg.Generator.OpenAI == nil {
			cfg.Generator.OpenAI = &OpenAIGeneratorConfig{}
		}
		if cfg.Generator.OpenAI.APIKeyEnv == "" {
			cfg.Generator.OpenAI.APIKeyEnv = "OPENAI_API_KEY"
		}
		if cfg.Generator.OpenAI.Model == "" {
			cfg.Generator.OpenAI.Model = "gpt-4o-mini"
		}
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
