package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the arama API configuration.
type Config struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Database   DatabaseConfig   `yaml:"database"`
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Collection CollectionConfig `yaml:"collection"`
	Index      IndexConfig      `yaml:"index"`
	Search     SearchConfig     `yaml:"search"`
	Auth       AuthConfig       `yaml:"auth"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: determined by env)
}

// AuthConfig holds API authentication settings.
type AuthConfig struct {
	APIKeys []string `yaml:"api_keys"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// CollectionConfig holds the persisted collection settings.
type CollectionConfig struct {
	Name           string `yaml:"name"`
	SeedFile       string `yaml:"seed_file"` // newline-delimited corpus, optional
	MaxTextLen     int    `yaml:"max_text_len"`
	MaxFilenameLen int    `yaml:"max_filename_len"`
}

// IndexConfig holds HNSW index settings.
type IndexConfig struct {
	HNSWM           int `yaml:"hnsw_m"`
	HNSWEFConstruct int `yaml:"hnsw_ef_construction"`
}

// SearchConfig holds retrieval and reranking settings.
// Zero values for TopK, Threshold, and FallbackTopN take mode-dependent
// defaults at the composition root (see usecase/search).
type SearchConfig struct {
	TopK         int  `yaml:"top_k"`
	Lexical      bool `yaml:"lexical"` // blend Turkish lexical overlap into scores
	Threshold    int  `yaml:"threshold"`
	FallbackTopN int  `yaml:"fallback_top_n"`
}

// EmbeddingConfig holds embedding settings. Active names the vectorizer the
// pipeline runs with; when only one vectorizer is configured it may be left
// empty.
type EmbeddingConfig struct {
	Active      string                      `yaml:"active"`
	Providers   map[string]ProviderConfig   `yaml:"providers"`
	Vectorizers map[string]VectorizerConfig `yaml:"vectorizers"`
}

// ActiveVectorizer resolves the active vectorizer config. Call after
// Validate.
func (e EmbeddingConfig) ActiveVectorizer() VectorizerConfig {
	return e.Vectorizers[e.Active]
}

// ProviderConfig holds embedding provider settings.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
}

// VectorizerConfig holds vectorizer settings.
// Kind is "dense" (OpenAI-compatible API backend) or "hashed" (in-process
// hashed bag-of-words). DocumentPrefix/QueryPrefix carry role markers such as
// "passage: " and "query: " for models trained with them.
type VectorizerConfig struct {
	Kind           string `yaml:"kind"`
	Provider       string `yaml:"provider"`
	Model          string `yaml:"model"`
	Dimensions     int    `yaml:"dimensions"`
	DocumentPrefix string `yaml:"document_prefix"`
	QueryPrefix    string `yaml:"query_prefix"`
	Normalize      bool   `yaml:"normalize"` // L2-normalize dense vectors
}

// Load reads configuration from a YAML file by environment name (local, dev, prod).
func Load(env string) (Config, error) {
	configPath := findConfigPath(env)

	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics.
func MustLoad(env string) Config {
	cfg, err := Load(env)
	if err != nil {
		panic(err)
	}
	return cfg
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Collection.Name == "" {
		c.Collection.Name = "documents"
	}
	if c.Collection.MaxTextLen <= 0 {
		c.Collection.MaxTextLen = 2000
	}
	if c.Collection.MaxFilenameLen <= 0 {
		c.Collection.MaxFilenameLen = 255
	}
	if c.Index.HNSWM <= 0 {
		c.Index.HNSWM = 32
	}
	if c.Index.HNSWEFConstruct <= 0 {
		c.Index.HNSWEFConstruct = 400
	}
	if c.Embedding.Active == "" && len(c.Embedding.Vectorizers) == 1 {
		for name := range c.Embedding.Vectorizers {
			c.Embedding.Active = name
		}
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}
	if len(c.Database.Addrs) == 0 {
		return fmt.Errorf("database.addrs is required")
	}
	if len(c.Embedding.Vectorizers) == 0 {
		return fmt.Errorf("embedding.vectorizers is required")
	}
	for name, vc := range c.Embedding.Vectorizers {
		switch vc.Kind {
		case "", "dense":
			if _, ok := c.Embedding.Providers[vc.Provider]; !ok {
				return fmt.Errorf(
					"embedding.vectorizers.%s references unknown provider %q", name, vc.Provider,
				)
			}
		case "hashed":
			if vc.Dimensions <= 0 {
				return fmt.Errorf(
					"embedding.vectorizers.%s: hashed vectorizer requires positive dimensions", name,
				)
			}
		default:
			return fmt.Errorf(
				"embedding.vectorizers.%s.kind must be \"dense\" or \"hashed\", got %q", name, vc.Kind,
			)
		}
	}
	if c.Embedding.Active == "" {
		return fmt.Errorf("embedding.active is required when multiple vectorizers are configured")
	}
	if _, ok := c.Embedding.Vectorizers[c.Embedding.Active]; !ok {
		return fmt.Errorf("embedding.active references unknown vectorizer %q", c.Embedding.Active)
	}
	if c.Search.Threshold < 0 || c.Search.Threshold > 100 {
		return fmt.Errorf("search.threshold must be in [0, 100], got %d", c.Search.Threshold)
	}
	return nil
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
