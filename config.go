package minnow

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration: analyzer pipeline plus storage
// backend. Configuration problems are fatal at load time, before anything is
// built or served.
type Config struct {
	Analyzer AnalyzerConfig `yaml:"analyzer"`
	Storage  StorageConfig  `yaml:"storage"`
}

// AnalyzerConfig selects the stopword set and stemmer language. A nil
// StopWords means the default English set; an explicit empty list disables
// stopword filtering.
type AnalyzerConfig struct {
	StopWords       []string `yaml:"stopWords"`
	StemmerLanguage string   `yaml:"stemmerLanguage"`
}

// StorageConfig selects the persistence backend: "bolt" (embedded file) or
// "mysql".
type StorageConfig struct {
	Driver string   `yaml:"driver"`
	Path   string   `yaml:"path"`
	MySQL  DBConfig `yaml:"mysql"`
}

func LoadConfig(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Analyzer.StemmerLanguage == "" {
		cfg.Analyzer.StemmerLanguage = "english"
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	supported := false
	for _, lang := range SupportedStemmerLanguages() {
		if c.Analyzer.StemmerLanguage == lang {
			supported = true
			break
		}
	}
	if !supported {
		return fmt.Errorf("unsupported stemmer language %q", c.Analyzer.StemmerLanguage)
	}

	switch c.Storage.Driver {
	case "bolt":
		if c.Storage.Path == "" {
			return fmt.Errorf("bolt storage requires a path")
		}
	case "mysql":
		m := c.Storage.MySQL
		if m.User == "" || m.Addr == "" || m.Port == "" || m.DB == "" {
			return fmt.Errorf("mysql storage requires user, addr, port and db")
		}
	case "":
		return fmt.Errorf("storage driver is required")
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	return nil
}

// NewAnalyzerFromConfig builds the standard pipeline from configuration.
func NewAnalyzerFromConfig(cfg AnalyzerConfig) Analyzer {
	stopWords := cfg.StopWords
	if stopWords == nil {
		stopWords = DefaultStopWords()
	}
	return NewStandardAnalyzer(stopWords, cfg.StemmerLanguage)
}

// NewStorageFromConfig builds the configured storage backend.
func NewStorageFromConfig(cfg StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "bolt":
		return NewStorageBoltImpl(cfg.Path)
	case "mysql":
		db, err := NewDBClient(&cfg.MySQL)
		if err != nil {
			return nil, err
		}
		return NewStorageRdbImpl(db), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
