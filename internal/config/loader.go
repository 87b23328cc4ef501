package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".kancparser"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File mirrors the YAML structure of the .kancparser configuration file.
// Only fields present in the file override the built-in defaults.
type File struct {
	// BaseURL overrides the catalog site root.
	BaseURL string `yaml:"baseURL,omitempty"`

	// CatalogPath overrides the category start page path.
	CatalogPath string `yaml:"catalogPath,omitempty"`

	// MongoURL overrides the MongoDB connection string.
	MongoURL string `yaml:"mongoURL,omitempty"`

	// Database overrides the Mongo database name.
	Database string `yaml:"database,omitempty"`

	// Collection overrides the Mongo collection name.
	Collection string `yaml:"collection,omitempty"`

	// RequestDelay overrides the pause between product fetches,
	// e.g. "500ms".
	RequestDelay string `yaml:"requestDelay,omitempty"`

	// CategoryDelay overrides the pause between categories, e.g. "2s".
	CategoryDelay string `yaml:"categoryDelay,omitempty"`

	// Timeout overrides the per-request HTTP timeout, e.g. "30s".
	Timeout string `yaml:"timeout,omitempty"`

	// RetryCount overrides the fetch retry count.
	RetryCount *int `yaml:"retryCount,omitempty"`

	// UserAgent overrides the HTTP User-Agent header.
	UserAgent string `yaml:"userAgent,omitempty"`
}

// LoadConfigFile loads settings from a YAML file. If the file does not
// exist it returns ErrConfigNotFound; callers decide whether that is fatal
// based on whether the path was explicitly requested by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .kancparser in the current directory
// 3. Look for .kancparser in the XDG config directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}

// Apply copies the file's non-empty fields onto cfg. Duration fields that
// fail to parse are reported as an error rather than silently ignored.
func (cf *File) Apply(cfg *Config) error {
	if cf.BaseURL != "" {
		cfg.BaseURL = cf.BaseURL
	}
	if cf.CatalogPath != "" {
		cfg.CatalogPath = cf.CatalogPath
	}
	if cf.MongoURL != "" {
		cfg.MongoURL = cf.MongoURL
	}
	if cf.Database != "" {
		cfg.Database = cf.Database
	}
	if cf.Collection != "" {
		cfg.Collection = cf.Collection
	}
	if cf.UserAgent != "" {
		cfg.UserAgent = cf.UserAgent
	}
	if cf.RetryCount != nil {
		cfg.RetryCount = *cf.RetryCount
	}

	for _, d := range []struct {
		raw string
		dst *time.Duration
	}{
		{cf.RequestDelay, &cfg.RequestDelay},
		{cf.CategoryDelay, &cfg.CategoryDelay},
		{cf.Timeout, &cfg.Timeout},
	} {
		if d.raw == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.raw)
		if err != nil {
			return err
		}
		*d.dst = parsed
	}

	return nil
}

// Environment variable names recognized by LoadEnv.
const (
	EnvBaseURL    = "KANCPARSER_BASE_URL"
	EnvMongoURL   = "KANCPARSER_MONGO_URL"
	EnvDatabase   = "KANCPARSER_DATABASE"
	EnvCollection = "KANCPARSER_COLLECTION"
	EnvRetryCount = "KANCPARSER_RETRY_COUNT"
)

// LoadEnv applies environment overrides onto cfg. A .env file in the
// working directory is loaded first if present; real environment variables
// win over .env entries (godotenv does not overwrite existing values).
func LoadEnv(cfg *Config) error {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv(EnvBaseURL); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv(EnvMongoURL); v != "" {
		cfg.MongoURL = v
	}
	if v := os.Getenv(EnvDatabase); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv(EnvCollection); v != "" {
		cfg.Collection = v
	}
	if v := os.Getenv(EnvRetryCount); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		cfg.RetryCount = n
	}

	return nil
}
