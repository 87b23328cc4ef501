package config

import (
	"net/url"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. The delays mirror what the site has
// tolerated in production use; shorter values risk rate limiting.
const (
	// DefaultBaseURL is the root of the catalog site.
	DefaultBaseURL = "https://kanc-mir.ru"

	// DefaultCatalogPath is the start page path from which categories
	// are discovered.
	DefaultCatalogPath = "/catalog/"

	// DefaultMongoURL is the connection string for a local MongoDB.
	DefaultMongoURL = "mongodb://localhost:27017/"

	// DefaultDatabase is the Mongo database name for crawl output.
	DefaultDatabase = "KancMir"

	// DefaultCollection is the Mongo collection holding products.
	DefaultCollection = "products"

	// DefaultRequestDelay is the pause enforced after each product fetch.
	// This is a politeness setting, not adaptive backpressure.
	DefaultRequestDelay = 500 * time.Millisecond

	// DefaultCategoryDelay is the longer pause after each completed
	// category. It is skipped after the last category.
	DefaultCategoryDelay = 2 * time.Second

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRetryCount is how many times a failed fetch is retried
	// before the failure is surfaced to the caller.
	DefaultRetryCount = 2

	// DefaultUserAgent identifies kancparser in HTTP requests so the
	// site operator can recognize scraper traffic in logs.
	DefaultUserAgent = "kancparser/1.0"

	// DefaultMaxBodySize caps the response body size in bytes. Listing
	// and detail pages are well under 2MB; anything larger is truncated
	// to protect memory.
	DefaultMaxBodySize = 2 * 1024 * 1024

	// AppName is the application name used for XDG directory paths.
	AppName = "kancparser"
)

// Config holds all settings for a crawl run. It is populated from
// defaults, then the optional YAML config file, then environment
// variables, then CLI flags, and passed through the application by
// dependency injection rather than global state.
type Config struct {
	// BaseURL is the scheme+host of the catalog site. Relative product
	// hrefs are resolved against it.
	BaseURL string

	// CatalogPath is the path of the start page listing all categories.
	CatalogPath string

	// MongoURL is the MongoDB connection string.
	MongoURL string

	// Database is the Mongo database name.
	Database string

	// Collection is the Mongo collection products are upserted into.
	Collection string

	// RequestDelay is the pause after each product fetch.
	RequestDelay time.Duration

	// CategoryDelay is the pause after each completed category.
	CategoryDelay time.Duration

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// RetryCount is the number of retries per failed fetch.
	RetryCount int

	// UserAgent is sent with every HTTP request.
	UserAgent string

	// MaxBodySize caps response body reads, in bytes.
	MaxBodySize int64

	// Verbose enables slog.LevelDebug output. When false, only info and
	// above are logged.
	Verbose bool

	// ReportFile is the path the crawl summary is written to. Empty
	// means stdout.
	ReportFile string

	// JSONReport switches the crawl summary from Markdown to JSON.
	JSONReport bool
}

// NewConfig creates a Config with default values. Many defaults are
// non-zero, so relying on zero values is not an option; this constructor
// also documents what the defaults are.
func NewConfig() *Config {
	return &Config{
		BaseURL:       DefaultBaseURL,
		CatalogPath:   DefaultCatalogPath,
		MongoURL:      DefaultMongoURL,
		Database:      DefaultDatabase,
		Collection:    DefaultCollection,
		RequestDelay:  DefaultRequestDelay,
		CategoryDelay: DefaultCategoryDelay,
		Timeout:       DefaultTimeout,
		RetryCount:    DefaultRetryCount,
		UserAgent:     DefaultUserAgent,
		MaxBodySize:   DefaultMaxBodySize,
	}
}

// StartURL returns the absolute URL of the catalog start page.
func (c *Config) StartURL() string {
	return c.BaseURL + c.CatalogPath
}

// XDGConfigDir returns the XDG config directory for kancparser.
// On Linux: ~/.config/kancparser
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGDataDir returns the XDG data directory for kancparser.
// On Linux: ~/.local/share/kancparser
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks the configuration and returns a specific error
// describing the first invalid field. It is called once after flag and
// file parsing, before any crawling begins.
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidBaseURL
	}

	if c.MongoURL == "" {
		return ErrNoMongoURL
	}

	if c.Database == "" || c.Collection == "" {
		return ErrNoCollection
	}

	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}

	if c.RequestDelay < 0 || c.CategoryDelay < 0 {
		return ErrInvalidDelay
	}

	if c.RetryCount < 0 {
		return ErrInvalidRetryCount
	}

	if c.MaxBodySize <= 0 {
		return ErrInvalidMaxBodySize
	}

	return nil
}
