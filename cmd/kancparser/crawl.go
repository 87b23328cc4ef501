package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"kancparser/internal/catalog"
	"kancparser/internal/config"
	"kancparser/internal/crawler"
	"kancparser/internal/fetch"
	"kancparser/internal/log"
	"kancparser/internal/product"
	"kancparser/internal/report"
	"kancparser/internal/store"
)

// NewCrawlCmd creates the crawl command.
func NewCrawlCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "crawl",
		Short: "Crawl the full catalog and store every product",
		Long: `Crawl discovers all categories from the catalog start page and walks
them sequentially: every listing page of every category, every product
detail page on every listing page. Each extracted record is upserted
into MongoDB immediately, keyed by article.

Requests are paced by a fixed delay, with a longer pause between
categories.

Examples:
  # Crawl the whole catalog with defaults
  kancparser crawl

  # Crawl against a different Mongo instance
  kancparser crawl --mongo-url mongodb://db.internal:27017/

  # Write a JSON summary to a file
  kancparser crawl --json --output crawl-summary.json

  # Use a custom configuration file
  kancparser crawl -c myconfig.yaml

Configuration file (.kancparser) example:
  baseURL: https://kanc-mir.ru
  mongoURL: mongodb://localhost:27017/
  requestDelay: 500ms
  categoryDelay: 2s`,
		Args: cobra.NoArgs,
		RunE: runCrawlCmd,
	}

	addCrawlFlags(cmd)
	return cmd
}

// addCrawlFlags registers the flags shared by crawl and category.
func addCrawlFlags(cmd *cobra.Command) {
	// Site flags
	cmd.Flags().StringP("base-url", "u", config.DefaultBaseURL,
		"Catalog site root URL")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Connection timeout for each request")
	cmd.Flags().IntP("retry", "r", config.DefaultRetryCount,
		"Number of retries per failed request")
	cmd.Flags().DurationP("request-delay", "d", config.DefaultRequestDelay,
		"Pause after each product fetch")
	cmd.Flags().DurationP("category-delay", "D", config.DefaultCategoryDelay,
		"Pause after each completed category")

	// Storage flags
	cmd.Flags().StringP("mongo-url", "m", config.DefaultMongoURL,
		"MongoDB connection string")
	cmd.Flags().String("database", config.DefaultDatabase,
		"MongoDB database name")
	cmd.Flags().String("collection", config.DefaultCollection,
		"MongoDB collection name")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .kancparser in current or XDG config directory)")

	// Report flags
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON summary instead of Markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write summary to specified file path (creates directories if needed)")
}

// runCrawlCmd executes the crawl command.
func runCrawlCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	ctx, cancel := signalContext(logger)
	defer cancel()

	c := newCrawler(cfg, logger)

	fmt.Printf("Crawling %s...\n", cfg.StartURL())
	start := time.Now()

	summary, err := c.Run(ctx, cfg.StartURL())
	if err != nil {
		return err
	}

	fmt.Printf("Crawl completed in %s\n\n", time.Since(start).Round(time.Millisecond))
	return outputSummary(cfg, summary)
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the optional config file,
// environment variables, and cobra command flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()

	configFlag, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// If the user explicitly specified a config file, a missing file is an
	// error. Otherwise a missing file just means defaults.
	configPath := config.FindConfigFile(configFlag)
	if configPath != "" {
		cf, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		if err := cf.Apply(cfg); err != nil {
			return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
		}
	} else if configFlag != "" {
		return nil, fmt.Errorf("configuration file not found: %s", configFlag)
	}

	if err := config.LoadEnv(cfg); err != nil {
		return nil, err
	}

	// Flags override file and environment, but only when set explicitly.
	if cmd.Flags().Changed("base-url") {
		if cfg.BaseURL, err = cmd.Flags().GetString("base-url"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("timeout") {
		if cfg.Timeout, err = cmd.Flags().GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("retry") {
		if cfg.RetryCount, err = cmd.Flags().GetInt("retry"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("request-delay") {
		if cfg.RequestDelay, err = cmd.Flags().GetDuration("request-delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("category-delay") {
		if cfg.CategoryDelay, err = cmd.Flags().GetDuration("category-delay"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("mongo-url") {
		if cfg.MongoURL, err = cmd.Flags().GetString("mongo-url"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("database") {
		if cfg.Database, err = cmd.Flags().GetString("database"); err != nil {
			return nil, err
		}
	}
	if cmd.Flags().Changed("collection") {
		if cfg.Collection, err = cmd.Flags().GetString("collection"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = cmd.Flags().GetBool("json"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = cmd.Flags().GetString("output"); err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM.
func signalContext(logger *slog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// newCrawler wires the crawl collaborators from the configuration.
func newCrawler(cfg *config.Config, logger *slog.Logger) *crawler.Crawler {
	client := fetch.NewClient(
		fetch.WithTimeout(cfg.Timeout),
		fetch.WithRetryCount(cfg.RetryCount),
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
	)

	navigator, err := catalog.NewNavigator(client, cfg.BaseURL)
	if err != nil {
		// BaseURL already passed Validate; an error here is a programming
		// mistake, not user input.
		panic(err)
	}

	mongo := store.NewMongo(cfg.MongoURL, cfg.Database, cfg.Collection)

	return crawler.New(client, navigator, product.NewExtractor(), mongo,
		crawler.WithRequestDelay(cfg.RequestDelay),
		crawler.WithCategoryDelay(cfg.CategoryDelay),
		crawler.WithLogger(logger),
	)
}

// outputSummary writes the crawl summary in the requested format.
func outputSummary(cfg *config.Config, summary *report.Summary) error {
	var output *os.File
	if cfg.ReportFile != "" {
		dir := filepath.Dir(cfg.ReportFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		output = f
	} else {
		output = os.Stdout
	}

	var writer report.Writer
	if cfg.JSONReport {
		writer = report.NewJSONWriter(output)
	} else {
		writer = report.NewMarkdownWriter(output)
	}

	_, err := writer.Write(summary)
	return err
}
