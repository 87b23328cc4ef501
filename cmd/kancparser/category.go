package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"kancparser/internal/log"
)

// NewCategoryCmd creates the category command.
func NewCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category <category-url>",
		Short: "Crawl a single category",
		Long: `Category crawls one category instead of the whole catalog: every
listing page of the category and every product detail page on them.
Useful for reprocessing a category after a failed run without repeating
the full crawl.

Examples:
  # Crawl one category
  kancparser category https://kanc-mir.ru/catalog/bumaga/

  # Crawl a category with a JSON summary
  kancparser category --json https://kanc-mir.ru/catalog/bumaga/`,
		Args: cobra.ExactArgs(1),
		RunE: runCategoryCmd,
	}

	addCrawlFlags(cmd)
	return cmd
}

// runCategoryCmd executes the category command.
func runCategoryCmd(cmd *cobra.Command, args []string) error {
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
	categoryURL := args[0]

	fmt.Printf("Crawling category %s...\n", categoryURL)
	start := time.Now()

	summary, err := c.RunCategory(ctx, categoryURL)
	if err != nil {
		return err
	}

	fmt.Printf("Category crawl completed in %s\n\n", time.Since(start).Round(time.Millisecond))
	return outputSummary(cfg, summary)
}
