package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for kancparser.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kancparser",
		Short: "Catalog crawler for the kanc-mir.ru stationery store",
		Long: `kancparser crawls the kanc-mir.ru product catalog. It discovers
categories from the catalog start page, walks every listing page,
extracts a normalized record from each product detail page, and upserts
the records into MongoDB keyed by article.

Use the crawl command for a full-site run, or the category command to
reprocess a single category.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags that apply to all commands
	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	// Add subcommands
	cmd.AddCommand(NewCrawlCmd())
	cmd.AddCommand(NewCategoryCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
