// Package main provides the entry point for the kancparser CLI.
//
// kancparser crawls the kanc-mir.ru stationery catalog, extracts product
// records from detail pages, and upserts them into MongoDB.
//
// Usage:
//
//	kancparser crawl
//	kancparser category <category-url>
//
// See --help for all available options.
package main

// main is the entry point for kancparser.
func main() {
	Execute()
}
