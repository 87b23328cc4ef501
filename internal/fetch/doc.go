// Package fetch provides the HTTP layer for retrieving catalog pages.
//
// Client wraps a resty HTTP client with the retry, timeout, and body-size
// policies a polite scraper needs. The Fetcher interface is what the
// catalog and crawler packages consume, so tests substitute in-memory
// fakes without any network.
package fetch
