// Package catalog navigates the listing side of the storefront.
//
// Navigator discovers category URLs from the start page, infers how many
// listing pages a category has from its pagination markers, enumerates
// per-page URLs, and extracts the set of product-detail links from a
// listing page. All returned URLs are absolute; product links are
// deduplicated and sorted so a crawl visits them in a deterministic order.
//
// Fetch failures propagate to the caller. That is deliberate: only the
// orchestrator knows whether a failed category or page should abort the
// crawl or just be skipped.
package catalog
