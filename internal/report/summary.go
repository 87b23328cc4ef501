package report

import "time"

// Summary aggregates the outcome of one crawl invocation. The crawler
// fills it as the traversal runs and hands it back to the CLI for output.
type Summary struct {
	// StartURL is the page the crawl started from: the catalog start
	// page for a full crawl, the category URL for a single-category run.
	StartURL string `json:"start_url"`

	// StartedAt is when the crawl began.
	StartedAt time.Time `json:"started_at"`

	// Elapsed is the total wall-clock duration of the crawl.
	Elapsed time.Duration `json:"elapsed"`

	// Categories is the number of categories discovered.
	Categories int `json:"categories"`

	// Pages is the number of listing pages visited.
	Pages int `json:"pages"`

	// ProductsFound is the number of product links encountered.
	ProductsFound int `json:"products_found"`

	// ProductsSaved is the number of records handed to the store.
	ProductsSaved int `json:"products_saved"`

	// ProductsSkipped counts detail pages that could not be fetched or
	// whose record the store rejected.
	ProductsSkipped int `json:"products_skipped"`

	// Failures lists per-unit errors encountered and skipped during the
	// crawl, in occurrence order.
	Failures []string `json:"failures"`
}

// NewSummary creates a Summary for a crawl starting at startURL.
func NewSummary(startURL string, startedAt time.Time) *Summary {
	return &Summary{
		StartURL:  startURL,
		StartedAt: startedAt,
		Failures:  make([]string, 0),
	}
}

// AddFailure records a skipped unit's error.
func (s *Summary) AddFailure(context string, err error) {
	s.Failures = append(s.Failures, context+": "+err.Error())
}

// Clean reports whether the crawl completed without any skipped unit.
func (s *Summary) Clean() bool {
	return len(s.Failures) == 0
}
