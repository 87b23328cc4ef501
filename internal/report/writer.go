package report

// Writer outputs a crawl summary to some destination. Implementations
// cover the supported formats; the CLI picks one based on flags.
type Writer interface {
	// Write outputs the summary. Returns the number of bytes written and
	// any error encountered.
	Write(summary *Summary) (int, error)
}
