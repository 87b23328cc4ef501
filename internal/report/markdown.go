package report

import (
	"io"
	"strconv"
	"time"

	"github.com/nao1215/markdown"
)

// MarkdownWriter renders a crawl summary as GitHub Flavored Markdown,
// suitable for run logs checked into a wiki or pasted into an issue.
type MarkdownWriter struct {
	output io.Writer
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{output: output}
}

// Write outputs the summary in Markdown format.
func (w *MarkdownWriter) Write(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + summary.StartURL + "`"},
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Elapsed", summary.Elapsed.Round(time.Millisecond).String()},
			{"Status", statusText(summary)},
		},
	})
	md.PlainText("")

	md.H2("Totals")
	md.PlainText("")
	md.Table(markdown.TableSet{
		Header: []string{"Unit", "Count"},
		Rows: [][]string{
			{"Categories", strconv.Itoa(summary.Categories)},
			{"Listing pages", strconv.Itoa(summary.Pages)},
			{"Products found", strconv.Itoa(summary.ProductsFound)},
			{"Products saved", strconv.Itoa(summary.ProductsSaved)},
			{"Products skipped", strconv.Itoa(summary.ProductsSkipped)},
		},
	})
	md.PlainText("")

	if len(summary.Failures) > 0 {
		md.H2("Skipped units")
		md.PlainText("")
		md.BulletList(summary.Failures...)
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// statusText summarizes the run outcome.
func statusText(summary *Summary) string {
	if summary.Clean() {
		return "✅ Complete"
	}
	return "⚠️ Completed with " + strconv.Itoa(len(summary.Failures)) + " skipped unit(s)"
}
