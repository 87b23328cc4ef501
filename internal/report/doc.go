// Package report renders crawl-run summaries.
//
// Summary is filled by the crawler as the traversal runs; MarkdownWriter
// and JSONWriter output it in the format the CLI was asked for. Both
// satisfy the Writer interface so the destination (stdout or a file) is
// the caller's choice.
package report
