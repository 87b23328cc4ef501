package report

import (
	"bytes"
	"encoding/json"
	"io"
)

// JSONWriter renders a crawl summary as indented JSON for tool
// integration. Standard encoding/json is sufficient here; the summary is
// tiny and written once per run.
type JSONWriter struct {
	output io.Writer
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer) *JSONWriter {
	return &JSONWriter{output: output}
}

// Write outputs the summary as JSON.
func (w *JSONWriter) Write(summary *Summary) (int, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(summary); err != nil {
		return 0, err
	}
	return w.output.Write(buf.Bytes())
}
