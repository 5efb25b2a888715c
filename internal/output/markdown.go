package output

import (
	"io"
	"strings"

	"github.com/lookerci/contentcheck/internal/report"
)

// MarkdownWriter outputs the filled comment template, exactly as it is
// posted to the merge request.
type MarkdownWriter struct{}

func (m *MarkdownWriter) Write(w io.Writer, doc *report.Document) error {
	ew := &errWriter{w: w}
	ew.printf("%s", doc.Body)
	if !strings.HasSuffix(doc.Body, "\n") {
		ew.println("")
	}
	return ew.err
}
