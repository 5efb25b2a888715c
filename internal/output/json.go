package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/lookerci/contentcheck/internal/report"
)

// JSONWriter outputs the structured document as JSON. Content URLs carry
// query strings and titles are free text, so HTML escaping is off and both
// come out as Looker returned them.
type JSONWriter struct{}

func (j *JSONWriter) Write(w io.Writer, doc *report.Document) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("writing JSON: %w", err)
	}
	return nil
}
