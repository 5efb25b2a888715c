package report

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/lookerci/contentcheck/internal/faults"
)

// Placeholder names a template may reference.
const (
	KeyBranchName  = "branch_name"
	KeyTimeS       = "time_s"
	KeyLooks       = "looks"
	KeyDashElems   = "dash_elems"
	KeyDashFilters = "dash_filters"
	KeySchedules   = "schedules"
	KeyExplores    = "explores"
	KeyErrorsTable = "errors_table"
	KeyTotalErrors = "total_errors"
	KeyRunAt       = "run_at"
)

var knownKeys = map[string]bool{
	KeyBranchName:  true,
	KeyTimeS:       true,
	KeyLooks:       true,
	KeyDashElems:   true,
	KeyDashFilters: true,
	KeySchedules:   true,
	KeyExplores:    true,
	KeyErrorsTable: true,
	KeyTotalErrors: true,
	KeyRunAt:       true,
}

var placeholderRe = regexp.MustCompile(`\{\{\s*([A-Za-z_][A-Za-z0-9_]*)\s*\}\}`)

// Template is a report body with {{ name }} placeholders. Only plain
// substitution is supported.
type Template struct {
	text string
	keys []string
}

// ParseTemplate validates text as a template. Placeholders outside the known
// set are rejected so a typo cannot silently render as nothing.
func ParseTemplate(text string) (*Template, error) {
	seen := make(map[string]bool)
	var unknown []string
	for _, m := range placeholderRe.FindAllStringSubmatch(text, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		if !knownKeys[name] {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, faults.TemplateLoad(
			fmt.Sprintf("unknown placeholders: %s", strings.Join(unknown, ", ")), nil)
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Template{text: text, keys: keys}, nil
}

// LoadTemplate reads and parses a template file.
func LoadTemplate(path string) (*Template, error) {
	if path == "" {
		return nil, faults.TemplateLoad("no template path configured", nil)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, faults.TemplateLoad(fmt.Sprintf("reading template %s", path), err)
	}
	return ParseTemplate(string(data))
}

// Keys returns the placeholders the template uses, sorted.
func (t *Template) Keys() []string {
	return t.keys
}

// Render substitutes values into the template. Values are inserted verbatim
// and are not rescanned for placeholders.
func (t *Template) Render(values map[string]string) string {
	return placeholderRe.ReplaceAllStringFunc(t.text, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		return values[name]
	})
}
