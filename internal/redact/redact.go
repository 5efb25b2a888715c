package redact

import (
	"regexp"
	"sort"
	"strings"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for credentials that can leak into
// error text and log lines.
var secretPatterns = []*regexp.Regexp{
	// GitLab personal, project and CI job tokens
	regexp.MustCompile(`gl(pat|dt|cbt|ptt|oas)-[A-Za-z0-9_-]{20,}`),
	// Authorization headers (Looker sends "token <t>", GitLab "Bearer <t>")
	regexp.MustCompile(`(?i)(Bearer|token)\s+[A-Za-z0-9._-]{20,}`),
	// PRIVATE-TOKEN header echoes
	regexp.MustCompile(`(?i)private-token\s*[:=]\s*\S+`),
	// Looker login responses
	regexp.MustCompile(`(?i)"access_token"\s*:\s*"[^"]+"`),
	// client_secret in form bodies or query strings
	regexp.MustCompile(`(?i)client_secret=[^&\s]+`),
	// Generic secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']([^"']{8,})["']`),
}

// Secrets replaces detected secrets in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllString(result, placeholder)
	}
	return result
}

// Scrubber removes known credential values and pattern-matched secrets.
type Scrubber struct {
	values []string
}

// New returns a Scrubber for the given literal values. Values shorter than
// four characters are ignored.
func New(values ...string) *Scrubber {
	s := &Scrubber{}
	for _, v := range values {
		if len(v) >= 4 {
			s.values = append(s.values, v)
		}
	}
	// longest first so a secret containing another is removed whole
	sort.Slice(s.values, func(i, j int) bool { return len(s.values[i]) > len(s.values[j]) })
	return s
}

// String scrubs text. A nil Scrubber applies only the patterns.
func (s *Scrubber) String(text string) string {
	if s != nil {
		for _, v := range s.values {
			text = strings.ReplaceAll(text, v, placeholder)
		}
	}
	return Secrets(text)
}
