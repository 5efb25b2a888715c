// Package redact removes credentials from text before it reaches a log line
// or stderr.
//
// Two mechanisms apply. A [Scrubber] replaces the literal secret values
// loaded from configuration (Looker client secret, GitLab token). Pattern
// heuristics then catch token shapes that were never configured, such as
// GitLab glpat- tokens, Authorization header values and Looker access_token
// fields echoed back in API error bodies.
package redact
