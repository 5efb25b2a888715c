package config

import (
	"fmt"
	"strings"

	"github.com/lookerci/contentcheck/internal/faults"
)

// Needs selects which sections Validate requires.
type Needs struct {
	Looker bool // API credentials for a live validation
	GitLab bool // merge request coordinates for publishing
}

var (
	validFormats  = map[string]bool{"markdown": true, "json": true, "text": true}
	validLogEnvs  = map[string]bool{"local": true, "dev": true, "prod": true}
	validLogLevel = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

// Validate reports every missing or invalid setting as a single
// configuration fault. Branch and base URL are always required; the base URL
// must carry a port suffix only when content links are derived from it.
func (c Config) Validate(needs Needs) error {
	var problems []string
	missing := func(key, env string) {
		problems = append(problems, fmt.Sprintf("%s is not set (set %s)", key, env))
	}

	if c.Branch == "" {
		missing("branch", "CI_MERGE_REQUEST_SOURCE_BRANCH_NAME")
	}
	switch {
	case c.Looker.BaseURL == "":
		missing("looker.base_url", "LOOKERSDK_BASE_URL")
	case c.Report.ContentBaseURL == "" && len(c.Looker.BaseURL) <= 6:
		problems = append(problems, fmt.Sprintf("looker.base_url %q must end in a port suffix like :19999", c.Looker.BaseURL))
	}

	if needs.Looker {
		if c.Looker.ClientID == "" {
			missing("looker.client_id", "LOOKERSDK_CLIENT_ID")
		}
		if c.Looker.ClientSecret == "" {
			missing("looker.client_secret", "LOOKERSDK_CLIENT_SECRET")
		}
		if c.Looker.Project == "" {
			missing("looker.project", "LOOKER_PROJECT")
		}
		if c.Looker.Timeout <= 0 {
			problems = append(problems, "looker.timeout must be positive")
		}
	}

	if needs.GitLab {
		if c.GitLab.Token == "" {
			missing("gitlab.token", "GITLAB_API_TOKEN")
		}
		if c.GitLab.ProjectID == "" {
			missing("gitlab.project_id", "CI_PROJECT_ID")
		}
		if c.GitLab.MergeRequestIID <= 0 {
			missing("gitlab.merge_request_iid", "CI_MERGE_REQUEST_IID")
		}
		if c.Report.Marker == "" {
			missing("report.marker", "CONTENTCHECK_MARKER")
		}
	}

	if !validFormats[c.Report.Format] {
		problems = append(problems, fmt.Sprintf("report.format %q is not one of markdown, json, text", c.Report.Format))
	}
	if !validLogEnvs[c.Log.Env] {
		problems = append(problems, fmt.Sprintf("log.env %q is not one of local, dev, prod", c.Log.Env))
	}
	if !validLogLevel[c.Log.Level] {
		problems = append(problems, fmt.Sprintf("log.level %q is not one of debug, info, warn, error", c.Log.Level))
	}

	if len(problems) > 0 {
		return faults.Configuration(strings.Join(problems, "; "), nil)
	}
	return nil
}

// Secrets returns the credential values present in the config, for scrubbing
// from logs.
func (c Config) Secrets() []string {
	var out []string
	for _, s := range []string{c.Looker.ClientSecret, c.GitLab.Token} {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
