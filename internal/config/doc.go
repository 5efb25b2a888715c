// Package config loads and merges contentcheck configuration from multiple sources.
//
// Precedence (highest to lowest):
//  1. CLI flags
//  2. Environment variables (the GitLab CI and Looker SDK names, e.g.
//     CI_MERGE_REQUEST_SOURCE_BRANCH_NAME, LOOKERSDK_BASE_URL, GITLAB_API_TOKEN)
//  3. YAML config file (--config, $CONTENTCHECK_CONFIG, or ./.contentcheck.yaml)
//  4. Built-in defaults
//
// Use [Load] to obtain a merged [Config] once at startup and pass it down;
// [Config.Validate] turns missing settings into a configuration fault before
// any work starts.
package config
