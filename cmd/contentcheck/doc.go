// Command contentcheck runs Looker's content validator against a merge
// request's LookML branch and keeps a single report comment on the merge
// request up to date.
//
// Usage:
//
//	contentcheck run [--dry-run] [--skip-checkout] [--fail-on-errors]
//	contentcheck render <results.json> [--format markdown|json|text]
//	contentcheck config init|show|set|env
//	contentcheck version
//
// In GitLab CI the predefined variables (CI_MERGE_REQUEST_SOURCE_BRANCH_NAME,
// CI_PROJECT_ID, CI_MERGE_REQUEST_IID, CI_API_V4_URL) are picked up
// automatically; LOOKERSDK_* and GITLAB_API_TOKEN must be set as masked
// variables.
//
// Exit codes: 0 success, 1 content errors found with --fail-on-errors,
// 2 usage or configuration error, 3 authentication failure, 4 runtime error.
package main
