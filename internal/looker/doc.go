// Package looker is a minimal Looker REST API client covering the calls a
// content validation run needs: login, switching the session to the dev
// workspace, checking out and resetting a project branch, and running the
// content validator.
//
// Transport failures, 429 and 5xx responses are retried with exponential
// backoff; 401 and 403 surface as auth faults.
package looker
