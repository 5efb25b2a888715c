// Package faults defines the typed errors contentcheck returns across package
// boundaries.
//
// Configuration, malformed-input and template faults are fatal and abort a run
// before anything is published. Platform faults come from the Looker and GitLab
// clients; only those marked retryable are retried, and only by the clients.
package faults
