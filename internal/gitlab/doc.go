// Package gitlab posts the content validation report to a GitLab merge
// request.
//
// The report lives in a single note identified by a hidden HTML marker. Each
// run updates that note in place, so the merge request shows only the latest
// result instead of one comment per pipeline.
package gitlab
