// Package gitctx reads merge request coordinates from a local git checkout.
//
// Outside GitLab CI the predefined CI_* variables are absent; the branch and
// the GitLab project path are then taken from the working copy's HEAD and its
// origin remote.
package gitctx
