package gitctx

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// Branch returns the branch checked out in the repository at dir. A detached
// HEAD is an error: there is no branch to check out in Looker.
func Branch(dir string) (string, error) {
	out, err := gitOutput(dir, "symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		return "", fmt.Errorf("cannot detect branch (detached HEAD or not a git repository): %w", err)
	}
	branch := strings.TrimSpace(out)
	if branch == "" {
		return "", errors.New("cannot detect branch: empty symbolic ref")
	}
	return branch, nil
}

var (
	httpsRemoteRe = regexp.MustCompile(`^https?://(?:[^@/]+@)?[^/]+/(.+)$`)
	sshURLRe      = regexp.MustCompile(`^ssh://(?:[^@/]+@)?[^/]+/(.+)$`)
	scpRemoteRe   = regexp.MustCompile(`^[^@]+@[^:]+:(.+)$`)
)

// RemoteProject returns the GitLab project path ("group/subgroup/project") of
// the origin remote of the repository at dir.
func RemoteProject(dir string) (string, error) {
	out, err := gitOutput(dir, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("cannot detect project: git remote get-url origin failed: %w", err)
	}
	return ParseRemoteURL(strings.TrimSpace(out))
}

// ParseRemoteURL extracts the project path from a git remote URL. Nested
// groups are kept.
func ParseRemoteURL(url string) (string, error) {
	url = strings.TrimSuffix(strings.TrimSuffix(url, "/"), ".git")

	for _, re := range []*regexp.Regexp{httpsRemoteRe, sshURLRe, scpRemoteRe} {
		if m := re.FindStringSubmatch(url); len(m) == 2 {
			path := strings.Trim(m[1], "/")
			if strings.Contains(path, "/") {
				return path, nil
			}
		}
	}
	return "", fmt.Errorf("cannot parse project path from remote URL: %s", url)
}

func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return string(out), fmt.Errorf("%s: %s", err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return "", err
	}
	return string(out), nil
}
