package github

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kumvijaya/pr-merger/internal/errors"
)

// PullRequestRef identifies a pull request, derived once from its web URL.
type PullRequestRef struct {
	Owner  string
	Repo   string
	Number int
}

// ParsePullRequestURL parses a GitHub PR URL of the form
// https://github.com/owner/repo/pull/123. The path must contain at least
// four segments after stripping leading and trailing slashes, and the
// fourth segment must be a positive integer.
func ParsePullRequestURL(raw string) (PullRequestRef, error) {
	if raw == "" {
		return PullRequestRef{}, &errors.ValidationError{Field: "pr", Value: raw, Msg: "empty URL"}
	}

	u, err := url.Parse(raw)
	if err != nil {
		return PullRequestRef{}, &errors.ValidationError{Field: "pr", Value: raw, Msg: "not a valid URL"}
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) < 4 {
		return PullRequestRef{}, &errors.ValidationError{
			Field: "pr",
			Value: raw,
			Msg:   "expected https://github.com/owner/repo/pull/number",
		}
	}

	number, err := strconv.Atoi(segments[3])
	if err != nil || number <= 0 {
		return PullRequestRef{}, &errors.ValidationError{Field: "pr", Value: segments[3], Msg: "invalid PR number"}
	}

	return PullRequestRef{Owner: segments[0], Repo: segments[1], Number: number}, nil
}

// APIURL returns the REST endpoint of the pull request resource.
func (r PullRequestRef) APIURL() string {
	return fmt.Sprintf("https://api.github.com/repos/%s/%s/pulls/%d", r.Owner, r.Repo, r.Number)
}

// CloneURL returns the HTTPS clone URL of the repository the PR belongs to.
func (r PullRequestRef) CloneURL() string {
	return fmt.Sprintf("https://github.com/%s/%s.git", r.Owner, r.Repo)
}

// String renders the reference in owner/repo#number form.
func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}
