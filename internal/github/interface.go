// Package github provides interfaces and implementations for GitHub API operations.
package github

import (
	"context"

	"github.com/google/go-github/v68/github"
)

// API defines the GitHub operations the merge workflow needs.
// This interface enables testing by allowing fake implementations.
type API interface {
	// PullRequest retrieves a pull request by owner, repo, and number.
	PullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error)

	// ListReviews lists the reviews recorded against a pull request.
	ListReviews(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestReview, error)

	// ListStatuses lists the commit statuses for a git ref. For a pull
	// request's head commit this is the resource its statuses_url points at.
	ListStatuses(ctx context.Context, owner, repo, ref string) ([]*github.RepoStatus, error)

	// MergePullRequest merges a pull request with the given commit title and
	// message and returns the forge's merge result.
	MergePullRequest(ctx context.Context, owner, repo string, number int, title, message string) (*github.PullRequestMergeResult, error)
}
