package github

import (
	"context"
	"log"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/kumvijaya/pr-merger/internal/constants"
	"github.com/kumvijaya/pr-merger/internal/errors"
)

// Client implements the API interface against the GitHub REST API.
type Client struct {
	client *github.Client
}

// NewClient creates a client authenticated with the supplied token. The
// token is applied as a static bearer header on every request; one client
// is shared for the whole run.
func NewClient(ctx context.Context, token string) (*Client, error) {
	if token == "" {
		return nil, errors.ErrMissingCredential
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	tc := oauth2.NewClient(ctx, ts)

	return &Client{client: github.NewClient(tc)}, nil
}

// ensure Client implements API interface.
var _ API = (*Client)(nil)

// PullRequest retrieves a pull request by owner, repo, and number.
func (c *Client) PullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, resp, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, apiError(resp, err)
	}
	return pr, nil
}

// ListReviews lists the reviews recorded against a pull request. A single
// page is fetched; the tool does not paginate review lists.
func (c *Client) ListReviews(ctx context.Context, owner, repo string, number int) ([]*github.PullRequestReview, error) {
	opt := &github.ListOptions{PerPage: constants.GitHubAPIPageSize}
	reviews, resp, err := c.client.PullRequests.ListReviews(ctx, owner, repo, number, opt)
	if err != nil {
		return nil, apiError(resp, err)
	}
	log.Printf("[GITHUB] Found %d reviews for %s/%s#%d", len(reviews), owner, repo, number)
	return reviews, nil
}

// ListStatuses lists the commit statuses for a git ref, newest first.
func (c *Client) ListStatuses(ctx context.Context, owner, repo, ref string) ([]*github.RepoStatus, error) {
	opt := &github.ListOptions{PerPage: constants.GitHubAPIPageSize}
	statuses, resp, err := c.client.Repositories.ListStatuses(ctx, owner, repo, ref, opt)
	if err != nil {
		return nil, apiError(resp, err)
	}
	log.Printf("[GITHUB] Found %d statuses for %s/%s@%s", len(statuses), owner, repo, ref)
	return statuses, nil
}

// MergePullRequest merges a pull request with the given commit title and
// message and returns the forge's merge result.
func (c *Client) MergePullRequest(ctx context.Context, owner, repo string, number int, title, message string) (*github.PullRequestMergeResult, error) {
	opts := &github.PullRequestOptions{CommitTitle: title}
	result, resp, err := c.client.PullRequests.Merge(ctx, owner, repo, number, message, opts)
	if err != nil {
		return nil, apiError(resp, err)
	}
	return result, nil
}

// apiError maps a go-github error onto the run's APIError taxonomy,
// preserving the request URL, status code, and response body. Every
// non-success status is fatal for the run; nothing is retried.
func apiError(resp *github.Response, err error) error {
	apiErr := &errors.APIError{Err: err}

	if ghErr, ok := err.(*github.ErrorResponse); ok && ghErr.Response != nil {
		apiErr.StatusCode = ghErr.Response.StatusCode
		apiErr.Body = ghErr.Message
		if ghErr.Response.Request != nil {
			apiErr.URL = ghErr.Response.Request.URL.String()
		}
		return apiErr
	}

	if resp != nil {
		apiErr.StatusCode = resp.StatusCode
		if resp.Request != nil {
			apiErr.URL = resp.Request.URL.String()
		}
	}
	return apiErr
}
