// Package constants defines shared constants for the pr-merger application.
package constants

// Default configuration values
const (
	// DefaultRequiredApprovals is the approval threshold used when
	// PR_MERGE_APPROVAL_COUNT is not set.
	DefaultRequiredApprovals = 2

	// DefaultOutputFile is where the run record is written. The filename
	// is kept byte-for-byte compatible with the tooling that consumes it.
	DefaultOutputFile = "git_merge_ouput.json"

	// GitHubAPIPageSize is the number of items per page for GitHub API requests.
	GitHubAPIPageSize = 100
)

// Environment variables read at startup
const (
	EnvToken         = "GITHUB_PASSWORD"
	EnvApprovalCount = "PR_MERGE_APPROVAL_COUNT"
	EnvStatusLabels  = "PR_MERGE_STATUS_LABELS"
)

// Review states
const (
	ReviewStateApproved         = "APPROVED"
	ReviewStateChangesRequested = "CHANGES_REQUESTED"
	ReviewStateCommented        = "COMMENTED"
)

// Commit status states
const (
	CheckStateSuccess = "success"
	CheckStatePending = "pending"
	CheckStateFailure = "failure"
	CheckStateError   = "error"
)

// Commit title and message sent with every merge request.
const (
	MergeCommitTitle   = "PR merged by PR Utility (Jenkins)"
	MergeCommitMessage = "PR merged by PR Utility (Jenkins) with required checks"
)
