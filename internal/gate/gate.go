// Package gate implements the merge gating policy: a pull request may merge
// only when it has enough approving reviews and every required status
// context reports success.
package gate

import (
	"github.com/google/go-github/v68/github"

	"github.com/kumvijaya/pr-merger/internal/constants"
	"github.com/kumvijaya/pr-merger/internal/errors"
)

// CountApprovals returns the number of reviews in the APPROVED state.
// Review states are matched exactly; COMMENTED and CHANGES_REQUESTED
// reviews do not count toward the threshold.
func CountApprovals(reviews []*github.PullRequestReview) int {
	count := 0
	for _, review := range reviews {
		if review.GetState() == constants.ReviewStateApproved {
			count++
		}
	}
	return count
}

// FailedChecks returns the required status contexts that are not passing.
// GitHub lists statuses newest first, so the first status seen for a
// context is the one that counts. A required context with no status at all
// is reported as failed: earlier tooling silently passed these, which
// defeats the point of requiring them.
func FailedChecks(statuses []*github.RepoStatus, required []string) []string {
	latest := make(map[string]string, len(statuses))
	for _, s := range statuses {
		if _, seen := latest[s.GetContext()]; !seen {
			latest[s.GetContext()] = s.GetState()
		}
	}

	var failed []string
	for _, label := range required {
		state, ok := latest[label]
		switch {
		case !ok:
			failed = append(failed, label+" (missing)")
		case state != constants.CheckStateSuccess:
			failed = append(failed, label)
		}
	}
	return failed
}

// Evaluate applies the gating policy. It returns nil when the pull request
// may merge, an ApprovalShortfallError when approvals are below the
// threshold, or a FailedChecksError when any required check is not passing.
func Evaluate(approvals, requiredApprovals int, failedChecks []string) error {
	if approvals < requiredApprovals {
		return &errors.ApprovalShortfallError{Approvals: approvals, Required: requiredApprovals}
	}
	if len(failedChecks) > 0 {
		return &errors.FailedChecksError{Checks: failedChecks}
	}
	return nil
}
