// Package merger orchestrates a single merge run: resolve the pull request,
// evaluate the gating policy, merge when the gate passes, and produce the
// run record.
package merger

import (
	"context"
	"fmt"
	"log"

	"github.com/kumvijaya/pr-merger/internal/config"
	"github.com/kumvijaya/pr-merger/internal/constants"
	"github.com/kumvijaya/pr-merger/internal/gate"
	githubAPI "github.com/kumvijaya/pr-merger/internal/github"
)

// Merger drives the merge workflow for one pull request.
type Merger struct {
	gh  githubAPI.API
	cfg *config.Config
}

// New creates a merger with the provided dependencies.
func New(gh githubAPI.API, cfg *config.Config) *Merger {
	return &Merger{gh: gh, cfg: cfg}
}

// Run processes one pull request URL end to end and returns the run record.
// A record is only produced when the run completes: any parse, fetch,
// policy, or merge failure aborts the run with an error and no record.
//
// When the pull request is already merged, the run stops after the first
// fetch and reports the existing state without evaluating the gate.
func (m *Merger) Run(ctx context.Context, prURL string) (*Record, error) {
	ref, err := githubAPI.ParsePullRequestURL(prURL)
	if err != nil {
		return nil, err
	}

	record := &Record{
		Org:               ref.Owner,
		Repo:              ref.Repo,
		PRNumber:          ref.Number,
		PRAPIURL:          ref.APIURL(),
		PRRepoURL:         ref.CloneURL(),
		RequiredApprovals: m.cfg.RequiredApprovals,
		FailedChecks:      []string{},
		DryRun:            m.cfg.DryRun,
	}

	log.Printf("[MERGER] Fetching %s", ref)
	pr, err := m.gh.PullRequest(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("getting pull request: %w", err)
	}
	record.SourceBranch = pr.GetHead().GetRef()
	record.TargetBranch = pr.GetBase().GetRef()
	record.AlreadyMerged = pr.GetMerged()

	if record.AlreadyMerged {
		log.Printf("[MERGER] %s is already merged, nothing to do", ref)
		return record, nil
	}

	reviews, err := m.gh.ListReviews(ctx, ref.Owner, ref.Repo, ref.Number)
	if err != nil {
		return nil, fmt.Errorf("listing reviews: %w", err)
	}
	record.Approvals = gate.CountApprovals(reviews)

	statuses, err := m.gh.ListStatuses(ctx, ref.Owner, ref.Repo, pr.GetHead().GetSHA())
	if err != nil {
		return nil, fmt.Errorf("listing statuses: %w", err)
	}
	record.FailedChecks = gate.FailedChecks(statuses, m.cfg.RequiredLabels)

	if err := gate.Evaluate(record.Approvals, record.RequiredApprovals, record.FailedChecks); err != nil {
		return nil, err
	}

	if m.cfg.DryRun {
		log.Printf("[MERGER] Dry run: %s passed the gate, skipping merge", ref)
		return record, nil
	}

	log.Printf("[MERGER] Merging %s", ref)
	result, err := m.gh.MergePullRequest(ctx, ref.Owner, ref.Repo, ref.Number,
		constants.MergeCommitTitle, constants.MergeCommitMessage)
	if err != nil {
		return nil, fmt.Errorf("merging pull request: %w", err)
	}
	record.Merged = result.GetMerged()
	record.MergeSHA = result.GetSHA()
	record.MergeMessage = result.GetMessage()

	return record, nil
}
