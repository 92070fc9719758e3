package merger

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-github/v68/github"

	"github.com/kumvijaya/pr-merger/internal/config"
	"github.com/kumvijaya/pr-merger/internal/constants"
	apperrors "github.com/kumvijaya/pr-merger/internal/errors"
)

// fakeAPI is an in-memory github.API implementation for orchestrator tests.
type fakeAPI struct {
	pr          *github.PullRequest
	reviews     []*github.PullRequestReview
	statuses    []*github.RepoStatus
	mergeResult *github.PullRequestMergeResult

	prCalls     int
	reviewCalls int
	statusCalls int
	mergeCalls  int

	mergeTitle   string
	mergeMessage string
}

func (f *fakeAPI) PullRequest(_ context.Context, _, _ string, _ int) (*github.PullRequest, error) {
	f.prCalls++
	return f.pr, nil
}

func (f *fakeAPI) ListReviews(_ context.Context, _, _ string, _ int) ([]*github.PullRequestReview, error) {
	f.reviewCalls++
	return f.reviews, nil
}

func (f *fakeAPI) ListStatuses(_ context.Context, _, _, _ string) ([]*github.RepoStatus, error) {
	f.statusCalls++
	return f.statuses, nil
}

func (f *fakeAPI) MergePullRequest(_ context.Context, _, _ string, _ int, title, message string) (*github.PullRequestMergeResult, error) {
	f.mergeCalls++
	f.mergeTitle = title
	f.mergeMessage = message
	return f.mergeResult, nil
}

func openPR() *github.PullRequest {
	return &github.PullRequest{
		Merged: github.Bool(false),
		Head:   &github.PullRequestBranch{Ref: github.String("feature"), SHA: github.String("abc123")},
		Base:   &github.PullRequestBranch{Ref: github.String("main")},
	}
}

func approvedReviews(n int) []*github.PullRequestReview {
	var reviews []*github.PullRequestReview
	for i := 0; i < n; i++ {
		reviews = append(reviews, &github.PullRequestReview{State: github.String("APPROVED")})
	}
	return reviews
}

const testPRURL = "https://github.com/kumvijaya/pr-merge-demo/pull/1"

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Token = "fake-token"
	cfg.RequiredLabels = []string{"ci"}
	return cfg
}

func TestRunMergesWhenGatePasses(t *testing.T) {
	fake := &fakeAPI{
		pr:       openPR(),
		reviews:  approvedReviews(2),
		statuses: []*github.RepoStatus{{Context: github.String("ci"), State: github.String("success")}},
		mergeResult: &github.PullRequestMergeResult{
			SHA:     github.String("deadbeef"),
			Merged:  github.Bool(true),
			Message: github.String("Pull Request successfully merged"),
		},
	}

	record, err := New(fake, testConfig()).Run(context.Background(), testPRURL)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if fake.mergeCalls != 1 {
		t.Errorf("merge calls = %v, want 1", fake.mergeCalls)
	}
	if fake.mergeTitle != constants.MergeCommitTitle {
		t.Errorf("merge title = %q, want %q", fake.mergeTitle, constants.MergeCommitTitle)
	}
	if fake.mergeMessage != constants.MergeCommitMessage {
		t.Errorf("merge message = %q, want %q", fake.mergeMessage, constants.MergeCommitMessage)
	}

	if record.Org != "kumvijaya" || record.Repo != "pr-merge-demo" || record.PRNumber != 1 {
		t.Errorf("record ref = %s/%s#%d, want kumvijaya/pr-merge-demo#1", record.Org, record.Repo, record.PRNumber)
	}
	if record.PRAPIURL != "https://api.github.com/repos/kumvijaya/pr-merge-demo/pulls/1" {
		t.Errorf("pr_api_url = %v", record.PRAPIURL)
	}
	if record.PRRepoURL != "https://github.com/kumvijaya/pr-merge-demo.git" {
		t.Errorf("pr_repo_url = %v", record.PRRepoURL)
	}
	if record.SourceBranch != "feature" || record.TargetBranch != "main" {
		t.Errorf("branches = %v -> %v, want feature -> main", record.SourceBranch, record.TargetBranch)
	}
	if record.Approvals != 2 || record.RequiredApprovals != 2 {
		t.Errorf("approvals = %d/%d, want 2/2", record.Approvals, record.RequiredApprovals)
	}
	if !record.Merged || record.MergeSHA != "deadbeef" {
		t.Errorf("merge result = %v/%v, want true/deadbeef", record.Merged, record.MergeSHA)
	}
}

func TestRunAlreadyMerged(t *testing.T) {
	pr := openPR()
	pr.Merged = github.Bool(true)
	fake := &fakeAPI{pr: pr}

	record, err := New(fake, testConfig()).Run(context.Background(), testPRURL)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if !record.AlreadyMerged {
		t.Error("already_merged = false, want true")
	}
	if record.Merged {
		t.Error("merged = true, want false for an already-merged PR")
	}
	if fake.reviewCalls != 0 || fake.statusCalls != 0 || fake.mergeCalls != 0 {
		t.Errorf("calls after merged PR = reviews %d, statuses %d, merges %d, want all 0",
			fake.reviewCalls, fake.statusCalls, fake.mergeCalls)
	}
}

func TestRunApprovalShortfall(t *testing.T) {
	fake := &fakeAPI{
		pr:       openPR(),
		reviews:  approvedReviews(1),
		statuses: []*github.RepoStatus{{Context: github.String("ci"), State: github.String("success")}},
	}

	_, err := New(fake, testConfig()).Run(context.Background(), testPRURL)
	var shortfall *apperrors.ApprovalShortfallError
	if !errors.As(err, &shortfall) {
		t.Fatalf("Run() error = %T (%v), want *ApprovalShortfallError", err, err)
	}
	if shortfall.Approvals != 1 || shortfall.Required != 2 {
		t.Errorf("shortfall = %d/%d, want 1/2", shortfall.Approvals, shortfall.Required)
	}
	if fake.mergeCalls != 0 {
		t.Errorf("merge calls = %v, want 0", fake.mergeCalls)
	}
}

func TestRunFailedChecks(t *testing.T) {
	fake := &fakeAPI{
		pr:       openPR(),
		reviews:  approvedReviews(2),
		statuses: []*github.RepoStatus{{Context: github.String("ci"), State: github.String("failure")}},
	}

	_, err := New(fake, testConfig()).Run(context.Background(), testPRURL)
	var failed *apperrors.FailedChecksError
	if !errors.As(err, &failed) {
		t.Fatalf("Run() error = %T (%v), want *FailedChecksError", err, err)
	}
	if len(failed.Checks) != 1 || failed.Checks[0] != "ci" {
		t.Errorf("failed.Checks = %v, want [ci]", failed.Checks)
	}
	if fake.mergeCalls != 0 {
		t.Errorf("merge calls = %v, want 0", fake.mergeCalls)
	}
}

func TestRunMissingRequiredCheck(t *testing.T) {
	fake := &fakeAPI{
		pr:      openPR(),
		reviews: approvedReviews(2),
		// No status reported for the required "ci" context at all.
		statuses: []*github.RepoStatus{{Context: github.String("lint"), State: github.String("success")}},
	}

	_, err := New(fake, testConfig()).Run(context.Background(), testPRURL)
	var failed *apperrors.FailedChecksError
	if !errors.As(err, &failed) {
		t.Fatalf("Run() error = %T (%v), want *FailedChecksError", err, err)
	}
	if len(failed.Checks) != 1 || failed.Checks[0] != "ci (missing)" {
		t.Errorf("failed.Checks = %v, want [ci (missing)]", failed.Checks)
	}
}

func TestRunDryRun(t *testing.T) {
	fake := &fakeAPI{
		pr:       openPR(),
		reviews:  approvedReviews(2),
		statuses: []*github.RepoStatus{{Context: github.String("ci"), State: github.String("success")}},
	}
	cfg := testConfig()
	cfg.DryRun = true

	record, err := New(fake, cfg).Run(context.Background(), testPRURL)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if fake.mergeCalls != 0 {
		t.Errorf("merge calls = %v, want 0 in dry-run mode", fake.mergeCalls)
	}
	if record.Merged {
		t.Error("merged = true, want false in dry-run mode")
	}
	if !record.DryRun {
		t.Error("dry_run = false, want true")
	}
}

func TestRunInvalidURL(t *testing.T) {
	fake := &fakeAPI{}

	_, err := New(fake, testConfig()).Run(context.Background(), "https://github.com/kumvijaya")
	var validation *apperrors.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Run() error = %T (%v), want *ValidationError", err, err)
	}
	if fake.prCalls != 0 {
		t.Errorf("pr calls = %v, want 0 for an invalid URL", fake.prCalls)
	}
}

func TestRecordWriteFile(t *testing.T) {
	record := &Record{
		Org:               "kumvijaya",
		Repo:              "pr-merge-demo",
		PRNumber:          1,
		PRAPIURL:          "https://api.github.com/repos/kumvijaya/pr-merge-demo/pulls/1",
		PRRepoURL:         "https://github.com/kumvijaya/pr-merge-demo.git",
		SourceBranch:      "feature",
		TargetBranch:      "main",
		Approvals:         2,
		RequiredApprovals: 2,
		FailedChecks:      []string{},
		Merged:            true,
		MergeSHA:          "deadbeef",
		MergeMessage:      "Pull Request successfully merged",
	}

	path := filepath.Join(t.TempDir(), "git_merge_ouput.json")
	if err := record.WriteFile(path); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if got["org"] != "kumvijaya" || got["pr_number"] != float64(1) {
		t.Errorf("org/pr_number = %v/%v, want kumvijaya/1", got["org"], got["pr_number"])
	}
	if got["sha"] != "deadbeef" {
		t.Errorf("sha = %v, want deadbeef", got["sha"])
	}
	if _, ok := got["failed_checks"]; !ok {
		t.Error("failed_checks key missing from output")
	}
}
