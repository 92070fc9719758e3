// Package main provides the pr-merger command-line tool.
//
// Pr-merger merges a single GitHub pull request once it satisfies the
// configured approval and status-check policy. It fetches the pull request,
// its reviews, and the commit statuses of its head commit, counts APPROVED
// reviews against a required threshold, verifies that every required status
// context reports success, and merges the pull request when the gate
// passes. The full run record is printed and written to a JSON file.
//
// Usage:
//
//	pr-merger --pr https://github.com/kumvijaya/pr-merge-demo/pull/1
//	pr-merger --pr https://github.com/kumvijaya/pr-merge-demo/pull/1 --dry-run
//
// The GitHub token is read from the GITHUB_PASSWORD environment variable.
// PR_MERGE_APPROVAL_COUNT sets the approval threshold (default 2) and
// PR_MERGE_STATUS_LABELS lists the status contexts that must pass.
package main
