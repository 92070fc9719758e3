package merger

import (
	"encoding/json"
	"os"
)

// Record is the aggregate run record, built up as the run progresses and
// written as JSON when it completes. JSON keys match the output file format
// consumed by downstream tooling.
type Record struct {
	Org               string   `json:"org"`
	Repo              string   `json:"repo"`
	PRNumber          int      `json:"pr_number"`
	PRAPIURL          string   `json:"pr_api_url"`
	PRRepoURL         string   `json:"pr_repo_url"`
	SourceBranch      string   `json:"source_branch"`
	TargetBranch      string   `json:"target_branch"`
	AlreadyMerged     bool     `json:"already_merged"`
	Approvals         int      `json:"approvals"`
	RequiredApprovals int      `json:"required_approvals"`
	FailedChecks      []string `json:"failed_checks"`

	// Set from the forge's merge response after a successful merge.
	Merged       bool   `json:"merged,omitempty"`
	MergeSHA     string `json:"sha,omitempty"`
	MergeMessage string `json:"message,omitempty"`

	DryRun bool `json:"dry_run,omitempty"`
}

// WriteFile writes the record as a UTF-8 JSON object to path.
func (r *Record) WriteFile(path string) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
