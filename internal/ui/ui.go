// Package ui renders the run record for terminal output.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kumvijaya/pr-merger/internal/merger"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF00")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// RenderRecord renders a human-readable summary of a completed run.
func RenderRecord(r *merger.Record) string {
	ref := fmt.Sprintf("%s/%s#%d", r.Org, r.Repo, r.PRNumber)

	var headline string
	switch {
	case r.AlreadyMerged:
		headline = warnStyle.Render(fmt.Sprintf("%s was already merged", ref))
	case r.DryRun:
		headline = warnStyle.Render(fmt.Sprintf("%s passed the gate (dry run, not merged)", ref))
	default:
		headline = successStyle.Render(fmt.Sprintf("Merged %s", ref))
	}

	var b strings.Builder
	b.WriteString(headline + "\n")
	row(&b, "source", r.SourceBranch)
	row(&b, "target", r.TargetBranch)
	row(&b, "approvals", fmt.Sprintf("%d of %d required", r.Approvals, r.RequiredApprovals))
	if len(r.FailedChecks) > 0 {
		row(&b, "failed checks", strings.Join(r.FailedChecks, ", "))
	}
	if r.MergeSHA != "" {
		row(&b, "merge sha", r.MergeSHA)
	}
	return b.String()
}

func row(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "  %s %s\n", labelStyle.Render(label+":"), value)
}
