// Package cmd wires the pr-merger command-line interface.
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/kumvijaya/pr-merger/internal/config"
	githubAPI "github.com/kumvijaya/pr-merger/internal/github"
	"github.com/kumvijaya/pr-merger/internal/merger"
	"github.com/kumvijaya/pr-merger/internal/ui"
)

var (
	prURL     string
	dryRun    bool
	output    string
	approvals int
	labels    string
)

// rootCmd is the one and only command: merge a single pull request.
var rootCmd = &cobra.Command{
	Use:   "pr-merger",
	Short: "Merge a GitHub pull request once it passes approval and check policy",
	Long: `Pr-merger fetches a pull request, its reviews, and the commit statuses of
its head commit, then merges it when the approval count meets the threshold
and every required status context reports success.

The GitHub token is read from GITHUB_PASSWORD. PR_MERGE_APPROVAL_COUNT and
PR_MERGE_STATUS_LABELS tune the gate; flags override both. The run record
is printed and written as JSON to the output file.`,
	RunE: run,
}

func init() {
	rootCmd.Flags().StringVarP(&prURL, "pr", "p", "",
		"pull request URL, e.g. https://github.com/kumvijaya/pr-merge-demo/pull/1")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "evaluate the gate without merging")
	rootCmd.Flags().StringVarP(&output, "output", "o", "", "path of the JSON run record")
	rootCmd.Flags().IntVar(&approvals, "approvals", 0, "required approval count (overrides PR_MERGE_APPROVAL_COUNT)")
	rootCmd.Flags().StringVar(&labels, "labels", "",
		"comma-separated required status contexts (overrides PR_MERGE_STATUS_LABELS)")

	if err := rootCmd.MarkFlagRequired("pr"); err != nil {
		panic(err)
	}
}

// Execute runs the root command. This is called by main.main().
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	cfg.DryRun = dryRun
	if output != "" {
		cfg.OutputPath = output
	}
	if cmd.Flags().Changed("approvals") {
		cfg.RequiredApprovals = approvals
	}
	if cmd.Flags().Changed("labels") {
		cfg.RequiredLabels = config.SplitLabels(labels)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := githubAPI.NewClient(cmd.Context(), cfg.Token)
	if err != nil {
		return err
	}

	record, err := merger.New(client, cfg).Run(cmd.Context(), prURL)
	if err != nil {
		return err
	}

	fmt.Print(ui.RenderRecord(record))

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(data))

	if err := record.WriteFile(cfg.OutputPath); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutputPath, err)
	}
	log.Printf("[MERGER] Run record written to %s", cfg.OutputPath)
	return nil
}
