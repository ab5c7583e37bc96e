package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"desktop-setup/internal/report"
)

// reportCmd prints a report written by an earlier run with --report.
var reportCmd = &cobra.Command{
	Use:   "report <path>",
	Short: "Show the outcome of a previous run from its JSON report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := report.Load(args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		// Header line: when the run ended and under which policy
		state := "finished"
		if rep.InProgress {
			state = "interrupted"
		}
		fmt.Fprintf(out, "Run %s at %s (%s)\n", state, rep.FinishedAt.Local().Format("2006-01-02 15:04:05"), rep.Policy)

		for _, step := range rep.Steps {
			detail := step.Error
			if step.Status == "skipped" {
				detail = step.SkipReason
			}
			fmt.Fprintf(out, "  %-8s %-22s %s\n", step.Status, step.Name, detail)
		}

		fmt.Fprintf(out, "%d completed, %d failed, %d skipped\n", rep.Completed, rep.Failed, rep.Skipped)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}
