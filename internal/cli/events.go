package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andywolf/skillcheck/internal/checker"
	"github.com/andywolf/skillcheck/internal/console"
	"github.com/andywolf/skillcheck/internal/events"
	"github.com/andywolf/skillcheck/internal/skillfile"
)

var eventsCmd = &cobra.Command{
	Use:   "events <file>",
	Short: "Summarize the last run recorded in an events file",
	Long: `Replay the findings of the most recent run appended to a JSONL events
file written by "skillcheck check --events".

The command exits with status 1 when that run had violations, so CI can
gate on a log produced by an earlier step.

Example:
  skillcheck events out/events.jsonl`,
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         showEvents,
}

func init() {
	rootCmd.AddCommand(eventsCmd)
}

func showEvents(cmd *cobra.Command, args []string) error {
	logged, err := events.ReadEvents(args[0])
	if err != nil {
		return err
	}

	run := events.LastRun(logged)
	if len(run) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No events recorded.")
		return nil
	}

	con := console.New(cmd.OutOrStdout())
	con.Printf("Run: %s", run[0].RunID)

	violations, fixups := 0, 0
	for _, e := range events.FilterByType(run, events.EventIssue) {
		issue := skillfile.Issue{Severity: e.Severity, Message: e.Message, Line: e.Line}
		if issue.IsViolation() {
			violations++
		} else {
			fixups++
		}
		con.Issue(e.File, issue)
	}

	files := events.FilterByType(run, events.EventFile)
	skills := 0
	for _, e := range files {
		skills += e.Skills
	}
	rewrites := events.FilterByType(run, events.EventRewrite)
	con.Totals(len(files), skills, violations, fixups, len(rewrites))

	summaries := events.FilterByType(run, events.EventSummary)
	if len(summaries) == 0 {
		con.Printf("Run did not finish.")
	}
	if violations > 0 {
		return checker.ErrViolations
	}
	return nil
}
