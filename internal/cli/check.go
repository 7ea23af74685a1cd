package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andywolf/skillcheck/internal/checker"
	"github.com/andywolf/skillcheck/internal/events"
)

var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Validate and fix skill files",
	Long: `Validate skill files and rewrite them into canonical form.

Without arguments, every file in the skills directory is checked. Fixups
(line endings, stray blank lines, duplicate skills, missing final newline)
are repaired in place. Structural violations are reported and make the
command exit with status 1.

Example:
  skillcheck check
  skillcheck check Skills/JavaScript.md --dry-run
  skillcheck check --watch`,
	SilenceUsage: true,
	RunE:         runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().Bool("dry-run", false, "Report fixups without rewriting files")
	checkCmd.Flags().Bool("watch", false, "Re-check files when they change")
	checkCmd.Flags().String("events", "", "Append JSONL check events to this file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	watch, _ := cmd.Flags().GetBool("watch")
	eventsPath, _ := cmd.Flags().GetString("events")

	opts := []checker.Option{checker.WithDryRun(dryRun)}
	if eventsPath != "" {
		sink, err := events.NewFileSink(eventsPath)
		if err != nil {
			return err
		}
		defer func() { _ = sink.Close() }()
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Recording events to:", sink.Path())
		}
		opts = append(opts, checker.WithSink(sink, events.NewRunID()))
	}

	c := checker.New(env.root, env.cfg.Skills, env.console, opts...)
	env.console.Banner(env.cfg.Title)

	var summary *checker.Summary
	if len(args) > 0 {
		files, err := relativeFiles(env.root, args)
		if err != nil {
			return err
		}
		summary, err = c.CheckFiles(files)
		if err != nil {
			return err
		}
	} else {
		summary, err = c.CheckAll()
		if err != nil {
			return err
		}
	}
	printTotals(env, summary)

	if watch {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		env.console.Printf("\nWatching %s for changes (Ctrl+C to stop)", c.SkillsDir())
		return c.Watch(ctx, nil)
	}

	if summary.Failed() {
		return checker.ErrViolations
	}
	return nil
}

func printTotals(env *runEnv, summary *checker.Summary) {
	env.console.Totals(len(summary.Files), summary.Skills(), summary.Violations(), summary.Fixups(),
		len(summary.Rewritten()))
}

