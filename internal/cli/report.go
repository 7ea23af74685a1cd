package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/andywolf/skillcheck/internal/checker"
	"github.com/andywolf/skillcheck/internal/gitrepo"
	"github.com/andywolf/skillcheck/internal/report"
	"github.com/andywolf/skillcheck/internal/skillfile"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Check all skill files and generate the report",
	Long: `Check every skill file, then write the self assessment report with its
badge and regenerate the README from its template.

The README template must be a markdown document starting with a "## " heading;
its first $BADGE placeholder is replaced with the badge.

Example:
  skillcheck report
  skillcheck report --preview`,
	SilenceUsage: true,
	RunE:         runReport,
}

var badgeCmd = &cobra.Command{
	Use:   "badge",
	Short: "Print the badge markdown",
	Long: `Print the badge markdown for the current repository.

The repository is taken from badge.repository in the config file, or from
the git remote "origin".`,
	Args: cobra.NoArgs,
	RunE: printBadge,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(badgeCmd)

	reportCmd.Flags().Bool("preview", false, "Render the generated report in the terminal")
}

func runReport(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	c := checker.New(env.root, env.cfg.Skills, env.console)
	env.console.Banner(env.cfg.Title)

	summary, err := c.CheckAll()
	if err != nil {
		return err
	}
	printTotals(env, summary)

	badge, err := resolveBadge(env)
	if err != nil {
		return err
	}

	gen, err := report.NewGenerator()
	if err != nil {
		return err
	}

	doc, err := gen.Report(env.cfg.Title, badge)
	if err != nil {
		return err
	}
	if err := report.WriteFile(env.root, env.cfg.Report.Path, doc); err != nil {
		return err
	}
	env.console.Printf("Report: %s", env.cfg.Report.Path)

	tmplPath := filepath.ToSlash(env.cfg.Report.ReadmeTemplate)
	tmpl, issues, err := checker.LoadFile(env.root, tmplPath)
	if err != nil {
		return err
	}
	for _, issue := range issues {
		env.console.Issue(tmplPath, issue)
	}
	if err := report.WriteFile(env.root, env.cfg.Report.ReadmePath, gen.Readme(tmpl, badge)); err != nil {
		return err
	}
	env.console.Printf("Readme: %s", env.cfg.Report.ReadmePath)

	preview, _ := cmd.Flags().GetBool("preview")
	if preview {
		rendered, err := report.Render(doc, terminalWidth())
		if err != nil {
			return err
		}
		fmt.Print("\n" + rendered)
	}

	if summary.Failed() || skillfile.HasViolations(issues) {
		return checker.ErrViolations
	}
	return nil
}

func printBadge(cmd *cobra.Command, args []string) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}

	badge, err := resolveBadge(env)
	if err != nil {
		return err
	}

	fmt.Println(badge.Markdown())
	return nil
}

// resolveBadge builds the badge, asking git for the repository unless configured.
func resolveBadge(env *runEnv) (report.Badge, error) {
	repository := env.cfg.Badge.Repository
	if repository == "" {
		timeout, err := env.cfg.ExecutionTimeout()
		if err != nil {
			return report.Badge{}, err
		}
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		repository, err = gitrepo.Repository(ctx, env.root)
		if err != nil {
			return report.Badge{}, fmt.Errorf("failed to resolve repository: %w", err)
		}
	}
	return report.NewBadge(env.cfg.Badge, repository), nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 80
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 80
	}
	return width
}
