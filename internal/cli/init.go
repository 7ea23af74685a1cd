package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/andywolf/skillcheck/internal/cli/wizard"
	"github.com/andywolf/skillcheck/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize project configuration",
	Long: `Initialize skillcheck configuration for the current repository.

This creates a ` + config.FileName + ` file with the default settings that you
can customize.

Example:
  skillcheck init
  skillcheck init --interactive
  skillcheck init --skills-dir docs/skills --repo org/repo`,
	RunE: initProject,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().String("title", "", "Report title")
	initCmd.Flags().String("skills-dir", "", "Skills directory relative to the repository root")
	initCmd.Flags().String("repo", "", "Badge repository (org/repo)")
	initCmd.Flags().Bool("interactive", false, "Prompt for configuration values")
	initCmd.Flags().Bool("force", false, "Overwrite existing config")
}

func initProject(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		root, err = os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}
	}
	configPath := filepath.Join(root, config.FileName)

	force, _ := cmd.Flags().GetBool("force")
	interactive, _ := cmd.Flags().GetBool("interactive")
	tty := term.IsTerminal(int(os.Stdin.Fd()))

	if _, err := os.Stat(configPath); err == nil && !force {
		if !tty {
			return fmt.Errorf("config file already exists at %s (use --force to overwrite)", configPath)
		}
		confirmed, err := wizard.ConfirmOverwrite(configPath)
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Init cancelled.")
			return nil
		}
	}

	cfg := config.Default()
	if v, _ := cmd.Flags().GetString("title"); v != "" {
		cfg.Title = v
	}
	if v, _ := cmd.Flags().GetString("skills-dir"); v != "" {
		cfg.Skills.Dir = v
	}
	if v, _ := cmd.Flags().GetString("repo"); v != "" {
		cfg.Badge.Repository = v
	}

	if interactive && tty {
		cfg, err = wizard.PromptConfig(cfg)
		if err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := `# skillcheck configuration
# Paths are relative to the repository root.

`

	if err := os.WriteFile(configPath, append([]byte(header), data...), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Created %s\n\n", configPath)
	fmt.Println("Next steps:")
	fmt.Printf("  1. Put skill files in %s/\n", cfg.Skills.Dir)
	fmt.Println("  2. Run 'skillcheck check' to validate them")
	fmt.Println("  3. Run 'skillcheck report' to generate the report and README")

	return nil
}
