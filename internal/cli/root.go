package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andywolf/skillcheck/internal/config"
	"github.com/andywolf/skillcheck/internal/gitrepo"
	"github.com/andywolf/skillcheck/internal/version"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "skillcheck",
	Short: "skillcheck - Validate and repair skill inventory markdown files",
	Long: `skillcheck validates the skill inventory files of a self assessment
repository, rewrites them into canonical form and generates the report badge.

Each skill file is a markdown document with one heading, top-level section
bullets and nested skill bullets:

  ## Heading

  - Section
    - Skill

Example:
  skillcheck check
  skillcheck report`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Version = version.Short()
	rootCmd.SetVersionTemplate("{{.Name}} {{.Version}}\n")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is <root>/"+config.FileName+")")
	rootCmd.PersistentFlags().String("root", "", "repository root (default is the enclosing git repository)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable verbose output")
	bindFlags()
}

func bindFlags() {
	_ = viper.BindPFlag("root", rootCmd.PersistentFlags().Lookup("root"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error getting working directory:", err)
			os.Exit(1)
		}

		if root, err := resolveRoot(); err == nil {
			viper.AddConfigPath(root)
		}
		viper.AddConfigPath(cwd)
		viper.SetConfigType("yaml")
		viper.SetConfigName(strings.TrimSuffix(config.FileName, ".yaml"))
	}

	config.SetupEnv()

	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}
}

// resolveRoot returns the --root flag as an absolute path, or the enclosing
// git repository of the working directory.
func resolveRoot() (string, error) {
	if root := viper.GetString("root"); root != "" {
		abs, err := filepath.Abs(root)
		if err != nil {
			return "", fmt.Errorf("failed to resolve root: %w", err)
		}
		return abs, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return gitrepo.FindRoot(cwd)
}
