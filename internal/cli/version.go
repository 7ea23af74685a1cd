package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/andywolf/skillcheck/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the skillcheck version with its commit and build date.

Use --short for the bare version (handy in CI badges), or the global
--verbose flag for platform details.`,
	Args: cobra.NoArgs,
	RunE: printVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().Bool("short", false, "Print only the version number")
}

func printVersion(cmd *cobra.Command, args []string) error {
	short, _ := cmd.Flags().GetBool("short")
	switch {
	case short:
		fmt.Fprintln(cmd.OutOrStdout(), version.Short())
	case viper.GetBool("verbose"):
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	default:
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	}
	return nil
}
