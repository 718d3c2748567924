// Command lumen is the lumen language toolchain: check a workspace for
// diagnostics, lower a binary target to its serialized executable program,
// and report build fingerprints.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"lumen/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "lumen language compiler",
	Long:  `lumen is a statically-typed compiler core: workspace discovery, parsing, semantic linking, and flow-sensitive type checking.`,
}

func main() {
	rootCmd.Version = version.VersionString()
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics (auto|on|off)")
	rootCmd.PersistentFlags().String("format", "pretty", "diagnostic output format (pretty|json)")
	rootCmd.PersistentFlags().Int("jobs", 0, "max parallel workers for per-file parsing (0=auto)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(lowerCmd)
	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func jobsFlag(cmd *cobra.Command) int {
	n, err := cmd.Root().PersistentFlags().GetInt("jobs")
	if err != nil || n <= 0 {
		return 4
	}
	return n
}

func colorFlag(cmd *cobra.Command) string {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return "auto"
	}
	return mode
}

func formatFlag(cmd *cobra.Command) string {
	f, err := cmd.Root().PersistentFlags().GetString("format")
	if err != nil {
		return "pretty"
	}
	return f
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command) bool {
	switch colorFlag(cmd) {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(os.Stdout)
	}
}
