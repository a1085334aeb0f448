package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitUsageError   = 2
	ExitRuntimeError = 4
)

var rootCmd = &cobra.Command{
	Use:   "tmplwalk SOURCE CONF [CONF...]",
	Short: "Render a directory tree of templates from INI configuration",
	Long: `tmplwalk renders every template under SOURCE with the values of the merged
configuration files, mirroring the directory structure into the output root.
Later configuration files win on conflicting keys. Without --output, templates
are rendered in place.`,
	Args: cobra.MinimumNArgs(2),
	RunE: runRender,
}

// Run executes the root command and returns an exit code.
func Run() int {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}

	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tmplwalk version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "tmplwalk version %s\n", version)
	},
}

func init() {
	addRenderFlags(rootCmd)
	rootCmd.AddCommand(mergeCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func fail(code int, err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	exitCode = code
}
