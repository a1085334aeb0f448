package cli

import (
	"github.com/dshills/tmplwalk/internal/merge"
	"github.com/dshills/tmplwalk/internal/redact"
	"github.com/spf13/cobra"
)

var flagNoRedact bool

var mergeCmd = &cobra.Command{
	Use:   "merge CONF [CONF...]",
	Short: "Print the merged configuration as INI",
	Long: `Merge the configuration files in order, later files winning on conflicting
keys, and print the result. Values that look like secrets are redacted unless
--no-redact is given.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := merge.MergeFiles(args...)
		if err != nil {
			fail(ExitRuntimeError, err)
			return
		}
		if !flagNoRedact {
			cfg = redact.Config(cfg)
		}
		if err := merge.WriteINI(cmd.OutOrStdout(), cfg); err != nil {
			fail(ExitRuntimeError, err)
		}
	},
}

func init() {
	mergeCmd.Flags().BoolVar(&flagNoRedact, "no-redact", false, "Print secret values unmasked")
}
