package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dshills/tmplwalk/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage tmplwalk settings",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default settings file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.ConfigPath()
		if err != nil {
			return err
		}

		if _, err := os.Stat(path); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file already exists at %s\n", path)
			return nil
		}

		if err := config.Save(config.Default()); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Config file created at %s\n", path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a settings value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := config.Update(args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", args[0], args[1])
		return nil
	},
}

var flagShowOrigins bool

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	Long: `Show the settings a render would use with no flags given.

With --origins each value is listed with the layer that supplied it:
default, file (the settings file), or env (TMPLWALK_* variables).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, origins, err := config.LoadWithOrigins(nil)
		if err != nil {
			return err
		}

		if flagShowOrigins {
			for _, key := range config.Keys() {
				v, _ := s.Field(key)
				fmt.Fprintf(cmd.OutOrStdout(), "%s = %q (%s)\n", key, v, origins[key])
			}
			return nil
		}

		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configShowCmd)

	configShowCmd.Flags().BoolVar(&flagShowOrigins, "origins", false, "List each value with the layer it came from")
}
