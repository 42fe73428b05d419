package cmd

import (
	"fmt"
	"sort"

	"github.com/naka-gawa/ncu/internal/domain"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Read and write ncu configuration",
	Long: `Reads and writes the global (~/.ncurc, or $XDG_CONFIG_HOME/.ncurc) and
local (.ncu/config) configuration layers. Reads show the merged view, where
local values win, unless --global or --local is given.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a key, keeping every other key of the layer",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		store := newStore(newLogger(cmd))
		if err := store.Update(global, domain.Config{args[0]: args[1]}, ""); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s config: %s\n", layer(global), args[0])
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "Remove a key from a layer",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		global, _ := cmd.Flags().GetBool("global")
		store := newStore(newLogger(cmd))
		cfg, err := store.Load(global, "")
		if err != nil {
			return err
		}
		if _, ok := cfg[args[0]]; !ok {
			return fmt.Errorf("key %q is not set in %s config", args[0], layer(global))
		}
		delete(cfg, args[0])
		if err := store.Write(global, cfg, ""); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %s config\n", args[0], layer(global))
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of a key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig(cmd)
		if err != nil {
			return err
		}
		v, ok := cfg[args[0]]
		if !ok {
			return fmt.Errorf("key %q is not set", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), formatValue(v))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every key and value",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := readConfig(cmd)
		if err != nil {
			return err
		}
		keys := make([]string, 0, len(cfg))
		for k := range cfg {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", k, formatValue(cfg[k]))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configSetCmd, configUnsetCmd, configGetCmd, configListCmd)
	configCmd.PersistentFlags().BoolP("global", "g", false, "Use the global layer")
	configGetCmd.Flags().BoolP("local", "l", false, "Read only the local layer")
	configListCmd.Flags().BoolP("local", "l", false, "Read only the local layer")
}

// readConfig returns one layer when --global or --local is set, otherwise the
// merged view. --global wins when both are given.
func readConfig(cmd *cobra.Command) (domain.Config, error) {
	global, _ := cmd.Flags().GetBool("global")
	local, _ := cmd.Flags().GetBool("local")
	store := newStore(newLogger(cmd))
	switch {
	case global:
		return store.Load(true, "")
	case local:
		return store.Load(false, "")
	default:
		return store.LoadMerged("", "")
	}
}

func layer(global bool) string {
	if global {
		return "global"
	}
	return "local"
}

func formatValue(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprint(v)
}
