/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/josephgoksu/monadgen/internal/config"
	"github.com/josephgoksu/monadgen/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect configuration",
	Long: `Inspect the configuration monadgen resolves from .env files, the config
file, environment variables and flags.`,
}

// configShowCmd shows current configuration
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration with secrets redacted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := requireConfig()
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Fprintf(w, "# %s\n", used)
		}
		return cfg.WriteYAML(w)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the state directory and config search paths",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "state:      %s\n", config.StateDir())
		fmt.Fprintf(w, "crash logs: %s\n", filepath.Join(config.StateDir(), logger.CrashLogDir))
		if logs, err := logger.ListCrashLogs(); err == nil && len(logs) > 0 {
			fmt.Fprintf(w, "            %d report(s), newest %s\n", len(logs), logs[len(logs)-1])
		}
		if dir, err := config.GetGlobalConfigDir(); err == nil {
			fmt.Fprintf(w, "config:     ./%s.yaml, %s\n", config.AppName, dir)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
}
