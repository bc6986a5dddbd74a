/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/josephgoksu/monadgen/internal/config"
	"github.com/josephgoksu/monadgen/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// version is the application version.
	version = "0.1.0"

	// appConfig and appLogger are set by the root PersistentPreRunE.
	appConfig *config.Config
	appLogger *slog.Logger
)

// GetVersion returns the application version.
func GetVersion() string {
	return version
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "monadgen",
	Short: "monadgen - LLM content generation for Twitter and Substack",
	Long: `monadgen generates audience demographics, aphorisms, writing styles,
About pages and long-form articles with a large language model, and stores
every result as a Markdown and a JSON artifact.

Run it as a CLI, as an HTTP API with 'monadgen serve', or as an MCP server
with 'monadgen mcp'.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		HandleFatalError(userMessage(err), err)
	}
}

func init() {
	rootCmd.Version = version
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./monadgen.yaml or ~/.monadgen/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")
	rootCmd.PersistentFlags().Bool("json", false, "print machine-readable JSON")
	bindRootFlags()
}

// bindRootFlags exposes the persistent flags through viper.
func bindRootFlags() {
	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("verbose", flags.Lookup("verbose"))
	_ = viper.BindPFlag("json", flags.Lookup("json"))
	_ = viper.BindPFlag("logFormat", flags.Lookup("log-format"))
}

// initApp resolves configuration once per invocation and prepares logging
// and crash reporting.
func initApp(cmd *cobra.Command, args []string) error {
	config.LoadDotEnv()
	config.SetDefaults()
	if err := config.BindEnv(); err != nil {
		return err
	}
	used, err := config.ReadConfigFile(cfgFile)
	if err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appConfig = cfg
	appLogger = logger.New(os.Stderr, logger.Options{
		Verbose: cfg.Verbose,
		JSON:    cfg.LogFormat == "json",
	})
	slog.SetDefault(appLogger)

	logger.SetBasePath(config.StateDir())
	logger.SetVersion(version)
	logger.SetCommand(cmd.CommandPath())

	if used != "" {
		appLogger.Debug("config loaded", "file", used)
	}
	return nil
}

// requireConfig guards helpers that run after initApp.
func requireConfig() (*config.Config, error) {
	if appConfig == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return appConfig, nil
}
