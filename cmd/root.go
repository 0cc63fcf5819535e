package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/inovacc/autofetch/internal/application"
	"github.com/inovacc/autofetch/internal/config"
	"github.com/inovacc/autofetch/internal/model"
	"github.com/spf13/cobra"
)

var (
	cfgFile    string
	logLevel   string
	jsonOutput bool

	appConfig model.Config
	logger    = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "Keep local git clones up to date",
	Long: `Autofetch fetches every tracked git repository and fast-forwards the ones
whose branch is behind its upstream. Repositories are the git directories under
the configured projects directory plus any listed explicitly.

It can install itself as a recurring job (crontab on Unix-like systems,
a scheduled task on Windows) or as a native service.`,
	SilenceUsage:      true,
	PersistentPreRunE: initRuntime,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default is <app dir>/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Log in JSON format")
}

func initRuntime(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appConfig = cfg

	level := cfg.LogLevel
	if cmd.Flags().Changed("log-level") {
		level = logLevel
	}

	logger = setupLogger(cmd.ErrOrStderr(), level, jsonOutput || cfg.LogFormat == "json")
	slog.SetDefault(logger)

	return nil
}
