package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"memberlink/config"
)

var configFlag string
var logLevelFlag string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "memberlink",
		Short: "Run member-linking scenarios",
		Long: `memberlink drives the member-linking core from YAML scenario files.

A scenario declares targets and steps that write through handles, change
targets directly, check mixed content and walk the undo history.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "configuration file overriding the scenario configuration")
	cmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// loadConfig returns the configuration from --config, or base when the flag is unset.
func loadConfig(base config.Config) (config.Config, error) {
	cfg := base
	if configFlag != "" {
		loaded, err := config.LoadFile(configFlag)
		if err != nil {
			return config.Config{}, err
		}

		cfg = loaded
	}

	if logLevelFlag != "" {
		cfg.LogLevel = logLevelFlag
		if err := cfg.Validate(); err != nil {
			return config.Config{}, err
		}
	}

	return cfg.WithDefaults(), nil
}

func newLogger(cmd *cobra.Command, cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}
