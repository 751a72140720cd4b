package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/makt28/updown/internal/config"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "updown",
	Short: "Minimal uptime monitor with chat webhook notifications",
	Long: `updown probes a list of HTTP(S) endpoints on a fixed interval and posts
to Microsoft Teams and/or Slack webhooks whenever a service goes down or
comes back up.`,
	SilenceUsage: true,
}

func init() {
	defaultPath := os.Getenv("UPDOWN_CONFIG")
	if defaultPath == "" {
		defaultPath = "updown.yaml"
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultPath, "Path to config file (.yaml, .yml or .json)")
}

// loadConfig loads and validates the config named by --config.
func loadConfig() (config.Config, error) {
	return config.LoadAndValidate(configPath)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
