package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config file and print the normalized result",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(errorBox.Render(err.Error()))
		return err
	}

	fmt.Println(kv("Interval", cfg.Interval.String()))
	fmt.Println(kv("Probe timeout", cfg.ProbeTimeout.String()))
	fmt.Println(kv("Up message", cfg.UpMessage))
	fmt.Println(kv("Down message", cfg.DownMessage))
	fmt.Println(kv("Log level", cfg.LogLevel))

	hosts := make([]string, 0, len(cfg.Webhooks))
	for _, wh := range cfg.Webhooks {
		hosts = append(hosts, wh.Host)
	}
	fmt.Println(kv("Webhooks", strings.Join(hosts, ", ")))

	if cfg.Server.BindAddress != "" {
		auth := "none"
		if cfg.Server.Username != "" {
			auth = "basic (" + cfg.Server.Username + ")"
		}
		fmt.Println(kv("Status API", cfg.Server.BindAddress+", auth: "+auth))
	}

	fmt.Println(kv("Services", fmt.Sprintf("%d", len(cfg.Services))))
	for _, s := range cfg.Services {
		fmt.Println("  " + dimStyle.Render("-") + " " + s.String())
	}

	fmt.Println(successBox.Render("Config is valid"))
	return nil
}
