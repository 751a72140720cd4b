package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/makt28/updown/internal/notify"
)

var notifyMessage string

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Send a test message to every configured webhook",
	RunE:  runNotify,
}

func init() {
	notifyCmd.Flags().StringVarP(&notifyMessage, "message", "m", "updown test notification", "Message text")
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(errorBox.Render(err.Error()))
		return err
	}

	n := notify.NewWebhookNotifier(nil)
	failed := 0
	for _, wh := range cfg.Webhooks {
		ctx, cancel := context.WithTimeout(commandContext(cmd), 10*time.Second)
		err := n.Send(ctx, wh, notifyMessage)
		cancel()

		if err != nil {
			failed++
			fmt.Printf("  %s  %s %s\n", statusDot(false), boldStyle.Render(wh.Host), dimStyle.Render(err.Error()))
			continue
		}
		fmt.Printf("  %s  %s\n", statusDot(true), boldStyle.Render(wh.Host))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d webhooks failed", failed, len(cfg.Webhooks))
	}
	return nil
}
