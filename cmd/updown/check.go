package main

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/spf13/cobra"

	"github.com/makt28/updown/internal/monitor"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe every service once and print the result",
	RunE:  runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Println(errorBox.Render(err.Error()))
		return err
	}

	prober := monitor.NewHTTPProber(nil)
	results := make([]monitor.ProbeResult, len(cfg.Services))

	var wg sync.WaitGroup
	for i, svc := range cfg.Services {
		wg.Add(1)
		go func(i int, target string) {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(commandContext(cmd), cfg.ProbeTimeout)
			defer cancel()
			results[i] = prober.Probe(ctx, target)
		}(i, svc.String())
	}
	wg.Wait()

	fmt.Println(bannerStyle.Render("UPDOWN CHECK"))

	down := 0
	for i, svc := range cfg.Services {
		r := results[i]
		label := healthyStyle.Render("up")
		detail := strconv.Itoa(r.StatusCode)
		if !r.Up {
			down++
			label = unhealthyStyle.Render("down")
			detail = r.Error
		}
		fmt.Printf("  %s  %-6s %s %s\n",
			statusDot(r.Up), label, boldStyle.Render(svc.String()),
			dimStyle.Render(fmt.Sprintf("(%s, %dms)", detail, r.Latency.Milliseconds())))
	}

	if down > 0 {
		fmt.Println(errorBox.Render(fmt.Sprintf("%d of %d services down", down, len(cfg.Services))))
		return fmt.Errorf("%d of %d services down", down, len(cfg.Services))
	}
	fmt.Println(successBox.Render("All services healthy"))
	return nil
}
