package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/makt28/updown/internal/config"
	"github.com/makt28/updown/internal/monitor"
	"github.com/makt28/updown/internal/notify"
	"github.com/makt28/updown/internal/storage"
	"github.com/makt28/updown/internal/web"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start monitoring until interrupted",
	RunE:  runMonitor,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runMonitor(cmd *cobra.Command, args []string) error {
	// --- 1. Load Config ---
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// --- 2. Setup Logger ---
	setupLogger(cfg.LogLevel)
	slog.Info("starting updown", "config", configPath, "services", len(cfg.Services), "webhooks", len(cfg.Webhooks))

	// --- 3. History & Hub ---
	keys := make([]string, 0, len(cfg.Services))
	for _, s := range cfg.Services {
		keys = append(keys, s.String())
	}
	hist := storage.NewHistory(keys, storage.DefaultMaxEvents)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dispatcher := notify.NewDispatcher(nil)
	opts := []monitor.Option{
		monitor.WithNotifier(dispatcher),
		monitor.WithRecorder(hist),
		monitor.WithEventSink(hist),
	}

	var hub *web.Hub
	if cfg.Server.BindAddress != "" {
		hub = web.NewHub()
		go hub.Run(ctx)
		opts = append(opts, monitor.WithEventSink(hub))
	}

	// --- 4. Start Monitor ---
	handle := monitor.New(cfg, opts...).Start()

	// --- 5. Status API ---
	stopCh := make(chan struct{})
	srv := startServer(cfg.Server, hist, hub, stopCh)

	// --- 6. Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("received shutdown signal", "signal", sig.String())

	close(stopCh)
	handle.Stop()
	handle.Wait()
	cancel()

	if srv != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("server forced shutdown", "error", err)
		}
	}

	waitWithTimeout(dispatcher.Wait, 10*time.Second)
	slog.Info("updown stopped")
	return nil
}

func startServer(sc config.ServerConfig, hist *storage.History, hub *web.Hub, stopCh <-chan struct{}) *http.Server {
	if sc.BindAddress == "" {
		return nil
	}
	if sc.Username == "" {
		slog.Warn("status API has no authentication", "bind", sc.BindAddress)
	}

	srv := &http.Server{
		Addr:              sc.BindAddress,
		Handler:           web.NewRouter(sc, hist, hub, stopCh),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		slog.Info("status API listening", "address", sc.BindAddress)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()
	return srv
}

// waitWithTimeout runs wait and gives up after d. Pending webhook sends are abandoned.
func waitWithTimeout(wait func(), d time.Duration) {
	done := make(chan struct{})
	go func() {
		wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(d):
		slog.Warn("gave up waiting for pending notifications")
	}
}
