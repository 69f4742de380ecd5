package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/prflow/internal/store"
	"github.com/user/prflow/internal/webhook"
)

func init() {
	rootCmd.AddCommand(webhookCmd)
}

var webhookCmd = &cobra.Command{
	Use:   "webhook",
	Short: "Start the GitHub webhook receiver",
	RunE:  runWebhook,
}

func runWebhook(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	events := store.NewFileStore(cfg.Events.Path, cfg.Events.Capacity)
	srv := &http.Server{
		Addr:    cfg.Webhook.Addr,
		Handler: webhook.NewServer(events),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	slog.Info("webhook server started",
		"addr", cfg.Webhook.Addr,
		"events_path", cfg.Events.Path,
		"capacity", cfg.Events.Capacity,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("webhook server: %w", err)
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
