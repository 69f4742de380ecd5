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
	"github.com/user/prflow/internal/analyzer"
	"github.com/user/prflow/internal/config"
	"github.com/user/prflow/internal/query"
	"github.com/user/prflow/internal/runtime"
	"github.com/user/prflow/internal/runtime/tools"
	"github.com/user/prflow/internal/store"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tool server",
	RunE:  runServe,
}

func buildRegistry(cfg *config.Config) (*runtime.Registry, error) {
	events := store.NewFileStore(cfg.Events.Path, cfg.Events.Capacity)
	service := query.NewService(events)

	if err := tools.EnsureDefaultTemplates(cfg.Templates.Dir); err != nil {
		return nil, err
	}

	gitAnalyzer, err := analyzer.New(cfg.Git.WorkDir, time.Duration(cfg.Git.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, fmt.Errorf("create analyzer: %w", err)
	}

	registry := runtime.NewRegistry()
	registry.Register(tools.NewAnalyzeChanges(gitAnalyzer))
	registry.Register(tools.NewListTemplates(cfg.Templates.Dir))
	registry.Register(tools.NewSuggestTemplate(cfg.Templates.Dir))
	registry.Register(tools.NewRecentEvents(service))
	registry.Register(tools.NewWorkflowStatus(service))
	registry.Register(tools.NewWeather())
	registry.Register(tools.NewSentiment())
	registry.Register(tools.NewLetterCounter())
	return registry, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	setupLogging(cfg)

	registry, err := buildRegistry(cfg)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:    cfg.Tools.Addr,
		Handler: runtime.NewServer(registry),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	names := make([]string, 0, len(registry.All()))
	for _, t := range registry.All() {
		names = append(names, t.Name())
	}
	slog.Info("tool server started",
		"addr", cfg.Tools.Addr,
		"events_path", cfg.Events.Path,
		"tools", names,
	)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("tool server: %w", err)
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}
