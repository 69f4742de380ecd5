package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/user/prflow/internal/query"
	"github.com/user/prflow/internal/store"
)

func init() {
	rootCmd.AddCommand(eventsCmd)
	eventsCmd.AddCommand(eventsRecentCmd, eventsStatusCmd)

	eventsRecentCmd.Flags().Int("limit", 10, "maximum number of events to show")
	eventsStatusCmd.Flags().String("workflow", "", "filter to a single workflow name")
}

func queryService() *query.Service {
	cfg := loadConfig()
	return query.NewService(store.NewFileStore(cfg.Events.Path, cfg.Events.Capacity))
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Query the recorded webhook events",
}

var eventsRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent events",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		events, err := queryService().Recent(cmd.Context(), limit)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	},
}

var eventsStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the latest status per workflow",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		workflow, _ := cmd.Flags().GetString("workflow")

		summaries, err := queryService().WorkflowStatus(cmd.Context(), workflow)
		if errors.Is(err, query.ErrNoEvents) {
			fmt.Fprintln(os.Stdout, "No GitHub Actions events received yet.")
			return nil
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summaries)
	},
}
