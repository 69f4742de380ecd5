package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/prflow/internal/analyzer"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().String("base", "", "base branch to compare against (default from config)")
	analyzeCmd.Flags().Bool("no-diff", false, "omit the full diff content")
	analyzeCmd.Flags().Int("max-diff-lines", 500, "maximum number of diff lines to include")
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze working-tree changes against a base branch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()
		setupLogging(cfg)

		base, _ := cmd.Flags().GetString("base")
		if base == "" {
			base = cfg.Git.BaseBranch
		}
		noDiff, _ := cmd.Flags().GetBool("no-diff")
		maxLines, _ := cmd.Flags().GetInt("max-diff-lines")

		a, err := analyzer.New(cfg.Git.WorkDir, time.Duration(cfg.Git.TimeoutSeconds)*time.Second)
		if err != nil {
			return fmt.Errorf("create analyzer: %w", err)
		}

		result, err := a.Analyze(cmd.Context(), base, !noDiff, maxLines)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	},
}
