package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/user/prflow/internal/analyzer"
	"github.com/user/prflow/internal/runtime"
)

// AnalyzeChanges reports the change-set between the working tree's head
// and a base branch.
type AnalyzeChanges struct {
	analyzer *analyzer.Analyzer
}

// NewAnalyzeChanges creates the tool over the given analyzer.
func NewAnalyzeChanges(a *analyzer.Analyzer) *AnalyzeChanges {
	return &AnalyzeChanges{analyzer: a}
}

func (t *AnalyzeChanges) Name() string { return "analyze_file_changes" }
func (t *AnalyzeChanges) Description() string {
	return "Get the full diff and list of changed files in the current git repository"
}
func (t *AnalyzeChanges) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"base_branch": {"type": "string", "description": "Base branch to compare against (default: main)"},
			"include_diff": {"type": "boolean", "description": "Include the full diff content (default: true)"},
			"max_diff_lines": {"type": "integer", "description": "Maximum number of diff lines to include (default: 500)"}
		}
	}`)
}

func (t *AnalyzeChanges) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	params := struct {
		BaseBranch   string `json:"base_branch"`
		IncludeDiff  *bool  `json:"include_diff"`
		MaxDiffLines int    `json:"max_diff_lines"`
	}{BaseBranch: "main", MaxDiffLines: 500}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return "", runtime.Errorf(400, "parse args: %v", err)
		}
	}
	includeDiff := params.IncludeDiff == nil || *params.IncludeDiff
	if params.MaxDiffLines <= 0 {
		params.MaxDiffLines = 500
	}

	result, err := t.analyzer.Analyze(ctx, params.BaseBranch, includeDiff, params.MaxDiffLines)
	if err != nil {
		var gitErr *analyzer.GitError
		if errors.As(err, &gitErr) {
			return "", runtime.Errorf(500, "Git error: %s", gitErr.Stderr)
		}
		return "", fmt.Errorf("analyze changes against %s: %w", params.BaseBranch, err)
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal analysis: %w", err)
	}
	return string(data), nil
}
