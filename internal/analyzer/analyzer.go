// internal/analyzer/analyzer.go
package analyzer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/pkoukk/tiktoken-go"
	"golang.org/x/sync/errgroup"
)

// DefaultTimeout bounds each git invocation so a hung git process does
// not block the caller forever.
const DefaultTimeout = 30 * time.Second

// GitError reports a failed git invocation, carrying the tool's stderr.
type GitError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *GitError) Error() string {
	return fmt.Sprintf("git %s: %v: %s", strings.Join(e.Args, " "), e.Err, strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error { return e.Err }

// Result is the transient, request-scoped analysis of the working tree
// against a base branch.
type Result struct {
	BaseBranch     string `json:"base_branch"`
	FilesChanged   string `json:"files_changed"`
	Statistics     string `json:"statistics"`
	Commits        string `json:"commits"`
	Diff           string `json:"diff"`
	Truncated      bool   `json:"truncated"`
	TotalDiffLines int    `json:"total_diff_lines"`
	DiffTokens     int    `json:"diff_tokens"`
}

type runFunc func(ctx context.Context, dir string, args ...string) (string, error)

// Analyzer assembles change-set analyses by shelling out to git in a
// fixed working directory.
type Analyzer struct {
	dir       string
	timeout   time.Duration
	run       runFunc
	tokenizer *tiktoken.Tiktoken
}

// New creates an analyzer rooted at dir. timeout <= 0 selects
// DefaultTimeout.
func New(dir string, timeout time.Duration) (*Analyzer, error) {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		return nil, fmt.Errorf("get tokenizer: %w", err)
	}
	return &Analyzer{
		dir:       dir,
		timeout:   timeout,
		run:       runGit,
		tokenizer: enc,
	}, nil
}

func runGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return "", &GitError{Args: args, Stderr: stderr.String(), Err: err}
	}
	return stdout.String(), nil
}

func (a *Analyzer) git(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()
	return a.run(ctx, a.dir, args...)
}

// Analyze compares the current head against baseBranch. The
// name-status file listing is required context: if that invocation
// fails, the whole call fails with the git error. The diffstat, commit
// log, and full diff are enrichment and degrade to empty strings.
func (a *Analyzer) Analyze(ctx context.Context, baseBranch string, includeDiff bool, maxDiffLines int) (*Result, error) {
	files, err := a.git(ctx, "diff", "--name-status", baseBranch+"...HEAD")
	if err != nil {
		return nil, err
	}

	var stat, commits, rawDiff string
	var g errgroup.Group
	g.Go(func() error {
		stat, _ = a.git(ctx, "diff", "--stat", baseBranch+"...HEAD")
		return nil
	})
	g.Go(func() error {
		commits, _ = a.git(ctx, "log", "--oneline", baseBranch+"..HEAD")
		return nil
	})
	if includeDiff {
		g.Go(func() error {
			rawDiff, _ = a.git(ctx, "diff", baseBranch+"...HEAD")
			return nil
		})
	}
	g.Wait()

	result := &Result{
		BaseBranch:   baseBranch,
		FilesChanged: files,
		Statistics:   stat,
		Commits:      commits,
		Diff:         "Diff not included (set include_diff=true to see full diff)",
	}

	if includeDiff {
		diffLines := strings.Split(rawDiff, "\n")
		result.TotalDiffLines = len(diffLines)
		if len(diffLines) > maxDiffLines {
			content := strings.Join(diffLines[:maxDiffLines], "\n")
			content += fmt.Sprintf("\n\n... Output truncated. Showing %d of %d lines ...", maxDiffLines, len(diffLines))
			content += "\n... Use max_diff_lines parameter to see more ..."
			result.Diff = content
			result.Truncated = true
		} else {
			result.Diff = rawDiff
		}
		result.DiffTokens = len(a.tokenizer.Encode(result.Diff, nil, nil))
	}

	return result, nil
}
