package tools

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/user/prflow/internal/runtime"
)

func setupTemplatesDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"bug.md":     "## Bug Fix\n\n### Description\n",
		"feature.md": "## Feature\n\n### Description\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestListTemplates(t *testing.T) {
	tool := NewListTemplates(setupTemplatesDir(t))

	out, err := tool.Execute(context.Background(), nil)
	if err != nil {
		t.Fatal(err)
	}
	var templates []struct {
		Filename string `json:"filename"`
		Type     string `json:"type"`
		Content  string `json:"content"`
	}
	if err := json.Unmarshal([]byte(out), &templates); err != nil {
		t.Fatal(err)
	}
	if len(templates) != 2 {
		t.Fatalf("expected 2 templates, got %d", len(templates))
	}
	// os.ReadDir sorts by name.
	if templates[0].Type != "bug" || templates[1].Type != "feature" {
		t.Errorf("types = %q, %q", templates[0].Type, templates[1].Type)
	}
	if templates[0].Content == "" {
		t.Error("expected template content to be included")
	}
}

func TestSuggestTemplateMatch(t *testing.T) {
	tool := NewSuggestTemplate(setupTemplatesDir(t))

	args := json.RawMessage(`{"changes_summary": "fixes a nil deref", "change_type": "bug"}`)
	out, err := tool.Execute(context.Background(), args)
	if err != nil {
		t.Fatal(err)
	}
	var resp struct {
		RecommendedTemplate struct {
			Filename string `json:"filename"`
		} `json:"recommended_template"`
		Reasoning       string `json:"reasoning"`
		TemplateContent string `json:"template_content"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RecommendedTemplate.Filename != "bug.md" {
		t.Errorf("recommended = %q, want bug.md", resp.RecommendedTemplate.Filename)
	}
	if resp.TemplateContent == "" || resp.Reasoning == "" {
		t.Error("expected reasoning and template content")
	}
}

func TestEnsureDefaultTemplates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "templates")

	if err := EnsureDefaultTemplates(dir); err != nil {
		t.Fatal(err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) == 0 {
		t.Fatal("expected default templates to be written")
	}

	// An existing directory must not be repopulated.
	for _, e := range entries {
		if err := os.Remove(filepath.Join(dir, e.Name())); err != nil {
			t.Fatal(err)
		}
	}
	if err := EnsureDefaultTemplates(dir); err != nil {
		t.Fatal(err)
	}
	entries, err = os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Error("existing templates dir was overwritten")
	}
}

func TestSuggestTemplateMiss(t *testing.T) {
	tool := NewSuggestTemplate(setupTemplatesDir(t))

	args := json.RawMessage(`{"changes_summary": "x", "change_type": "hotfix"}`)
	_, err := tool.Execute(context.Background(), args)
	var toolErr *runtime.Error
	if !errors.As(err, &toolErr) {
		t.Fatalf("expected *runtime.Error, got %v", err)
	}
	if toolErr.Code != 404 {
		t.Errorf("code = %d, want 404", toolErr.Code)
	}
}
