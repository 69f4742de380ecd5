package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/user/prflow/internal/runtime"
)

// template is one PR template file. Type is the lowercased filename
// stem (bug.md -> "bug") and is the lookup key for suggestions.
type template struct {
	Filename string `json:"filename"`
	Type     string `json:"type"`
	Content  string `json:"content"`
}

func loadTemplates(dir string) ([]template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read templates dir %s: %w", dir, err)
	}

	var templates []template
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		templates = append(templates, template{
			Filename: name,
			Type:     strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name))),
			Content:  string(data),
		})
	}
	return templates, nil
}

// ListTemplates lists the available PR templates with their content.
type ListTemplates struct {
	dir string
}

// NewListTemplates creates the tool over the given templates directory.
func NewListTemplates(dir string) *ListTemplates {
	return &ListTemplates{dir: dir}
}

func (t *ListTemplates) Name() string { return "get_pr_templates" }
func (t *ListTemplates) Description() string {
	return "List available Pull Request templates with their content"
}
func (t *ListTemplates) Parameters() json.RawMessage {
	return json.RawMessage(`{"type": "object", "properties": {}}`)
}

func (t *ListTemplates) Execute(_ context.Context, _ json.RawMessage) (string, error) {
	templates, err := loadTemplates(t.dir)
	if err != nil {
		return "", err
	}
	if templates == nil {
		templates = []template{}
	}
	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal templates: %w", err)
	}
	return string(data), nil
}

// SuggestTemplate recommends the PR template matching a change type.
// The match is a direct type lookup; the caller supplies the analysis.
type SuggestTemplate struct {
	dir string
}

// NewSuggestTemplate creates the tool over the given templates directory.
func NewSuggestTemplate(dir string) *SuggestTemplate {
	return &SuggestTemplate{dir: dir}
}

func (t *SuggestTemplate) Name() string { return "suggest_pr_template" }
func (t *SuggestTemplate) Description() string {
	return "Suggest the most appropriate Pull Request template for a change type"
}
func (t *SuggestTemplate) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"changes_summary": {"type": "string", "description": "Analysis of what the changes do"},
			"change_type": {"type": "string", "description": "Type of change identified (e.g. bug, feature, docs, refactor)"}
		},
		"required": ["changes_summary", "change_type"]
	}`)
}

type suggestion struct {
	RecommendedTemplate template `json:"recommended_template"`
	Reasoning           string   `json:"reasoning"`
	TemplateContent     string   `json:"template_content"`
	UsageHint           string   `json:"usage_hint"`
}

func (t *SuggestTemplate) Execute(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		ChangesSummary string `json:"changes_summary"`
		ChangeType     string `json:"change_type"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", runtime.Errorf(400, "parse args: %v", err)
	}
	if params.ChangeType == "" {
		return "", runtime.Errorf(400, "change_type is required")
	}

	templates, err := loadTemplates(t.dir)
	if err != nil {
		return "", err
	}

	changeType := strings.ToLower(params.ChangeType)
	for _, tmpl := range templates {
		if tmpl.Type != changeType {
			continue
		}
		data, err := json.MarshalIndent(suggestion{
			RecommendedTemplate: tmpl,
			Reasoning:           fmt.Sprintf("Based on your analysis: %q, this appears to be a %s change.", params.ChangesSummary, params.ChangeType),
			TemplateContent:     tmpl.Content,
			UsageHint:           "An LLM can help you fill out this template based on the specific changes in your PR.",
		}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("marshal suggestion: %w", err)
		}
		return string(data), nil
	}
	return "", runtime.Errorf(404, "no Pull Request template found for %q", params.ChangeType)
}
