// Package tools implements the named tools exposed over the invocation
// boundary: event-log queries, change-set analysis, PR template
// helpers, and the small stateless demos.
package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/prflow/internal/query"
	"github.com/user/prflow/internal/runtime"
)

// RecentEvents returns the most recent webhook events from the log.
type RecentEvents struct {
	service *query.Service
}

// NewRecentEvents creates the tool over the given query service.
func NewRecentEvents(service *query.Service) *RecentEvents {
	return &RecentEvents{service: service}
}

func (t *RecentEvents) Name() string { return "get_recent_actions_events" }
func (t *RecentEvents) Description() string {
	return "Get recent GitHub Actions events received via webhook"
}
func (t *RecentEvents) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"limit": {"type": "integer", "description": "Maximum number of events to return (default: 10)"}
		}
	}`)
}

func (t *RecentEvents) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	params := struct {
		Limit int `json:"limit"`
	}{Limit: 10}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return "", runtime.Errorf(400, "parse args: %v", err)
		}
	}

	events, err := t.service.Recent(ctx, params.Limit)
	if err != nil {
		return "", fmt.Errorf("read recent events: %w", err)
	}
	data, err := json.MarshalIndent(events, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal events: %w", err)
	}
	return string(data), nil
}

// WorkflowStatus reports the latest state per named workflow.
type WorkflowStatus struct {
	service *query.Service
}

// NewWorkflowStatus creates the tool over the given query service.
func NewWorkflowStatus(service *query.Service) *WorkflowStatus {
	return &WorkflowStatus{service: service}
}

func (t *WorkflowStatus) Name() string { return "get_workflow_status" }
func (t *WorkflowStatus) Description() string {
	return "Get the current status of GitHub Actions workflows"
}
func (t *WorkflowStatus) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"workflow_name": {"type": "string", "description": "Optional specific workflow name to filter by"}
		}
	}`)
}

func (t *WorkflowStatus) Execute(ctx context.Context, args json.RawMessage) (string, error) {
	var params struct {
		WorkflowName string `json:"workflow_name"`
	}
	if len(args) > 0 {
		if err := json.Unmarshal(args, &params); err != nil {
			return "", runtime.Errorf(400, "parse args: %v", err)
		}
	}

	summaries, err := t.service.WorkflowStatus(ctx, params.WorkflowName)
	if err != nil {
		// query.ErrNoEvents maps to a 404 envelope at the boundary.
		return "", err
	}
	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal summaries: %w", err)
	}
	return string(data), nil
}
