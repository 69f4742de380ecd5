// internal/types/models.go
package types

import "time"

// WorkflowRun is the subset of a GitHub Actions workflow_run payload
// that the event log keeps. UpdatedAt stays a raw RFC3339 string so the
// latest-wins comparison works on exactly what GitHub sent.
type WorkflowRun struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion,omitempty"`
	RunNumber  int    `json:"run_number"`
	UpdatedAt  string `json:"updated_at"`
	HTMLURL    string `json:"html_url,omitempty"`
}

// CheckRun mirrors the check_run payload subset.
type CheckRun struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion,omitempty"`
	UpdatedAt  string `json:"updated_at,omitempty"`
	HTMLURL    string `json:"html_url,omitempty"`
}

// Event is one normalized webhook notification. Optional payload
// sections are pointers so absence is a checked case, not a zero value.
// Events are immutable once appended to the store.
type Event struct {
	Timestamp   time.Time    `json:"timestamp"`
	DeliveryID  DeliveryID   `json:"delivery_id,omitempty"`
	EventType   string       `json:"event_type"`
	Action      string       `json:"action,omitempty"`
	WorkflowRun *WorkflowRun `json:"workflow_run,omitempty"`
	CheckRun    *CheckRun    `json:"check_run,omitempty"`
	Repository  string       `json:"repository,omitempty"`
	Sender      string       `json:"sender,omitempty"`
}

// WorkflowSummary is the derived latest-state view of one named
// workflow, recomputed from the store on every query.
type WorkflowSummary struct {
	Name       string `json:"name"`
	Status     string `json:"status"`
	Conclusion string `json:"conclusion,omitempty"`
	RunNumber  int    `json:"run_number"`
	UpdatedAt  string `json:"updated_at"`
	HTMLURL    string `json:"html_url,omitempty"`
}
