package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/user/prflow/internal/store"
	"github.com/user/prflow/internal/types"
)

func setupServer(t *testing.T) (*Server, *store.FileStore) {
	t.Helper()
	fs := store.NewFileStore(filepath.Join(t.TempDir(), "github_events.json"), 100)
	return NewServer(fs), fs
}

func postWebhook(srv *Server, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/webhook/github", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	srv, _ := setupServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
}

func TestWebhookRecordsEvent(t *testing.T) {
	srv, fs := setupServer(t)
	srv.now = func() time.Time {
		return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	}

	body := `{
		"action": "completed",
		"workflow_run": {"name": "CI", "status": "completed", "conclusion": "success", "run_number": 42, "updated_at": "2024-06-01T11:59:00Z", "html_url": "https://example.com/run/42"},
		"repository": {"full_name": "user/repo"},
		"sender": {"login": "octocat"}
	}`
	w := postWebhook(srv, body, map[string]string{
		"X-GitHub-Event":    "workflow_run",
		"X-GitHub-Delivery": "abc-123",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "received" {
		t.Errorf("response status = %q, want received", resp["status"])
	}

	events, err := fs.ReadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly one appended event, got %d", len(events))
	}
	e := events[0]
	if e.EventType != "workflow_run" || e.Action != "completed" {
		t.Errorf("event = %s/%s", e.EventType, e.Action)
	}
	if e.DeliveryID != "abc-123" {
		t.Errorf("delivery_id = %q", e.DeliveryID)
	}
	if !e.Timestamp.Equal(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("timestamp must be the ingestion instant, got %v", e.Timestamp)
	}
	if e.WorkflowRun == nil || e.WorkflowRun.Name != "CI" || e.WorkflowRun.RunNumber != 42 {
		t.Errorf("workflow_run not extracted: %+v", e.WorkflowRun)
	}
	if e.Repository != "user/repo" || e.Sender != "octocat" {
		t.Errorf("repository/sender = %q/%q", e.Repository, e.Sender)
	}
}

func TestWebhookMissingOptionalFields(t *testing.T) {
	srv, fs := setupServer(t)

	w := postWebhook(srv, `{}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("empty payload is valid, got %d", w.Code)
	}

	events, err := fs.ReadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.EventType != "unknown" {
		t.Errorf("event_type = %q, want unknown when header absent", e.EventType)
	}
	if e.WorkflowRun != nil || e.CheckRun != nil {
		t.Error("absent payload sections must stay nil")
	}
	if e.DeliveryID == "" {
		t.Error("expected a generated delivery id")
	}
}

func TestWebhookInvalidJSON(t *testing.T) {
	srv, fs := setupServer(t)

	w := postWebhook(srv, `{not json`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] == "" {
		t.Error("expected an error message in the body")
	}

	events, err := fs.ReadAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("rejected delivery must not be appended, got %d events", len(events))
	}
}

type failingStore struct{}

func (failingStore) Append(context.Context, *types.Event) error {
	return errors.New("disk full")
}

func (failingStore) ReadAll(context.Context) ([]*types.Event, error) {
	return nil, nil
}

func TestWebhookStorageFailure(t *testing.T) {
	srv := NewServer(failingStore{})

	w := postWebhook(srv, `{"action":"opened"}`, nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("storage failure must not surface as 5xx, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["error"] == "" {
		t.Error("expected a structured error body")
	}
}
