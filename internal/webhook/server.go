// internal/webhook/server.go
package webhook

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/user/prflow/internal/types"
)

// Server is a lightweight HTTP handler for the GitHub webhook endpoint.
// It normalizes each delivery into an Event and appends it to the
// store; the query process reads the same store independently.
type Server struct {
	store types.EventStore
	mux   *http.ServeMux
	now   func() time.Time
}

// NewServer creates a webhook Server writing to the given event store.
func NewServer(store types.EventStore) *Server {
	s := &Server{
		store: store,
		mux:   http.NewServeMux(),
		now:   time.Now,
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("POST /webhook/github", s.handleGitHub)
	return s
}

// ServeHTTP delegates to the internal mux, implementing http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// githubPayload is the optional-field subset of a GitHub webhook body.
// Every section may be absent depending on the event type.
type githubPayload struct {
	Action      string             `json:"action"`
	WorkflowRun *types.WorkflowRun `json:"workflow_run"`
	CheckRun    *types.CheckRun    `json:"check_run"`
	Repository  *struct {
		FullName string `json:"full_name"`
	} `json:"repository"`
	Sender *struct {
		Login string `json:"login"`
	} `json:"sender"`
}

func (s *Server) handleGitHub(w http.ResponseWriter, r *http.Request) {
	var payload githubPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, "invalid JSON body")
		return
	}

	event := &types.Event{
		Timestamp:   s.now().UTC(),
		DeliveryID:  deliveryID(r),
		EventType:   eventType(r),
		Action:      payload.Action,
		WorkflowRun: payload.WorkflowRun,
		CheckRun:    payload.CheckRun,
	}
	if payload.Repository != nil {
		event.Repository = payload.Repository.FullName
	}
	if payload.Sender != nil {
		event.Sender = payload.Sender.Login
	}

	if err := s.store.Append(r.Context(), event); err != nil {
		slog.Error("append webhook event failed", "event_type", event.EventType, "error", err)
		writeError(w, "failed to record event")
		return
	}

	slog.Info("webhook event recorded",
		"event_type", event.EventType,
		"action", event.Action,
		"delivery_id", event.DeliveryID,
	)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "received"})
}

// eventType reads the out-of-band event label. GitHub always sends the
// header; "unknown" covers hand-rolled senders that don't.
func eventType(r *http.Request) string {
	if t := r.Header.Get("X-GitHub-Event"); t != "" {
		return t
	}
	return "unknown"
}

func deliveryID(r *http.Request) types.DeliveryID {
	if id := r.Header.Get("X-GitHub-Delivery"); id != "" {
		return types.DeliveryID(id)
	}
	return types.NewDeliveryID()
}

// writeError reports an application-level failure. The endpoint never
// answers 5xx: a misbehaving delivery must not look like a dead server.
func writeError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
