package runtime

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Server exposes the tool registry over HTTP. Invocations always answer
// 200 with a JSON body; application failures travel inside the body as
// error envelopes so a calling agent can branch on content.
type Server struct {
	registry *Registry
	mux      *http.ServeMux
}

// NewServer creates a tool server over the given registry.
func NewServer(registry *Registry) *Server {
	s := &Server{
		registry: registry,
		mux:      http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /tools", s.handleCatalog)
	s.mux.HandleFunc("POST /tools/", s.handleInvoke)
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

// toolInfo is the catalog entry for one tool.
type toolInfo struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	tools := s.registry.All()
	catalog := make([]toolInfo, 0, len(tools))
	for _, t := range tools {
		catalog = append(catalog, toolInfo{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.Parameters(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(catalog)
}

func (s *Server) handleInvoke(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/tools/")
	w.Header().Set("Content-Type", "application/json")
	if name == "" {
		io.WriteString(w, ErrorResult(400, "tool name required", ""))
		return
	}

	args, err := io.ReadAll(r.Body)
	if err != nil {
		io.WriteString(w, ErrorResult(400, "read request body failed", ""))
		return
	}
	if len(args) == 0 {
		args = []byte("{}")
	}

	result := s.registry.Call(r.Context(), name, args)
	slog.Debug("tool invoked", "tool", name, "result_bytes", len(result))
	io.WriteString(w, result)
}
