package runtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func setupServer() *Server {
	r := NewRegistry()
	r.Register(&echoTool{})
	return NewServer(r)
}

func TestToolCatalog(t *testing.T) {
	srv := setupServer()

	req := httptest.NewRequest(http.MethodGet, "/tools", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var catalog []struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Parameters  json.RawMessage `json:"parameters"`
	}
	if err := json.NewDecoder(w.Body).Decode(&catalog); err != nil {
		t.Fatal(err)
	}
	if len(catalog) != 1 || catalog[0].Name != "echo" {
		t.Fatalf("unexpected catalog: %+v", catalog)
	}
	if len(catalog[0].Parameters) == 0 {
		t.Error("expected a parameters schema")
	}
}

func TestInvokeTool(t *testing.T) {
	srv := setupServer()

	req := httptest.NewRequest(http.MethodPost, "/tools/echo", strings.NewReader(`{"text":"hello"}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["text"] != "hello" {
		t.Errorf("got %q", resp["text"])
	}
}

func TestInvokeUnknownToolStaysHTTP200(t *testing.T) {
	srv := setupServer()

	req := httptest.NewRequest(http.MethodPost, "/tools/missing", strings.NewReader(`{}`))
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	// Errors are data, not transport faults.
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var env struct {
		Error struct {
			Code int `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&env); err != nil {
		t.Fatal(err)
	}
	if env.Error.Code != 404 {
		t.Errorf("envelope code = %d, want 404", env.Error.Code)
	}
}

func TestInvokeEmptyBodyDefaultsArgs(t *testing.T) {
	srv := setupServer()

	req := httptest.NewRequest(http.MethodPost, "/tools/echo", nil)
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("empty-body invoke must still return JSON: %v", err)
	}
}
