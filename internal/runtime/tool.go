package runtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/user/prflow/internal/query"
)

// Tool defines the interface for an executable tool. Execute returns a
// string-serialized JSON object; errors carry a code via *Error where
// the caller should branch on something other than 500.
type Tool interface {
	Name() string
	Description() string
	Parameters() json.RawMessage
	Execute(ctx context.Context, args json.RawMessage) (string, error)
}

// Error is a coded tool failure. The invocation boundary turns it into
// the {"error":{...}} envelope instead of a transport fault.
type Error struct {
	Code    int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf builds a coded tool error.
func Errorf(code int, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// errorEnvelope is the wire shape for errors-as-data.
type errorEnvelope struct {
	Error struct {
		Code       int    `json:"code"`
		Message    string `json:"message"`
		Stacktrace string `json:"stacktrace,omitempty"`
	} `json:"error"`
}

// ErrorResult serializes an error envelope. Marshalling a flat struct
// of strings cannot fail, so the result is always parsable JSON.
func ErrorResult(code int, message, stacktrace string) string {
	var env errorEnvelope
	env.Error.Code = code
	env.Error.Message = message
	env.Error.Stacktrace = stacktrace
	data, _ := json.Marshal(env)
	return string(data)
}

// Registry holds registered tools and provides lookup and invocation.
type Registry struct {
	tools map[string]Tool
	order []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

// Register adds a tool to the registry.
func (r *Registry) Register(t Tool) {
	if _, ok := r.tools[t.Name()]; !ok {
		r.order = append(r.order, t.Name())
	}
	r.tools[t.Name()] = t
}

// Get returns a tool by name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.tools[name]
	return t, ok
}

// All returns all registered tools in registration order.
func (r *Registry) All() []Tool {
	out := make([]Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name])
	}
	return out
}

// Call invokes a tool by name and always returns a parsable JSON
// result: the tool's own output on success, an error envelope
// otherwise. Panics inside a tool become 500 envelopes with a
// stacktrace; one misbehaving call must not take down the process.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (result string) {
	defer func() {
		if rec := recover(); rec != nil {
			result = ErrorResult(500, fmt.Sprintf("tool %s panicked: %v", name, rec), string(debug.Stack()))
		}
	}()

	tool, ok := r.Get(name)
	if !ok {
		return ErrorResult(404, fmt.Sprintf("unknown tool: %s", name), "")
	}

	out, err := tool.Execute(ctx, args)
	if err != nil {
		return ErrorResult(errorCode(err), err.Error(), "")
	}
	return out
}

func errorCode(err error) int {
	var toolErr *Error
	if errors.As(err, &toolErr) {
		return toolErr.Code
	}
	if errors.Is(err, query.ErrNoEvents) {
		return 404
	}
	return 500
}
