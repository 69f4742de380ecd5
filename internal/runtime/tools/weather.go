package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/user/prflow/internal/runtime"
)

// Weather is a demo tool returning a canned forecast.
type Weather struct{}

// NewWeather creates the demo weather tool.
func NewWeather() *Weather { return &Weather{} }

func (w *Weather) Name() string        { return "get_weather" }
func (w *Weather) Description() string { return "Get the current weather for a specified location" }
func (w *Weather) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"location": {"type": "string", "description": "Location for which to retrieve the weather"}
		},
		"required": ["location"]
	}`)
}

func (w *Weather) Execute(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", runtime.Errorf(400, "parse args: %v", err)
	}
	if params.Location == "" {
		return "", runtime.Errorf(400, "location is required")
	}

	out, err := json.Marshal(map[string]string{
		"location": params.Location,
		"report":   fmt.Sprintf("Weather in %s: Sunny, 72°F", params.Location),
	})
	if err != nil {
		return "", fmt.Errorf("marshal weather: %w", err)
	}
	return string(out), nil
}
