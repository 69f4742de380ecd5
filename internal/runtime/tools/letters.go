package tools

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/user/prflow/internal/runtime"
)

// LetterCounter is a demo tool counting letter occurrences in a word.
type LetterCounter struct{}

// NewLetterCounter creates the demo letter-counting tool.
func NewLetterCounter() *LetterCounter { return &LetterCounter{} }

func (l *LetterCounter) Name() string { return "letter_counter" }
func (l *LetterCounter) Description() string {
	return "Count the number of occurrences of a letter within a word"
}
func (l *LetterCounter) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"word": {"type": "string", "description": "The input text to search through"},
			"letter": {"type": "string", "description": "The letter to search for"}
		},
		"required": ["word", "letter"]
	}`)
}

func (l *LetterCounter) Execute(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Word   string `json:"word"`
		Letter string `json:"letter"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", runtime.Errorf(400, "parse args: %v", err)
	}
	if params.Word == "" || params.Letter == "" {
		return "", runtime.Errorf(400, "word and letter are required")
	}

	count := strings.Count(strings.ToLower(params.Word), strings.ToLower(params.Letter))
	out, err := json.Marshal(map[string]any{
		"word":   params.Word,
		"letter": params.Letter,
		"count":  count,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
