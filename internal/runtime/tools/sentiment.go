package tools

import (
	"context"
	"encoding/json"
	"math"
	"strings"

	"github.com/user/prflow/internal/runtime"
)

// Fixed demo lexicon. Scores are averaged TextBlob-style: polarity in
// [-1, 1], subjectivity in [0, 1].
var sentimentLexicon = map[string]float64{
	"good": 0.7, "great": 0.8, "excellent": 1.0, "amazing": 0.9,
	"love": 0.8, "like": 0.4, "happy": 0.8, "best": 1.0,
	"nice": 0.6, "fast": 0.4, "works": 0.3, "fixed": 0.5,
	"bad": -0.7, "terrible": -1.0, "awful": -0.9, "hate": -0.8,
	"worst": -1.0, "broken": -0.6, "slow": -0.4, "sad": -0.7,
	"fails": -0.5, "bug": -0.4, "wrong": -0.5, "poor": -0.6,
}

// Sentiment is a demo tool scoring text with a fixed lexicon.
type Sentiment struct{}

// NewSentiment creates the demo sentiment tool.
func NewSentiment() *Sentiment { return &Sentiment{} }

func (s *Sentiment) Name() string        { return "sentiment_analysis" }
func (s *Sentiment) Description() string { return "Analyze the sentiment of a given text" }
func (s *Sentiment) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"text": {"type": "string", "description": "The text to be analyzed"}
		},
		"required": ["text"]
	}`)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Sentiment) Execute(_ context.Context, args json.RawMessage) (string, error) {
	var params struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return "", runtime.Errorf(400, "parse args: %v", err)
	}
	if params.Text == "" {
		return "", runtime.Errorf(400, "text is required")
	}

	words := strings.Fields(strings.ToLower(params.Text))
	var sum float64
	var scored int
	for _, w := range words {
		w = strings.Trim(w, ".,!?;:\"'()")
		if score, ok := sentimentLexicon[w]; ok {
			sum += score
			scored++
		}
	}

	var polarity, subjectivity float64
	if scored > 0 {
		polarity = sum / float64(scored)
		subjectivity = float64(scored) / float64(len(words))
	}

	assessment := "neutral"
	switch {
	case polarity > 0:
		assessment = "positive"
	case polarity < 0:
		assessment = "negative"
	}

	out, err := json.Marshal(map[string]any{
		"polarity":     round2(polarity),
		"subjectivity": round2(subjectivity),
		"assessment":   assessment,
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}
