package inference

import (
	"context"
)

//go:generate mockgen -source=interface.go -destination=../mocks/inference/mock_client.go -package=mock_inference

// Client interface defines the methods for AI inference operations
type Client interface {
	EvaluatePractice(ctx context.Context, params EvaluatePracticeRequest) (EvaluatePracticeResponse, error)
}

// HistoryMessage is one prior turn of the practice conversation, used only to
// give the model conversational context.
type HistoryMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// EvaluatePracticeRequest holds parameters for evaluating a learner's attempt
type EvaluatePracticeRequest struct {
	Task         string           `json:"task"`
	Target       string           `json:"target"`
	Definition   string           `json:"definition,omitempty"` // Optional: dictionary meaning shown to the model, not used for matching
	UserInput    string           `json:"user_input"`
	Alternatives []string         `json:"alternatives,omitempty"`
	History      []HistoryMessage `json:"history,omitempty"`
}

// EvaluatePracticeResponse is the model's judgment of a single attempt
type EvaluatePracticeResponse struct {
	Message     string `json:"message"`
	Verdict     string `json:"verdict"` // correct | incorrect | unsure
	Explanation string `json:"explanation,omitempty"`
}
