package evaluation

import (
	"context"
	"log/slog"

	"github.com/at-ishikawa/wordtutor/internal/inference"
)

// Source identifies which evaluator produced a result.
type Source string

const (
	SourceModel   Source = "model"
	SourceOffline Source = "offline"
)

// Service evaluates attempts remote-first: one attempt against the model,
// then the offline evaluator when the model is unconfigured or fails.
// There is no retry toward the model; the offline path is the fallback.
type Service struct {
	client  inference.Client
	offline *OfflineEvaluator
}

// NewService creates a new Service. A nil client means offline-only
// evaluation, e.g. when no API key is configured.
func NewService(client inference.Client) *Service {
	return &Service{
		client:  client,
		offline: NewOfflineEvaluator(),
	}
}

// Evaluate judges one attempt and reports which path produced the result.
// history is forwarded to the model for conversational tone only; the offline
// path never consumes it.
func (s *Service) Evaluate(ctx context.Context, req Request, history []inference.HistoryMessage) (Result, Source) {
	if s.client == nil {
		return s.offline.Evaluate(req), SourceOffline
	}

	response, err := s.client.EvaluatePractice(ctx, inference.EvaluatePracticeRequest{
		Task:         string(req.Task),
		Target:       req.Target,
		Definition:   req.Definition,
		UserInput:    req.UserInput,
		Alternatives: req.Alternatives,
		History:      history,
	})
	if err != nil {
		slog.Default().Warn("model evaluation failed, falling back to offline evaluator",
			"task", req.Task,
			"error", err,
		)
		return s.offline.Evaluate(req), SourceOffline
	}

	return Result{
		AssistantMessage: response.Message,
		Verdict:          Verdict(response.Verdict),
		Explanation:      response.Explanation,
	}, SourceModel
}
