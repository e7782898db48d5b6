package main

import (
	"fmt"
	"log/slog"

	"github.com/at-ishikawa/wordtutor/internal/config"
	"github.com/at-ishikawa/wordtutor/internal/evaluation"
	"github.com/at-ishikawa/wordtutor/internal/inference/openai"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// newEvaluationService wires the evaluation service for the loaded config.
// Without an OpenAI API key it evaluates offline only. The returned closer is
// nil when there is nothing to close.
func newEvaluationService(cfg *config.Config) (*evaluation.Service, func() error) {
	if cfg.OpenAI.APIKey == "" {
		return evaluation.NewService(nil), nil
	}
	client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	slog.Default().Debug("evaluating with OpenAI", "model", client.GetModel())
	return evaluation.NewService(client), client.Close
}
