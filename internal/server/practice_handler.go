// Package server provides the HTTP JSON API for practice evaluation.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/at-ishikawa/wordtutor/internal/dictionary/rapidapi"
	"github.com/at-ishikawa/wordtutor/internal/evaluation"
	"github.com/at-ishikawa/wordtutor/internal/inference"
	"github.com/at-ishikawa/wordtutor/internal/wordlist"
)

// DefinitionLookup resolves a word to its dictionary entry. Implemented by
// dictionary.Reader.
type DefinitionLookup interface {
	Lookup(ctx context.Context, expression string) (rapidapi.Response, error)
}

// EvaluateRequest is the request body for POST /api/v1/evaluate.
type EvaluateRequest struct {
	Task         string           `json:"task" validate:"required,oneof=sentence name"`
	TargetWord   string           `json:"target_word" validate:"required"`
	Definition   string           `json:"definition"`
	UserInput    string           `json:"user_input"`
	Alternatives []string         `json:"alternatives"`
	History      []HistoryMessage `json:"history" validate:"dive"`
}

type HistoryMessage struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content"`
}

// EvaluateResponse is the response body for POST /api/v1/evaluate.
type EvaluateResponse struct {
	AssistantMessage string `json:"assistant_message"`
	Verdict          string `json:"verdict"`
	Explanation      string `json:"explanation,omitempty"`
	Source           string `json:"source"`
}

type errorResponse struct {
	Error  string           `json:"error"`
	Fields []fieldViolation `json:"fields,omitempty"`
}

type fieldViolation struct {
	Field       string `json:"field"`
	Description string `json:"description"`
}

// PracticeHandler evaluates practice attempts over HTTP.
type PracticeHandler struct {
	service    *evaluation.Service
	dictionary DefinitionLookup
	words      *wordlist.List
	validator  *requestValidator
}

// NewPracticeHandler creates a new PracticeHandler. dictionary and words may
// be nil; requests are then evaluated without enrichment.
func NewPracticeHandler(service *evaluation.Service, dictionary DefinitionLookup, words *wordlist.List) (*PracticeHandler, error) {
	v, err := newRequestValidator()
	if err != nil {
		return nil, fmt.Errorf("newRequestValidator() > %w", err)
	}
	return &PracticeHandler{
		service:    service,
		dictionary: dictionary,
		words:      words,
		validator:  v,
	}, nil
}

// NewMux returns the routing table for the API server.
func NewMux(handler *PracticeHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/evaluate", handler.HandleEvaluate)
	mux.HandleFunc("GET /healthz", handleHealthz)
	return mux
}

func (h *PracticeHandler) HandleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid JSON body",
		})
		return
	}

	if violations := h.validator.check(req); len(violations) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "invalid request",
			Fields: violations,
		})
		return
	}

	evalRequest := evaluation.Request{
		Task:         evaluation.Task(req.Task),
		Target:       req.TargetWord,
		Definition:   req.Definition,
		UserInput:    req.UserInput,
		Alternatives: req.Alternatives,
	}
	h.enrich(r.Context(), &evalRequest)

	history := make([]inference.HistoryMessage, 0, len(req.History))
	for _, message := range req.History {
		history = append(history, inference.HistoryMessage{
			Role:    message.Role,
			Content: message.Content,
		})
	}

	result, source := h.service.Evaluate(r.Context(), evalRequest, history)

	writeJSON(w, http.StatusOK, EvaluateResponse{
		AssistantMessage: result.AssistantMessage,
		Verdict:          string(result.Verdict),
		Explanation:      result.Explanation,
		Source:           string(source),
	})
}

// enrich fills in a missing definition from the dictionary and merges curated
// alternatives from the word list. Enrichment failures are not fatal.
func (h *PracticeHandler) enrich(ctx context.Context, req *evaluation.Request) {
	if req.Definition == "" && h.dictionary != nil {
		entry, err := h.dictionary.Lookup(ctx, req.Target)
		if err != nil {
			slog.Default().Warn("dictionary lookup failed",
				"word", req.Target,
				"error", err,
			)
		} else {
			req.Definition = entry.BestDefinition()
		}
	}

	if h.words != nil {
		req.Alternatives = mergeAlternatives(req.Alternatives, h.words.Alternatives(req.Target))
	}
}

func mergeAlternatives(existing, curated []string) []string {
	seen := make(map[string]struct{}, len(existing))
	for _, alternative := range existing {
		seen[alternative] = struct{}{}
	}
	merged := existing
	for _, alternative := range curated {
		if _, ok := seen[alternative]; ok {
			continue
		}
		merged = append(merged, alternative)
	}
	return merged
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Warn("failed to encode response", "error", err)
	}
}
