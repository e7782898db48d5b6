package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"resty.dev/v3"

	"github.com/at-ishikawa/wordtutor/internal/inference"
)

type Client struct {
	httpClient *resty.Client
	model      string
}

func NewClient(apiKey, model string) *Client {
	client := resty.New()
	client.SetBaseURL("https://api.openai.com/v1")
	client.SetHeader("Authorization", "Bearer "+apiKey)
	client.SetHeader("Content-Type", "application/json")

	return &Client{
		httpClient: client,
		model:      model,
	}
}

func (client Client) Close() error {
	return client.httpClient.Close()
}

// GetModel returns the model name configured for this client
func (client Client) GetModel() string {
	return client.model
}

type ChatCompletionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature,omitempty"`
}

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type ChatCompletionResponse struct {
	ID      string   `json:"id"`
	Object  string   `json:"object"`
	Created int64    `json:"created"`
	Model   string   `json:"model"`
	Choices []Choice `json:"choices"`
	Usage   Usage    `json:"usage"`
}

type Choice struct {
	Index        int           `json:"index"`
	Message      ChoiceMessage `json:"message"`
	FinishReason string        `json:"finish_reason"`
}

type ChoiceMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// EvaluatePractice implements the inference.Client interface. It makes a
// single attempt against the API; the caller is responsible for falling back
// to the offline evaluator on error.
func (client *Client) EvaluatePractice(
	ctx context.Context,
	params inference.EvaluatePracticeRequest,
) (inference.EvaluatePracticeResponse, error) {
	requestBody, err := client.getRequestBody(params)
	if err != nil {
		return inference.EvaluatePracticeResponse{}, fmt.Errorf("getRequestBody > %w", err)
	}

	response, err := client.httpClient.R().
		SetContext(ctx).
		SetBody(requestBody).
		SetResult(&ChatCompletionResponse{}).
		Post("/chat/completions")
	if err != nil {
		return inference.EvaluatePracticeResponse{}, fmt.Errorf("httpClient.Post > %w", err)
	}
	if response.IsError() {
		return inference.EvaluatePracticeResponse{}, fmt.Errorf("response error %d: %s", response.StatusCode(), response.String())
	}

	responseBody := response.Result().(*ChatCompletionResponse)
	if responseBody == nil || len(responseBody.Choices) == 0 {
		return inference.EvaluatePracticeResponse{}, fmt.Errorf("empty response body or choices: %s", response.String())
	}

	content := responseBody.Choices[0].Message.Content
	if content == "" {
		return inference.EvaluatePracticeResponse{}, fmt.Errorf("empty response content: %s", response.String())
	}
	slog.Default().Debug("openai response content",
		"request", requestBody,
		"response", responseBody,
	)

	var decoded inference.EvaluatePracticeResponse
	if err := json.Unmarshal([]byte(extractJSONObject(content)), &decoded); err != nil {
		slog.Default().Error("Failed to parse OpenAI response as JSON",
			"request", requestBody,
			"content", content,
			"error", err)
		return inference.EvaluatePracticeResponse{}, fmt.Errorf("json.Unmarshal(%s) > %w", content, err)
	}
	if !isKnownVerdict(decoded.Verdict) {
		return inference.EvaluatePracticeResponse{}, fmt.Errorf("unknown verdict %q in response: %s", decoded.Verdict, content)
	}
	decoded.Verdict = strings.ToLower(strings.TrimSpace(decoded.Verdict))
	return decoded, nil
}

func isKnownVerdict(verdict string) bool {
	switch strings.ToLower(strings.TrimSpace(verdict)) {
	case "correct", "incorrect", "unsure":
		return true
	}
	return false
}
