package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/at-ishikawa/wordtutor/internal/dictionary/rapidapi"
	"github.com/at-ishikawa/wordtutor/internal/evaluation"
	"github.com/at-ishikawa/wordtutor/internal/inference"
	mock_inference "github.com/at-ishikawa/wordtutor/internal/mocks/inference"
	"github.com/at-ishikawa/wordtutor/internal/wordlist"
)

type stubDictionary struct {
	response rapidapi.Response
	err      error
	lookups  []string
}

func (s *stubDictionary) Lookup(_ context.Context, expression string) (rapidapi.Response, error) {
	s.lookups = append(s.lookups, expression)
	return s.response, s.err
}

func newTestServer(t *testing.T, client inference.Client, dictionary DefinitionLookup, words *wordlist.List) *httptest.Server {
	t.Helper()
	handler, err := NewPracticeHandler(evaluation.NewService(client), dictionary, words)
	require.NoError(t, err)
	server := httptest.NewServer(NewMux(handler))
	t.Cleanup(server.Close)
	return server
}

func postEvaluate(t *testing.T, serverURL, body string) (*http.Response, map[string]any) {
	t.Helper()
	res, err := http.Post(serverURL+"/api/v1/evaluate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer func() {
		_ = res.Body.Close()
	}()

	var decoded map[string]any
	require.NoError(t, json.NewDecoder(res.Body).Decode(&decoded))
	return res, decoded
}

func TestPracticeHandler_HandleEvaluate(t *testing.T) {
	t.Run("offline evaluation without a model client", func(t *testing.T) {
		server := newTestServer(t, nil, nil, nil)

		res, body := postEvaluate(t, server.URL, `{
			"task": "sentence",
			"target_word": "consume",
			"user_input": "I consumed too much sugar yesterday."
		}`)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "correct", body["verdict"])
		assert.Equal(t, "offline", body["source"])
		assert.NotEmpty(t, body["assistant_message"])
	})

	t.Run("model evaluation when the client succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockClient := mock_inference.NewMockClient(ctrl)
		mockClient.EXPECT().
			EvaluatePractice(gomock.Any(), gomock.Any()).
			Return(inference.EvaluatePracticeResponse{
				Message: "Great sentence!",
				Verdict: "correct",
			}, nil).
			Times(1)

		server := newTestServer(t, mockClient, nil, nil)

		res, body := postEvaluate(t, server.URL, `{
			"task": "sentence",
			"target_word": "reduce",
			"user_input": "I reduced my screen time."
		}`)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "Great sentence!", body["assistant_message"])
		assert.Equal(t, "model", body["source"])
	})

	t.Run("model failure falls back to offline", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockClient := mock_inference.NewMockClient(ctrl)
		mockClient.EXPECT().
			EvaluatePractice(gomock.Any(), gomock.Any()).
			Return(inference.EvaluatePracticeResponse{}, errors.New("response error 503")).
			Times(1)

		server := newTestServer(t, mockClient, nil, nil)

		res, body := postEvaluate(t, server.URL, `{
			"task": "name",
			"target_word": "diet",
			"definition": "usual food and drink",
			"user_input": "diet"
		}`)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "correct", body["verdict"])
		assert.Equal(t, "offline", body["source"])
	})

	t.Run("history is forwarded to the model", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockClient := mock_inference.NewMockClient(ctrl)
		mockClient.EXPECT().
			EvaluatePractice(gomock.Any(), gomock.Cond(func(req inference.EvaluatePracticeRequest) bool {
				return len(req.History) == 2 && req.History[0].Role == "assistant"
			})).
			Return(inference.EvaluatePracticeResponse{Message: "ok", Verdict: "correct"}, nil).
			Times(1)

		server := newTestServer(t, mockClient, nil, nil)

		res, _ := postEvaluate(t, server.URL, `{
			"task": "sentence",
			"target_word": "reduce",
			"user_input": "I reduced my screen time.",
			"history": [
				{"role": "assistant", "content": "Try using the word in a sentence."},
				{"role": "user", "content": "Can you give me a hint?"}
			]
		}`)

		assert.Equal(t, http.StatusOK, res.StatusCode)
	})

	t.Run("missing definition is enriched from the dictionary", func(t *testing.T) {
		dictionary := &stubDictionary{
			response: rapidapi.Response{
				Word: "diet",
				Results: []rapidapi.Result{
					{PartOfSpeech: "noun", Definition: "usual food and drink"},
				},
			},
		}

		ctrl := gomock.NewController(t)
		mockClient := mock_inference.NewMockClient(ctrl)
		mockClient.EXPECT().
			EvaluatePractice(gomock.Any(), gomock.Cond(func(req inference.EvaluatePracticeRequest) bool {
				return req.Definition == "usual food and drink"
			})).
			Return(inference.EvaluatePracticeResponse{Message: "ok", Verdict: "correct"}, nil).
			Times(1)

		server := newTestServer(t, mockClient, dictionary, nil)

		res, _ := postEvaluate(t, server.URL, `{
			"task": "name",
			"target_word": "diet",
			"user_input": "diet"
		}`)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, []string{"diet"}, dictionary.lookups)
	})

	t.Run("dictionary failure does not fail the request", func(t *testing.T) {
		dictionary := &stubDictionary{err: errors.New("status code: 502")}

		server := newTestServer(t, nil, dictionary, nil)

		res, body := postEvaluate(t, server.URL, `{
			"task": "name",
			"target_word": "diet",
			"user_input": "diet"
		}`)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "correct", body["verdict"])
	})

	t.Run("word list alternatives are accepted", func(t *testing.T) {
		words := wordlist.New([]wordlist.Entry{
			{Word: "sofa", Alternatives: []string{"couch", "settee"}},
		})

		server := newTestServer(t, nil, nil, words)

		res, body := postEvaluate(t, server.URL, `{
			"task": "name",
			"target_word": "sofa",
			"definition": "a long upholstered seat",
			"user_input": "couch"
		}`)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "correct", body["verdict"])
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		server := newTestServer(t, nil, nil, nil)

		res, body := postEvaluate(t, server.URL, `{not json`)

		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
		assert.Equal(t, "invalid JSON body", body["error"])
	})

	t.Run("validation failures report field violations", func(t *testing.T) {
		tests := []struct {
			name      string
			body      string
			wantField string
		}{
			{
				name:      "unknown task",
				body:      `{"task": "definition", "target_word": "diet", "user_input": "x"}`,
				wantField: "task",
			},
			{
				name:      "missing target word",
				body:      `{"task": "name", "user_input": "x"}`,
				wantField: "target_word",
			},
			{
				name:      "invalid history role",
				body:      `{"task": "name", "target_word": "diet", "user_input": "x", "history": [{"role": "system", "content": "hi"}]}`,
				wantField: "role",
			},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				server := newTestServer(t, nil, nil, nil)

				res, body := postEvaluate(t, server.URL, tt.body)

				assert.Equal(t, http.StatusBadRequest, res.StatusCode)
				assert.Equal(t, "invalid request", body["error"])

				fields, ok := body["fields"].([]any)
				require.True(t, ok)
				require.NotEmpty(t, fields)
				violation, ok := fields[0].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, tt.wantField, violation["field"])
			})
		}
	})

	t.Run("empty user input is judged incorrect", func(t *testing.T) {
		server := newTestServer(t, nil, nil, nil)

		res, body := postEvaluate(t, server.URL, `{
			"task": "sentence",
			"target_word": "reduce",
			"user_input": ""
		}`)

		assert.Equal(t, http.StatusOK, res.StatusCode)
		assert.Equal(t, "incorrect", body["verdict"])
		assert.NotEmpty(t, body["explanation"])
	})
}

func TestHandleHealthz(t *testing.T) {
	server := newTestServer(t, nil, nil, nil)

	res, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer func() {
		_ = res.Body.Close()
	}()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}
