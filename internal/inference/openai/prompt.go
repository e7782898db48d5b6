package openai

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/at-ishikawa/wordtutor/internal/inference"
)

func (client *Client) getRequestBody(args inference.EvaluatePracticeRequest) (ChatCompletionRequest, error) {
	systemPrompt := `You are a friendly vocabulary tutor inside a chat practice app.
The learner is practicing a TARGET word or phrase. Judge their attempt and reply warmly.

TASKS
- "sentence": the learner must use the target in a sentence of their own.
  Mark CORRECT when the sentence genuinely uses the target (any natural inflection
  counts: "reduced" for "reduce"). Mark INCORRECT when the target is missing or
  only appears inside an unrelated word.
- "name": the learner was shown a definition and must name the target.
  Mark CORRECT when the guess is the target or one of the accepted alternatives,
  ignoring case, punctuation, and hyphenation. Synonyms that are not listed as
  alternatives are INCORRECT.

VERDICTS
- "correct": the attempt clearly succeeds.
- "incorrect": the attempt clearly fails.
- "unsure": you genuinely cannot tell (garbled input, ambiguous usage).

REPLY RULES
- Keep the message short, encouraging, and conversational (one or two sentences).
- On a correct answer, affirm and optionally invite a follow-up.
- On an incorrect answer, include a gentle hint: the first letter of the target
  and how many words it has. NEVER reveal the full target in the message or
  explanation of an incorrect result.
- "explanation" is a brief neutral note on why the verdict was chosen; it may be
  empty for correct answers.

STRICT OUTPUT: Return ONLY one JSON object:
{"message": "...", "verdict": "correct" | "incorrect" | "unsure", "explanation": "..."}
No text outside the JSON.`

	// promptExample demonstrates the expected judgment for each task kind.
	type promptExample struct {
		userRequest     inference.EvaluatePracticeRequest
		assistantAnswer inference.EvaluatePracticeResponse
	}

	examples := []promptExample{
		{
			userRequest: inference.EvaluatePracticeRequest{
				Task:      "sentence",
				Target:    "junk food",
				UserInput: "I avoid eating junk food every day.",
			},
			assistantAnswer: inference.EvaluatePracticeResponse{
				Message: "Great sentence! You used \"junk food\" naturally. Keep going!",
				Verdict: "correct",
			},
		},
		{
			userRequest: inference.EvaluatePracticeRequest{
				Task:      "sentence",
				Target:    "reduce",
				UserInput: "I like food.",
			},
			assistantAnswer: inference.EvaluatePracticeResponse{
				Message:     "Good try, but I don't see the word yet. Hint: it starts with \"r\" and is one word. Try again!",
				Verdict:     "incorrect",
				Explanation: "The sentence does not use the target word.",
			},
		},
		{
			userRequest: inference.EvaluatePracticeRequest{
				Task:       "name",
				Target:     "diet",
				Definition: "the usual food and drink of a person",
				UserInput:  "Diet",
			},
			assistantAnswer: inference.EvaluatePracticeResponse{
				Message: "That's right, it's \"diet\"! Want to try using it in a sentence?",
				Verdict: "correct",
			},
		},
		{
			userRequest: inference.EvaluatePracticeRequest{
				Task:         "name",
				Target:       "junk food",
				Definition:   "food that is unhealthy but quick to eat",
				UserInput:    "fast meal",
				Alternatives: []string{"junk-food"},
			},
			assistantAnswer: inference.EvaluatePracticeResponse{
				Message:     "Not quite! Hint: it starts with \"j\" and has two words. Give it another shot!",
				Verdict:     "incorrect",
				Explanation: "The guess matches neither the target nor an accepted alternative.",
			},
		},
	}

	messages := []Message{
		{
			Role:    RoleSystem,
			Content: systemPrompt,
		},
	}

	for _, example := range examples {
		userJSON, err := json.Marshal(example.userRequest)
		if err != nil {
			return ChatCompletionRequest{}, fmt.Errorf("failed to marshal example user request: %w", err)
		}
		assistantJSON, err := json.Marshal(example.assistantAnswer)
		if err != nil {
			return ChatCompletionRequest{}, fmt.Errorf("failed to marshal example assistant answer: %w", err)
		}

		messages = append(messages,
			Message{
				Role:    RoleUser,
				Content: string(userJSON),
			},
			Message{
				Role:    RoleAssistant,
				Content: string(assistantJSON),
			},
		)
	}

	// Prior turns come before the attempt so the model can keep the
	// conversational tone consistent.
	for _, turn := range args.History {
		role := RoleUser
		if turn.Role == "assistant" {
			role = RoleAssistant
		}
		messages = append(messages, Message{
			Role:    role,
			Content: turn.Content,
		})
	}

	attempt := args
	attempt.History = nil
	userContent := bytes.NewBuffer(nil)
	if err := json.NewEncoder(userContent).Encode(attempt); err != nil {
		return ChatCompletionRequest{}, fmt.Errorf("failed to marshal attempt: %w", err)
	}
	messages = append(messages, Message{
		Role:    RoleUser,
		Content: userContent.String(),
	})

	return ChatCompletionRequest{
		Model:       client.model,
		Temperature: 0.3,
		Messages:    messages,
	}, nil
}

// extractJSONObject returns the first complete top-level JSON object in
// content, so that code fences or stray prose around the model's reply do not
// break decoding. If no complete object is found, content is returned as-is.
func extractJSONObject(content string) string {
	firstBrace := -1
	braceCount := 0
	inString := false
	escapeNext := false

	for i, ch := range content {
		if escapeNext {
			escapeNext = false
			continue
		}
		if ch == '\\' && inString {
			escapeNext = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}

		if !inString {
			switch ch {
			case '{':
				if firstBrace == -1 {
					firstBrace = i
				}
				braceCount++
			case '}':
				braceCount--
				if braceCount == 0 && firstBrace != -1 {
					return content[firstBrace : i+1]
				}
			}
		}
	}

	return content
}
