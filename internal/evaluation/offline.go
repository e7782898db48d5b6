package evaluation

import (
	"fmt"
	"strings"

	"github.com/at-ishikawa/wordtutor/internal/textnorm"
)

// OfflineEvaluator approximates the remote model's judgment without touching
// the network. It is deterministic, stateless, and safe for unbounded
// concurrent use.
type OfflineEvaluator struct {
}

// NewOfflineEvaluator creates a new OfflineEvaluator.
func NewOfflineEvaluator() *OfflineEvaluator {
	return &OfflineEvaluator{}
}

// Evaluate produces a verdict and a short reply for one attempt. It never
// fails: empty inputs degrade to an incorrect verdict with an empty hint.
func (e *OfflineEvaluator) Evaluate(req Request) Result {
	switch req.Task {
	case TaskName:
		return e.evaluateName(req)
	case TaskSentence:
		fallthrough
	default:
		return e.evaluateSentence(req)
	}
}

// evaluateSentence checks that the learner actually used the target.
// Multi-word targets are matched by phrase containment; single words by
// whole-token matching with simple inflections. The asymmetry avoids both
// rejecting correct phrase usage over inflection mismatches and accepting
// substring hits like "cat" inside "category".
func (e *OfflineEvaluator) evaluateSentence(req Request) Result {
	target := textnorm.Normalize(req.Target)

	var used bool
	if strings.Contains(target, " ") {
		used = strings.Contains(textnorm.Normalize(req.UserInput), target)
	} else {
		used = textnorm.ContainsWordForm(req.UserInput, req.Target)
	}

	if used {
		return Result{
			AssistantMessage: "Nice sentence! You used the word correctly. Keep it up!",
			Verdict:          VerdictCorrect,
		}
	}

	return Result{
		AssistantMessage: fmt.Sprintf(
			"Good try, but I couldn't find the word in your sentence. Hint: it starts with %q and has %d word(s). Try again!",
			firstLetter(target), textnorm.WordCount(target),
		),
		Verdict:     VerdictIncorrect,
		Explanation: "The target word was not clearly used in the sentence.",
	}
}

// evaluateName checks the learner's guess against the target and its accepted
// alternatives, exact match after normalization. No fuzzy matching.
func (e *OfflineEvaluator) evaluateName(req Request) Result {
	guess := textnorm.Normalize(req.UserInput)
	target := textnorm.Normalize(req.Target)

	matched := guess != "" && guess == target
	if !matched {
		for _, alternative := range req.Alternatives {
			if guess != "" && guess == textnorm.Normalize(alternative) {
				matched = true
				break
			}
		}
	}

	if matched {
		return Result{
			AssistantMessage: fmt.Sprintf("That's right, it's %q! Want to try using it in a sentence?", req.Target),
			Verdict:          VerdictCorrect,
		}
	}

	return Result{
		AssistantMessage: fmt.Sprintf(
			"Not quite. Hint: the word starts with %q and has %d word(s). Give it another shot!",
			firstLetter(target), textnorm.WordCount(target),
		),
		Verdict:     VerdictIncorrect,
		Explanation: "The guess did not match the target word or any accepted alternative.",
	}
}

// firstLetter returns the first character of a normalized target, or "" when
// the target is empty. Hints leak only this character and the word count,
// never the full target.
func firstLetter(normalizedTarget string) string {
	if normalizedTarget == "" {
		return ""
	}
	return string([]rune(normalizedTarget)[0])
}
