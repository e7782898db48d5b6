// Package evaluation judges a learner's practice attempt against a target
// word or phrase, preferring a remote model and falling back to a local
// heuristic evaluator.
package evaluation

// Task identifies the kind of practice exercise being evaluated.
type Task string

const (
	// TaskSentence asks the learner to use the target in a sentence.
	TaskSentence Task = "sentence"
	// TaskName asks the learner to produce the target from its definition.
	TaskName Task = "name"
)

// KnownTask reports whether t is a supported task kind.
func KnownTask(t Task) bool {
	return t == TaskSentence || t == TaskName
}

// Verdict is the three-valued correctness judgment for an attempt.
type Verdict string

const (
	VerdictCorrect   Verdict = "correct"
	VerdictIncorrect Verdict = "incorrect"
	// VerdictUnsure is produced only by the remote model; the offline
	// evaluator always commits to correct or incorrect.
	VerdictUnsure Verdict = "unsure"
)

// Request carries one practice attempt. Task, Target, and UserInput are
// validated by the caller; the evaluator degrades gracefully when they are
// empty. Definition is informational only and never used for matching.
type Request struct {
	Task         Task
	Target       string
	Definition   string
	UserInput    string
	Alternatives []string
}

// Result is the outcome of a single evaluation. It is created fresh per call
// and never mutated afterwards.
type Result struct {
	AssistantMessage string
	Verdict          Verdict
	Explanation      string
}
