package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/at-ishikawa/wordtutor/internal/evaluation"
	"github.com/at-ishikawa/wordtutor/internal/inference"
	"github.com/at-ishikawa/wordtutor/internal/wordlist"
)

// maxHistoryTurns bounds how much conversation is replayed to the model.
const maxHistoryTurns = 10

// PracticeCLI drills through a word list: words with a curated definition are
// asked as naming questions, the rest as sentence exercises.
type PracticeCLI struct {
	*InteractiveCLI

	service *evaluation.Service
	entries []wordlist.Entry
	next    int
	history []inference.HistoryMessage
}

func NewPracticeCLI(service *evaluation.Service, entries []wordlist.Entry) *PracticeCLI {
	return &PracticeCLI{
		InteractiveCLI: newInteractiveCLI(),
		service:        service,
		entries:        entries,
	}
}

func (cli *PracticeCLI) Session(ctx context.Context) error {
	if cli.next >= len(cli.entries) {
		fmt.Fprintln(cli.stdoutWriter, "No more words to practice. Well done!")
		return errEnd
	}
	entry := cli.entries[cli.next]
	cli.next++

	request := evaluation.Request{
		Target:       entry.Word,
		Definition:   entry.Definition,
		Alternatives: entry.Alternatives,
	}
	var prompt string
	if entry.Definition != "" {
		request.Task = evaluation.TaskName
		prompt = fmt.Sprintf("What word matches this definition: %s", cli.italic.Sprint(entry.Definition))
	} else {
		request.Task = evaluation.TaskSentence
		prompt = fmt.Sprintf("Use %s in a sentence.", cli.bold.Sprint(entry.Word))
	}

	fmt.Fprintln(cli.stdoutWriter, prompt)
	fmt.Fprint(cli.stdoutWriter, "> ")
	input, err := cli.readLine()
	if err != nil {
		return fmt.Errorf("cli.readLine() > %w", err)
	}
	if input == "quit" || input == "exit" {
		fmt.Fprintln(cli.stdoutWriter, "Practice session ended.")
		return errEnd
	}
	request.UserInput = input

	cli.appendHistory("assistant", prompt)
	cli.appendHistory("user", input)

	result, _ := cli.service.Evaluate(ctx, request, cli.history)

	switch result.Verdict {
	case evaluation.VerdictCorrect:
		fmt.Fprintf(cli.stdoutWriter, "%s %s\n", cli.bold.Sprint("Correct!"), result.AssistantMessage)
	case evaluation.VerdictUnsure:
		fmt.Fprintln(cli.stdoutWriter, result.AssistantMessage)
		// Let the learner retry the same word after an unclear attempt
		cli.next--
	default:
		fmt.Fprintln(cli.stdoutWriter, result.AssistantMessage)
		if result.Explanation != "" {
			fmt.Fprintln(cli.stdoutWriter, cli.italic.Sprint(result.Explanation))
		}
	}
	cli.appendHistory("assistant", result.AssistantMessage)

	return nil
}

func (cli *PracticeCLI) appendHistory(role, content string) {
	cli.history = append(cli.history, inference.HistoryMessage{
		Role:    role,
		Content: content,
	})
	if len(cli.history) > maxHistoryTurns {
		cli.history = cli.history[len(cli.history)-maxHistoryTurns:]
	}
}

func trimInput(s string) string {
	return strings.TrimSpace(s)
}
