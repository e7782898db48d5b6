package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordtutor/internal/evaluation"
	"github.com/at-ishikawa/wordtutor/internal/wordlist"
)

func newTestPracticeCLI(entries []wordlist.Entry, input string) (*PracticeCLI, *bytes.Buffer) {
	output := &bytes.Buffer{}
	cli := NewPracticeCLI(evaluation.NewService(nil), entries)
	cli.stdinReader = bufio.NewReader(strings.NewReader(input))
	cli.stdoutWriter = output
	cli.bold = color.New()
	cli.italic = color.New()
	return cli, output
}

func TestPracticeCLI_Session(t *testing.T) {
	t.Run("correct sentence attempt", func(t *testing.T) {
		cli, output := newTestPracticeCLI(
			[]wordlist.Entry{{Word: "consume"}},
			"I consumed too much sugar yesterday.\n",
		)

		err := cli.Session(context.Background())
		require.NoError(t, err)
		assert.Contains(t, output.String(), "Use consume in a sentence.")
		assert.Contains(t, output.String(), "Correct!")

		err = cli.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
		assert.Contains(t, output.String(), "No more words to practice.")
	})

	t.Run("definition entries are asked as naming questions", func(t *testing.T) {
		cli, output := newTestPracticeCLI(
			[]wordlist.Entry{{Word: "diet", Definition: "usual food and drink"}},
			"diet\n",
		)

		err := cli.Session(context.Background())
		require.NoError(t, err)
		assert.Contains(t, output.String(), "What word matches this definition: usual food and drink")
		assert.Contains(t, output.String(), "Correct!")
	})

	t.Run("alternatives are accepted for naming questions", func(t *testing.T) {
		cli, output := newTestPracticeCLI(
			[]wordlist.Entry{{
				Word:         "sofa",
				Definition:   "a long upholstered seat",
				Alternatives: []string{"couch"},
			}},
			"couch\n",
		)

		err := cli.Session(context.Background())
		require.NoError(t, err)
		assert.Contains(t, output.String(), "Correct!")
	})

	t.Run("incorrect attempt prints the hint and explanation", func(t *testing.T) {
		cli, output := newTestPracticeCLI(
			[]wordlist.Entry{{Word: "junk food"}},
			"I had a salad.\n",
		)

		err := cli.Session(context.Background())
		require.NoError(t, err)
		assert.NotContains(t, output.String(), "Correct!")
		assert.Contains(t, output.String(), `"j"`)
	})

	t.Run("quit ends the session", func(t *testing.T) {
		cli, output := newTestPracticeCLI(
			[]wordlist.Entry{{Word: "consume"}, {Word: "reduce"}},
			"quit\n",
		)

		err := cli.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
		assert.Contains(t, output.String(), "Practice session ended.")
	})

	t.Run("history is bounded", func(t *testing.T) {
		input := strings.Repeat("I consumed sugar.\n", 12)
		entries := make([]wordlist.Entry, 12)
		for i := range entries {
			entries[i] = wordlist.Entry{Word: "consume"}
		}
		cli, _ := newTestPracticeCLI(entries, input)

		for range entries {
			require.NoError(t, cli.Session(context.Background()))
		}
		assert.LessOrEqual(t, len(cli.history), maxHistoryTurns)
	})
}
