package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/at-ishikawa/wordtutor/internal/evaluation"
)

type taskType string

func (t *taskType) Set(val string) error {
	for _, task := range allTaskTypes {
		if val == string(task) {
			*t = task
			return nil
		}
	}
	return fmt.Errorf("invalid task: %s", val)
}

func (t taskType) String() string {
	return string(t)
}

func (t *taskType) Type() string {
	return "task"
}

const (
	taskTypeSentence taskType = taskType(evaluation.TaskSentence)
	taskTypeName     taskType = taskType(evaluation.TaskName)
)

var (
	_            pflag.Value = (*taskType)(nil)
	allTaskTypes             = []taskType{taskTypeSentence, taskTypeName}
)

func newEvaluateCommand() *cobra.Command {
	task := taskTypeSentence
	var definition string
	var alternatives []string

	command := cobra.Command{
		Use:   "evaluate <word> <attempt>",
		Short: "Judge a single practice attempt",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]
			attempt := strings.Join(args[1:], " ")

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			service, closer := newEvaluationService(cfg)
			if closer != nil {
				defer func() {
					_ = closer()
				}()
			}

			result, source := service.Evaluate(cmd.Context(), evaluation.Request{
				Task:         evaluation.Task(task),
				Target:       word,
				Definition:   definition,
				UserInput:    attempt,
				Alternatives: alternatives,
			}, nil)

			bold := color.New(color.Bold)
			fmt.Printf("%s (%s, judged by %s)\n", bold.Sprint(strings.ToUpper(string(result.Verdict))), task, source)
			fmt.Println(result.AssistantMessage)
			if result.Explanation != "" {
				fmt.Println(result.Explanation)
			}
			return nil
		},
	}

	flags := command.Flags()
	flags.Var(&task, "task", fmt.Sprintf("Task to judge. Possible values are %v", allTaskTypes))
	flags.StringVar(&definition, "definition", "", "Definition shown to the learner")
	flags.StringArrayVar(&alternatives, "alternative", nil, "Accepted alternative answer (repeatable)")

	return &command
}
