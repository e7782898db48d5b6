package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/at-ishikawa/wordtutor/internal/cli"
	"github.com/at-ishikawa/wordtutor/internal/wordlist"
)

func newPracticeCommand() *cobra.Command {
	var wordlistPath string

	command := cobra.Command{
		Use:   "practice",
		Short: "Start an interactive practice session over a word list",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("loadConfig() > %w", err)
			}

			path := wordlistPath
			if path == "" {
				path = cfg.Wordlist.Path
			}
			if path == "" {
				return fmt.Errorf("no word list configured. Pass --wordlist or set wordlist.path in the config file")
			}
			words, err := wordlist.Load(path)
			if err != nil {
				return fmt.Errorf("wordlist.Load(%s) > %w", path, err)
			}
			entries := words.Entries()
			if len(entries) == 0 {
				return fmt.Errorf("word list %s has no words", path)
			}

			service, closer := newEvaluationService(cfg)
			if closer != nil {
				defer func() {
					_ = closer()
				}()
			}

			practiceCLI := cli.NewPracticeCLI(service, entries)
			return practiceCLI.Run(cmd.Context(), practiceCLI)
		},
	}
	command.Flags().StringVar(&wordlistPath, "wordlist", "", "word list file path")

	return &command
}
