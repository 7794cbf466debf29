package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/jonathan/assessment-engine/internal/interview"
	"github.com/spf13/cobra"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the interview question bank",
	Long: `List the questions of the configured question bank (question_bank in the config).
Without a bank the built-in behavioral, technical and situational practice questions
are listed instead; they are interview prompts and are not used for scoring.
--export writes the listed questions as YAML, a starting point for a custom bank.`,
	RunE: runQuestions,
}

var (
	questionsCategory string
	questionsExport   string
)

func init() {
	questionsCmd.Flags().StringVar(&questionsCategory, "category", "", "Only list questions of this category")
	questionsCmd.Flags().StringVar(&questionsExport, "export", "", "Write the bank as YAML to this path")

	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	engine, err := newEngine(context.Background())
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	bank := engine.Bank()
	if bank.Len() == 0 {
		logger.Info("no question bank configured, using practice questions")
		bank = interview.NewQuestionBank(interview.SampleQuestions()...)
	}
	if questionsExport != "" {
		if err := bank.SaveBank(questionsExport); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", questionsExport)
		return nil
	}

	category := questionsCategory
	if category == "" {
		category = allCategories
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CATEGORY\tQUESTION\tKEYWORDS")
	for _, spec := range questionsFor(bank.Specs(), category, 0) {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%d\n", spec.CategoryOrDefault(), spec.Question, len(spec.Keywords))
	}
	return w.Flush()
}
