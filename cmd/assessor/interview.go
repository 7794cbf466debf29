package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/assessment-engine/internal/interview"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// allCategories is the category choice that keeps every question.
const allCategories = "All categories"

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive mock interview",
	Long: `Ask questions one by one, then score the answers. Questions come from the
configured question bank (question_bank), or from the built-in behavioral, technical
and situational practice questions when no bank is configured. Practice questions
carry no keywords, so their completeness and technical accuracy use the neutral
defaults. Leave an answer empty to skip a question.`,
	RunE: runInterview,
}

var (
	mockCategory string
	mockLimit    int
	mockOutput   string
	mockXLSX     string
)

// chooseCategory and askAnswer read from the terminal.
var (
	chooseCategory = func(categories []string) (string, error) {
		prompt := promptui.Select{
			Label: "Choose a question category",
			Items: append([]string{allCategories}, categories...),
		}
		_, selected, err := prompt.Run()
		return selected, err
	}

	askAnswer = func(n, total int, question string) (string, error) {
		prompt := promptui.Prompt{
			Label: fmt.Sprintf("[%d/%d] %s", n, total, question),
		}
		return prompt.Run()
	}
)

func init() {
	interviewCmd.Flags().StringVar(&mockCategory, "category", "", "Only ask questions of this category (prompted when empty)")
	interviewCmd.Flags().IntVar(&mockLimit, "limit", 0, "Maximum number of questions (0 asks all)")
	interviewCmd.Flags().StringVarP(&mockOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	interviewCmd.Flags().StringVar(&mockXLSX, "xlsx", "", "Path to write a spreadsheet report")

	rootCmd.AddCommand(interviewCmd)
}

func runInterview(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	available := interviewQuestions(engine.Bank())

	category := mockCategory
	if category == "" {
		category, err = chooseCategory(interview.CategoriesOf(available))
		if err != nil {
			return fmt.Errorf("category selection: %w", err)
		}
	}

	specs := questionsFor(available, category, mockLimit)
	if len(specs) == 0 {
		return fmt.Errorf("no questions in category %q", category)
	}

	pairs := make([]types.QAPair, 0, len(specs))
	for i, spec := range specs {
		answer, err := askAnswer(i+1, len(specs), spec.Question)
		if errors.Is(err, promptui.ErrEOF) {
			break
		}
		if err != nil {
			return err
		}
		if strings.TrimSpace(answer) == "" {
			continue
		}
		pairs = append(pairs, types.QAPair{Question: spec.Question, Answer: answer})
	}

	return scoreInterview(ctx, cmd, engine, pairs, mockOutput, mockXLSX, true)
}

// interviewQuestions returns the bank questions, or the practice questions when the
// bank is empty.
func interviewQuestions(bank *interview.QuestionBank) []types.QuestionSpec {
	if bank.Len() > 0 {
		return bank.Specs()
	}
	return interview.SampleQuestions()
}

// questionsFor returns the questions of category in their given order, capped at
// limit when it is positive.
func questionsFor(available []types.QuestionSpec, category string, limit int) []types.QuestionSpec {
	var specs []types.QuestionSpec
	for _, spec := range available {
		if category != allCategories && !strings.EqualFold(spec.CategoryOrDefault(), category) {
			continue
		}
		specs = append(specs, spec)
		if limit > 0 && len(specs) == limit {
			break
		}
	}
	return specs
}
