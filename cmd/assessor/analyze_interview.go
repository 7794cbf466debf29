package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/assessment-engine/internal/export"
	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/jonathan/assessment-engine/internal/pipeline"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeInterviewCmd = &cobra.Command{
	Use:   "analyze-interview",
	Short: "Score interview answers",
	Long: `Score interview answers for relevance, completeness, clarity and technical
accuracy, and summarize them per dimension and per question category.

The input is either a JSON document {"responses": [{"question": ..., "answer": ...}]}
or a YAML list of question/answer pairs.`,
	RunE: runAnalyzeInterview,
}

var (
	interviewInputFile string
	interviewOutput    string
	interviewXLSX      string
	interviewVerbose   bool
)

func init() {
	analyzeInterviewCmd.Flags().StringVarP(&interviewInputFile, "in", "i", "", "Path to responses file (.json, .yaml)")
	analyzeInterviewCmd.Flags().StringVarP(&interviewOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	analyzeInterviewCmd.Flags().StringVar(&interviewXLSX, "xlsx", "", "Path to write a spreadsheet report")
	analyzeInterviewCmd.Flags().BoolVarP(&interviewVerbose, "verbose", "v", false, "Print scores and feedback per answer")
	_ = analyzeInterviewCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(analyzeInterviewCmd)
}

func runAnalyzeInterview(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	f, err := os.Open(interviewInputFile)
	if err != nil {
		return fmt.Errorf("failed to open responses file: %w", err)
	}
	defer func() { _ = f.Close() }()

	pairs, err := readResponses(f, interviewInputFile)
	if err != nil {
		return err
	}

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	return scoreInterview(ctx, cmd, engine, pairs, interviewOutput, interviewXLSX, interviewVerbose)
}

// scoreInterview scores pairs and writes the summary. It is shared with the
// interactive interview command.
func scoreInterview(ctx context.Context, cmd *cobra.Command, engine *pipeline.Engine, pairs []types.QAPair, outPath, xlsxPath string, verbose bool) error {
	summary, runID := engine.AnalyzeInterview(ctx, pairs)
	if summary == nil {
		return fmt.Errorf("no interview responses could be scored")
	}
	if engine.HasStore() {
		logger.Info("interview saved", zap.String(logging.FieldRunID, runID.String()))
	}

	if xlsxPath != "" {
		if err := export.SaveInterviewSummary(xlsxPath, summary); err != nil {
			return err
		}
		logger.Info("spreadsheet written", zap.String("path", xlsxPath))
	}

	if printer := verbosePrinter(cmd, verbose); printer != nil {
		printer.PrintInterviewSummary(summary)
	}
	return writeJSON(cmd, outPath, summary)
}
