package main

import (
	"context"
	"fmt"

	"github.com/jonathan/assessment-engine/internal/ingestion"
	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var analyzeResumeCmd = &cobra.Command{
	Use:   "analyze-resume",
	Short: "Score one resume against a job requirement",
	Long: `Score a resume against a job requirement: skills match, experience relevance,
education relevance and the weighted overall score.`,
	RunE: runAnalyzeResume,
}

var (
	analyzeResumeFile    string
	analyzeResumeJob     jobFlags
	analyzeResumeOutput  string
	analyzeResumeVerbose bool
)

func init() {
	analyzeResumeCmd.Flags().StringVarP(&analyzeResumeFile, "resume", "r", "", "Path to resume file (.txt, .md, .html)")
	analyzeResumeJob.register(analyzeResumeCmd)
	analyzeResumeCmd.Flags().StringVarP(&analyzeResumeOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	analyzeResumeCmd.Flags().BoolVarP(&analyzeResumeVerbose, "verbose", "v", false, "Print the score breakdown")
	_ = analyzeResumeCmd.MarkFlagRequired("resume")

	rootCmd.AddCommand(analyzeResumeCmd)
}

func runAnalyzeResume(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	doc, err := ingestion.ReadDocument(analyzeResumeFile)
	if err != nil {
		return err
	}

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	job, err := analyzeResumeJob.load(ctx, engine)
	if err != nil {
		return err
	}

	analysis, runID := engine.AnalyzeResume(ctx, doc, *job)
	if analysis == nil {
		return fmt.Errorf("no resume data in %s", analyzeResumeFile)
	}
	if engine.HasStore() {
		logger.Info("analysis saved", zap.String(logging.FieldRunID, runID.String()))
	}

	if printer := verbosePrinter(cmd, analyzeResumeVerbose); printer != nil {
		printer.PrintResumeAnalysis(analysis)
	}
	return writeJSON(cmd, analyzeResumeOutput, analysis)
}
