package main

import (
	"context"
	"fmt"

	"github.com/jonathan/assessment-engine/internal/export"
	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rankResumesCmd = &cobra.Command{
	Use:   "rank-resumes [files or directories...]",
	Short: "Score a batch of resumes and sort them by overall score",
	Long: `Score every resume against the job requirement and print the analyses sorted by
overall score, highest first. --xlsx additionally writes a spreadsheet report.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRankResumes,
}

var (
	rankJob     jobFlags
	rankOutput  string
	rankXLSX    string
	rankVerbose bool
)

func init() {
	rankJob.register(rankResumesCmd)
	rankResumesCmd.Flags().StringVarP(&rankOutput, "out", "o", "", "Path to output JSON file (default stdout)")
	rankResumesCmd.Flags().StringVar(&rankXLSX, "xlsx", "", "Path to write a spreadsheet report")
	rankResumesCmd.Flags().BoolVarP(&rankVerbose, "verbose", "v", false, "Print the ranking table")

	rootCmd.AddCommand(rankResumesCmd)
}

func runRankResumes(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	docs, err := readResumes(args)
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return fmt.Errorf("no supported resume files found")
	}

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	job, err := rankJob.load(ctx, engine)
	if err != nil {
		return err
	}

	ranking, runID, err := engine.RankResumes(ctx, docs, *job)
	if err != nil {
		return err
	}
	if engine.HasStore() {
		logger.Info("ranking saved", zap.String(logging.FieldRunID, runID.String()))
	}

	if rankXLSX != "" {
		if err := export.SaveResumeRanking(rankXLSX, ranking); err != nil {
			return err
		}
		logger.Info("spreadsheet written", zap.String("path", rankXLSX))
	}

	if printer := verbosePrinter(cmd, rankVerbose); printer != nil {
		printer.PrintRanking(ranking.Analyses)
	}
	return writeJSON(cmd, rankOutput, ranking)
}
