package main

import (
	"context"

	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/spf13/cobra"
)

var extractResumeCmd = &cobra.Command{
	Use:   "extract-resume [files or directories...]",
	Short: "Extract structured records from resumes",
	Long: `Extract name, contact details, skills, education, experience, organizations and
locations from one or more resumes (.txt, .md, .html). Directories are read
non-recursively.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtractResume,
}

var (
	extractOutputFile string
	extractVerbose    bool
)

func init() {
	extractResumeCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	extractResumeCmd.Flags().BoolVarP(&extractVerbose, "verbose", "v", false, "Print each extracted record")

	rootCmd.AddCommand(extractResumeCmd)
}

func runExtractResume(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	docs, err := readResumes(args)
	if err != nil {
		return err
	}

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	printer := verbosePrinter(cmd, extractVerbose)
	records := make([]types.ResumeRecord, 0, len(docs))
	for _, doc := range docs {
		record := engine.ExtractResume(ctx, doc)
		if printer != nil {
			printer.PrintResumeRecord(&record)
		}
		records = append(records, record)
	}

	if len(records) == 1 {
		return writeJSON(cmd, extractOutputFile, records[0])
	}
	return writeJSON(cmd, extractOutputFile, records)
}
