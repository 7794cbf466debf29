package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/assessment-engine/internal/pipeline"
	"github.com/jonathan/assessment-engine/internal/schemas"
	"github.com/spf13/cobra"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Parse a job description into a structured job requirement",
	Long: `Parse a job description text file or job posting URL into JobRequirement JSON.
With GEMINI_API_KEY set the skills are extracted by the model, otherwise (or when the
model call fails) a keyword heuristic is used.`,
	RunE: runParseJob,
}

var (
	parseInputFile  string
	parseJobURL     string
	parseOutputFile string
	parseVerbose    bool
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseInputFile, "in", "i", "", "Path to job description text file")
	parseJobCmd.Flags().StringVar(&parseJobURL, "url", "", "URL of a job posting to fetch")
	parseJobCmd.Flags().StringVarP(&parseOutputFile, "out", "o", "", "Path to output JSON file (default stdout)")
	parseJobCmd.Flags().BoolVarP(&parseVerbose, "verbose", "v", false, "Print the parsed requirement")
	parseJobCmd.MarkFlagsOneRequired("in", "url")
	parseJobCmd.MarkFlagsMutuallyExclusive("in", "url")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	engine, err := newEngine(ctx)
	if err != nil {
		return err
	}
	defer closeEngine(engine)

	job, err := engine.ParseJob(ctx, pipeline.JobSource{URL: parseJobURL, Path: parseInputFile})
	if err != nil {
		return fmt.Errorf("failed to parse job description: %w", err)
	}

	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := schemas.Validate(schemas.JobRequirement, data); err != nil {
		return fmt.Errorf("parsed job does not validate against schema: %w", err)
	}

	if printer := verbosePrinter(cmd, parseVerbose); printer != nil {
		printer.PrintJobRequirement(job)
	}
	return writeJSON(cmd, parseOutputFile, job)
}
