package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/jonathan/assessment-engine/internal/ingestion"
	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/jonathan/assessment-engine/internal/observability"
	"github.com/jonathan/assessment-engine/internal/pipeline"
	"github.com/jonathan/assessment-engine/internal/schemas"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// newEngine builds the assessment engine from the loaded configuration.
func newEngine(ctx context.Context, extra ...pipeline.Option) (*pipeline.Engine, error) {
	opts := append([]pipeline.Option{pipeline.WithProgress(logProgress)}, extra...)
	engine, err := pipeline.Build(ctx, appConfig, logger, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}
	return engine, nil
}

// logProgress reports engine progress at debug level.
func logProgress(event pipeline.ProgressEvent) {
	logger.Debug(event.Message, logging.StringFields(
		logging.StringField{Key: "progress", Value: event.Step},
		logging.StringField{Key: logging.FieldRunID, Value: event.RunID},
	)...)
}

// closeEngine releases engine resources, logging rather than failing the command.
func closeEngine(engine *pipeline.Engine) {
	if err := engine.Close(); err != nil {
		logger.Warn(err.Error())
	}
}

// verbosePrinter returns a printer on stderr, or nil when verbose output is off.
func verbosePrinter(cmd *cobra.Command, verbose bool) *observability.Printer {
	if !verbose {
		return nil
	}
	return observability.NewPrinter(cmd.ErrOrStderr())
}

// writeJSON writes v as indented JSON to outPath, or to the command output when
// outPath is empty.
func writeJSON(cmd *cobra.Command, outPath string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if outPath == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(outPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output: %s\n", outPath)
	return nil
}

// jobFlags are the job description inputs shared by the scoring commands.
type jobFlags struct {
	path string
	url  string
}

func (f *jobFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "job", "", "Job requirement (.json/.yaml) or job description text file")
	cmd.Flags().StringVar(&f.url, "job-url", "", "URL of a job posting to fetch and parse")
	cmd.MarkFlagsOneRequired("job", "job-url")
	cmd.MarkFlagsMutuallyExclusive("job", "job-url")
}

// load returns the job requirement. Structured files are decoded and validated,
// anything else is parsed as a job description.
func (f *jobFlags) load(ctx context.Context, engine *pipeline.Engine) (*types.JobRequirement, error) {
	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".json":
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read job file: %w", err)
		}
		if err := schemas.Validate(schemas.JobRequirement, data); err != nil {
			return nil, fmt.Errorf("invalid job requirement %s: %w", f.path, err)
		}
		var job types.JobRequirement
		if err := json.Unmarshal(data, &job); err != nil {
			return nil, fmt.Errorf("failed to parse job file: %w", err)
		}
		return &job, nil
	case ".yaml", ".yml":
		data, err := os.ReadFile(f.path)
		if err != nil {
			return nil, fmt.Errorf("failed to read job file: %w", err)
		}
		var job types.JobRequirement
		if err := yaml.Unmarshal(data, &job); err != nil {
			return nil, fmt.Errorf("failed to parse job file: %w", err)
		}
		if err := job.Validate(); err != nil {
			return nil, fmt.Errorf("invalid job requirement %s: %w", f.path, err)
		}
		return &job, nil
	}
	return engine.ParseJob(ctx, pipeline.JobSource{URL: f.url, Path: f.path})
}

// readResumes loads resume documents from files and directories.
func readResumes(paths []string) ([]types.ResumeDocument, error) {
	var docs []types.ResumeDocument
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read resume: %w", err)
		}
		if info.IsDir() {
			dirDocs, err := ingestion.ReadDir(p)
			if err != nil {
				return nil, err
			}
			docs = append(docs, dirDocs...)
			continue
		}
		doc, err := ingestion.ReadDocument(p)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// readResponses loads interview responses from a JSON request document or a YAML
// list of question/answer pairs.
func readResponses(r io.Reader, name string) ([]types.QAPair, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read responses: %w", err)
	}

	if ext := strings.ToLower(filepath.Ext(name)); ext == ".yaml" || ext == ".yml" {
		var pairs []types.QAPair
		if err := yaml.Unmarshal(data, &pairs); err != nil {
			return nil, fmt.Errorf("failed to parse responses: %w", err)
		}
		return pairs, nil
	}

	if err := schemas.Validate(schemas.InterviewRequest, data); err != nil {
		return nil, fmt.Errorf("invalid responses %s: %w", name, err)
	}
	var req types.InterviewRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse responses: %w", err)
	}
	return req.Responses, nil
}
