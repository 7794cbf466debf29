package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/jonathan/assessment-engine/internal/ingestion"
	"github.com/jonathan/assessment-engine/internal/parsing"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// JobSource names where a job description comes from. Exactly one of Text, URL
// or Path is used, in that order of preference.
type JobSource struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
	Path string `json:"-"`
}

// JobText resolves the source to cleaned job description text.
func (e *Engine) JobText(ctx context.Context, src JobSource) (string, error) {
	switch {
	case strings.TrimSpace(src.Text) != "":
		return ingestion.CleanText(src.Text), nil
	case strings.TrimSpace(src.URL) != "":
		if !ingestion.IsURL(src.URL) {
			return "", &parsing.ParseError{Message: fmt.Sprintf("not an http(s) URL: %q", src.URL)}
		}
		return ingestion.JobText(ctx, src.URL, e.fetcher)
	case strings.TrimSpace(src.Path) != "":
		return ingestion.JobText(ctx, src.Path, e.fetcher)
	}
	return "", &parsing.ParseError{Message: "job description is empty"}
}

// ParseJob builds a JobRequirement from the source. With a model client the
// skills are extracted by the model, falling back to the keyword heuristic when
// the call fails; without one the heuristic is used directly.
func (e *Engine) ParseJob(ctx context.Context, src JobSource) (*types.JobRequirement, error) {
	text, err := e.JobText(ctx, src)
	if err != nil {
		return nil, err
	}

	var job *types.JobRequirement
	if e.llm != nil {
		job, err = parsing.ExtractRequirements(ctx, e.llm, text)
		if err != nil {
			e.logger.Warn("model job parsing failed, using heuristic", zap.Error(err))
			job = nil
		}
	}
	if job == nil {
		job, err = parsing.ParseJobDescription(text)
		if err != nil {
			return nil, err
		}
	}

	e.emitProgress(StepParseJob, fmt.Sprintf("Parsed job %q: %d required, %d preferred skills",
		job.Title, len(job.RequiredSkills), len(job.PreferredSkills)), "", job)
	return job, nil
}
