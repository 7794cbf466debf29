// Package pipeline wires the assessment components together and runs resume and
// interview assessments end to end.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/extraction"
	"github.com/jonathan/assessment-engine/internal/fetch"
	"github.com/jonathan/assessment-engine/internal/interview"
	"github.com/jonathan/assessment-engine/internal/linguistic"
	"github.com/jonathan/assessment-engine/internal/llm"
	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/jonathan/assessment-engine/internal/ranking"
	"github.com/jonathan/assessment-engine/internal/relevance"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// Store persists assessment runs. *db.DB implements it.
type Store interface {
	CreateRun(ctx context.Context, kind, jobTitle string) (uuid.UUID, error)
	CompleteRun(ctx context.Context, runID uuid.UUID, status string) error
	SaveResumeAnalysis(ctx context.Context, runID uuid.UUID, analysis *types.ResumeAnalysis) error
	SaveInterviewSummary(ctx context.Context, runID uuid.UUID, summary *types.InterviewSummary) error
}

var _ Store = (*db.DB)(nil)

// Engine runs resume and interview assessments.
type Engine struct {
	service  linguistic.Service
	taxonomy *extraction.SkillTaxonomy
	bank     *interview.QuestionBank

	resumeWeights    *ranking.Weights
	interviewWeights *interview.Weights

	extractor  *extraction.Extractor
	analyzer   *ranking.Analyzer
	interview  *interview.Scorer
	llm        llm.Client
	fetcher    *fetch.PostingFetcher
	store      Store
	base       *zap.Logger
	logger     *zap.Logger
	onProgress ProgressCallback
	closers    []func() error
}

// Option configures an Engine.
type Option func(*Engine)

// WithService sets the linguistic service.
func WithService(svc linguistic.Service) Option {
	return func(e *Engine) { e.service = svc }
}

// WithTaxonomy sets the skill taxonomy used for extraction.
func WithTaxonomy(t *extraction.SkillTaxonomy) Option {
	return func(e *Engine) { e.taxonomy = t }
}

// WithResumeWeights sets the resume aggregation weights.
func WithResumeWeights(w ranking.Weights) Option {
	return func(e *Engine) { e.resumeWeights = &w }
}

// WithInterviewWeights sets the interview dimension weights.
func WithInterviewWeights(w interview.Weights) Option {
	return func(e *Engine) { e.interviewWeights = &w }
}

// WithBank sets the question bank used for interview scoring.
func WithBank(b *interview.QuestionBank) Option {
	return func(e *Engine) { e.bank = b }
}

// WithLLM sets the model client used for job parsing.
func WithLLM(client llm.Client) Option {
	return func(e *Engine) { e.llm = client }
}

// WithFetcher sets the fetcher used for job posting URLs.
func WithFetcher(f *fetch.PostingFetcher) Option {
	return func(e *Engine) { e.fetcher = f }
}

// WithStore enables persistence of runs.
func WithStore(s Store) Option {
	return func(e *Engine) { e.store = s }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) { e.base = logger }
}

// WithProgress registers a progress callback.
func WithProgress(cb ProgressCallback) Option {
	return func(e *Engine) { e.onProgress = cb }
}

// WithCloser registers a function run by Close.
func WithCloser(fn func() error) Option {
	return func(e *Engine) { e.closers = append(e.closers, fn) }
}

// New creates an Engine. Unset components use the defaults: no linguistic
// service, the built-in taxonomy, an empty question bank and the default weights.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	e.base = logging.OrNop(e.base)
	e.logger = logging.Component(e.base, "pipeline")
	if e.service == nil {
		e.service = linguistic.Unavailable{}
	}

	rel := relevance.NewScorer(e.service, relevance.WithLogger(e.base))

	extractorOpts := []extraction.Option{extraction.WithLogger(e.base)}
	if e.taxonomy != nil {
		extractorOpts = append(extractorOpts, extraction.WithTaxonomy(e.taxonomy))
	}
	e.extractor = extraction.NewExtractor(e.service, extractorOpts...)

	analyzerOpts := []ranking.Option{ranking.WithLogger(e.base)}
	if e.resumeWeights != nil {
		analyzerOpts = append(analyzerOpts, ranking.WithWeights(*e.resumeWeights))
	}
	e.analyzer = ranking.NewAnalyzer(rel, analyzerOpts...)

	if e.bank == nil {
		e.bank = interview.NewQuestionBank()
	}
	scorerOpts := []interview.Option{interview.WithLogger(e.base)}
	if e.interviewWeights != nil {
		scorerOpts = append(scorerOpts, interview.WithWeights(*e.interviewWeights))
	}
	e.interview = interview.NewScorer(e.bank, rel, scorerOpts...)

	if e.fetcher == nil {
		e.fetcher = fetch.NewPostingFetcher(fetch.WithLogger(e.base))
	}
	return e
}

// Service returns the linguistic service.
func (e *Engine) Service() linguistic.Service { return e.service }

// Bank returns the question bank used for interview scoring. Callers that mutate
// it concurrently with scoring must serialize access themselves.
func (e *Engine) Bank() *interview.QuestionBank { return e.interview.Bank() }

// HasStore reports whether runs are persisted.
func (e *Engine) HasStore() bool { return e.store != nil }

// Store returns the run store, or nil when runs are not persisted.
func (e *Engine) Store() Store { return e.store }

// Close releases the model client, caches and database pool.
func (e *Engine) Close() error {
	var errs []string
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err.Error())
		}
	}
	e.closers = nil
	if len(errs) > 0 {
		return fmt.Errorf("failed to close engine: %s", strings.Join(errs, "; "))
	}
	return nil
}

// ExtractResume turns a resume document into a structured record.
func (e *Engine) ExtractResume(ctx context.Context, doc types.ResumeDocument) types.ResumeRecord {
	record := e.extractor.Extract(ctx, doc.Filename, doc.Text)
	e.emitProgress(StepExtractResume, fmt.Sprintf("Extracted %d skills from %s", len(record.Skills), record.DisplayFilename()), "", record)
	return record
}

// AnalyzeResume extracts and scores one resume against job. It returns nil when the
// document has no text. The run id is uuid.Nil unless a store is configured.
func (e *Engine) AnalyzeResume(ctx context.Context, doc types.ResumeDocument, job types.JobRequirement) (*types.ResumeAnalysis, uuid.UUID) {
	if strings.TrimSpace(doc.Text) == "" {
		e.logger.Error("no resume data provided for analysis", zap.String(logging.FieldFilename, doc.Filename))
		return nil, uuid.Nil
	}

	record := e.ExtractResume(ctx, doc)
	analysis := e.analyzer.AnalyzeResume(ctx, &record, job)
	if analysis == nil {
		return nil, uuid.Nil
	}

	runID := e.persist(ctx, db.KindResumeAnalysis, job.Title, func(id uuid.UUID) error {
		return e.store.SaveResumeAnalysis(ctx, id, analysis)
	})
	e.emitProgress(StepAnalyzeResume, fmt.Sprintf("Scored %s: %.2f", analysis.Filename, analysis.OverallScore), idString(runID), analysis)
	return analysis, runID
}

// RankResumes extracts and scores every document, returning the analyses sorted by
// overall score. Documents without text are skipped.
func (e *Engine) RankResumes(ctx context.Context, docs []types.ResumeDocument, job types.JobRequirement) (*types.ResumeRanking, uuid.UUID, error) {
	records := make([]*types.ResumeRecord, 0, len(docs))
	for _, doc := range docs {
		if strings.TrimSpace(doc.Text) == "" {
			e.logger.Warn("skipping empty resume", zap.String(logging.FieldFilename, doc.Filename))
			continue
		}
		record := e.ExtractResume(ctx, doc)
		records = append(records, &record)
	}

	analyses, err := e.analyzer.RankResumes(ctx, records, job)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("failed to rank resumes: %w", err)
	}

	ranked := &types.ResumeRanking{Job: job, Analyses: analyses}
	runID := e.persist(ctx, db.KindResumeRanking, job.Title, func(id uuid.UUID) error {
		for i := range analyses {
			if err := e.store.SaveResumeAnalysis(ctx, id, &analyses[i]); err != nil {
				return err
			}
		}
		return nil
	})
	e.emitProgress(StepRankResumes, fmt.Sprintf("Ranked %d resumes", len(analyses)), idString(runID), ranked)
	return ranked, runID, nil
}

// AnalyzeInterview scores the answered questions. It returns nil when no response
// could be scored.
func (e *Engine) AnalyzeInterview(ctx context.Context, pairs []types.QAPair) (*types.InterviewSummary, uuid.UUID) {
	summary := e.interview.AnalyzeInterview(ctx, pairs)
	if summary == nil {
		return nil, uuid.Nil
	}

	runID := e.persist(ctx, db.KindInterview, "", func(id uuid.UUID) error {
		return e.store.SaveInterviewSummary(ctx, id, summary)
	})
	e.emitProgress(StepAnalyzeInterview, fmt.Sprintf("Scored %d responses: %.2f", summary.QuestionCount, summary.OverallScore), idString(runID), summary)
	return summary, runID
}

// persist records a run and its results. Storage failures are logged and yield
// uuid.Nil; they never fail the assessment.
func (e *Engine) persist(ctx context.Context, kind, jobTitle string, save func(uuid.UUID) error) uuid.UUID {
	if e.store == nil {
		return uuid.Nil
	}

	runID, err := e.store.CreateRun(ctx, kind, jobTitle)
	if err != nil {
		e.logger.Warn("failed to create run", zap.Error(err))
		return uuid.Nil
	}
	log := e.logger.With(zap.String(logging.FieldRunID, runID.String()))

	status := db.StatusCompleted
	if err := save(runID); err != nil {
		log.Warn("failed to save run results", zap.Error(err))
		status = db.StatusFailed
	}
	if err := e.store.CompleteRun(ctx, runID, status); err != nil {
		log.Warn("failed to complete run", zap.Error(err))
	}
	if status == db.StatusFailed {
		return uuid.Nil
	}
	log.Debug("persisted run", zap.String("kind", kind))
	return runID
}

func idString(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()
}
