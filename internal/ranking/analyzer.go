// Package ranking scores resumes against a job and orders them by overall fit.
package ranking

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/jonathan/assessment-engine/internal/relevance"
	"github.com/jonathan/assessment-engine/internal/score"
	"github.com/jonathan/assessment-engine/internal/skills"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// Default weights for the resume scoring components
const (
	requiredSkillsWeight  = 0.4
	preferredSkillsWeight = 0.2
	experienceWeight      = 0.25
	educationWeight       = 0.15
)

// Weights are the component weights of the overall resume score. They sum to 1.
type Weights struct {
	Required   float64 `mapstructure:"required" json:"required" yaml:"required"`
	Preferred  float64 `mapstructure:"preferred" json:"preferred" yaml:"preferred"`
	Experience float64 `mapstructure:"experience" json:"experience" yaml:"experience"`
	Education  float64 `mapstructure:"education" json:"education" yaml:"education"`
}

// DefaultWeights returns the default resume weights.
func DefaultWeights() Weights {
	return Weights{
		Required:   requiredSkillsWeight,
		Preferred:  preferredSkillsWeight,
		Experience: experienceWeight,
		Education:  educationWeight,
	}
}

// Skills returns the skill-level weights.
func (w Weights) Skills() skills.Weights {
	return skills.Weights{Required: w.Required, Preferred: w.Preferred}
}

// Validate checks that the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"required":   w.Required,
		"preferred":  w.Preferred,
		"experience": w.Experience,
		"education":  w.Education,
	} {
		if v < 0 {
			return fmt.Errorf("resume weight %s must be non-negative, got %v", name, v)
		}
	}
	sum := w.Required + w.Preferred + w.Experience + w.Education
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("resume weights must sum to 1, got %v", sum)
	}
	return nil
}

// Analyzer scores ResumeRecords against a JobRequirement.
type Analyzer struct {
	weights  Weights
	matcher  *skills.Matcher
	scorer   *relevance.Scorer
	logger   *zap.Logger
	parallel int
}

// Option configures an Analyzer.
type Option func(*Analyzer)

// WithWeights overrides the default weights.
func WithWeights(weights Weights) Option {
	return func(a *Analyzer) {
		a.weights = weights
	}
}

// WithLogger sets the analyzer logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

// WithParallelism bounds the number of resumes analyzed at once by RankResumes.
func WithParallelism(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.parallel = n
		}
	}
}

// NewAnalyzer creates an Analyzer using scorer for experience and education relevance.
func NewAnalyzer(scorer *relevance.Scorer, opts ...Option) *Analyzer {
	if scorer == nil {
		scorer = relevance.NewScorer(nil)
	}
	a := &Analyzer{
		weights:  DefaultWeights(),
		scorer:   scorer,
		parallel: defaultParallelism,
	}
	for _, opt := range opts {
		opt(a)
	}
	a.matcher = skills.NewMatcher(a.weights.Skills())
	a.logger = logging.Component(a.logger, "ranking")
	return a
}

// Weights returns the weights used by the analyzer.
func (a *Analyzer) Weights() Weights {
	return a.weights
}

// AnalyzeResume scores record against job. It returns nil, after logging, when no
// resume data is supplied.
func (a *Analyzer) AnalyzeResume(ctx context.Context, record *types.ResumeRecord, job types.JobRequirement) *types.ResumeAnalysis {
	if record == nil {
		a.logger.Error("no resume data provided for analysis")
		return nil
	}

	candidateSkills := record.Skills
	if candidateSkills == nil {
		candidateSkills = []string{}
	}

	skillsMatch := a.matcher.Match(candidateSkills, job.RequiredSkills, job.PreferredSkills)
	experienceScore := a.sectionScore(ctx, job.Description, record.Experience)
	educationScore := a.sectionScore(ctx, job.Description, record.Education)

	overall := (skillsMatch.Score*a.weights.Skills().Total() +
		experienceScore*a.weights.Experience +
		educationScore*a.weights.Education) / 100

	analysis := &types.ResumeAnalysis{
		Name:                  record.DisplayName(),
		Filename:              record.DisplayFilename(),
		OverallScore:          score.Round2(overall),
		SkillsMatch:           skillsMatch,
		ExperienceScore:       experienceScore,
		EducationScore:        educationScore,
		Skills:                candidateSkills,
		MissingRequiredSkills: skills.MissingRequired(job.RequiredSkills, skillsMatch.MatchedRequired),
	}

	a.logger.Debug("analyzed resume",
		zap.String(logging.FieldFilename, analysis.Filename),
		zap.Float64("overall_score", analysis.OverallScore),
		zap.Float64("skills_score", skillsMatch.Score),
		zap.Float64("experience_score", experienceScore),
		zap.Float64("education_score", educationScore),
	)
	return analysis
}

// sectionScore is the relevance of the joined snippets to the job description, as a
// percentage. It is 0 when either side is empty.
func (a *Analyzer) sectionScore(ctx context.Context, description string, snippets []string) float64 {
	text := strings.TrimSpace(strings.Join(snippets, " "))
	if text == "" || strings.TrimSpace(description) == "" {
		return 0
	}
	return score.Percent(a.scorer.Score(ctx, description, text))
}
