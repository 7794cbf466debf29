// Package interview scores interview answers against a question bank and summarizes
// whole interviews.
package interview

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/jonathan/assessment-engine/internal/relevance"
	"github.com/jonathan/assessment-engine/internal/score"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// Default weights for the interview scoring dimensions
const (
	relevanceWeight    = 0.4
	completenessWeight = 0.3
	clarityWeight      = 0.15
	technicalWeight    = 0.15
)

// Completeness and technical accuracy policy constants.
const (
	keywordShareWeight      = 0.6
	expectedAnswerWeight    = 0.4
	neutralCompleteness     = 0.5
	neutralTechnicalScore   = 50.0
	clarityWordLengthWeight = 0.4
	claritySentenceWeight   = 0.6
	clarityGood             = 1.0
	clarityPoor             = 0.7
)

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Weights are the dimension weights of the overall interview answer score. They sum to 1.
type Weights struct {
	Relevance         float64 `mapstructure:"relevance" json:"relevance" yaml:"relevance"`
	Completeness      float64 `mapstructure:"completeness" json:"completeness" yaml:"completeness"`
	Clarity           float64 `mapstructure:"clarity" json:"clarity" yaml:"clarity"`
	TechnicalAccuracy float64 `mapstructure:"technical_accuracy" json:"technical_accuracy" yaml:"technical_accuracy"`
}

// DefaultWeights returns the default interview weights.
func DefaultWeights() Weights {
	return Weights{
		Relevance:         relevanceWeight,
		Completeness:      completenessWeight,
		Clarity:           clarityWeight,
		TechnicalAccuracy: technicalWeight,
	}
}

// Validate checks that the weights are non-negative and sum to 1.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"relevance":          w.Relevance,
		"completeness":       w.Completeness,
		"clarity":            w.Clarity,
		"technical_accuracy": w.TechnicalAccuracy,
	} {
		if v < 0 {
			return fmt.Errorf("interview weight %s must be non-negative, got %v", name, v)
		}
	}
	sum := w.Relevance + w.Completeness + w.Clarity + w.TechnicalAccuracy
	if math.Abs(sum-1) > 1e-6 {
		return fmt.Errorf("interview weights must sum to 1, got %v", sum)
	}
	return nil
}

// Scorer scores interview answers using a question bank and a relevance scorer.
type Scorer struct {
	bank      *QuestionBank
	relevance *relevance.Scorer
	weights   Weights
	logger    *zap.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithWeights overrides the default weights.
func WithWeights(weights Weights) Option {
	return func(s *Scorer) {
		s.weights = weights
	}
}

// WithLogger sets the scorer logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		s.logger = logger
	}
}

// NewScorer creates a Scorer. A nil bank starts empty.
func NewScorer(bank *QuestionBank, rel *relevance.Scorer, opts ...Option) *Scorer {
	if bank == nil {
		bank = NewQuestionBank()
	}
	if rel == nil {
		rel = relevance.NewScorer(nil)
	}
	s := &Scorer{
		bank:      bank,
		relevance: rel,
		weights:   DefaultWeights(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.Component(s.logger, "interview")
	return s
}

// Bank returns the question bank used by the scorer.
func (s *Scorer) Bank() *QuestionBank {
	return s.bank
}

// AnalyzeResponse scores one answer. It returns nil when question or answer is empty.
// Questions missing from the bank are scored without expected answer or keywords.
func (s *Scorer) AnalyzeResponse(ctx context.Context, question, answer string) *types.InterviewResponseAnalysis {
	if strings.TrimSpace(question) == "" || strings.TrimSpace(answer) == "" {
		s.logger.Error("question or answer is empty")
		return nil
	}

	spec, _ := s.bank.Get(question)

	relevanceScore := s.RelevanceScore(ctx, question, answer)
	completeness := s.CompletenessScore(ctx, answer, spec.ExpectedAnswer, spec.Keywords)
	clarity := ClarityScore(answer)
	technical := TechnicalAccuracy(answer, spec.Keywords)

	overall := (relevanceScore*s.weights.Relevance +
		completeness*s.weights.Completeness +
		clarity*s.weights.Clarity +
		technical*s.weights.TechnicalAccuracy) / 100

	analysis := &types.InterviewResponseAnalysis{
		Question:          question,
		Category:          spec.CategoryOrDefault(),
		Answer:            answer,
		OverallScore:      score.Round2(overall),
		RelevanceScore:    relevanceScore,
		CompletenessScore: completeness,
		ClarityScore:      clarity,
		TechnicalAccuracy: technical,
		Feedback: GenerateFeedback(map[Dimension]float64{
			DimensionRelevance:    relevanceScore,
			DimensionCompleteness: completeness,
			DimensionClarity:      clarity,
			DimensionTechnical:    technical,
		}, spec.Keywords),
	}

	s.logger.Debug("analyzed response",
		zap.String(logging.FieldQuestion, logging.TruncateForLog(question, 60)),
		zap.Float64("overall_score", analysis.OverallScore),
	)
	return analysis
}

// RelevanceScore is the relevance of answer to question as a percentage.
func (s *Scorer) RelevanceScore(ctx context.Context, question, answer string) float64 {
	if question == "" || answer == "" {
		return 0
	}
	return score.Percent(s.relevance.Score(ctx, question, answer))
}

// CompletenessScore measures keyword coverage and closeness to the expected answer.
// With neither keywords nor an expected answer the score is the neutral 50.
func (s *Scorer) CompletenessScore(ctx context.Context, answer string, expected *string, keywords []string) float64 {
	if answer == "" {
		return 0
	}

	hasExpected := expected != nil && strings.TrimSpace(*expected) != ""
	keywordScore := score.Ratio(countKeywords(answer, keywords), len(keywords))

	var value float64
	switch {
	case hasExpected:
		if len(keywords) > 0 {
			value = keywordScore * keywordShareWeight
		}
		value += s.relevance.Score(ctx, *expected, answer) * expectedAnswerWeight
	case len(keywords) > 0:
		value = keywordScore
	default:
		value = neutralCompleteness
	}
	return score.Percent(value)
}

// ClarityScore rates average word and sentence length.
func ClarityScore(answer string) float64 {
	if answer == "" {
		return 0
	}

	words := strings.Fields(answer)
	avgWordLength := 0.0
	if len(words) > 0 {
		total := 0
		for _, w := range words {
			total += utf8.RuneCountInString(w)
		}
		avgWordLength = float64(total) / float64(len(words))
	}
	wordScore := clarityPoor
	if avgWordLength >= 4 && avgWordLength <= 8 {
		wordScore = clarityGood
	}

	var sentenceWords []int
	for _, sentence := range sentenceBreak.Split(answer, -1) {
		if sentence = strings.TrimSpace(sentence); sentence != "" {
			sentenceWords = append(sentenceWords, len(strings.Fields(sentence)))
		}
	}
	avgSentenceLength := 0.0
	if len(sentenceWords) > 0 {
		total := 0
		for _, n := range sentenceWords {
			total += n
		}
		avgSentenceLength = float64(total) / float64(len(sentenceWords))
	}
	sentenceScore := clarityPoor
	if avgSentenceLength >= 8 && avgSentenceLength <= 20 {
		sentenceScore = clarityGood
	}

	return score.Percent(wordScore*clarityWordLengthWeight + sentenceScore*claritySentenceWeight)
}

// TechnicalAccuracy is the share of technical keywords found in answer. It is the
// neutral 50 when answer or keywords are empty.
func TechnicalAccuracy(answer string, keywords []string) float64 {
	if answer == "" || len(keywords) == 0 {
		return neutralTechnicalScore
	}
	return score.Percent(score.Ratio(countKeywords(answer, keywords), len(keywords)))
}

// countKeywords counts keywords occurring in answer as case-insensitive substrings.
func countKeywords(answer string, keywords []string) int {
	lower := strings.ToLower(answer)
	found := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			found++
		}
	}
	return found
}
