package interview

import (
	"context"
	"strings"

	"github.com/jonathan/assessment-engine/internal/score"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// AnalyzeInterview scores every complete question/answer pair and summarizes them.
// Pairs missing either field are skipped. It returns nil when nothing was scored.
func (s *Scorer) AnalyzeInterview(ctx context.Context, pairs []types.QAPair) *types.InterviewSummary {
	if len(pairs) == 0 {
		s.logger.Error("no interview data provided")
		return nil
	}

	results := make([]types.InterviewResponseAnalysis, 0, len(pairs))
	for _, pair := range pairs {
		if strings.TrimSpace(pair.Question) == "" || strings.TrimSpace(pair.Answer) == "" {
			continue
		}
		if analysis := s.AnalyzeResponse(ctx, pair.Question, pair.Answer); analysis != nil {
			results = append(results, *analysis)
		}
	}

	summary := Summarize(results)
	if summary == nil {
		s.logger.Warn("no interview responses could be scored", zap.Int("pairs", len(pairs)))
		return nil
	}

	s.logger.Info("analyzed interview",
		zap.Int("questions", summary.QuestionCount),
		zap.Float64("overall_score", summary.OverallScore),
	)
	return summary
}

// Summarize averages analyses per dimension and per category. It returns nil for an
// empty slice.
func Summarize(results []types.InterviewResponseAnalysis) *types.InterviewSummary {
	if len(results) == 0 {
		return nil
	}

	var overall, rel, comp, clarity, technical []float64
	byCategory := make(map[string][]float64)
	for _, r := range results {
		overall = append(overall, r.OverallScore)
		rel = append(rel, r.RelevanceScore)
		comp = append(comp, r.CompletenessScore)
		clarity = append(clarity, r.ClarityScore)
		technical = append(technical, r.TechnicalAccuracy)

		category := r.Category
		if category == "" {
			category = types.DefaultCategory
		}
		byCategory[category] = append(byCategory[category], r.OverallScore)
	}

	categoryScores := make(map[string]float64, len(byCategory))
	for category, scores := range byCategory {
		categoryScores[category] = score.Round2(score.Mean(scores))
	}

	return &types.InterviewSummary{
		OverallScore: score.Round2(score.Mean(overall)),
		AverageScores: types.DimensionScores{
			Relevance:         score.Round2(score.Mean(rel)),
			Completeness:      score.Round2(score.Mean(comp)),
			Clarity:           score.Round2(score.Mean(clarity)),
			TechnicalAccuracy: score.Round2(score.Mean(technical)),
		},
		CategoryScores:  categoryScores,
		QuestionCount:   len(results),
		DetailedResults: results,
	}
}
