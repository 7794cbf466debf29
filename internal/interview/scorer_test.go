package interview

import (
	"context"
	"testing"

	"github.com/jonathan/assessment-engine/internal/linguistic"
	"github.com/jonathan/assessment-engine/internal/relevance"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clearAnswer = "I led the migration of our billing platform to Kubernetes last year."

type constantService struct {
	linguistic.Unavailable
	similarity float64
}

func (s constantService) Available() bool { return true }

func (s constantService) Similarity(context.Context, string, string) float64 {
	return s.similarity
}

func newTestScorer(similarity float64, specs ...types.QuestionSpec) *Scorer {
	return NewScorer(NewQuestionBank(specs...), relevance.NewScorer(constantService{similarity: similarity}))
}

func TestClarityScore(t *testing.T) {
	tests := []struct {
		name   string
		answer string
		want   float64
	}{
		{"empty", "", 0},
		{"balanced", clearAnswer, 100},
		{"single short sentence", "Yes.", 82},
		{"short words and sentence", "I do it.", 70},
		{"long sentence", "I worked on many different services across several teams and together we shipped a great number of changes every single week.", 82},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClarityScore(tt.answer))
		})
	}
}

func TestTechnicalAccuracy(t *testing.T) {
	assert.Equal(t, 50.0, TechnicalAccuracy("anything at all", nil))
	assert.Equal(t, 50.0, TechnicalAccuracy("", []string{"go"}))
	assert.Equal(t, 50.0, TechnicalAccuracy("kubernetes and docker", []string{"Kubernetes", "Terraform"}))
	assert.Equal(t, 100.0, TechnicalAccuracy("kubernetes and docker", []string{"KUBERNETES"}))
	assert.Equal(t, 33.33, TechnicalAccuracy("docker", []string{"docker", "helm", "istio"}))
}

func TestCompletenessScore(t *testing.T) {
	s := newTestScorer(0.5)
	ctx := context.Background()
	expected := types.StringPtr("We moved services to containers and automated deployment.")

	assert.Equal(t, 0.0, s.CompletenessScore(ctx, "", expected, []string{"a"}))
	assert.Equal(t, 50.0, s.CompletenessScore(ctx, clearAnswer, nil, nil))
	assert.Equal(t, 50.0, s.CompletenessScore(ctx, clearAnswer, nil, []string{"billing", "terraform"}))
	// share 0.5*0.6 + similarity 0.5*0.4
	assert.Equal(t, 50.0, s.CompletenessScore(ctx, clearAnswer, expected, []string{"billing", "terraform"}))
	// similarity 0.5*0.4
	assert.Equal(t, 20.0, s.CompletenessScore(ctx, clearAnswer, expected, nil))
	assert.Equal(t, 50.0, s.CompletenessScore(ctx, clearAnswer, types.StringPtr("  "), nil))
}

func TestAnalyzeResponse_NoSpec(t *testing.T) {
	s := newTestScorer(0.91)

	analysis := s.AnalyzeResponse(context.Background(), "Tell me about a migration.", clearAnswer)
	require.NotNil(t, analysis)

	assert.Equal(t, types.DefaultCategory, analysis.Category)
	assert.Equal(t, 91.0, analysis.RelevanceScore)
	assert.Equal(t, 50.0, analysis.CompletenessScore)
	assert.Equal(t, 100.0, analysis.ClarityScore)
	assert.Equal(t, 50.0, analysis.TechnicalAccuracy)
	// (91*0.4 + 50*0.3 + 100*0.15 + 50*0.15) / 100
	assert.Equal(t, 0.74, analysis.OverallScore)
	assert.Equal(t, "Your answer was highly relevant to the question. "+
		"Your answer could be more complete with additional details. "+
		"Your answer was clear and easy to understand. "+
		"Consider reviewing the technical aspects of your answer for accuracy.", analysis.Feedback)
}

func TestAnalyzeResponse_WithSpec(t *testing.T) {
	spec := types.QuestionSpec{
		Question: "Tell me about a migration.",
		Keywords: []string{"Kubernetes", "billing", "rollback", "monitoring"},
		Category: types.StringPtr("Technical"),
	}
	s := newTestScorer(0.5, spec)

	analysis := s.AnalyzeResponse(context.Background(), spec.Question, clearAnswer)
	require.NotNil(t, analysis)

	assert.Equal(t, "Technical", analysis.Category)
	assert.Equal(t, 50.0, analysis.CompletenessScore)
	assert.Equal(t, 50.0, analysis.TechnicalAccuracy)
	assert.Contains(t, analysis.Feedback, "Consider addressing these points in your answer: Kubernetes, billing, rollback...")
}

func TestAnalyzeResponse_Empty(t *testing.T) {
	s := newTestScorer(0.5)
	assert.Nil(t, s.AnalyzeResponse(context.Background(), "", clearAnswer))
	assert.Nil(t, s.AnalyzeResponse(context.Background(), "Question?", "   "))
}

func TestAnalyzeResponse_UnavailableService(t *testing.T) {
	s := NewScorer(nil, relevance.NewScorer(linguistic.Unavailable{}))

	analysis := s.AnalyzeResponse(context.Background(), "Tell me about a migration.", clearAnswer)
	require.NotNil(t, analysis)
	assert.Equal(t, 0.0, analysis.RelevanceScore)
	assert.Equal(t, 50.0, analysis.CompletenessScore)
	assert.Equal(t, 100.0, analysis.ClarityScore)
	assert.Equal(t, 50.0, analysis.TechnicalAccuracy)
}

func TestAnalyzeInterview_Empty(t *testing.T) {
	s := newTestScorer(0.5)
	assert.Nil(t, s.AnalyzeInterview(context.Background(), nil))
	assert.Nil(t, s.AnalyzeInterview(context.Background(), []types.QAPair{{Question: "Q?"}, {Answer: "A."}}))
}

func TestAnalyzeInterview_SingleResponse(t *testing.T) {
	s := newTestScorer(0.7)

	summary := s.AnalyzeInterview(context.Background(), []types.QAPair{{Question: "Tell me about a migration.", Answer: clearAnswer}})
	require.NotNil(t, summary)
	require.Len(t, summary.DetailedResults, 1)

	only := summary.DetailedResults[0]
	assert.Equal(t, 1, summary.QuestionCount)
	assert.Equal(t, only.OverallScore, summary.OverallScore)
	assert.Equal(t, only.RelevanceScore, summary.AverageScores.Relevance)
	assert.Equal(t, only.CompletenessScore, summary.AverageScores.Completeness)
	assert.Equal(t, only.ClarityScore, summary.AverageScores.Clarity)
	assert.Equal(t, only.TechnicalAccuracy, summary.AverageScores.TechnicalAccuracy)
	assert.Equal(t, map[string]float64{types.DefaultCategory: only.OverallScore}, summary.CategoryScores)
}

func TestAnalyzeInterview_Categories(t *testing.T) {
	s := newTestScorer(0.5,
		types.QuestionSpec{Question: "Q1", Category: types.StringPtr("Technical")},
		types.QuestionSpec{Question: "Q2", Category: types.StringPtr("Technical")},
		types.QuestionSpec{Question: "Q3", Category: types.StringPtr("Behavioral")},
	)

	summary := s.AnalyzeInterview(context.Background(), []types.QAPair{
		{Question: "Q1", Answer: clearAnswer},
		{Question: "Q2", Answer: "Yes."},
		{Question: "", Answer: "skipped"},
		{Question: "Q3", Answer: clearAnswer},
	})
	require.NotNil(t, summary)

	assert.Equal(t, 3, summary.QuestionCount)
	assert.Equal(t, []string{"Q1", "Q2", "Q3"}, []string{
		summary.DetailedResults[0].Question,
		summary.DetailedResults[1].Question,
		summary.DetailedResults[2].Question,
	})
	assert.Len(t, summary.CategoryScores, 2)
	assert.Contains(t, summary.CategoryScores, "Technical")
	assert.Contains(t, summary.CategoryScores, "Behavioral")
}

func TestSummarize_Rounding(t *testing.T) {
	summary := Summarize([]types.InterviewResponseAnalysis{
		{OverallScore: 0.5, RelevanceScore: 10, CompletenessScore: 20, ClarityScore: 70, TechnicalAccuracy: 50},
		{OverallScore: 0.6, RelevanceScore: 20, CompletenessScore: 20, ClarityScore: 100, TechnicalAccuracy: 50},
		{OverallScore: 0.6, RelevanceScore: 20, CompletenessScore: 30, ClarityScore: 100, TechnicalAccuracy: 60},
	})
	require.NotNil(t, summary)
	assert.Equal(t, 0.57, summary.OverallScore)
	assert.Equal(t, 16.67, summary.AverageScores.Relevance)
	assert.Equal(t, 23.33, summary.AverageScores.Completeness)
	assert.Equal(t, 90.0, summary.AverageScores.Clarity)
	assert.Equal(t, 53.33, summary.AverageScores.TechnicalAccuracy)
	assert.Equal(t, map[string]float64{types.DefaultCategory: 0.57}, summary.CategoryScores)

	assert.Nil(t, Summarize(nil))
}

func TestWeights_Validate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())
	require.Error(t, Weights{Relevance: 1, Completeness: 1}.Validate())
	require.Error(t, Weights{Relevance: -1, Completeness: 2}.Validate())
}
