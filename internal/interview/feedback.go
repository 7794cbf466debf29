package interview

import (
	"fmt"
	"strings"
)

// Dimension names an interview scoring dimension.
type Dimension string

// Scoring dimensions, in feedback order.
const (
	DimensionRelevance    Dimension = "relevance"
	DimensionCompleteness Dimension = "completeness"
	DimensionClarity      Dimension = "clarity"
	DimensionTechnical    Dimension = "technical_accuracy"
)

// maxKeywordHints is the number of keywords listed in completeness feedback.
const maxKeywordHints = 3

// FeedbackRule yields Message when a dimension score is at least Threshold.
type FeedbackRule struct {
	Dimension Dimension
	Threshold float64
	Message   string
}

// feedbackLadder holds the rules of one dimension, highest threshold first, and the
// message used when no rule applies.
type feedbackLadder struct {
	dimension Dimension
	rules     []FeedbackRule
	fallback  func(keywords []string) string
}

func fixedMessage(message string) func([]string) string {
	return func([]string) string { return message }
}

var feedbackLadders = []feedbackLadder{
	{
		dimension: DimensionRelevance,
		rules: []FeedbackRule{
			{DimensionRelevance, 80, "Your answer was highly relevant to the question."},
			{DimensionRelevance, 60, "Your answer was mostly relevant to the question."},
		},
		fallback: fixedMessage("Your answer could be more focused on the question asked."),
	},
	{
		dimension: DimensionCompleteness,
		rules: []FeedbackRule{
			{DimensionCompleteness, 80, "You provided a comprehensive answer covering the key points."},
			{DimensionCompleteness, 60, "Your answer covered many important aspects but could be more comprehensive."},
		},
		fallback: func(keywords []string) string {
			if len(keywords) == 0 {
				return "Your answer could be more complete with additional details."
			}
			if len(keywords) > maxKeywordHints {
				keywords = keywords[:maxKeywordHints]
			}
			return fmt.Sprintf("Consider addressing these points in your answer: %s...", strings.Join(keywords, ", "))
		},
	},
	{
		dimension: DimensionClarity,
		rules: []FeedbackRule{
			{DimensionClarity, 80, "Your answer was clear and easy to understand."},
			{DimensionClarity, 60, "Your answer was generally clear but could be more concise in some areas."},
		},
		fallback: fixedMessage("Try to express your thoughts more clearly and concisely."),
	},
	{
		dimension: DimensionTechnical,
		rules: []FeedbackRule{
			{DimensionTechnical, 80, "You demonstrated strong technical knowledge in your answer."},
			{DimensionTechnical, 60, "Your technical points were mostly accurate but could be strengthened."},
		},
		fallback: fixedMessage("Consider reviewing the technical aspects of your answer for accuracy."),
	},
}

// dimensionFeedback returns the message for one dimension score.
func dimensionFeedback(ladder feedbackLadder, value float64, keywords []string) string {
	for _, rule := range ladder.rules {
		if value >= rule.Threshold {
			return rule.Message
		}
	}
	return ladder.fallback(keywords)
}

// GenerateFeedback builds the feedback text for a set of scores. One sentence is
// produced per dimension in the order relevance, completeness, clarity, technical.
func GenerateFeedback(scores map[Dimension]float64, keywords []string) string {
	parts := make([]string, 0, len(feedbackLadders))
	for _, ladder := range feedbackLadders {
		parts = append(parts, dimensionFeedback(ladder, scores[ladder.dimension], keywords))
	}
	return strings.Join(parts, " ")
}
