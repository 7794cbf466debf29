package types

import "github.com/go-playground/validator/v10"

// DefaultCategory is the category assigned to questions without one.
const DefaultCategory = "General"

// QuestionSpec describes what a good answer to a question contains.
type QuestionSpec struct {
	Question       string   `json:"question" yaml:"question" validate:"required"`
	ExpectedAnswer *string  `json:"expected_answer,omitempty" yaml:"expected_answer,omitempty"`
	Keywords       []string `json:"keywords" yaml:"keywords" validate:"dive,required"`
	Category       *string  `json:"category,omitempty" yaml:"category,omitempty"`
}

// CategoryOrDefault returns the question category, or DefaultCategory when unset.
func (q *QuestionSpec) CategoryOrDefault() string {
	if q == nil || q.Category == nil || *q.Category == "" {
		return DefaultCategory
	}
	return *q.Category
}

// Validate validates the QuestionSpec using the validator.
func (q *QuestionSpec) Validate() error {
	validate := validator.New()
	return validate.Struct(q)
}

// QAPair is one interview question with the candidate's answer.
type QAPair struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// InterviewResponseAnalysis is the scored result for one answered question.
type InterviewResponseAnalysis struct {
	Question          string  `json:"question"`
	Category          string  `json:"category"`
	Answer            string  `json:"answer"`
	OverallScore      float64 `json:"overall_score"`
	RelevanceScore    float64 `json:"relevance_score"`
	CompletenessScore float64 `json:"completeness_score"`
	ClarityScore      float64 `json:"clarity_score"`
	TechnicalAccuracy float64 `json:"technical_accuracy"`
	Feedback          string  `json:"feedback"`
}

// DimensionScores holds one value per interview scoring dimension.
type DimensionScores struct {
	Relevance         float64 `json:"relevance"`
	Completeness      float64 `json:"completeness"`
	Clarity           float64 `json:"clarity"`
	TechnicalAccuracy float64 `json:"technical_accuracy"`
}

// InterviewSummary aggregates the analyses of a whole interview.
type InterviewSummary struct {
	OverallScore    float64                     `json:"overall_score"`
	AverageScores   DimensionScores             `json:"average_scores"`
	CategoryScores  map[string]float64          `json:"category_scores"`
	QuestionCount   int                         `json:"question_count"`
	DetailedResults []InterviewResponseAnalysis `json:"detailed_results"`
}

// InterviewRequest is the body accepted for interview analysis.
type InterviewRequest struct {
	Responses []QAPair `json:"responses" validate:"required,min=1"`
}

// Validate validates the InterviewRequest using the validator.
func (r *InterviewRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
