package types

// SkillsMatchResult reports how a candidate's skills overlap with the job's skill lists.
type SkillsMatchResult struct {
	Score                 float64  `json:"score"`
	MatchedRequired       []string `json:"matched_required"`
	MatchedPreferred      []string `json:"matched_preferred"`
	RequiredMatchPercent  float64  `json:"required_match_percent"`
	PreferredMatchPercent float64  `json:"preferred_match_percent"`
}

// ResumeAnalysis is the scored result for one resume against one job.
type ResumeAnalysis struct {
	Name                  string            `json:"name"`
	Filename              string            `json:"filename"`
	OverallScore          float64           `json:"overall_score"`
	SkillsMatch           SkillsMatchResult `json:"skills_match"`
	ExperienceScore       float64           `json:"experience_score"`
	EducationScore        float64           `json:"education_score"`
	Skills                []string          `json:"skills"`
	MissingRequiredSkills []string          `json:"missing_required_skills"`
	Rank                  int               `json:"rank,omitempty"`
}

// ResumeRanking is a batch of analyses sorted by overall score.
type ResumeRanking struct {
	Job      JobRequirement   `json:"job"`
	Analyses []ResumeAnalysis `json:"analyses"`
}
