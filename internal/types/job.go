package types

import "github.com/go-playground/validator/v10"

// JobRequirement describes the job a resume is scored against.
type JobRequirement struct {
	Title           string   `json:"title,omitempty" yaml:"title,omitempty"`
	Description     string   `json:"description" yaml:"description" validate:"required"`
	RequiredSkills  []string `json:"required_skills" yaml:"required_skills" validate:"dive,required"`
	PreferredSkills []string `json:"preferred_skills" yaml:"preferred_skills" validate:"dive,required"`
}

// Validate validates the JobRequirement using the validator.
func (j *JobRequirement) Validate() error {
	validate := validator.New()
	return validate.Struct(j)
}
