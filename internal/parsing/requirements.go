package parsing

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jonathan/assessment-engine/internal/llm"
	"github.com/jonathan/assessment-engine/internal/prompts"
	"github.com/jonathan/assessment-engine/internal/schemas"
	"github.com/jonathan/assessment-engine/internal/types"
)

// ExtractRequirements asks the model to split a job description into required and
// preferred skills. The response is validated against the job requirement schema.
func ExtractRequirements(ctx context.Context, client llm.Client, text string) (*types.JobRequirement, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Message: "job description is empty"}
	}

	prompt, err := prompts.Render(prompts.ExtractJobRequirement, map[string]string{"JobText": text})
	if err != nil {
		return nil, &ParseError{Message: "failed to build job requirement prompt", Cause: err}
	}

	// Use TierLite for simple extraction
	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierLite)
	if err != nil {
		return nil, &APICallError{
			Message: "failed to extract job requirements",
			Cause:   err,
		}
	}

	job, err := parseRequirementResponse(responseText)
	if err != nil {
		return nil, err
	}

	job.Description = text
	if job.Title == "" {
		job.Title = ExtractTitle(text)
	}
	job.RequiredSkills = dedupeSkills(job.RequiredSkills)
	job.PreferredSkills = dedupeSkills(job.PreferredSkills)
	return job, nil
}

// parseRequirementResponse parses and validates the model response.
func parseRequirementResponse(responseText string) (*types.JobRequirement, error) {
	responseText = llm.CleanJSONBlock(responseText)

	if err := schemas.Validate(schemas.JobRequirementDraft, []byte(responseText)); err != nil {
		return nil, &ParseError{
			Message: "model response does not match the job requirement schema",
			Cause:   err,
		}
	}

	var job types.JobRequirement
	if err := json.Unmarshal([]byte(responseText), &job); err != nil {
		return nil, &ParseError{
			Message: "failed to parse JSON response",
			Cause:   err,
		}
	}
	return &job, nil
}

// dedupeSkills trims skills and drops blanks and case-insensitive duplicates.
func dedupeSkills(skills []string) []string {
	result := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.TrimSpace(skill)
		key := strings.ToLower(skill)
		if skill == "" || seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, skill)
	}
	return result
}
