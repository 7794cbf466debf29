// Package parsing turns free-text job descriptions into JobRequirements, either with
// keyword heuristics or with a generative model.
package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/assessment-engine/internal/types"
)

var skillSectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(?:skills|requirements|qualifications)(?:[:\s]*)([^.]*)`),
	regexp.MustCompile(`(?i)(?:required|preferred)(?:[:\s]*)([^.]*)`),
}

// ExtractTitle returns the first non-empty line of text.
func ExtractTitle(text string) string {
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}

// ExtractSkillPhrases collects the phrases following skills, requirements,
// qualifications, required or preferred markers up to the next period. A captured
// span is split on '-' when it contains one, otherwise on ','. Results are trimmed and
// deduplicated in first-seen order.
func ExtractSkillPhrases(text string) []string {
	skills := make([]string, 0)
	seen := make(map[string]bool)

	for _, pattern := range skillSectionPatterns {
		for _, match := range pattern.FindAllStringSubmatch(text, -1) {
			for _, item := range splitSkillSpan(match[1]) {
				if !seen[item] {
					seen[item] = true
					skills = append(skills, item)
				}
			}
		}
	}
	return skills
}

func splitSkillSpan(span string) []string {
	separator := ","
	if strings.Contains(span, "-") {
		separator = "-"
	}

	var items []string
	for _, part := range strings.Split(span, separator) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		item := strings.Trim(strings.TrimSpace(part), "- ")
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}

// ParseJobDescription builds a JobRequirement from a raw job description. The title
// is the first non-empty line and the extracted skill phrases become required skills.
func ParseJobDescription(text string) (*types.JobRequirement, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &ParseError{Message: "job description is empty"}
	}

	return &types.JobRequirement{
		Title:           ExtractTitle(text),
		Description:     text,
		RequiredSkills:  ExtractSkillPhrases(text),
		PreferredSkills: []string{},
	}, nil
}
