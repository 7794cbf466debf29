package extraction

import (
	"strings"

	"github.com/jonathan/assessment-engine/internal/linguistic"
)

var educationKeywords = []string{
	"bachelor", "master", "phd", "doctorate", "bs", "ms", "ba", "ma", "mba",
	"degree", "university", "college", "institute", "school",
}

var experienceKeywords = []string{
	"experience", "work", "employment", "job", "career",
	"position", "role", "title", "company", "employer",
	"worked", "working", "responsible", "responsibilities",
}

// ExtractEducation returns the sentences of text that mention an education keyword.
func ExtractEducation(svc linguistic.Service, text string) []string {
	return sentencesWithKeywords(svc, text, educationKeywords)
}

// ExtractExperience returns the sentences of text that mention an experience keyword.
func ExtractExperience(svc linguistic.Service, text string) []string {
	return sentencesWithKeywords(svc, text, experienceKeywords)
}

// sentencesWithKeywords keeps each trimmed sentence whose lower-cased text contains
// any keyword as a substring. A sentence may be kept by several sections.
func sentencesWithKeywords(svc linguistic.Service, text string, keywords []string) []string {
	matched := make([]string, 0)
	for _, sentence := range svc.SplitSentences(text) {
		lower := strings.ToLower(sentence)
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				matched = append(matched, strings.TrimSpace(sentence))
				break
			}
		}
	}
	return matched
}
