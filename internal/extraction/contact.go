package extraction

import (
	"regexp"

	"github.com/jonathan/assessment-engine/internal/types"
)

var (
	emailPattern    = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Z|a-z]{2,}\b`)
	phonePattern    = regexp.MustCompile(`\b(?:\+\d{1,2}\s)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	linkedInPattern = regexp.MustCompile(`linkedin\.com/in/[\w-]+`)
)

// ExtractContactInfo returns the first email, phone number and LinkedIn profile found
// in text. Fields without a match are left nil.
func ExtractContactInfo(text string) types.ContactInfo {
	return types.ContactInfo{
		Email:    firstMatch(emailPattern, text),
		Phone:    firstMatch(phonePattern, text),
		LinkedIn: firstMatch(linkedInPattern, text),
	}
}

func firstMatch(pattern *regexp.Regexp, text string) *string {
	return types.StringPtr(pattern.FindString(text))
}
