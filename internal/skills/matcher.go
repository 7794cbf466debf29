// Package skills compares a candidate's skills with a job's required and preferred skills.
package skills

import (
	"strings"

	"github.com/jonathan/assessment-engine/internal/score"
	"github.com/jonathan/assessment-engine/internal/types"
)

// Default weights for the skill requirement levels.
const (
	DefaultRequiredWeight  = 0.4
	DefaultPreferredWeight = 0.2
)

// Weights are the relative weights of required and preferred skill matches.
type Weights struct {
	Required  float64 `mapstructure:"required" json:"required" yaml:"required"`
	Preferred float64 `mapstructure:"preferred" json:"preferred" yaml:"preferred"`
}

// DefaultWeights returns the default required/preferred weights.
func DefaultWeights() Weights {
	return Weights{Required: DefaultRequiredWeight, Preferred: DefaultPreferredWeight}
}

// Total returns the sum of both weights.
func (w Weights) Total() float64 {
	return w.Required + w.Preferred
}

// Matcher scores skill overlap with fixed weights.
type Matcher struct {
	weights Weights
}

// NewMatcher creates a Matcher. Zero weights fall back to the defaults.
func NewMatcher(weights Weights) *Matcher {
	if weights.Total() <= 0 {
		weights = DefaultWeights()
	}
	return &Matcher{weights: weights}
}

// Weights returns the weights used by the matcher.
func (m *Matcher) Weights() Weights {
	return m.weights
}

// Match compares candidate skills with the required and preferred lists.
// Comparison is case-insensitive exact membership. Matched entries are the lower-cased
// requirement strings in requirement order. An empty candidate list scores 0.
func (m *Matcher) Match(candidate, required, preferred []string) types.SkillsMatchResult {
	if len(candidate) == 0 {
		return types.SkillsMatchResult{
			Score:            0,
			MatchedRequired:  []string{},
			MatchedPreferred: []string{},
		}
	}

	candidateSet := make(map[string]bool, len(candidate))
	for _, skill := range candidate {
		candidateSet[strings.ToLower(skill)] = true
	}

	matchedRequired := matchAgainst(candidateSet, required)
	matchedPreferred := matchAgainst(candidateSet, preferred)

	requiredMatch := score.Ratio(len(matchedRequired), len(required))
	preferredMatch := score.Ratio(len(matchedPreferred), len(preferred))

	weighted := (requiredMatch*m.weights.Required + preferredMatch*m.weights.Preferred) / m.weights.Total()

	return types.SkillsMatchResult{
		Score:                 score.Percent(weighted),
		MatchedRequired:       matchedRequired,
		MatchedPreferred:      matchedPreferred,
		RequiredMatchPercent:  score.Percent(requiredMatch),
		PreferredMatchPercent: score.Percent(preferredMatch),
	}
}

func matchAgainst(candidateSet map[string]bool, requirements []string) []string {
	matched := make([]string, 0, len(requirements))
	for _, skill := range requirements {
		lower := strings.ToLower(skill)
		if candidateSet[lower] {
			matched = append(matched, lower)
		}
	}
	return matched
}

// MissingRequired returns the required skills, in their original casing, whose
// lower-cased form is absent from matched.
func MissingRequired(required, matched []string) []string {
	matchedSet := make(map[string]bool, len(matched))
	for _, skill := range matched {
		matchedSet[strings.ToLower(skill)] = true
	}

	missing := make([]string, 0)
	for _, skill := range required {
		if !matchedSet[strings.ToLower(skill)] {
			missing = append(missing, skill)
		}
	}
	return missing
}
