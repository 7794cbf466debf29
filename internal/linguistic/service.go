// Package linguistic defines the language capabilities the scoring engine depends on
// (tokenization, sentence splitting, lemmatization, stopwords, named entities and
// semantic similarity) together with the implementations that provide them.
package linguistic

import (
	"context"
	"math"
)

// Entity labels reported by NamedEntities.
const (
	LabelPerson   = "PERSON"
	LabelOrg      = "ORG"
	LabelLocation = "GPE"
)

// Entities maps an entity label to the distinct entity strings found for it.
type Entities map[string][]string

// First returns the first entity recorded under label.
func (e Entities) First(label string) (string, bool) {
	values := e[label]
	if len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// Service is the language capability consumed by extraction and relevance scoring.
// Similarity must return a value in [0,1] and 0.0 when either text has no vector.
type Service interface {
	Available() bool
	Tokenize(text string) []string
	SplitSentences(text string) []string
	Lemmatize(token string) string
	IsStopword(token string) bool
	NamedEntities(ctx context.Context, text string) Entities
	Similarity(ctx context.Context, a, b string) float64
}

// Cosine returns the cosine similarity of two equal-length vectors.
// Zero-norm or mismatched vectors yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Clamp01 bounds v to [0,1].
func Clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// appendUnique appends value to values unless it is already present.
func appendUnique(values []string, value string) []string {
	for _, v := range values {
		if v == value {
			return values
		}
	}
	return append(values, value)
}
