package linguistic

import (
	"context"
	"math"
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/kljensen/snowball/english"
	"go.uber.org/zap"
)

// Local is an in-process Service backed by prose for tokenization, segmentation and
// named entities, and the Snowball English stemmer for lemmatization. Similarity is
// the cosine of term-frequency vectors.
type Local struct {
	logger *zap.Logger
}

// NewLocal creates a Local service.
func NewLocal(logger *zap.Logger) *Local {
	return &Local{logger: logging.Component(logger, "linguistic.local")}
}

// Available always reports true.
func (l *Local) Available() bool { return true }

// Tokenize returns the word tokens of text, dropping punctuation-only tokens.
func (l *Local) Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	doc, err := prose.NewDocument(text,
		prose.WithTagging(false),
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	)
	if err != nil {
		l.logger.Warn("tokenization failed, using fallback", zap.Error(err))
		return Unavailable{}.Tokenize(text)
	}

	tokens := make([]string, 0, len(doc.Tokens()))
	for _, tok := range doc.Tokens() {
		if hasWordRune(tok.Text) {
			tokens = append(tokens, tok.Text)
		}
	}
	return tokens
}

// SplitSentences segments each non-blank line of text into sentences.
func (l *Local) SplitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		doc, err := prose.NewDocument(line,
			prose.WithTagging(false),
			prose.WithExtraction(false),
		)
		if err != nil {
			l.logger.Warn("sentence segmentation failed, using fallback", zap.Error(err))
			sentences = append(sentences, Unavailable{}.SplitSentences(line)...)
			continue
		}

		for _, sent := range doc.Sentences() {
			if s := strings.TrimSpace(sent.Text); s != "" {
				sentences = append(sentences, s)
			}
		}
	}
	return sentences
}

// Lemmatize reduces a token to its Snowball English stem.
func (l *Local) Lemmatize(token string) string {
	if token == "" {
		return token
	}
	return english.Stem(token, false)
}

// IsStopword reports English stopwords.
func (l *Local) IsStopword(token string) bool {
	return IsEnglishStopword(strings.ToLower(token))
}

// NamedEntities returns the entities found in text, deduplicated within each label.
func (l *Local) NamedEntities(_ context.Context, text string) Entities {
	entities := Entities{}
	if strings.TrimSpace(text) == "" {
		return entities
	}

	doc, err := prose.NewDocument(text)
	if err != nil {
		l.logger.Warn("entity extraction failed", zap.Error(err))
		return entities
	}

	for _, ent := range doc.Entities() {
		value := strings.TrimSpace(ent.Text)
		if value == "" {
			continue
		}
		label := serviceLabel(ent.Label)
		entities[label] = appendUnique(entities[label], value)
	}
	return entities
}

// proseLabels maps prose NER labels onto the service labels. Unlisted labels are kept.
var proseLabels = map[string]string{
	"ORGANIZATION": LabelOrg,
	"FACILITY":     LabelOrg,
	"LOCATION":     LabelLocation,
	"GSP":          LabelLocation,
}

func serviceLabel(label string) string {
	if mapped, ok := proseLabels[label]; ok {
		return mapped
	}
	return label
}

// Similarity returns the cosine similarity of the term-frequency vectors of a and b.
func (l *Local) Similarity(_ context.Context, a, b string) float64 {
	va := termFrequencies(l.Tokenize(strings.ToLower(a)))
	vb := termFrequencies(l.Tokenize(strings.ToLower(b)))
	return Clamp01(sparseCosine(va, vb))
}

func termFrequencies(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}
	return tf
}

func sparseCosine(a, b map[string]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for term, x := range a {
		normA += x * x
		if y, ok := b[term]; ok {
			dot += x * y
		}
	}
	for _, y := range b {
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

func hasWordRune(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
