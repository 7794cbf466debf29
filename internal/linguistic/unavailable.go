package linguistic

import (
	"context"
	"regexp"
	"strings"
)

var (
	fallbackTokenPattern    = regexp.MustCompile(`[\p{L}\p{N}]+(?:['+#.\-][\p{L}\p{N}]+)*[+#]*`)
	fallbackSentencePattern = regexp.MustCompile(`[.!?]+(?:\s+|$)`)
)

// Unavailable is the Service used when no language model could be loaded.
// Similarity is always 0 and no entities are reported; tokenization, sentence
// splitting and stopwords fall back to simple rules so extraction keeps working.
type Unavailable struct{}

// Available always reports false.
func (Unavailable) Available() bool { return false }

// Tokenize splits text into word tokens.
func (Unavailable) Tokenize(text string) []string {
	return fallbackTokenPattern.FindAllString(text, -1)
}

// SplitSentences splits text on line breaks and after sentence terminators.
// Terminators stay with their sentence.
func (Unavailable) SplitSentences(text string) []string {
	var sentences []string
	for _, line := range strings.Split(text, "\n") {
		start := 0
		for _, loc := range fallbackSentencePattern.FindAllStringIndex(line, -1) {
			sentences = appendSentence(sentences, line[start:loc[1]])
			start = loc[1]
		}
		sentences = appendSentence(sentences, line[start:])
	}
	return sentences
}

func appendSentence(sentences []string, s string) []string {
	if s = strings.TrimSpace(s); s != "" {
		return append(sentences, s)
	}
	return sentences
}

// Lemmatize returns the token unchanged.
func (Unavailable) Lemmatize(token string) string { return token }

// IsStopword reports English stopwords.
func (Unavailable) IsStopword(token string) bool {
	return IsEnglishStopword(strings.ToLower(token))
}

// NamedEntities reports nothing.
func (Unavailable) NamedEntities(context.Context, string) Entities { return Entities{} }

// Similarity always returns 0.
func (Unavailable) Similarity(context.Context, string, string) float64 { return 0 }
