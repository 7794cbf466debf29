// Package relevance scores how semantically close two blocks of text are.
package relevance

import (
	"context"
	"regexp"
	"strings"

	"github.com/jonathan/assessment-engine/internal/linguistic"
	"github.com/jonathan/assessment-engine/internal/logging"
	"go.uber.org/zap"
)

var (
	urlPattern         = regexp.MustCompile(`https?://\S+|www\.\S+`)
	emailPattern       = regexp.MustCompile(`\S+@\S+`)
	phonePattern       = regexp.MustCompile(`\b(?:\+\d{1,2}\s)?\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4}\b`)
	punctuationPattern = regexp.MustCompile(`[^\p{L}\p{N}_\s\p{Z}]`)
	digitPattern       = regexp.MustCompile(`\p{Nd}+`)
	whitespacePattern  = regexp.MustCompile(`[\s\p{Z}]+`)
)

// Clean lowercases text and removes URLs, emails, phone numbers, punctuation and
// digits, collapsing the remaining whitespace.
func Clean(text string) string {
	text = strings.ToLower(text)
	text = urlPattern.ReplaceAllString(text, "")
	text = emailPattern.ReplaceAllString(text, "")
	text = phonePattern.ReplaceAllString(text, "")
	text = punctuationPattern.ReplaceAllString(text, "")
	text = digitPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(whitespacePattern.ReplaceAllString(text, " "))
}

// Preprocess cleans text, drops stopwords and lemmatizes the remaining tokens.
// Stopword removal and lemmatization run on the cleaned text.
func Preprocess(svc linguistic.Service, text string) string {
	cleaned := Clean(text)
	if cleaned == "" {
		return ""
	}

	tokens := svc.Tokenize(cleaned)
	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token == "" || svc.IsStopword(token) {
			continue
		}
		if lemma := svc.Lemmatize(token); lemma != "" {
			kept = append(kept, lemma)
		}
	}
	return strings.Join(kept, " ")
}

// Scorer computes similarity in [0,1] between two texts.
type Scorer struct {
	svc    linguistic.Service
	logger *zap.Logger
}

// Option configures a Scorer.
type Option func(*Scorer)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Scorer) {
		s.logger = logger
	}
}

// NewScorer creates a Scorer backed by svc. A nil svc behaves as an unavailable service.
func NewScorer(svc linguistic.Service, opts ...Option) *Scorer {
	if svc == nil {
		svc = linguistic.Unavailable{}
	}
	s := &Scorer{svc: svc}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.Component(s.logger, "relevance")
	return s
}

// Service returns the linguistic service backing the scorer.
func (s *Scorer) Service() linguistic.Service {
	return s.svc
}

// Score returns the similarity of a and b. It is 0 when the service is unavailable
// or either text is empty after preprocessing.
func (s *Scorer) Score(ctx context.Context, a, b string) float64 {
	if !s.svc.Available() {
		return 0
	}

	processedA := Preprocess(s.svc, a)
	processedB := Preprocess(s.svc, b)
	if processedA == "" || processedB == "" {
		return 0
	}

	similarity := linguistic.Clamp01(s.svc.Similarity(ctx, processedA, processedB))
	s.logger.Debug("scored relevance",
		zap.String("a", logging.TruncateForLog(processedA, 60)),
		zap.String("b", logging.TruncateForLog(processedB, 60)),
		zap.Float64("similarity", similarity),
	)
	return similarity
}
