// Package extraction turns raw resume text into structured resume records.
package extraction

import (
	"context"
	"strings"
	"time"

	"github.com/jonathan/assessment-engine/internal/linguistic"
	"github.com/jonathan/assessment-engine/internal/logging"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// Extractor builds ResumeRecords using a skill taxonomy and a linguistic service.
type Extractor struct {
	taxonomy *SkillTaxonomy
	svc      linguistic.Service
	logger   *zap.Logger
	now      func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTaxonomy sets the skill taxonomy. The default taxonomy is used otherwise.
func WithTaxonomy(taxonomy *SkillTaxonomy) Option {
	return func(e *Extractor) {
		if taxonomy != nil {
			e.taxonomy = taxonomy
		}
	}
}

// WithLogger sets the extractor logger.
func WithLogger(logger *zap.Logger) Option {
	return func(e *Extractor) {
		e.logger = logger
	}
}

// WithClock overrides the clock used for ParsedAt.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates an Extractor. A nil svc behaves as an unavailable service.
func NewExtractor(svc linguistic.Service, opts ...Option) *Extractor {
	if svc == nil {
		svc = linguistic.Unavailable{}
	}
	e := &Extractor{
		taxonomy: DefaultTaxonomy(),
		svc:      svc,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = logging.Component(e.logger, "extraction")
	return e
}

// Taxonomy returns the skill taxonomy used by the extractor.
func (e *Extractor) Taxonomy() *SkillTaxonomy {
	return e.taxonomy
}

// ExtractSkills returns the taxonomy skills mentioned in text.
func (e *Extractor) ExtractSkills(text string) []string {
	return e.taxonomy.Match(text)
}

// Extract parses text into a ResumeRecord. Blank text yields a record with empty lists
// and unset optional fields.
func (e *Extractor) Extract(ctx context.Context, filename, text string) types.ResumeRecord {
	record := types.ResumeRecord{
		Filename:      filename,
		Skills:        []string{},
		Education:     []string{},
		Experience:    []string{},
		Organizations: []string{},
		Locations:     []string{},
		ParsedAt:      e.now(),
	}

	if strings.TrimSpace(text) == "" {
		e.logger.Warn("no text extracted from resume", zap.String(logging.FieldFilename, filename))
		return record
	}

	e.logger.Info("parsing resume", zap.String(logging.FieldFilename, filename))

	record.ContactInfo = ExtractContactInfo(text)

	entities := e.svc.NamedEntities(ctx, text)
	if name, ok := entities.First(linguistic.LabelPerson); ok {
		record.Name = types.StringPtr(name)
	}
	record.Organizations = append(record.Organizations, entities[linguistic.LabelOrg]...)
	record.Locations = append(record.Locations, entities[linguistic.LabelLocation]...)

	record.Skills = e.ExtractSkills(text)
	record.Education = ExtractEducation(e.svc, text)
	record.Experience = ExtractExperience(e.svc, text)

	e.logger.Debug("parsed resume",
		zap.String(logging.FieldFilename, filename),
		zap.Int("skills", len(record.Skills)),
		zap.Int("education", len(record.Education)),
		zap.Int("experience", len(record.Experience)),
	)
	return record
}
