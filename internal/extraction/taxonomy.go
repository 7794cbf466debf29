package extraction

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/jonathan/assessment-engine/internal/logging"
	"go.uber.org/zap"
)

// skillColumn is the CSV header holding skill names.
const skillColumn = "skill"

var defaultSkills = []string{
	"python", "java", "c++", "c#", "javascript", "typescript", "php", "swift", "kotlin",
	"react", "angular", "vue", "node.js", "django", "flask", "spring", "express",
	"html", "css", "bootstrap", "jquery", "rest api", "graphql",
	"sql", "mysql", "postgresql", "mongodb", "oracle", "sqlite", "nosql",
	"aws", "azure", "google cloud", "docker", "kubernetes", "jenkins", "terraform",
	"git", "github", "gitlab", "bitbucket", "jira", "confluence",
	"machine learning", "deep learning", "nlp", "computer vision", "ai",
	"tensorflow", "pytorch", "keras", "scikit-learn", "pandas", "numpy",
	"data analysis", "data science", "data visualization", "tableau", "power bi",
	"agile", "scrum", "kanban", "waterfall", "sdlc",
	"devops", "ci/cd", "test automation", "unit testing",
}

// TaxonomyLoadError reports a skills file that could not be used.
type TaxonomyLoadError struct {
	Path  string
	Cause error
}

func (e *TaxonomyLoadError) Error() string {
	return fmt.Sprintf("failed to load skills file %s: %v", e.Path, e.Cause)
}

func (e *TaxonomyLoadError) Unwrap() error {
	return e.Cause
}

// SkillTaxonomy is an ordered set of lower-cased skill names with precompiled
// whole-word patterns. It is immutable after construction.
type SkillTaxonomy struct {
	skills   []string
	patterns []*regexp.Regexp
}

// NewSkillTaxonomy builds a taxonomy from skills, lower-casing and trimming each entry
// and dropping blanks and duplicates while keeping the first occurrence order.
func NewSkillTaxonomy(skills []string) *SkillTaxonomy {
	t := &SkillTaxonomy{}
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		skill = strings.ToLower(strings.TrimSpace(skill))
		if skill == "" || seen[skill] {
			continue
		}
		seen[skill] = true
		t.skills = append(t.skills, skill)
		t.patterns = append(t.patterns, regexp.MustCompile(`\b`+regexp.QuoteMeta(skill)+`\b`))
	}
	return t
}

// DefaultTaxonomy returns the built-in skill list.
func DefaultTaxonomy() *SkillTaxonomy {
	return NewSkillTaxonomy(defaultSkills)
}

// Skills returns a copy of the taxonomy entries in order.
func (t *SkillTaxonomy) Skills() []string {
	return append([]string(nil), t.skills...)
}

// Len returns the number of skills in the taxonomy.
func (t *SkillTaxonomy) Len() int {
	return len(t.skills)
}

// Match returns the taxonomy entries that occur in text as whole words or phrases,
// in taxonomy order. Matching is case-insensitive.
func (t *SkillTaxonomy) Match(text string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	for i, pattern := range t.patterns {
		if pattern.MatchString(lower) {
			found = append(found, t.skills[i])
		}
	}
	return found
}

// ReadTaxonomyCSV reads skill names from the "skill" column of a CSV document.
func ReadTaxonomyCSV(r io.Reader) (*SkillTaxonomy, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	column := -1
	for i, name := range header {
		if strings.EqualFold(strings.TrimSpace(name), skillColumn) {
			column = i
			break
		}
	}
	if column < 0 {
		return nil, fmt.Errorf("missing %q column", skillColumn)
	}

	var skills []string
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row: %w", err)
		}
		if column < len(row) {
			skills = append(skills, row[column])
		}
	}

	taxonomy := NewSkillTaxonomy(skills)
	if taxonomy.Len() == 0 {
		return nil, errors.New("no skills found")
	}
	return taxonomy, nil
}

// LoadTaxonomy reads a skills CSV from path.
func LoadTaxonomy(path string) (*SkillTaxonomy, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &TaxonomyLoadError{Path: path, Cause: err}
	}
	defer func() { _ = f.Close() }()

	taxonomy, err := ReadTaxonomyCSV(f)
	if err != nil {
		return nil, &TaxonomyLoadError{Path: path, Cause: err}
	}
	return taxonomy, nil
}

// LoadTaxonomyCSV loads the skills CSV at path, falling back to the default taxonomy
// when path is empty or the file cannot be used. Failures are logged, not returned.
func LoadTaxonomyCSV(path string, logger *zap.Logger) *SkillTaxonomy {
	if path == "" {
		return DefaultTaxonomy()
	}

	logger = logging.Component(logger, "extraction")
	taxonomy, err := LoadTaxonomy(path)
	if err != nil {
		logger.Error("error loading skills file, using default skills", zap.Error(err))
		return DefaultTaxonomy()
	}

	logger.Debug("loaded skills file", zap.String("path", path), zap.Int("skills", taxonomy.Len()))
	return taxonomy
}
