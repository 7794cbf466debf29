package interview

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/jonathan/assessment-engine/internal/types"
	"gopkg.in/yaml.v3"
)

// BankLoadError reports a question bank file that could not be read or parsed.
type BankLoadError struct {
	Path  string
	Cause error
}

func (e *BankLoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to load question bank: %v", e.Cause)
	}
	return fmt.Sprintf("failed to load question bank %s: %v", e.Path, e.Cause)
}

func (e *BankLoadError) Unwrap() error {
	return e.Cause
}

// bankFile is the YAML layout of a question bank.
type bankFile struct {
	Questions []types.QuestionSpec `yaml:"questions"`
}

// QuestionBank maps question text to its QuestionSpec. Question text is unique:
// adding an existing question replaces its spec.
//
// A QuestionBank is not safe for concurrent mutation. Callers that share a bank
// between scoring and editing must serialize access.
type QuestionBank struct {
	questions map[string]types.QuestionSpec
}

// NewQuestionBank creates a bank holding specs. Later duplicates overwrite earlier ones.
func NewQuestionBank(specs ...types.QuestionSpec) *QuestionBank {
	b := &QuestionBank{questions: make(map[string]types.QuestionSpec, len(specs))}
	for _, spec := range specs {
		b.Add(spec)
	}
	return b
}

// Add stores spec under its question text, replacing any existing entry.
// Specs with blank question text are ignored.
func (b *QuestionBank) Add(spec types.QuestionSpec) {
	spec.Question = strings.TrimSpace(spec.Question)
	if spec.Question == "" {
		return
	}
	if spec.Keywords == nil {
		spec.Keywords = []string{}
	}
	b.questions[spec.Question] = spec
}

// Remove deletes question from the bank. Removing an unknown question is a no-op.
func (b *QuestionBank) Remove(question string) {
	delete(b.questions, strings.TrimSpace(question))
}

// Get returns the spec for question.
func (b *QuestionBank) Get(question string) (types.QuestionSpec, bool) {
	spec, ok := b.questions[strings.TrimSpace(question)]
	return spec, ok
}

// Questions returns the question texts in sorted order.
func (b *QuestionBank) Questions() []string {
	questions := make([]string, 0, len(b.questions))
	for q := range b.questions {
		questions = append(questions, q)
	}
	sort.Strings(questions)
	return questions
}

// Specs returns every spec ordered by question text.
func (b *QuestionBank) Specs() []types.QuestionSpec {
	specs := make([]types.QuestionSpec, 0, len(b.questions))
	for _, q := range b.Questions() {
		specs = append(specs, b.questions[q])
	}
	return specs
}

// Categories returns the distinct categories of the bank in sorted order.
func (b *QuestionBank) Categories() []string {
	return CategoriesOf(b.Specs())
}

// CategoriesOf returns the distinct categories of specs in sorted order.
func CategoriesOf(specs []types.QuestionSpec) []string {
	seen := make(map[string]bool)
	for _, spec := range specs {
		seen[spec.CategoryOrDefault()] = true
	}
	categories := make([]string, 0, len(seen))
	for c := range seen {
		categories = append(categories, c)
	}
	sort.Strings(categories)
	return categories
}

// Len returns the number of questions in the bank.
func (b *QuestionBank) Len() int {
	return len(b.questions)
}

// ParseBank decodes a YAML question bank.
func ParseBank(data []byte) (*QuestionBank, error) {
	return parseBank("", data)
}

func parseBank(path string, data []byte) (*QuestionBank, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &BankLoadError{Path: path, Cause: err}
	}
	for i := range file.Questions {
		if err := file.Questions[i].Validate(); err != nil {
			return nil, &BankLoadError{Path: path, Cause: fmt.Errorf("question %d: %w", i+1, err)}
		}
	}
	return NewQuestionBank(file.Questions...), nil
}

// LoadBank reads a YAML question bank from path.
func LoadBank(path string) (*QuestionBank, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &BankLoadError{Path: path, Cause: err}
	}

	return parseBank(path, data)
}

// WriteBank encodes the bank as YAML.
func (b *QuestionBank) WriteBank(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(bankFile{Questions: b.Specs()}); err != nil {
		return fmt.Errorf("failed to encode question bank: %w", err)
	}
	return enc.Close()
}

// SaveBank writes the bank as YAML to path.
func (b *QuestionBank) SaveBank(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create question bank file: %w", err)
	}
	if err := b.WriteBank(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
