package interview

import (
	_ "embed"
	"fmt"

	"github.com/jonathan/assessment-engine/internal/types"
	"gopkg.in/yaml.v3"
)

//go:embed sample_questions.yaml
var sampleQuestionsYAML []byte

// SampleQuestions returns the built-in behavioral, technical and situational
// practice questions in file order. They carry a category but no keywords or
// expected answer: they are prompts for a mock interview, not scoring entries, and
// the engine never adds them to its question bank.
func SampleQuestions() []types.QuestionSpec {
	var file bankFile
	if err := yaml.Unmarshal(sampleQuestionsYAML, &file); err != nil {
		panic(fmt.Sprintf("invalid embedded sample questions: %v", err))
	}
	for i := range file.Questions {
		if file.Questions[i].Keywords == nil {
			file.Questions[i].Keywords = []string{}
		}
	}
	return file.Questions
}
