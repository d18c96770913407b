package quiz

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var defaultQuestionsYAML []byte

// ErrEmptyQuestionSet is a configuration error: a quiz needs at least one
// question.
var ErrEmptyQuestionSet = errors.New("question set is empty")

// Question is a single statement the user rates.
type Question struct {
	Text string `yaml:"text"`
}

// QuestionSet is an immutable ordered list of questions.
type QuestionSet struct {
	questions []Question
}

type questionFile struct {
	Questions []Question `yaml:"questions"`
}

// NewQuestionSet copies texts into a QuestionSet.
func NewQuestionSet(texts ...string) QuestionSet {
	qs := make([]Question, len(texts))
	for i, t := range texts {
		qs[i] = Question{Text: t}
	}
	return QuestionSet{questions: qs}
}

// DefaultQuestions returns the built-in 45-item questionnaire.
func DefaultQuestions() (QuestionSet, error) {
	return ParseQuestions(defaultQuestionsYAML)
}

// LoadQuestions reads a questionnaire YAML file.
func LoadQuestions(path string) (QuestionSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return QuestionSet{}, fmt.Errorf("read questions: %w", err)
	}
	return ParseQuestions(data)
}

// ParseQuestions decodes a questionnaire of the form
//
//	questions:
//	  - text: "..."
func ParseQuestions(data []byte) (QuestionSet, error) {
	var f questionFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return QuestionSet{}, fmt.Errorf("parse questions: %w", err)
	}
	for i, q := range f.Questions {
		if strings.TrimSpace(q.Text) == "" {
			return QuestionSet{}, fmt.Errorf("question %d has no text", i+1)
		}
	}
	if len(f.Questions) == 0 {
		return QuestionSet{}, ErrEmptyQuestionSet
	}
	return QuestionSet{questions: f.Questions}, nil
}

// Len returns the number of questions.
func (s QuestionSet) Len() int { return len(s.questions) }

// At returns the question at index i.
func (s QuestionSet) At(i int) Question { return s.questions[i] }

// Scale is the 1-5 agreement scale, indexed by value-1.
var Scale = [5]string{
	"Discordo totalmente",
	"Discordo",
	"Neutro",
	"Concordo",
	"Concordo totalmente",
}

const (
	MinAnswer = 1
	MaxAnswer = 5
)
