package world

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Question is one Oracle prompt with its expected answer.
type Question struct {
	Prompt string `yaml:"question"`
	Answer string `yaml:"answer"`
}

// DefaultQuestions is the Oracle's built-in table.
var DefaultQuestions = []Question{
	{Prompt: "What is the capital of France?", Answer: "paris"},
	{Prompt: "What does DNA stand for?", Answer: "deoxyribonucleic acid"},
	{Prompt: "Name the largest planet in our solar system.", Answer: "jupiter"},
}

type questionFile struct {
	Questions []Question `yaml:"questions"`
}

// LoadQuestions decodes a YAML document of the form:
//
//	questions:
//	  - question: What is the capital of France?
//	    answer: paris
func LoadQuestions(r io.Reader) ([]Question, error) {
	var f questionFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if len(f.Questions) == 0 {
		return nil, fmt.Errorf("decode questions: no questions defined")
	}
	out := make([]Question, 0, len(f.Questions))
	for i, q := range f.Questions {
		q.Prompt = strings.TrimSpace(q.Prompt)
		q.Answer = strings.ToLower(strings.TrimSpace(q.Answer))
		if q.Prompt == "" || q.Answer == "" {
			return nil, fmt.Errorf("question %d: question and answer are required", i+1)
		}
		out = append(out, q)
	}
	return out, nil
}

// LoadQuestionsFile reads the table at path, or returns the defaults when
// path is empty.
func LoadQuestionsFile(path string) ([]Question, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultQuestions, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions: %w", err)
	}
	defer f.Close()
	return LoadQuestions(f)
}
