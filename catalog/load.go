package catalog

import (
	"SurveyBot/model"
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type file struct {
	Questions []questionEntry `yaml:"questions"`
	Messages  Messages        `yaml:"messages"`
}

type questionEntry struct {
	Column  string   `yaml:"column"`
	Prompt  string   `yaml:"prompt"`
	Choices []string `yaml:"choices"`
}

// Load reads a catalog from a YAML file of the form
//
//	questions:
//	  - column: full_name
//	    prompt: "Name?"
//	  - column: pace
//	    prompt: "How often?"
//	    choices: ["Weekly", "Daily"]
//	messages:
//	  greeting: "Hi!"
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", path, err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%w (in %s)", err, path)
	}
	return c, nil
}

// Parse decodes a YAML catalog document. Unknown keys are rejected.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var f file
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("catalog: decode: %w", err)
	}

	questions := make([]model.Question, 0, len(f.Questions))
	for i, e := range f.Questions {
		col, err := model.ParseColumn(e.Column)
		if err != nil {
			return nil, fmt.Errorf("catalog: question %d: %w", i, err)
		}
		questions = append(questions, model.Question{Column: col, Prompt: e.Prompt, Choices: e.Choices})
	}

	return New(questions, f.Messages)
}
