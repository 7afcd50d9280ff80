// Package catalog holds the ordered list of survey questions and the fixed
// texts the bot sends around them. A Catalog is immutable once built and may
// be shared between goroutines.
package catalog

import (
	"SurveyBot/model"
	"errors"
	"fmt"
)

// MaxCallbackData is Telegram's limit on inline button payloads, in bytes.
const MaxCallbackData = 64

// Messages are the non-question texts of the conversation.
type Messages struct {
	Greeting        string `yaml:"greeting"`
	Completion      string `yaml:"completion"`
	TransientError  string `yaml:"transient_error"`
	ChoiceConfirmed string `yaml:"choice_confirmed"` // fmt verb %s receives the chosen value
}

// Catalog is the ordered, immutable list of survey questions.
type Catalog struct {
	questions []model.Question
	messages  Messages
}

// New validates questions and returns a catalog that owns a copy of them.
// Empty fields of msgs fall back to DefaultMessages.
func New(questions []model.Question, msgs Messages) (*Catalog, error) {
	if err := validate(questions); err != nil {
		return nil, err
	}

	qs := make([]model.Question, len(questions))
	for i, q := range questions {
		qs[i] = model.Question{
			Column: q.Column,
			Prompt: q.Prompt,
		}
		if len(q.Choices) > 0 {
			qs[i].Choices = append([]string(nil), q.Choices...)
		}
	}

	return &Catalog{questions: qs, messages: msgs.withDefaults()}, nil
}

// Get returns the question at index i.
func (c *Catalog) Get(i int) (model.Question, error) {
	if i < 0 || i >= len(c.questions) {
		return model.Question{}, fmt.Errorf("%w: %d (len %d)", model.ErrOutOfRange, i, len(c.questions))
	}
	q := c.questions[i]
	if q.Choices != nil {
		q.Choices = append([]string(nil), q.Choices...)
	}
	return q, nil
}

// Len returns the number of questions.
func (c *Catalog) Len() int {
	return len(c.questions)
}

// Columns returns the question columns in catalog order.
func (c *Catalog) Columns() []model.Column {
	cols := make([]model.Column, len(c.questions))
	for i, q := range c.questions {
		cols[i] = q.Column
	}
	return cols
}

// Header is the export header row: the user id label then one label per
// question, in catalog order.
func (c *Catalog) Header() []any {
	header := make([]any, 0, len(c.questions)+1)
	header = append(header, model.UserIDLabel)
	for _, q := range c.questions {
		header = append(header, q.Column.Label())
	}
	return header
}

// Messages returns the conversation texts.
func (c *Catalog) Messages() Messages {
	return c.messages
}

// CallbackData encodes a button press for column and choice.
func CallbackData(column model.Column, choice string) string {
	return string(column) + ":" + choice
}

func validate(questions []model.Question) error {
	if len(questions) == 0 {
		return errors.New("catalog: no questions")
	}

	seen := make(map[model.Column]bool, len(questions))
	for i, q := range questions {
		if !q.Column.Valid() {
			return fmt.Errorf("catalog: question %d: %w: %q", i, model.ErrUnknownColumn, string(q.Column))
		}
		if seen[q.Column] {
			return fmt.Errorf("catalog: question %d: duplicate column %q", i, q.Column)
		}
		seen[q.Column] = true

		if q.Prompt == "" {
			return fmt.Errorf("catalog: question %d (%s): empty prompt", i, q.Column)
		}
		for _, choice := range q.Choices {
			if choice == "" {
				return fmt.Errorf("catalog: question %d (%s): empty choice", i, q.Column)
			}
			if n := len(CallbackData(q.Column, choice)); n > MaxCallbackData {
				return fmt.Errorf("catalog: question %d (%s): choice %q needs %d bytes of callback data, limit is %d",
					i, q.Column, choice, n, MaxCallbackData)
			}
		}
	}
	return nil
}
