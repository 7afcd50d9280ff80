package model

// Question is one entry of the survey. A nil Choices means the question is
// answered with free text; otherwise the user is offered buttons.
type Question struct {
	Column  Column
	Prompt  string
	Choices []string
}

// HasChoices reports whether the prompt should carry a button set.
func (q Question) HasChoices() bool {
	return len(q.Choices) > 0
}
