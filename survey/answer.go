package survey

import "SurveyBot/model"

// AnswerKind distinguishes typed replies from button presses.
type AnswerKind int

const (
	AnswerFreeText AnswerKind = iota
	AnswerChoice
)

// Answer is an inbound reply to the current question. Choice answers carry
// the column of the question their button belonged to.
type Answer struct {
	Kind   AnswerKind
	Column model.Column
	Value  string
}

// FreeText builds an answer from a typed message, kept verbatim.
func FreeText(text string) Answer {
	return Answer{Kind: AnswerFreeText, Value: text}
}

// ChoiceAnswer builds an answer from a pressed button tagged with column.
func ChoiceAnswer(column model.Column, value string) Answer {
	return Answer{Kind: AnswerChoice, Column: column, Value: value}
}
