package model

// Session tracks a user's position in an in-progress survey. Cursor is the
// index of the next unanswered question.
type Session struct {
	UserID int64
	Cursor int
}
