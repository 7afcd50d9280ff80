package model

import "fmt"

// Column identifies the storage field a question's answer is written to.
// The set is closed: storage backends map each value to a fixed field and
// refuse anything else.
type Column string

const (
	ColumnFullName  Column = "full_name"
	ColumnReason    Column = "reason"
	ColumnObstacle  Column = "obstacle"
	ColumnFutureUse Column = "future_use"
	ColumnInterest  Column = "interest"
	ColumnFormat    Column = "format"
	ColumnPace      Column = "pace"
	ColumnHobbies   Column = "hobbies"
	ColumnDailyUse  Column = "daily_use"
	ColumnFavorites Column = "favorites"
)

// UserIDLabel is the header of the leading user id column in exports.
const UserIDLabel = "User ID"

// Columns lists every known column in table order.
var Columns = []Column{
	ColumnFullName,
	ColumnReason,
	ColumnObstacle,
	ColumnFutureUse,
	ColumnInterest,
	ColumnFormat,
	ColumnPace,
	ColumnHobbies,
	ColumnDailyUse,
	ColumnFavorites,
}

var columnLabels = map[Column]string{
	ColumnFullName:  "Full Name",
	ColumnReason:    "Reason",
	ColumnObstacle:  "Obstacle",
	ColumnFutureUse: "Future Use",
	ColumnInterest:  "Interest",
	ColumnFormat:    "Format",
	ColumnPace:      "Pace",
	ColumnHobbies:   "Hobbies",
	ColumnDailyUse:  "Daily Use",
	ColumnFavorites: "Favorites",
}

// ParseColumn returns the Column named s or ErrUnknownColumn.
func ParseColumn(s string) (Column, error) {
	c := Column(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
	}
	return c, nil
}

// Valid reports whether c belongs to the enumeration.
func (c Column) Valid() bool {
	_, ok := columnLabels[c]
	return ok
}

// Label is the human readable header used for the export's first row.
func (c Column) Label() string {
	if l, ok := columnLabels[c]; ok {
		return l
	}
	return string(c)
}

func (c Column) String() string { return string(c) }
