package model

import "fmt"

// ResponseRecord is the stored row of answers for one user. Nil fields have
// not been answered yet.
type ResponseRecord struct {
	UserID    int64   `json:"user_id"`
	FullName  *string `json:"full_name"`
	Reason    *string `json:"reason"`
	Obstacle  *string `json:"obstacle"`
	FutureUse *string `json:"future_use"`
	Interest  *string `json:"interest"`
	Format    *string `json:"format"`
	Pace      *string `json:"pace"`
	Hobbies   *string `json:"hobbies"`
	DailyUse  *string `json:"daily_use"`
	Favorites *string `json:"favorites"`
}

func (r *ResponseRecord) field(c Column) (**string, error) {
	switch c {
	case ColumnFullName:
		return &r.FullName, nil
	case ColumnReason:
		return &r.Reason, nil
	case ColumnObstacle:
		return &r.Obstacle, nil
	case ColumnFutureUse:
		return &r.FutureUse, nil
	case ColumnInterest:
		return &r.Interest, nil
	case ColumnFormat:
		return &r.Format, nil
	case ColumnPace:
		return &r.Pace, nil
	case ColumnHobbies:
		return &r.Hobbies, nil
	case ColumnDailyUse:
		return &r.DailyUse, nil
	case ColumnFavorites:
		return &r.Favorites, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownColumn, string(c))
}

// Set stores answer under column c, replacing any previous value.
func (r *ResponseRecord) Set(c Column, answer string) error {
	f, err := r.field(c)
	if err != nil {
		return err
	}
	v := answer
	*f = &v
	return nil
}

// Get returns the value of column c and whether it has been answered.
func (r *ResponseRecord) Get(c Column) (string, bool) {
	f, err := r.field(c)
	if err != nil || *f == nil {
		return "", false
	}
	return **f, true
}

// Row lays the record out for export: the user id followed by the value of
// each column in the given order. Unanswered columns are empty strings.
func (r *ResponseRecord) Row(columns []Column) []any {
	row := make([]any, 0, len(columns)+1)
	row = append(row, r.UserID)
	for _, c := range columns {
		v, _ := r.Get(c)
		row = append(row, v)
	}
	return row
}
