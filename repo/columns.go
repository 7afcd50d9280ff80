package repo

import (
	"SurveyBot/model"
	"fmt"
	"strings"
)

const responsesTable = "responses"

// selectColumns lists user_id and every answer column in model.Columns order.
var selectColumns = func() string {
	names := make([]string, 0, len(model.Columns)+1)
	names = append(names, "user_id")
	for _, c := range model.Columns {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}()

// scanTargets returns destinations matching selectColumns. NULL columns scan
// to nil pointers.
func scanTargets(r *model.ResponseRecord) []any {
	return []any{
		&r.UserID,
		&r.FullName,
		&r.Reason,
		&r.Obstacle,
		&r.FutureUse,
		&r.Interest,
		&r.Format,
		&r.Pace,
		&r.Hobbies,
		&r.DailyUse,
		&r.Favorites,
	}
}

// upsertStatements builds one INSERT .. ON CONFLICT statement per known
// column. Column names only ever come from the enumeration.
func upsertStatements(placeholder func(n int) string) map[model.Column]string {
	stmts := make(map[model.Column]string, len(model.Columns))
	for _, c := range model.Columns {
		stmts[c] = fmt.Sprintf(
			"INSERT INTO %s (user_id, %s) VALUES (%s, %s) ON CONFLICT (user_id) DO UPDATE SET %s = excluded.%s",
			responsesTable, c, placeholder(1), placeholder(2), c, c,
		)
	}
	return stmts
}

func createTableSQL(idType string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE IF NOT EXISTS %s (\n\tuser_id %s PRIMARY KEY", responsesTable, idType)
	for _, c := range model.Columns {
		fmt.Fprintf(&b, ",\n\t%s TEXT", c)
	}
	b.WriteString("\n)")
	return b.String()
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", model.ErrStorageUnavailable, op, err)
}
