package model

import (
	"errors"
	"testing"
)

func TestResponseRecord_SetOverwrites(t *testing.T) {
	var r ResponseRecord
	if err := r.Set(ColumnFullName, "Ann"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := r.Set(ColumnFullName, "Bob"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, ok := r.Get(ColumnFullName)
	if !ok || got != "Bob" {
		t.Errorf("Get(full_name) = %q, %v; want Bob, true", got, ok)
	}
	if _, ok := r.Get(ColumnReason); ok {
		t.Error("reason should be unset")
	}
}

func TestResponseRecord_SetUnknownColumn(t *testing.T) {
	var r ResponseRecord
	err := r.Set(Column("user_id; DROP TABLE responses"), "x")
	if !errors.Is(err, ErrUnknownColumn) {
		t.Fatalf("Set() error = %v, want ErrUnknownColumn", err)
	}
}

func TestResponseRecord_SetEveryColumn(t *testing.T) {
	var r ResponseRecord
	for _, c := range Columns {
		if err := r.Set(c, string(c)); err != nil {
			t.Fatalf("Set(%s) error = %v", c, err)
		}
	}
	for _, c := range Columns {
		if v, ok := r.Get(c); !ok || v != string(c) {
			t.Errorf("Get(%s) = %q, %v", c, v, ok)
		}
	}
}

func TestResponseRecord_Row(t *testing.T) {
	r := ResponseRecord{UserID: 42}
	_ = r.Set(ColumnReason, "Fun")
	_ = r.Set(ColumnFullName, "Ann")

	row := r.Row([]Column{ColumnFullName, ColumnObstacle, ColumnReason})
	want := []any{int64(42), "Ann", "", "Fun"}
	if len(row) != len(want) {
		t.Fatalf("len(row) = %d, want %d", len(row), len(want))
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("row[%d] = %v, want %v", i, row[i], want[i])
		}
	}
}
