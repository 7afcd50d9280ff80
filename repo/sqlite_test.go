package repo

import (
	"SurveyBot/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
)

func newTestSQLite(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "survey.db"))
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteStore_UpsertCreatesThenUpdates(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	if err := s.Upsert(ctx, 42, model.ColumnFullName, "Ann"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	r, err := s.Read(ctx, 42)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	if r.UserID != 42 {
		t.Errorf("UserID = %d, want 42", r.UserID)
	}
	if v, ok := r.Get(model.ColumnFullName); !ok || v != "Ann" {
		t.Errorf("full_name = %q, %v", v, ok)
	}
	for _, c := range model.Columns[1:] {
		if _, ok := r.Get(c); ok {
			t.Errorf("column %s should be NULL", c)
		}
	}

	if err := s.Upsert(ctx, 42, model.ColumnReason, "Fun"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	if err := s.Upsert(ctx, 42, model.ColumnFullName, "Bea"); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	r, _ = s.Read(ctx, 42)
	if v, _ := r.Get(model.ColumnFullName); v != "Bea" {
		t.Errorf("full_name = %q, want Bea", v)
	}
	if v, _ := r.Get(model.ColumnReason); v != "Fun" {
		t.Errorf("reason = %q, want Fun", v)
	}
}

func TestSQLiteStore_PreservesRawText(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	raw := "  '; DROP TABLE responses; --\n"
	if err := s.Upsert(ctx, 1, model.ColumnHobbies, raw); err != nil {
		t.Fatal(err)
	}
	r, err := s.Read(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := r.Get(model.ColumnHobbies); v != raw {
		t.Errorf("hobbies = %q, want %q", v, raw)
	}
}

func TestSQLiteStore_ReadMissing(t *testing.T) {
	s := newTestSQLite(t)
	_, err := s.Read(context.Background(), 404)
	if !errors.Is(err, model.ErrRecordNotFound) {
		t.Errorf("Read() error = %v, want ErrRecordNotFound", err)
	}
}

func TestSQLiteStore_UnknownColumn(t *testing.T) {
	s := newTestSQLite(t)
	err := s.Upsert(context.Background(), 1, model.Column("user_id"), "x")
	if !errors.Is(err, model.ErrUnknownColumn) {
		t.Errorf("Upsert() error = %v, want ErrUnknownColumn", err)
	}
}

func TestSQLiteStore_ClosedIsUnavailable(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "survey.db"))
	if err != nil {
		t.Fatal(err)
	}
	s.Close()

	if err := s.Upsert(ctx, 1, model.ColumnReason, "x"); !errors.Is(err, model.ErrStorageUnavailable) {
		t.Errorf("Upsert() error = %v, want ErrStorageUnavailable", err)
	}
	if _, err := s.Read(ctx, 1); !errors.Is(err, model.ErrStorageUnavailable) {
		t.Errorf("Read() error = %v, want ErrStorageUnavailable", err)
	}
	if err := s.Ping(ctx); !errors.Is(err, model.ErrStorageUnavailable) {
		t.Errorf("Ping() error = %v, want ErrStorageUnavailable", err)
	}
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "survey.db")

	s, err := NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Upsert(ctx, 5, model.ColumnPace, "Daily"); err != nil {
		t.Fatal(err)
	}
	s.Close()

	s, err = NewSQLiteStore(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()
	r, err := s.Read(ctx, 5)
	if err != nil {
		t.Fatalf("Read() after reopen error = %v", err)
	}
	if v, _ := r.Get(model.ColumnPace); v != "Daily" {
		t.Errorf("pace = %q, want Daily", v)
	}
}

func TestSQLiteStore_ConcurrentColumnsSameUser(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLite(t)

	var wg sync.WaitGroup
	errs := make(chan error, len(model.Columns))
	for _, c := range model.Columns {
		wg.Add(1)
		go func(c model.Column) {
			defer wg.Done()
			errs <- s.Upsert(ctx, 9, c, "v-"+string(c))
		}(c)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Upsert() error = %v", err)
		}
	}

	r, err := s.Read(ctx, 9)
	if err != nil {
		t.Fatal(err)
	}
	for _, c := range model.Columns {
		if v, _ := r.Get(c); v != "v-"+string(c) {
			t.Errorf("%s = %q (lost update)", c, v)
		}
	}
}

func TestNewSQLiteStore_OpenFailure(t *testing.T) {
	orig := openDB
	t.Cleanup(func() { openDB = orig })
	openDB = func(driver, dsn string) (*sql.DB, error) {
		return nil, fmt.Errorf("boom")
	}

	if _, err := NewSQLiteStore(filepath.Join(t.TempDir(), "x.db")); err == nil {
		t.Fatal("NewSQLiteStore() succeeded with failing opener")
	}
}

func TestCreateTableSQL(t *testing.T) {
	got := createTableSQL("INTEGER")
	want := `CREATE TABLE IF NOT EXISTS responses (
	user_id INTEGER PRIMARY KEY,
	full_name TEXT,
	reason TEXT,
	obstacle TEXT,
	future_use TEXT,
	interest TEXT,
	format TEXT,
	pace TEXT,
	hobbies TEXT,
	daily_use TEXT,
	favorites TEXT
)`
	if got != want {
		t.Errorf("createTableSQL() =\n%s\nwant\n%s", got, want)
	}
}
