package repo

import (
	"SurveyBot/model"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteStore keeps responses in a local SQLite file.
type SQLiteStore struct {
	db      *sql.DB
	upserts map[model.Column]string
}

// NewSQLiteStore opens (creating if needed) the database at path and makes
// sure the responses table exists.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("sqlite: create data dir: %w", err)
		}
	}

	// pragmas in the DSN apply to every pooled connection
	q := url.Values{}
	q.Add("_pragma", "journal_mode(WAL)")
	q.Add("_pragma", "busy_timeout(5000)")
	q.Add("_pragma", "synchronous(NORMAL)")
	dsn := path + "?" + q.Encode()

	db, err := openDB("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}
	if _, err := db.Exec(createTableSQL("INTEGER")); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: migration: %w", err)
	}

	return &SQLiteStore{
		db:      db,
		upserts: upsertStatements(func(int) string { return "?" }),
	}, nil
}

// Upsert sets column for userID, creating the row if it does not exist.
func (s *SQLiteStore) Upsert(ctx context.Context, userID int64, column model.Column, answer string) error {
	stmt, ok := s.upserts[column]
	if !ok {
		return fmt.Errorf("sqlite: %w: %q", model.ErrUnknownColumn, string(column))
	}
	if _, err := s.db.ExecContext(ctx, stmt, userID, answer); err != nil {
		return storageErr("sqlite upsert "+string(column), err)
	}
	return nil
}

// Read returns the full row for userID.
func (s *SQLiteStore) Read(ctx context.Context, userID int64) (*model.ResponseRecord, error) {
	var r model.ResponseRecord
	query := "SELECT " + selectColumns + " FROM " + responsesTable + " WHERE user_id = ?"
	err := s.db.QueryRowContext(ctx, query, userID).Scan(scanTargets(&r)...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("sqlite: user %d: %w", userID, model.ErrRecordNotFound)
	}
	if err != nil {
		return nil, storageErr("sqlite read", err)
	}
	return &r, nil
}

// Ping checks that the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return storageErr("sqlite ping", err)
	}
	return nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
