package repo

import (
	"SurveyBot/model"
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps responses in a PostgreSQL table.
type PostgresStore struct {
	pool    *pgxpool.Pool
	upserts map[model.Column]string
}

// NewPostgresStore connects to databaseURL and creates the responses table
// if it is missing.
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	poolConfig, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: connect: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}
	if _, err := pool.Exec(ctx, createTableSQL("BIGINT")); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: migration: %w", err)
	}

	return &PostgresStore{
		pool:    pool,
		upserts: upsertStatements(func(n int) string { return "$" + strconv.Itoa(n) }),
	}, nil
}

// Upsert sets column for userID, creating the row if it does not exist.
func (s *PostgresStore) Upsert(ctx context.Context, userID int64, column model.Column, answer string) error {
	stmt, ok := s.upserts[column]
	if !ok {
		return fmt.Errorf("postgres: %w: %q", model.ErrUnknownColumn, string(column))
	}
	if _, err := s.pool.Exec(ctx, stmt, userID, answer); err != nil {
		return storageErr("postgres upsert "+string(column), err)
	}
	return nil
}

// Read returns the full row for userID.
func (s *PostgresStore) Read(ctx context.Context, userID int64) (*model.ResponseRecord, error) {
	var r model.ResponseRecord
	query := "SELECT " + selectColumns + " FROM " + responsesTable + " WHERE user_id = $1"
	err := s.pool.QueryRow(ctx, query, userID).Scan(scanTargets(&r)...)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("postgres: user %d: %w", userID, model.ErrRecordNotFound)
	}
	if err != nil {
		return nil, storageErr("postgres read", err)
	}
	return &r, nil
}

// Ping checks that the database is reachable.
func (s *PostgresStore) Ping(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		return storageErr("postgres ping", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
