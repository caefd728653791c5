package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/ziadkadry99/brigade/internal/db"
)

// Dialect selects placeholder syntax for SQLStore.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// SQLStore persists session values in the session_values table.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewSQLStore wraps an open database whose schema is already migrated.
func NewSQLStore(database *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: database, dialect: dialect}
}

// OpenPostgres connects to PostgreSQL and creates the session table.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging postgres: %w", err)
	}
	if _, err := sqlDB.ExecContext(ctx, db.Schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrating postgres: %w", err)
	}
	return NewSQLStore(sqlDB, DialectPostgres), nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

func (s *SQLStore) q(sqlite, postgres string) string {
	if s.dialect == DialectPostgres {
		return postgres
	}
	return sqlite
}

func (s *SQLStore) Load(ctx context.Context, sessionID, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, s.q(
		`SELECT value FROM session_values WHERE session_id = ? AND key = ?`,
		`SELECT value FROM session_values WHERE session_id = $1 AND key = $2`,
	), sessionID, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("loading session value: %w", err)
	}
	return value, nil
}

func (s *SQLStore) Save(ctx context.Context, sessionID, key, value string) error {
	_, err := s.db.ExecContext(ctx, s.q(
		`INSERT INTO session_values (session_id, key, value, updated_at) VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		`INSERT INTO session_values (session_id, key, value, updated_at) VALUES ($1, $2, $3, CURRENT_TIMESTAMP)
		 ON CONFLICT(session_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
	), sessionID, key, value)
	if err != nil {
		return fmt.Errorf("saving session value: %w", err)
	}
	return nil
}

func (s *SQLStore) Clear(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, s.q(
		`DELETE FROM session_values WHERE session_id = ?`,
		`DELETE FROM session_values WHERE session_id = $1`,
	), sessionID)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
