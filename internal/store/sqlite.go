package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ashureev/spiritual-guide/internal/domain"
	"github.com/ashureev/spiritual-guide/internal/shared"
	_ "modernc.org/sqlite"
)

const (
	sqliteWriteAttempts = 5
	sqliteRetryDelay    = 100 * time.Millisecond
)

// SQLiteStore implements Repository using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite creates a new SQLite-backed repository.
func NewSQLite(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// Pragmas are applied per connection by the modernc driver.
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS user_memory (
		user_id TEXT PRIMARY KEY,
		state_json TEXT NOT NULL,
		last_seen_at INTEGER NOT NULL,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_user_memory_last_seen ON user_memory(last_seen_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Read retrieves the stored state for a user.
func (s *SQLiteStore) Read(ctx context.Context, userID string) (*domain.UserState, error) {
	if err := validateKey(userID); err != nil {
		return nil, err
	}

	var stateJSON string
	err := s.db.QueryRowContext(ctx, `SELECT state_json FROM user_memory WHERE user_id = ?`, userID).Scan(&stateJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.NewUserState(time.Now()), nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan user memory: %w", err)
	}
	return decodeState([]byte(stateJSON), userID, "sqlite"), nil
}

// Write creates or replaces the stored state for a user, retrying on
// SQLITE_BUSY.
func (s *SQLiteStore) Write(ctx context.Context, userID string, state *domain.UserState) error {
	if err := validateKey(userID); err != nil {
		return err
	}
	data, err := encodeState(state, false)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO user_memory (user_id, state_json, last_seen_at, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(user_id) DO UPDATE SET
		state_json = excluded.state_json,
		last_seen_at = excluded.last_seen_at,
		updated_at = excluded.updated_at`

	now := time.Now().Unix()
	err = shared.RetryOnSQLiteConflict(ctx, sqliteWriteAttempts, sqliteRetryDelay, func() error {
		_, execErr := s.db.ExecContext(ctx, query, userID, string(data), state.LastSeen, now, now)
		return execErr
	})
	if err != nil {
		return fmt.Errorf("upsert user memory: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

var _ Repository = (*SQLiteStore)(nil)
