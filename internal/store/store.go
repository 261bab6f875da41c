// Package store persists transactions, category rules and the category
// vocabulary in a SQLite database.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/fintrack/internal/logging"
	"fjacquet/fintrack/internal/models"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a record with the requested ID does not exist.
var ErrNotFound = errors.New("not found")

const schema = `
CREATE TABLE IF NOT EXISTS transactions (
	id          TEXT PRIMARY KEY,
	date        TEXT NOT NULL,
	description TEXT NOT NULL,
	amount      TEXT NOT NULL,
	type        TEXT NOT NULL,
	category    TEXT NOT NULL DEFAULT '',
	source      TEXT NOT NULL,
	institution TEXT NOT NULL DEFAULT '',
	is_pending  INTEGER NOT NULL DEFAULT 0,
	notes       TEXT NOT NULL DEFAULT '',
	created_at  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_pending ON transactions(is_pending);

CREATE TABLE IF NOT EXISTS category_rules (
	position     INTEGER PRIMARY KEY AUTOINCREMENT,
	id           TEXT NOT NULL UNIQUE,
	term         TEXT NOT NULL,
	match_type   TEXT NOT NULL,
	category     TEXT NOT NULL,
	auto_confirm INTEGER NOT NULL DEFAULT 0,
	institution  TEXT NOT NULL DEFAULT '',
	type         TEXT NOT NULL DEFAULT '',
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS categories (
	name TEXT PRIMARY KEY COLLATE NOCASE
);
`

// Store owns the database handle. Use Transactions, Rules and Categories to
// reach each table.
type Store struct {
	db     *sql.DB
	logger logging.Logger
	now    func() time.Time

	transactions *TransactionRepository
	rules        *RuleRepository
	categories   *CategoryRepository
}

// Open opens (or creates) the database at path, applies the schema and seeds
// the default categories into an empty vocabulary.
func Open(ctx context.Context, path string, logger logging.Logger) (*Store, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, models.PermissionDirectory); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	s := &Store{db: db, logger: logger, now: time.Now}
	s.transactions = &TransactionRepository{store: s}
	s.rules = &RuleRepository{store: s}
	s.categories = &CategoryRepository{store: s}

	if err := s.categories.seed(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Debug("Database opened", logging.F(logging.FieldFile, path))
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Transactions returns the transaction table.
func (s *Store) Transactions() *TransactionRepository {
	return s.transactions
}

// Rules returns the category rule table.
func (s *Store) Rules() *RuleRepository {
	return s.rules
}

// Categories returns the category vocabulary.
func (s *Store) Categories() *CategoryRepository {
	return s.categories
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(raw string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
