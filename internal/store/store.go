// Package store provides the SQLite-backed persistence layer: the read-only
// corpus tables (lemmas, inflections) and the mutable practice state
// (per-form reviews, combination difficulty, settings, answer events).
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the database handle and provides access to repositories.
type Store struct {
	db *sql.DB
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and creates any missing tables.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Corpus returns a CorpusRepo backed by this store.
func (s *Store) Corpus() CorpusRepo { return &corpusRepo{db: s.db} }

// Reviews returns a ReviewRepo backed by this store.
func (s *Store) Reviews() ReviewRepo { return &reviewRepo{db: s.db} }

// Difficulty returns a DifficultyRepo backed by this store.
func (s *Store) Difficulty() DifficultyRepo { return &difficultyRepo{db: s.db} }

// Settings returns a SettingsRepo backed by this store.
func (s *Store) Settings() SettingsRepo { return &settingsRepo{db: s.db} }

// Events returns an EventRepo backed by this store.
func (s *Store) Events() EventRepo { return &eventRepo{db: s.db} }

// applyPragmas configures SQLite for single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// migrate creates missing tables. The corpus tables are also created here so
// a fresh database opens cleanly; they are normally populated by the
// extraction pipeline that ships the training data.
func migrate(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS lemmas (
			id INTEGER PRIMARY KEY,
			lemma TEXT NOT NULL,
			pattern TEXT NOT NULL,
			pos TEXT NOT NULL,
			freq_rank INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE TABLE IF NOT EXISTS inflections (
			form_id INTEGER PRIMARY KEY,
			lemma_id INTEGER NOT NULL REFERENCES lemmas(id),
			form TEXT NOT NULL,
			in_corpus INTEGER NOT NULL DEFAULT 1
		)`,
		`CREATE INDEX IF NOT EXISTS idx_inflections_lemma ON inflections(lemma_id)`,
		`CREATE TABLE IF NOT EXISTS form_reviews (
			form_id INTEGER PRIMARY KEY,
			domain INTEGER NOT NULL,
			mastery_level INTEGER NOT NULL DEFAULT 0,
			next_due_utc TEXT NOT NULL,
			last_review_utc TEXT,
			total_attempts INTEGER NOT NULL DEFAULT 0,
			correct_count INTEGER NOT NULL DEFAULT 0
		)`,
		`CREATE INDEX IF NOT EXISTS idx_form_reviews_due ON form_reviews(domain, next_due_utc)`,
		`CREATE TABLE IF NOT EXISTS combo_difficulty (
			domain INTEGER NOT NULL,
			combo_key TEXT NOT NULL,
			difficulty REAL NOT NULL,
			samples INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (domain, combo_key)
		)`,
		`CREATE TABLE IF NOT EXISTS practice_settings (
			domain INTEGER PRIMARY KEY,
			data TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS answer_events (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			form_id INTEGER NOT NULL,
			domain INTEGER NOT NULL,
			correct INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			created_utc TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_answer_events_session ON answer_events(session_id)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("exec schema: %w", err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. PALIPRACTICE_DB environment variable
// 2. $XDG_DATA_HOME/palipractice/practice.db
// 3. ~/.local/share/palipractice/practice.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("PALIPRACTICE_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "palipractice", "practice.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
