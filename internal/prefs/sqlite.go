// internal/prefs/sqlite.go
//
// SQLite-backed key/value store for user preferences.
// Responsibilities:
//   - Opening the SQLite database with safe defaults (WAL, busy timeout).
//   - Applying embedded migrations from assets/sql/*.sql (idempotent, recorded in _migrations).
//   - Get/Set of (owner, key) → value rows.
//
// Only preferences are stored here; rounds are never persisted.

package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/guessgame/assets"
)

// Store reads and writes preference values.
type Store interface {
	// Get returns the value and whether it was set.
	Get(ctx context.Context, owner, key string) (string, bool, error)
	// Set inserts or replaces the value.
	Set(ctx context.Context, owner, key, value string) error
}

// SQLiteStore implements Store on a preferences table.
type SQLiteStore struct {
	db *sql.DB
}

// Open opens (creating if missing) the database at dsn and migrates it.
func Open(dsn string) (*SQLiteStore, error) {
	db, err := openDB(dsn)
	if err != nil {
		return nil, err
	}
	if err := migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Ping checks the database is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *SQLiteStore) Get(ctx context.Context, owner, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE owner=? AND key=?`, owner, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("prefs: get %s/%s: %w", owner, key, err)
	}
	return v, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, owner, key, value string) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT INTO preferences (owner, key, value, updated_at)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(owner, key) DO UPDATE SET value=excluded.value, updated_at=excluded.updated_at`,
		owner, key, value, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("prefs: set %s/%s: %w", owner, key, err)
	}
	return nil
}

// openDB opens a SQLite database file.
//
//   - Ensures parent directory exists for relative paths (e.g. ./data/guessgame.db).
//   - Configures busy timeout and WAL journaling.
func openDB(dsn string) (*sql.DB, error) {
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	return db, nil
}

// migrate applies the embedded *.sql files in lexical order, skipping those
// already recorded in _migrations. Each file runs in its own transaction.
func migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS _migrations (name TEXT PRIMARY KEY);`); err != nil {
		return fmt.Errorf("create _migrations: %w", err)
	}

	entries, err := fs.ReadDir(assets.FS, assets.MigrationsDir)
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(strings.ToLower(e.Name()), ".sql") {
			files = append(files, path.Join(assets.MigrationsDir, e.Name()))
		}
	}
	sort.Strings(files)

	for _, f := range files {
		var done int
		err := db.QueryRow(`SELECT 1 FROM _migrations WHERE name=?`, f).Scan(&done)
		if err == nil {
			log.Debug().Str("migration", f).Msg("already applied")
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("query _migrations: %w", err)
		}

		sqlBytes, err := fs.ReadFile(assets.FS, f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}

		tx, err := db.Begin()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(string(sqlBytes)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("apply %s: %w", f, err)
		}
		if _, err := tx.Exec(`INSERT INTO _migrations(name) VALUES (?)`, f); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("record %s: %w", f, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit %s: %w", f, err)
		}
		log.Info().Str("migration", f).Msg("applied")
	}
	return nil
}
