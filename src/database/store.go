// Package database persists interview sessions in a local libSQL file: the
// latest state of each named session plus an append-only history of the
// prompts it produced.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/tursodatabase/go-libsql"
	"go.uber.org/zap"

	"promptloom/src/composer"
	perrors "promptloom/src/errors"
	"promptloom/src/session"
)

// SessionInfo is a listing row
type SessionInfo struct {
	Name      string    `json:"name"`
	Prompt    string    `json:"prompt"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HistoryEntry is one saved prompt pair
type HistoryEntry struct {
	ID             int64     `json:"id"`
	Prompt         string    `json:"prompt"`
	NegativePrompt string    `json:"negative_prompt"`
	CreatedAt      time.Time `json:"created_at"`
}

type SessionStore struct {
	db  *sql.DB
	tx  *TxManager
	log *zap.Logger
	now func() time.Time
}

// StoreOption configures a SessionStore
type StoreOption func(*SessionStore)

func WithLogger(l *zap.Logger) StoreOption {
	return func(s *SessionStore) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock replaces the clock used for row timestamps
func WithClock(now func() time.Time) StoreOption {
	return func(s *SessionStore) { s.now = now }
}

// Open connects to the libSQL database at dbPath, creating the file, its
// directory and the schema as needed
func Open(dbPath string, opts ...StoreOption) (*SessionStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", perrors.ErrDatabaseConnection, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", perrors.ErrDatabaseConnection, err)
	}

	s := &SessionStore{
		db:  db,
		tx:  NewTxManager(db),
		log: zap.NewNop(),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS sessions (
		name TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		prompt TEXT NOT NULL DEFAULT '',
		negative_prompt TEXT NOT NULL DEFAULT '',
		version INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS prompt_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_name TEXT NOT NULL,
		prompt TEXT NOT NULL,
		negative_prompt TEXT NOT NULL,
		created_at INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_history_session ON prompt_history(session_name)`,
}

func (s *SessionStore) initSchema() error {
	for _, stmt := range schema {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func validName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &perrors.ValidationError{Field: "name", Message: "session name is required"}
	}
	return nil
}

// Save upserts the session state and appends the prompt pair to its
// history in one transaction
func (s *SessionStore) Save(ctx context.Context, name string, state *session.State, res composer.Result) error {
	if err := validName(name); err != nil {
		return err
	}
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", name, err)
	}
	ts := s.now().UnixMilli()

	err = s.tx.ExecuteInWriteTransaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (name, state, prompt, negative_prompt, version, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(name) DO UPDATE SET
				state = excluded.state,
				prompt = excluded.prompt,
				negative_prompt = excluded.negative_prompt,
				version = excluded.version,
				updated_at = excluded.updated_at`,
			name, string(data), res.Prompt, res.NegativePrompt, state.Version, ts, ts)
		if err != nil {
			return perrors.NewDatabaseError("upsert", "sessions", err)
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO prompt_history (session_name, prompt, negative_prompt, created_at)
			VALUES (?, ?, ?, ?)`,
			name, res.Prompt, res.NegativePrompt, ts)
		if err != nil {
			return perrors.NewDatabaseError("insert", "prompt_history", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.log.Debug("saved session", zap.String("name", name), zap.Int64("version", state.Version))
	return nil
}

// Load returns the saved state of a session
func (s *SessionStore) Load(ctx context.Context, name string) (*session.State, error) {
	var data string
	err := s.tx.ExecuteInReadTransaction(ctx, func(tx *sql.Tx) error {
		return tx.QueryRowContext(ctx, `SELECT state FROM sessions WHERE name = ?`, name).Scan(&data)
	})
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", perrors.ErrSessionNotFound, name)
	}
	if err != nil {
		return nil, perrors.NewDatabaseError("query", "sessions", err)
	}

	var state session.State
	if err := json.Unmarshal([]byte(data), &state); err != nil {
		return nil, fmt.Errorf("failed to decode session %s: %w", name, err)
	}
	state.Normalize()
	return &state, nil
}

// List returns every saved session, most recently updated first
func (s *SessionStore) List(ctx context.Context) ([]SessionInfo, error) {
	var out []SessionInfo
	err := s.tx.ExecuteInReadTransaction(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT name, prompt, version, created_at, updated_at
			FROM sessions
			ORDER BY updated_at DESC, name ASC`)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var info SessionInfo
			var created, updated int64
			if err := rows.Scan(&info.Name, &info.Prompt, &info.Version, &created, &updated); err != nil {
				return fmt.Errorf("failed to scan row: %w", err)
			}
			info.CreatedAt = time.UnixMilli(created)
			info.UpdatedAt = time.UnixMilli(updated)
			out = append(out, info)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, perrors.NewDatabaseError("query", "sessions", err)
	}
	return out, nil
}

// History returns the saved prompts of a session, newest first. A limit of
// zero or less returns all of them.
func (s *SessionStore) History(ctx context.Context, name string, limit int) ([]HistoryEntry, error) {
	if limit <= 0 {
		limit = -1
	}
	var out []HistoryEntry
	err := s.tx.ExecuteInReadTransaction(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, `
			SELECT id, prompt, negative_prompt, created_at
			FROM prompt_history
			WHERE session_name = ?
			ORDER BY id DESC
			LIMIT ?`, name, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e HistoryEntry
			var created int64
			if err := rows.Scan(&e.ID, &e.Prompt, &e.NegativePrompt, &created); err != nil {
				return fmt.Errorf("failed to scan row: %w", err)
			}
			e.CreatedAt = time.UnixMilli(created)
			out = append(out, e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, perrors.NewDatabaseError("query", "prompt_history", err)
	}
	return out, nil
}

// Delete removes a session and its history
func (s *SessionStore) Delete(ctx context.Context, name string) error {
	var removed int64
	err := s.tx.ExecuteInWriteTransaction(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE name = ?`, name)
		if err != nil {
			return err
		}
		if removed, err = res.RowsAffected(); err != nil {
			return err
		}
		_, err = tx.ExecContext(ctx, `DELETE FROM prompt_history WHERE session_name = ?`, name)
		return err
	})
	if err != nil {
		return perrors.NewDatabaseError("delete", "sessions", err)
	}
	if removed == 0 {
		return fmt.Errorf("%w: %s", perrors.ErrSessionNotFound, name)
	}
	s.log.Debug("deleted session", zap.String("name", name))
	return nil
}

func (s *SessionStore) Close() error {
	return s.db.Close()
}
