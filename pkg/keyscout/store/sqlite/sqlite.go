// Package sqlite implements store.Store on SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/inklight/keyscout/pkg/keyscout/internalerr"
	"github.com/inklight/keyscout/pkg/keyscout/store"
)

// sqliteStore implements the Store interface using SQLite.
type sqliteStore struct {
	db *sql.DB
}

// Open opens a SQLite database with WAL mode enabled and initializes
// the schema.
func Open(ctx context.Context, path string) (store.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, err
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteStore{db: db}, nil
}

// Close closes the database connection.
func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func initSchema(ctx context.Context, db *sql.DB) error {
	schema := `
CREATE TABLE IF NOT EXISTS research_sessions (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	keywords TEXT NOT NULL,
	data TEXT NOT NULL,
	created_at TEXT NOT NULL,
	updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS favorite_keywords (
	keyword TEXT PRIMARY KEY,
	notes TEXT,
	created_at TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_created ON research_sessions(created_at DESC);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// SaveSession inserts or updates a session, keyed by ID.
func (s *sqliteStore) SaveSession(ctx context.Context, sess store.Session) error {
	if sess.ID == "" {
		return internalerr.ErrInvalidInput
	}

	keywords, err := json.Marshal(sess.Keywords)
	if err != nil {
		return fmt.Errorf("marshal keywords: %w", err)
	}

	now := time.Now().UTC()
	created := sess.CreatedAt
	if created.IsZero() {
		created = now
	}

	_, err = s.db.ExecContext(ctx, `
INSERT INTO research_sessions (id, name, keywords, data, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
	name = excluded.name,
	keywords = excluded.keywords,
	data = excluded.data,
	updated_at = excluded.updated_at`,
		sess.ID, sess.Name, string(keywords), sess.Data,
		created.Format(time.RFC3339Nano), now.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// GetSession returns a session by ID.
func (s *sqliteStore) GetSession(ctx context.Context, id string) (store.Session, bool, error) {
	row := s.db.QueryRowContext(ctx, `
SELECT id, name, keywords, data, created_at, updated_at
FROM research_sessions WHERE id = ?`, id)

	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return store.Session{}, false, nil
	}
	if err != nil {
		return store.Session{}, false, err
	}
	return sess, true, nil
}

// RecentSessions returns up to limit sessions, newest first.
func (s *sqliteStore) RecentSessions(ctx context.Context, limit int) ([]store.Session, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, name, keywords, data, created_at, updated_at
FROM research_sessions ORDER BY created_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []store.Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, rows.Err()
}

// DeleteSession removes a session by ID.
func (s *sqliteStore) DeleteSession(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM research_sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internalerr.ErrNotFound
	}
	return nil
}

// AddFavorite bookmarks a keyword. Duplicate keywords are rejected.
func (s *sqliteStore) AddFavorite(ctx context.Context, f store.Favorite) error {
	keyword := strings.ToLower(strings.TrimSpace(f.Keyword))
	if keyword == "" {
		return internalerr.ErrInvalidInput
	}
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx, `
INSERT INTO favorite_keywords (keyword, notes, created_at) VALUES (?, ?, ?)`,
		keyword, f.Notes, created.Format(time.RFC3339Nano))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "PRIMARY KEY") {
			return internalerr.ErrDuplicate
		}
		return err
	}
	return nil
}

// RemoveFavorite deletes a bookmarked keyword.
func (s *sqliteStore) RemoveFavorite(ctx context.Context, keyword string) error {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	res, err := s.db.ExecContext(ctx, "DELETE FROM favorite_keywords WHERE keyword = ?", keyword)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return internalerr.ErrNotFound
	}
	return nil
}

// ListFavorites returns all favorites, newest first.
func (s *sqliteStore) ListFavorites(ctx context.Context) ([]store.Favorite, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT keyword, COALESCE(notes, ''), created_at
FROM favorite_keywords ORDER BY created_at DESC, keyword ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var favorites []store.Favorite
	for rows.Next() {
		var f store.Favorite
		var created string
		if err := rows.Scan(&f.Keyword, &f.Notes, &created); err != nil {
			return nil, err
		}
		f.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		favorites = append(favorites, f)
	}
	return favorites, rows.Err()
}

// IsFavorite reports whether a keyword is bookmarked.
func (s *sqliteStore) IsFavorite(ctx context.Context, keyword string) (bool, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM favorite_keywords WHERE keyword = ?", keyword).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (store.Session, error) {
	var sess store.Session
	var keywords, created, updated string
	if err := row.Scan(&sess.ID, &sess.Name, &keywords, &sess.Data, &created, &updated); err != nil {
		return store.Session{}, err
	}
	if err := json.Unmarshal([]byte(keywords), &sess.Keywords); err != nil {
		return store.Session{}, fmt.Errorf("unmarshal keywords: %w", err)
	}
	sess.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
	sess.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updated)
	return sess, nil
}
