// Package memstore is an in-memory store.Store implementation used in
// tests and for ephemeral research runs.
package memstore

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/inklight/keyscout/pkg/keyscout/internalerr"
	"github.com/inklight/keyscout/pkg/keyscout/store"
)

// Store is an in-memory implementation of store.Store.
type Store struct {
	mu        sync.RWMutex
	sessions  map[string]store.Session
	favorites map[string]store.Favorite
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		sessions:  make(map[string]store.Session),
		favorites: make(map[string]store.Favorite),
	}
}

// Close implements store.Store.
func (s *Store) Close() error { return nil }

// SaveSession inserts or updates a session, keyed by ID.
func (s *Store) SaveSession(ctx context.Context, sess store.Session) error {
	if sess.ID == "" {
		return internalerr.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[sess.ID]; ok {
		sess.CreatedAt = existing.CreatedAt
	} else if sess.CreatedAt.IsZero() {
		sess.CreatedAt = time.Now().UTC()
	}
	sess.UpdatedAt = time.Now().UTC()
	s.sessions[sess.ID] = copySession(sess)
	return nil
}

// GetSession returns a session by ID.
func (s *Store) GetSession(ctx context.Context, id string) (store.Session, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return store.Session{}, false, nil
	}
	return copySession(sess), true, nil
}

// RecentSessions returns up to limit sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]store.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, copySession(sess))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// DeleteSession removes a session by ID.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return internalerr.ErrNotFound
	}
	delete(s.sessions, id)
	return nil
}

// AddFavorite bookmarks a keyword. Duplicate keywords are rejected.
func (s *Store) AddFavorite(ctx context.Context, f store.Favorite) error {
	key := favoriteKey(f.Keyword)
	if key == "" {
		return internalerr.ErrInvalidInput
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favorites[key]; ok {
		return internalerr.ErrDuplicate
	}
	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now().UTC()
	}
	s.favorites[key] = f
	return nil
}

// RemoveFavorite deletes a bookmarked keyword.
func (s *Store) RemoveFavorite(ctx context.Context, keyword string) error {
	key := favoriteKey(keyword)
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.favorites[key]; !ok {
		return internalerr.ErrNotFound
	}
	delete(s.favorites, key)
	return nil
}

// ListFavorites returns all favorites, newest first.
func (s *Store) ListFavorites(ctx context.Context) ([]store.Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]store.Favorite, 0, len(s.favorites))
	for _, f := range s.favorites {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].Keyword < out[j].Keyword
	})
	return out, nil
}

// IsFavorite reports whether a keyword is bookmarked.
func (s *Store) IsFavorite(ctx context.Context, keyword string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.favorites[favoriteKey(keyword)]
	return ok, nil
}

func favoriteKey(keyword string) string {
	return strings.ToLower(strings.TrimSpace(keyword))
}

func copySession(s store.Session) store.Session {
	out := s
	out.Keywords = append([]string(nil), s.Keywords...)
	return out
}
