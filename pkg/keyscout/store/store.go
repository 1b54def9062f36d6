// Package store defines persistence for research sessions and
// favorite keywords. The scoring core never touches a store; the
// caller decides what survives a session.
package store

import (
	"context"
	"time"
)

// Store is the interface for persisting research data.
type Store interface {
	Close() error

	// Sessions
	SaveSession(ctx context.Context, s Session) error
	GetSession(ctx context.Context, id string) (Session, bool, error)
	RecentSessions(ctx context.Context, limit int) ([]Session, error)
	DeleteSession(ctx context.Context, id string) error

	// Favorites
	AddFavorite(ctx context.Context, f Favorite) error
	RemoveFavorite(ctx context.Context, keyword string) error
	ListFavorites(ctx context.Context) ([]Favorite, error)
	IsFavorite(ctx context.Context, keyword string) (bool, error)
}

// Session is one stored research run: the keyword batch and its scored
// result set, serialized by the caller.
type Session struct {
	ID        string
	Name      string
	Keywords  []string
	Data      string // JSON-encoded SessionResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Favorite is a bookmarked keyword.
type Favorite struct {
	Keyword   string
	Notes     string
	CreatedAt time.Time
}
