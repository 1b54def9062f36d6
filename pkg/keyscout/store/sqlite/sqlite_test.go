package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/inklight/keyscout/pkg/keyscout/internalerr"
	"github.com/inklight/keyscout/pkg/keyscout/store"
)

func openTestStore(t *testing.T) store.Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, filepath.Join(t.TempDir(), "keyscout.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sess := store.Session{
		ID:       "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		Name:     "cozy mysteries",
		Keywords: []string{"cozy mystery", "cat detective"},
		Data:     `{"scored":[{"keyword":"cozy mystery"}]}`,
	}
	if err := s.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}

	got, ok, err := s.GetSession(ctx, sess.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if !ok {
		t.Fatal("session not found")
	}
	if got.Name != sess.Name || got.Data != sess.Data {
		t.Errorf("got %+v", got)
	}
	if len(got.Keywords) != 2 || got.Keywords[1] != "cat detective" {
		t.Errorf("Keywords = %v", got.Keywords)
	}
	if got.CreatedAt.IsZero() || got.UpdatedAt.IsZero() {
		t.Error("timestamps not persisted")
	}
}

func TestSessionUpsert(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sess := store.Session{ID: "id-1", Name: "before", Keywords: []string{"a"}, Data: "{}"}
	if err := s.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	first, _, _ := s.GetSession(ctx, "id-1")

	sess.Name = "after"
	if err := s.SaveSession(ctx, sess); err != nil {
		t.Fatalf("second SaveSession: %v", err)
	}

	got, _, _ := s.GetSession(ctx, "id-1")
	if got.Name != "after" {
		t.Errorf("Name = %q, want after", got.Name)
	}
	if !got.CreatedAt.Equal(first.CreatedAt) {
		t.Errorf("CreatedAt changed on upsert: %v -> %v", first.CreatedAt, got.CreatedAt)
	}
}

func TestGetMissingSession(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.GetSession(context.Background(), "absent")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if ok {
		t.Error("found a session that was never saved")
	}
}

func TestRecentSessionsOrderAndLimit(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	base := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	for i, id := range []string{"a", "b", "c"} {
		sess := store.Session{
			ID:        id,
			Name:      id,
			Keywords:  []string{id},
			Data:      "{}",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.SaveSession(ctx, sess); err != nil {
			t.Fatalf("SaveSession %s: %v", id, err)
		}
	}

	got, err := s.RecentSessions(ctx, 2)
	if err != nil {
		t.Fatalf("RecentSessions: %v", err)
	}
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "b" {
		t.Errorf("RecentSessions = %+v", got)
	}
}

func TestDeleteSession(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	sess := store.Session{ID: "gone", Name: "x", Keywords: []string{"x"}, Data: "{}"}
	if err := s.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := s.DeleteSession(ctx, "gone"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if err := s.DeleteSession(ctx, "gone"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("second delete: %v, want ErrNotFound", err)
	}
}

func TestFavorites(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)

	if err := s.AddFavorite(ctx, store.Favorite{Keyword: "Cozy Mystery", Notes: "great niche"}); err != nil {
		t.Fatalf("AddFavorite: %v", err)
	}

	err := s.AddFavorite(ctx, store.Favorite{Keyword: "cozy mystery"})
	if !errors.Is(err, internalerr.ErrDuplicate) {
		t.Errorf("duplicate add: %v, want ErrDuplicate", err)
	}

	ok, err := s.IsFavorite(ctx, " COZY MYSTERY ")
	if err != nil || !ok {
		t.Errorf("IsFavorite = %v, %v", ok, err)
	}

	favs, err := s.ListFavorites(ctx)
	if err != nil {
		t.Fatalf("ListFavorites: %v", err)
	}
	if len(favs) != 1 || favs[0].Keyword != "cozy mystery" || favs[0].Notes != "great niche" {
		t.Errorf("ListFavorites = %+v", favs)
	}

	if err := s.RemoveFavorite(ctx, "cozy mystery"); err != nil {
		t.Fatalf("RemoveFavorite: %v", err)
	}
	if err := s.RemoveFavorite(ctx, "cozy mystery"); !errors.Is(err, internalerr.ErrNotFound) {
		t.Errorf("second remove: %v, want ErrNotFound", err)
	}
}

func TestSchemaSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "keyscout.db")

	s, err := Open(ctx, path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	sess := store.Session{ID: "persist", Name: "x", Keywords: []string{"x"}, Data: "{}"}
	if err := s.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s, err = Open(ctx, path)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s.Close()

	_, ok, err := s.GetSession(ctx, "persist")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if !ok {
		t.Error("session lost across reopen")
	}
}
