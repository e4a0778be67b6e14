package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *AppSessionStore {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewAppSessionStore(rdb, time.Minute)
}

func TestCreateGetDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Create(ctx, "sid-1", 42, 2); err != nil {
		t.Fatalf("create: %v", err)
	}

	as, err := s.Get(ctx, "sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if as.UserID != 42 || as.RoleID != 2 {
		t.Fatalf("unexpected session payload: %+v", as)
	}
	if as.ExpiresAt <= as.IssuedAt {
		t.Fatalf("expiry must follow issue time: %+v", as)
	}

	if err := s.Delete(ctx, "sid-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "sid-1"); err == nil {
		t.Fatal("expected miss after delete")
	}
}

func TestGetUnknownSession(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.Get(context.Background(), "nope"); err == nil {
		t.Fatal("expected error for unknown session")
	}
}

func TestRevokeAllForUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Create(ctx, "a", 7, 3); err != nil {
		t.Fatalf("create a: %v", err)
	}
	if err := s.Create(ctx, "b", 7, 3); err != nil {
		t.Fatalf("create b: %v", err)
	}
	if err := s.Create(ctx, "other", 8, 3); err != nil {
		t.Fatalf("create other: %v", err)
	}

	if err := s.RevokeAllForUser(ctx, 7); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	for _, sid := range []string{"a", "b"} {
		if _, err := s.Get(ctx, sid); err == nil {
			t.Fatalf("session %q survived revocation", sid)
		}
	}
	if _, err := s.Get(ctx, "other"); err != nil {
		t.Fatalf("unrelated session was revoked: %v", err)
	}
}

func TestSessionExpires(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	s := NewAppSessionStore(rdb, time.Second)

	ctx := context.Background()
	if err := s.Create(ctx, "short", 1, 1); err != nil {
		t.Fatalf("create: %v", err)
	}

	mr.FastForward(2 * time.Second)
	if _, err := s.Get(ctx, "short"); err == nil {
		t.Fatal("expected session to expire")
	}
}
