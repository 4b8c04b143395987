package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/offerte-app/offerte-backend/pkg/config"
)

type fakeStore struct {
	values map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{values: map[string]string{}}
}

func (f *fakeStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	f.values[key] = value.(string)
	return nil
}

func (f *fakeStore) Get(_ context.Context, key string) (string, error) {
	v, ok := f.values[key]
	if !ok {
		return "", redislib.Nil
	}
	return v, nil
}

func (f *fakeStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.values, k)
	}
	return nil
}

func (f *fakeStore) SessionKey(accessID string) string {
	return "offerte:session:" + accessID
}

func newTestManager(store *fakeStore) *Manager {
	return &Manager{store: store, keyer: store, ttl: time.Hour}
}

func TestNewManagerRequiresClient(t *testing.T) {
	if _, err := NewManager(nil, config.JWTConfig{SessionTTLMinutes: 60}); err == nil {
		t.Fatal("expected error without redis client")
	}
}

func TestGenerateAndHasSession(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)
	ctx := context.Background()

	accessID := NewAccessID()
	token, err := m.Generate(ctx, accessID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty refresh token")
	}

	ok, err := m.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if !ok {
		t.Fatal("expected session to exist")
	}

	ok, err = m.HasSession(ctx, NewAccessID())
	if err != nil {
		t.Fatalf("has session (missing): %v", err)
	}
	if ok {
		t.Fatal("expected no session for unknown access id")
	}
}

func TestRotateInvalidatesOldSession(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)
	ctx := context.Background()

	oldID := NewAccessID()
	oldToken, err := m.Generate(ctx, oldID)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	newID, newToken, err := m.Rotate(ctx, oldID, oldToken)
	if err != nil {
		t.Fatalf("rotate: %v", err)
	}
	if newID == oldID || newToken == oldToken {
		t.Fatal("expected fresh access id and refresh token")
	}

	if ok, _ := m.HasSession(ctx, oldID); ok {
		t.Fatal("expected old session to be revoked")
	}
	if ok, _ := m.HasSession(ctx, newID); !ok {
		t.Fatal("expected new session to exist")
	}
}

func TestRotateRejectsWrongToken(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)
	ctx := context.Background()

	accessID := NewAccessID()
	if _, err := m.Generate(ctx, accessID); err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, _, err := m.Rotate(ctx, accessID, "forged"); err != ErrInvalidRefreshToken {
		t.Fatalf("expected ErrInvalidRefreshToken, got %v", err)
	}
}

func TestRevoke(t *testing.T) {
	store := newFakeStore()
	m := newTestManager(store)
	ctx := context.Background()

	accessID := NewAccessID()
	if _, err := m.Generate(ctx, accessID); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := m.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if ok, _ := m.HasSession(ctx, accessID); ok {
		t.Fatal("expected session removed")
	}
}
