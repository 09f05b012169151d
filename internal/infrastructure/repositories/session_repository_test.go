package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/you/gatesvc/domain"
)

func TestSessionRepositoryImpl_CreateAndFind(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_1_42",
		PersonID:  1,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(12 * time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	// The key carries the configured TTL.
	if ttl := client.TTL(ctx, "session:sess_1_42").Val(); ttl <= 0 {
		t.Errorf("expected TTL on session key, got %v", ttl)
	}

	found, err := repo.FindByID(ctx, "sess_1_42")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.PersonID != 1 {
		t.Errorf("expected person 1, got %d", found.PersonID)
	}
}

func TestSessionRepositoryImpl_FindByID_NotFound(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)

	_, err := repo.FindByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionRepositoryImpl_FindByID_Expired(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_old",
		PersonID:  2,
		CreatedAt: time.Now().Add(-13 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	_, err := repo.FindByID(ctx, "sess_old")
	if !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired, got %v", err)
	}

	// The stale key is removed on read.
	if exists := client.Exists(ctx, "session:sess_old").Val(); exists != 0 {
		t.Error("expected expired session key to be deleted")
	}
}

func TestSessionRepositoryImpl_Delete(t *testing.T) {
	client, _ := setupTestRedis(t)
	repo := NewSessionRepository(client, time.Hour)
	ctx := context.Background()

	session := &domain.Session{
		ID:        "sess_del",
		PersonID:  3,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := repo.Create(ctx, session); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if err := repo.Delete(ctx, "sess_del"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	if _, err := repo.FindByID(ctx, "sess_del"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expected ErrSessionNotFound after delete, got %v", err)
	}
}
