package badger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/linkstash/linkstash/core"
	"github.com/linkstash/linkstash/storage"
)

func TestUserBasics(t *testing.T) {
	_, users, _, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { users.Close(); backend.Close() }()

	ctx := context.Background()
	user := &core.User{
		ID:           core.NewUserID(),
		Email:        "alice@example.com",
		Name:         "Alice",
		PasswordHash: "$2a$10$hash",
		CreatedAt:    time.Now().UTC(),
	}

	if err := users.Insert(ctx, user); err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}

	byID, err := users.GetByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("Failed to get user by ID: %v", err)
	}
	if byID.Email != "alice@example.com" {
		t.Fatalf("Expected 'alice@example.com', got '%s'", byID.Email)
	}
	if byID.PasswordHash != "$2a$10$hash" {
		t.Fatal("Expected password hash to round-trip through storage")
	}

	byEmail, err := users.GetByEmail(ctx, "ALICE@example.com")
	if err != nil {
		t.Fatalf("Failed to get user by email: %v", err)
	}
	if byEmail.ID != user.ID {
		t.Fatalf("Expected ID '%s', got '%s'", user.ID, byEmail.ID)
	}
}

func TestUserDuplicateEmail(t *testing.T) {
	_, users, _, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { users.Close(); backend.Close() }()

	ctx := context.Background()
	first := &core.User{ID: core.NewUserID(), Email: "bob@example.com", CreatedAt: time.Now().UTC()}
	if err := users.Insert(ctx, first); err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}

	second := &core.User{ID: core.NewUserID(), Email: "Bob@Example.com", CreatedAt: time.Now().UTC()}
	if err := users.Insert(ctx, second); !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestUserNotFound(t *testing.T) {
	_, users, _, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { users.Close(); backend.Close() }()

	ctx := context.Background()
	if _, err := users.GetByID(ctx, "user_missing"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	if _, err := users.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
}

func TestSessionLifecycle(t *testing.T) {
	_, _, sessions, backend, err := NewMemoryStores()
	if err != nil {
		t.Fatalf("Failed to create stores: %v", err)
	}
	defer func() { sessions.Close(); backend.Close() }()

	ctx := context.Background()
	session := &core.Session{
		TokenDigest: "digest-1",
		UserID:      "user_a",
		ExpiresAt:   time.Now().UTC().Add(time.Hour),
		CreatedAt:   time.Now().UTC(),
	}

	if err := sessions.Put(ctx, session); err != nil {
		t.Fatalf("Failed to put session: %v", err)
	}

	retrieved, err := sessions.Get(ctx, "digest-1")
	if err != nil {
		t.Fatalf("Failed to get session: %v", err)
	}
	if retrieved.UserID != "user_a" {
		t.Fatalf("Expected 'user_a', got '%s'", retrieved.UserID)
	}

	if err := sessions.Delete(ctx, "digest-1"); err != nil {
		t.Fatalf("Failed to delete session: %v", err)
	}
	if _, err := sessions.Get(ctx, "digest-1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound after delete, got %v", err)
	}

	// Deleting again is not an error
	if err := sessions.Delete(ctx, "digest-1"); err != nil {
		t.Fatalf("Expected idempotent delete, got %v", err)
	}
}
