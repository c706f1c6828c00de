package users

import (
	"context"
	"testing"
	"time"
)

func TestEnsureUserCreatesThenRefreshes(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	ctx := context.Background()

	first, err := svc.EnsureUser(ctx, User{ID: "google:1", Email: " Jane@Example.com ", Name: "Jane"})
	if err != nil {
		t.Fatalf("ensure: %v", err)
	}
	if first.Provider != "google" || first.Email != "jane@example.com" || first.LastLoginAt == nil {
		t.Fatalf("unexpected user %+v", first)
	}

	time.Sleep(time.Millisecond)
	second, err := svc.EnsureUser(ctx, User{ID: "google:1", Email: "jane@example.com", Name: "Jane D."})
	if err != nil {
		t.Fatalf("ensure again: %v", err)
	}
	if !second.CreatedAt.Equal(first.CreatedAt) {
		t.Fatalf("created_at changed: %v vs %v", second.CreatedAt, first.CreatedAt)
	}
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("expected updated_at to advance")
	}

	stored, err := svc.GetByID(ctx, "google:1")
	if err != nil || stored.Name != "Jane D." {
		t.Fatalf("unexpected stored user %+v %v", stored, err)
	}
}

func TestEnsureUserRequiresID(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.EnsureUser(context.Background(), User{Email: "a@b.c"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc := NewService(NewMemoryRepo())
	if _, err := svc.GetByID(context.Background(), "github:9"); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
