package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	if _, err := s.Get(ctx, "session"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss, got %v", err)
	}
	if err := s.Set(ctx, "session", "token", 0); err != nil {
		t.Fatal(err)
	}
	v, err := s.Get(ctx, "session")
	if err != nil || v != "token" {
		t.Fatalf("Get = %q, %v", v, err)
	}
	if err := s.Delete(ctx, "session"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "session"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expected miss after delete, got %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close()

	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	_ = s.Set(ctx, "k", "v", time.Minute)
	if _, err := s.Get(ctx, "k"); err != nil {
		t.Fatalf("fresh key missing: %v", err)
	}
	now = now.Add(2 * time.Minute)
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("expired key returned, err=%v", err)
	}
}

func TestMemoryStoreCloseIsIdempotent(t *testing.T) {
	s := NewMemoryStore()
	_ = s.Close()
	_ = s.Close()
}
