package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"photoshare/api/internal/models"
)

func TestUserCacheWithoutClientAlwaysMisses(t *testing.T) {
	c := NewUserCache(nil, time.Minute)

	if _, err := c.Get(context.Background(), "alice@example.com"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected ErrCacheMiss, got %v", err)
	}
	if err := c.Put(context.Background(), models.User{Email: "alice@example.com"}); err != nil {
		t.Fatalf("Put without client must be a no-op, got %v", err)
	}
	if err := c.Invalidate(context.Background(), "alice@example.com"); err != nil {
		t.Fatalf("Invalidate without client must be a no-op, got %v", err)
	}

	hits, misses := c.Stats()
	if hits != 0 || misses != 1 {
		t.Fatalf("expected 0 hits / 1 miss, got %d / %d", hits, misses)
	}
}

func TestUserKeyFormat(t *testing.T) {
	if got := userKey("alice@example.com"); got != "user:alice@example.com" {
		t.Fatalf("unexpected key %q", got)
	}
}
