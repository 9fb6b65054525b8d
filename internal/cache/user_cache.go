package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"

	"photoshare/api/internal/models"
)

// ErrCacheMiss is returned when the key is absent; callers fall back to the
// user store and Put the result.
var ErrCacheMiss = errors.New("user not in cache")

// UserCache is a read-through cache of user records keyed by email. It is
// advisory only: a miss always falls back to the source of truth, and every
// mutation of a cached user must Invalidate the entry so a banned or freshly
// confirmed user is not served stale for the whole TTL window.
type UserCache struct {
	client *redis.Client
	ttl    time.Duration

	hits   atomic.Int64
	misses atomic.Int64
}

func NewUserCache(client *redis.Client, ttl time.Duration) *UserCache {
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &UserCache{client: client, ttl: ttl}
}

func userKey(email string) string {
	return fmt.Sprintf("user:%s", email)
}

func (c *UserCache) Get(ctx context.Context, email string) (models.User, error) {
	if c.client == nil {
		c.misses.Add(1)
		return models.User{}, ErrCacheMiss
	}

	raw, err := c.client.Get(ctx, userKey(email)).Bytes()
	if err != nil {
		c.misses.Add(1)
		if errors.Is(err, redis.Nil) {
			return models.User{}, ErrCacheMiss
		}
		// Treat a broken cache as a miss rather than failing the request.
		return models.User{}, ErrCacheMiss
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		c.misses.Add(1)
		return models.User{}, ErrCacheMiss
	}

	c.hits.Add(1)
	return user, nil
}

func (c *UserCache) Put(ctx context.Context, user models.User) error {
	if c.client == nil {
		return nil
	}

	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	return c.client.Set(ctx, userKey(user.Email), raw, c.ttl).Err()
}

// Invalidate drops the cached entry for an email. Called on ban, email
// confirmation, and profile updates.
func (c *UserCache) Invalidate(ctx context.Context, email string) error {
	if c.client == nil {
		return nil
	}
	return c.client.Del(ctx, userKey(email)).Err()
}

// Stats returns cumulative hit and miss counters since startup.
func (c *UserCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}
