package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/daybook/journal-api/internal/core/domain"
)

// searchTTL keeps results fresh enough that a new post shows up in
// search within a minute.
const searchTTL = time.Minute

// SearchCache caches full-text search results keyed by query string.
// Key format: search:<query>
type SearchCache struct {
	client *redis.Client
}

// NewSearchCache wraps the given Redis client.
func NewSearchCache(client *redis.Client) *SearchCache {
	return &SearchCache{client: client}
}

// Get returns the cached result set for query. The second return is
// false on a cache miss.
func (c *SearchCache) Get(ctx context.Context, query string) ([]domain.Post, bool, error) {
	raw, err := c.client.Get(ctx, c.key(query)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("search cache get: %w", err)
	}

	var posts []domain.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		// a corrupt entry is treated as a miss
		return nil, false, nil
	}
	return posts, true, nil
}

// Put stores the result set for query, expiring after searchTTL.
func (c *SearchCache) Put(ctx context.Context, query string, posts []domain.Post) error {
	raw, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("search cache encode: %w", err)
	}
	return c.client.Set(ctx, c.key(query), raw, searchTTL).Err()
}

func (c *SearchCache) key(query string) string {
	return "search:" + query
}
