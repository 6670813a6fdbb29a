package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sellhub/market-system/internal/core/domain"
)

const likeCountTTL = 5 * time.Minute

// LikeCountCache caches per-target like counts in Redis.
// Key format: likes:<target>:<target_id>
type LikeCountCache struct {
	client *redis.Client
}

// NewLikeCountCache creates a LikeCountCache wrapping the given client.
func NewLikeCountCache(client *redis.Client) *LikeCountCache {
	return &LikeCountCache{client: client}
}

// Get returns the cached count and whether the key was present.
func (c *LikeCountCache) Get(ctx context.Context, target domain.LikeTarget, targetID string) (int64, bool, error) {
	n, err := c.client.Get(ctx, c.key(target, targetID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("like count get: %w", err)
	}
	return n, true, nil
}

// Set stores the count with a TTL, so a missed invalidation self-heals.
func (c *LikeCountCache) Set(ctx context.Context, target domain.LikeTarget, targetID string, count int64) error {
	return c.client.Set(ctx, c.key(target, targetID), count, likeCountTTL).Err()
}

// Invalidate drops the cached count for one target.
func (c *LikeCountCache) Invalidate(ctx context.Context, target domain.LikeTarget, targetID string) error {
	return c.client.Del(ctx, c.key(target, targetID)).Err()
}

func (c *LikeCountCache) key(target domain.LikeTarget, targetID string) string {
	return fmt.Sprintf("likes:%s:%s", target, targetID)
}
