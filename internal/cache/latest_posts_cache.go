package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gopherpost/internal/model"
)

const (
	latestKey      = "posts:latest"
	latestDirtyKey = "posts:latest:dirty"
)

// LatestPostsCache holds the most recent posts behind the latest-N read path.
// A dirty marker set on every post mutation keeps readers off the cache until
// a fresh load repopulates it.
type LatestPostsCache struct {
	client         *redisv9.Client
	latestTTL      time.Duration
	dirtyMarkerTTL time.Duration
}

func NewLatestPostsCache(client *redisv9.Client, latestTTL, dirtyMarkerTTL time.Duration) *LatestPostsCache {
	if latestTTL <= 0 {
		latestTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &LatestPostsCache{
		client:         client,
		latestTTL:      latestTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *LatestPostsCache) GetLatest(ctx context.Context) ([]model.Post, bool, error) {
	raw, err := c.client.Get(ctx, latestKey).Result()
	if err == redisv9.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get latest posts failed: %w", err)
	}

	var posts []model.Post
	if err := json.Unmarshal([]byte(raw), &posts); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached posts failed: %w", err)
	}
	return posts, true, nil
}

func (c *LatestPostsCache) SetLatest(ctx context.Context, posts []model.Post) error {
	payload, err := json.Marshal(posts)
	if err != nil {
		return fmt.Errorf("marshal posts cache failed: %w", err)
	}
	if err := c.client.Set(ctx, latestKey, payload, c.latestTTL).Err(); err != nil {
		return fmt.Errorf("redis set latest posts failed: %w", err)
	}
	return nil
}

func (c *LatestPostsCache) DeleteLatest(ctx context.Context) error {
	if err := c.client.Del(ctx, latestKey).Err(); err != nil {
		return fmt.Errorf("redis delete latest posts failed: %w", err)
	}
	return nil
}

func (c *LatestPostsCache) MarkDirty(ctx context.Context) error {
	if err := c.client.Set(ctx, latestDirtyKey, "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *LatestPostsCache) IsDirty(ctx context.Context) (bool, error) {
	exists, err := c.client.Exists(ctx, latestDirtyKey).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}
