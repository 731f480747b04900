package redis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"microblog/internal/model"
)

const (
	// FeedTTL bounds staleness between explicit invalidations.
	FeedTTL       = 20 * time.Second
	FeedKeyPrefix = "feed:"
)

// FeedCacheRepository holds whole feed result sets keyed per query shape.
// The cache is advisory: any failure reads as a miss and the caller falls
// through to MySQL.
type FeedCacheRepository struct {
	ttl time.Duration
}

func NewFeedCacheRepository() *FeedCacheRepository {
	return &FeedCacheRepository{ttl: FeedTTL}
}

func (r *FeedCacheRepository) Get(ctx context.Context, key string) ([]model.Post, bool) {
	raw, err := Client.Get(ctx, FeedKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("feed cache get failed", "key", key, "err", err)
		return nil, false
	}
	var posts []model.Post
	if err := json.Unmarshal(raw, &posts); err != nil {
		return nil, false
	}
	return posts, true
}

func (r *FeedCacheRepository) Set(ctx context.Context, key string, posts []model.Post) {
	raw, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := Client.Set(ctx, FeedKeyPrefix+key, raw, r.ttl).Err(); err != nil {
		slog.Warn("feed cache set failed", "key", key, "err", err)
	}
}

// Clear drops every feed key. Called on post create/update/delete so no
// shape can serve a stale result set.
func (r *FeedCacheRepository) Clear(ctx context.Context) {
	iter := Client.Scan(ctx, 0, FeedKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		if err := Client.Del(ctx, iter.Val()).Err(); err != nil {
			slog.Warn("feed cache del failed", "key", iter.Val(), "err", err)
		}
	}
	if err := iter.Err(); err != nil {
		slog.Warn("feed cache clear failed", "err", err)
	}
}
