package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/pkg/pagination"
)

const (
	// DefaultTTL bounds staleness for cached pages that were written just
	// before an invalidation race.
	DefaultTTL = 30 * time.Second

	versionKeyFmt = "watchlist:list:ver:%s"
	pageKeyFmt    = "watchlist:list:%s:v%d:t%s:l%d:o%d"
)

// ListCache caches list pages in Redis. Each user has a version counter;
// invalidation bumps the counter so all cached pages for that user become
// unreachable without scanning keys.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// New creates a list cache with the given TTL. A zero TTL uses DefaultTTL.
func New(client *redis.Client, ttl time.Duration, logger *slog.Logger) *ListCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &ListCache{client: client, ttl: ttl, logger: logger}
}

func (c *ListCache) version(ctx context.Context, userID string) (int64, error) {
	v, err := c.client.Get(ctx, fmt.Sprintf(versionKeyFmt, userID)).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return v, err
}

func (c *ListCache) pageKey(userID string, version int64, itemType *domain.ItemType, limit, offset int) string {
	t := "all"
	if itemType != nil {
		t = string(*itemType)
	}
	return fmt.Sprintf(pageKeyFmt, userID, version, t, limit, offset)
}

// Get returns a cached page, or (nil, false) on a miss. Cache errors are
// logged and treated as misses so Redis outages never fail reads.
func (c *ListCache) Get(ctx context.Context, userID string, itemType *domain.ItemType, limit, offset int) (*pagination.Result[domain.ListItem], bool) {
	version, err := c.version(ctx, userID)
	if err != nil {
		c.logger.WarnContext(ctx, "list cache version lookup failed", slog.String("error", err.Error()))
		return nil, false
	}

	data, err := c.client.Get(ctx, c.pageKey(userID, version, itemType, limit, offset)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.WarnContext(ctx, "list cache read failed", slog.String("error", err.Error()))
		return nil, false
	}

	var result pagination.Result[domain.ListItem]
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.WarnContext(ctx, "list cache entry corrupt", slog.String("error", err.Error()))
		return nil, false
	}

	return &result, true
}

// Set stores a page under the user's current version. Failures are logged
// and ignored.
func (c *ListCache) Set(ctx context.Context, userID string, itemType *domain.ItemType, limit, offset int, result *pagination.Result[domain.ListItem]) {
	version, err := c.version(ctx, userID)
	if err != nil {
		c.logger.WarnContext(ctx, "list cache version lookup failed", slog.String("error", err.Error()))
		return
	}

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.WarnContext(ctx, "list cache marshal failed", slog.String("error", err.Error()))
		return
	}

	if err := c.client.Set(ctx, c.pageKey(userID, version, itemType, limit, offset), data, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "list cache write failed", slog.String("error", err.Error()))
	}
}

// Invalidate bumps the user's version counter so cached pages stop matching.
func (c *ListCache) Invalidate(ctx context.Context, userID string) {
	if err := c.client.Incr(ctx, fmt.Sprintf(versionKeyFmt, userID)).Err(); err != nil {
		c.logger.WarnContext(ctx, "list cache invalidation failed",
			slog.String("user_id", userID),
			slog.String("error", err.Error()),
		)
	}
}
