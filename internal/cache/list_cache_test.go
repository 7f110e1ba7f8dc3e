package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/screenbox/watchlist/internal/domain"
	"github.com/screenbox/watchlist/pkg/pagination"
)

func newTestCache(t *testing.T) (*ListCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(client, time.Minute, logger), mr
}

func samplePage(userID string) *pagination.Result[domain.ListItem] {
	now := time.Now().UTC().Truncate(time.Second)
	result := pagination.NewResult([]domain.ListItem{
		{UserID: userID, ItemID: "64a0b1c2d3e4f5a6b7c8d9e0", ItemType: domain.ItemTypeMovie, CreatedAt: now, UpdatedAt: now},
	}, 1, 10, 0)
	return &result
}

func TestListCache_SetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	userID := "64f1b2c3d4e5f6a7b8c9d0e1"

	_, ok := c.Get(ctx, userID, nil, 10, 0)
	assert.False(t, ok)

	want := samplePage(userID)
	c.Set(ctx, userID, nil, 10, 0, want)

	got, ok := c.Get(ctx, userID, nil, 10, 0)
	require.True(t, ok)
	assert.Equal(t, want.TotalCount, got.TotalCount)
	require.Len(t, got.Data, 1)
	assert.Equal(t, want.Data[0].ItemID, got.Data[0].ItemID)
}

func TestListCache_KeysVaryByFilterAndPage(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	userID := "64f1b2c3d4e5f6a7b8c9d0e1"

	c.Set(ctx, userID, nil, 10, 0, samplePage(userID))

	movie := domain.ItemTypeMovie
	_, ok := c.Get(ctx, userID, &movie, 10, 0)
	assert.False(t, ok, "filtered page must not hit the unfiltered entry")

	_, ok = c.Get(ctx, userID, nil, 10, 10)
	assert.False(t, ok, "different offset must not hit")
}

func TestListCache_InvalidateHidesOldPages(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	userID := "64f1b2c3d4e5f6a7b8c9d0e1"

	c.Set(ctx, userID, nil, 10, 0, samplePage(userID))
	_, ok := c.Get(ctx, userID, nil, 10, 0)
	require.True(t, ok)

	c.Invalidate(ctx, userID)

	_, ok = c.Get(ctx, userID, nil, 10, 0)
	assert.False(t, ok)
}

func TestListCache_RedisDownIsAMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	userID := "64f1b2c3d4e5f6a7b8c9d0e1"

	mr.Close()

	_, ok := c.Get(ctx, userID, nil, 10, 0)
	assert.False(t, ok)

	// Writes and invalidations must not panic either.
	c.Set(ctx, userID, nil, 10, 0, samplePage(userID))
	c.Invalidate(ctx, userID)
}
