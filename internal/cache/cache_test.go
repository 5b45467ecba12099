package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return New(client, time.Minute)
}

func TestCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	type view struct {
		ID      int64  `json:"id"`
		Title   string `json:"title"`
		Percent int    `json:"percent"`
	}

	var missed []view
	assert.False(t, c.GetJSON(ctx, "achievements:alice", &missed))

	stored := []view{{ID: 1, Title: "First Task Done", Percent: 0}}
	c.SetJSON(ctx, "achievements:alice", stored)

	var got []view
	require.True(t, c.GetJSON(ctx, "achievements:alice", &got))
	assert.Equal(t, stored, got)
}

func TestCacheInvalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	c.SetJSON(ctx, "achievements:alice", map[string]int{"x": 1})
	c.Invalidate(ctx, "achievements:alice")

	var got map[string]int
	assert.False(t, c.GetJSON(ctx, "achievements:alice", &got))
}

func TestNilCacheIsSafe(t *testing.T) {
	var c *Cache
	ctx := context.Background()

	assert.False(t, c.GetJSON(ctx, "k", &struct{}{}))
	c.SetJSON(ctx, "k", 1)
	c.Invalidate(ctx, "k")
	assert.NoError(t, c.Ping(ctx))
}
