package cache_test

import (
	"context"
	"testing"
	"time"

	"brinquedos/internal/models"
	"brinquedos/pkg/cache"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*cache.RedisClient, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return cache.NewRedisClientFrom(client, ttl), mr
}

func TestRedisClient_GetListMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)

	toys, ok, err := c.GetList(context.Background())
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, toys)
}

func TestRedisClient_SetGetInvalidate(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	stored := []models.Toy{
		{ID: 2, Name: "Pião", Category: "Clássicos", Price: 5.5, CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)},
		{ID: 1, Name: "Bola", Category: "Esportes", Price: 19.9, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	require.NoError(t, c.SetList(ctx, stored))
	assert.True(t, mr.Exists(cache.DefaultListKey))
	assert.Equal(t, time.Minute, mr.TTL(cache.DefaultListKey))

	toys, ok, err := c.GetList(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, stored, toys)

	require.NoError(t, c.Invalidate(ctx))
	_, ok, err = c.GetList(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisClient_EmptyListIsAHit(t *testing.T) {
	c, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, []models.Toy{}))
	toys, ok, err := c.GetList(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, toys)
	assert.NotNil(t, toys)
}

func TestRedisClient_Expiry(t *testing.T) {
	c, mr := newTestCache(t, 10*time.Second)
	ctx := context.Background()

	require.NoError(t, c.SetList(ctx, []models.Toy{{ID: 1, Name: "Bola", Category: "Esportes", Price: 1}}))
	mr.FastForward(11 * time.Second)

	_, ok, err := c.GetList(ctx)
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisClient_CorruptEntry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	require.NoError(t, mr.Set(cache.DefaultListKey, "not json"))

	_, ok, err := c.GetList(context.Background())
	assert.Error(t, err)
	assert.False(t, ok)
}
