package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"brinquedos/internal/models"

	"github.com/go-redis/redis/v8"
)

// DefaultListKey is the Redis key holding the serialized toy list.
const DefaultListKey = "brinquedos:all"

// Config holds Redis connection details.
type Config struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// RedisClient caches the toy list in Redis.
type RedisClient struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisClient connects to Redis and verifies the connection with a PING.
func NewRedisClient(cfg Config) (*RedisClient, error) {
	if cfg.Addr == "" {
		return nil, fmt.Errorf("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	log.Printf("Successfully connected to Redis! Ping response: %s", pong)

	return NewRedisClientFrom(client, cfg.TTL), nil
}

// NewRedisClientFrom wraps an existing go-redis client.
func NewRedisClientFrom(client *redis.Client, ttl time.Duration) *RedisClient {
	return &RedisClient{
		client: client,
		key:    DefaultListKey,
		ttl:    ttl,
	}
}

// GetList returns the cached list. The boolean is false on a cache miss.
func (c *RedisClient) GetList(ctx context.Context) ([]models.Toy, bool, error) {
	data, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s from Redis: %w", c.key, err)
	}

	toys := []models.Toy{}
	if err := json.Unmarshal(data, &toys); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached toy list: %w", err)
	}
	return toys, true, nil
}

// SetList stores the list with the configured TTL.
func (c *RedisClient) SetList(ctx context.Context, toys []models.Toy) error {
	data, err := json.Marshal(toys)
	if err != nil {
		return fmt.Errorf("failed to encode toy list: %w", err)
	}
	if err := c.client.Set(ctx, c.key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in Redis: %w", c.key, err)
	}
	return nil
}

// Invalidate drops the cached list.
func (c *RedisClient) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from Redis: %w", c.key, err)
	}
	return nil
}

// Close closes the Redis connection.
func (c *RedisClient) Close() {
	if c.client != nil {
		c.client.Close()
		log.Println("Redis connection closed.")
	}
}
