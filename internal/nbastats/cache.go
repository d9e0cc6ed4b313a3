package nbastats

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/obaflips/court-reads/internal/logger"
	"github.com/obaflips/court-reads/internal/models"
)

// DefaultTTL bounds how stale a cached season line may get.
const DefaultTTL = 24 * time.Hour

// Cache stores resolved season stats keyed by player name. Misses are
// not errors; only transport failures are.
type Cache interface {
	Get(ctx context.Context, playerName string) (*models.Stats, error)
	Set(ctx context.Context, playerName string, stats models.Stats) error
}

// MemoryCache is the in-process TTL cache used in development and as
// the layer in front of Redis.
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	stats   models.Stats
	expires time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryCache) Get(_ context.Context, playerName string) (*models.Stats, error) {
	c.mu.RLock()
	entry, ok := c.entries[playerName]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return nil, nil
	}
	stats := entry.stats
	return &stats, nil
}

func (c *MemoryCache) Set(_ context.Context, playerName string, stats models.Stats) error {
	c.mu.Lock()
	c.entries[playerName] = memoryEntry{stats: stats, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

// RedisCache shares resolved stats across server instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisCache{client: client, ttl: ttl}
}

// ConnectRedis dials Redis and verifies the connection.
func ConnectRedis(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}

	logger.Info("Connected to Redis stats cache", "addr", addr)
	return client, nil
}

func redisKey(playerName string) string {
	return "courtreads:stats:" + playerName
}

func (c *RedisCache) Get(ctx context.Context, playerName string) (*models.Stats, error) {
	raw, err := c.client.Get(ctx, redisKey(playerName)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var stats models.Stats
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *RedisCache) Set(ctx context.Context, playerName string, stats models.Stats) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKey(playerName), raw, c.ttl).Err()
}
