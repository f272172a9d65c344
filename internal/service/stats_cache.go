package service

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"

	"journal-llm/internal/domain"
)

// StatsCache guarda snapshots de estadísticas agregadas por ventana de días.
// Cualquier escritura de entradas debe invalidarlo completo.
type StatsCache interface {
	Get(days int) (domain.MoodStatistics, bool)
	Set(days int, stats domain.MoodStatistics) error
	Invalidate() error
}

func statsKey(days int) string {
	return "stats:" + strconv.Itoa(days)
}

type memoryStatsCache struct {
	items *gocache.Cache
}

func NewMemoryStatsCache(ttl time.Duration) StatsCache {
	return &memoryStatsCache{
		items: gocache.New(ttl, 2*ttl),
	}
}

func (c *memoryStatsCache) Get(days int) (domain.MoodStatistics, bool) {
	v, ok := c.items.Get(statsKey(days))
	if !ok {
		return domain.MoodStatistics{}, false
	}
	stats, ok := v.(domain.MoodStatistics)
	return stats, ok
}

func (c *memoryStatsCache) Set(days int, stats domain.MoodStatistics) error {
	c.items.Set(statsKey(days), stats, gocache.DefaultExpiration)
	return nil
}

func (c *memoryStatsCache) Invalidate() error {
	c.items.Flush()
	return nil
}

type redisStatsCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisStatsCache(client *redis.Client, ttl time.Duration) StatsCache {
	if client == nil {
		return nil
	}
	return &redisStatsCache{
		client: client,
		prefix: "journal:",
		ttl:    ttl,
	}
}

func (c *redisStatsCache) Get(days int) (domain.MoodStatistics, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.prefix+statsKey(days)).Bytes()
	if err != nil {
		return domain.MoodStatistics{}, false
	}
	var stats domain.MoodStatistics
	if err := json.Unmarshal(raw, &stats); err != nil {
		return domain.MoodStatistics{}, false
	}
	return stats, true
}

func (c *redisStatsCache) Set(days int, stats domain.MoodStatistics) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return c.client.Set(ctx, c.prefix+statsKey(days), raw, c.ttl).Err()
}

func (c *redisStatsCache) Invalidate() error {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	keys, err := c.client.Keys(ctx, c.prefix+"stats:*").Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
