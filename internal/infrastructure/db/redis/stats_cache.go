package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/LSiluvaiSiprin/ReCon/internal/core/domain"
)

const (
	statsKey           = keyPrefix + "stats"
	statsGenerationKey = keyPrefix + "stats:gen"
)

// StatsCache stores the dashboard counts as JSON under a single key, tagged
// with the generation they were computed in. Invalidate bumps the generation
// counter, so an entry written by a slow reader that started before the bump
// is treated as a miss.
type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

type statsEntry struct {
	Generation int64         `json:"generation"`
	Stats      *domain.Stats `json:"stats"`
}

func NewStatsCache(client redis.Cmdable, ttl time.Duration) *StatsCache {
	return &StatsCache{client: client, ttl: ttl}
}

// Get returns nil stats on a miss, along with the current generation.
func (c *StatsCache) Get(ctx context.Context) (*domain.Stats, int64, error) {
	vals, err := c.client.MGet(ctx, statsKey, statsGenerationKey).Result()
	if err != nil {
		return nil, 0, fmt.Errorf("stats cache get: %w", err)
	}
	if len(vals) != 2 {
		return nil, 0, fmt.Errorf("stats cache get: unexpected reply length %d", len(vals))
	}

	var generation int64
	if raw, ok := vals[1].(string); ok {
		generation, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, fmt.Errorf("stats cache generation: %w", err)
		}
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, generation, nil
	}
	var entry statsEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return nil, 0, fmt.Errorf("stats cache decode: %w", err)
	}
	if entry.Generation != generation || entry.Stats == nil {
		return nil, generation, nil
	}
	return entry.Stats, generation, nil
}

// Set is a no-op when the cache was built with a non-positive TTL.
func (c *StatsCache) Set(ctx context.Context, generation int64, stats *domain.Stats) error {
	if c.ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(statsEntry{Generation: generation, Stats: stats})
	if err != nil {
		return fmt.Errorf("stats cache encode: %w", err)
	}
	if err := c.client.Set(ctx, statsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("stats cache set: %w", err)
	}
	return nil
}

func (c *StatsCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, statsGenerationKey).Err(); err != nil {
		return fmt.Errorf("stats cache invalidate: %w", err)
	}
	return nil
}
