// Package cache implements the report cache using Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/shared-expenses/backend/internal/application/adapter"
)

// reportCache implements the adapter.ReportCache interface using Redis.
// Summary payloads are stored as JSON under "summary:<household>:<period>:<member>".
type reportCache struct {
	client *redis.Client
}

// NewReportCache creates a new Redis-backed report cache.
func NewReportCache(client *redis.Client) adapter.ReportCache {
	return &reportCache{client: client}
}

// GetSummary retrieves a cached summary payload, returning ok=false on a miss.
func (c *reportCache) GetSummary(ctx context.Context, key string, dest interface{}) (bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read cached summary: %w", err)
	}
	if err := json.Unmarshal(payload, dest); err != nil {
		return false, fmt.Errorf("failed to decode cached summary: %w", err)
	}
	return true, nil
}

// SetSummary stores a summary payload with a TTL.
func (c *reportCache) SetSummary(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache summary: %w", err)
	}
	return nil
}

// InvalidateHousehold drops all cached summaries for a household.
func (c *reportCache) InvalidateHousehold(ctx context.Context, householdID uuid.UUID) error {
	pattern := fmt.Sprintf("summary:%s:*", householdID)

	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return fmt.Errorf("failed to scan summary keys: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to delete summary keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
