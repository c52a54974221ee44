// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// ReportCache defines a best-effort cache for household summary reports.
// Implementations must never fail a read path: a miss and a cache error look
// the same to the caller.
type ReportCache interface {
	// GetSummary retrieves a cached summary payload, returning ok=false on a miss.
	GetSummary(ctx context.Context, key string, dest interface{}) (bool, error)

	// SetSummary stores a summary payload with a TTL.
	SetSummary(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// InvalidateHousehold drops all cached summaries for a household.
	InvalidateHousehold(ctx context.Context, householdID uuid.UUID) error
}
