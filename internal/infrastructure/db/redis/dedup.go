package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = time.Hour

// DedupChecker remembers webhook deliveries by their Idempotency-Key.
// Key format: dedup:webhook:<key>
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client, ttl: dedupTTL}
}

// IsDuplicate reports whether a delivery with this key was already applied.
func (d *DedupChecker) IsDuplicate(ctx context.Context, key string) (bool, error) {
	n, err := d.client.Exists(ctx, dedupKey(key)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records the delivery; the key expires after one hour.
func (d *DedupChecker) Mark(ctx context.Context, key string) error {
	return d.client.Set(ctx, dedupKey(key), "1", d.ttl).Err()
}

func dedupKey(key string) string {
	return fmt.Sprintf("dedup:webhook:%s", key)
}
