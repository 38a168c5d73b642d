// Package dedup is the idempotency cache: a Redis-backed answer to "have
// I already alerted for this fingerprint". The cache is advisory, not
// transactional; a crash between check and mark can duplicate an alert.
package dedup

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache deduplicates alerts using Redis TTL keys
type Cache struct {
	client  *redis.Client
	version string
	ttl     time.Duration
}

// New creates a new idempotency cache. Bumping version invalidates all
// prior entries cheaply, since it participates in every fingerprint.
func New(client *redis.Client, version string, ttl time.Duration) *Cache {
	return &Cache{
		client:  client,
		version: version,
		ttl:     ttl,
	}
}

// Seen reports whether the fingerprint has been marked and not yet expired
func (c *Cache) Seen(ctx context.Context, parts ...string) (bool, error) {
	exists, err := c.client.Exists(ctx, c.key(parts)).Result()
	if err != nil {
		return false, fmt.Errorf("checking dedup key: %w", err)
	}

	return exists > 0, nil
}

// Mark records the fingerprint with the configured TTL
func (c *Cache) Mark(ctx context.Context, parts ...string) error {
	if err := c.client.Set(ctx, c.key(parts), "1", c.ttl).Err(); err != nil {
		return fmt.Errorf("setting dedup key: %w", err)
	}

	return nil
}

// key builds a stable hash over the ordered tuple (version, parts...)
func (c *Cache) key(parts []string) string {
	joined := strings.Join(append([]string{c.version}, parts...), ":")
	hash := sha256.Sum256([]byte(joined))

	return fmt.Sprintf("alert:dedup:%x", hash[:16])
}
