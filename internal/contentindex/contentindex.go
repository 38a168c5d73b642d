// Package contentindex tracks when each highlight was first seen, per
// game, using a Redis sorted set scored by ingestion time. Highlights
// published before a play ended cannot be that play's highlight, so the
// resolver queries by a lower-bound time filter.
package contentindex

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Index is the per-game, time-scored highlight index
type Index struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a new content index. The TTL bounds each game's set so it
// doesn't grow unboundedly after the game ends.
func New(client *redis.Client, ttl time.Duration) *Index {
	return &Index{
		client: client,
		ttl:    ttl,
	}
}

// Record inserts a highlight with score = at, only if absent. Re-recording
// the same highlight on a later poll is a no-op: first-seen time wins, so
// the earliest timestamp for an entry never regresses.
func (i *Index) Record(ctx context.Context, gameKey int, highlightID string, at time.Time) error {
	key := i.key(gameKey)

	pipe := i.client.Pipeline()
	pipe.ZAddNX(ctx, key, redis.Z{
		Score:  float64(at.Unix()),
		Member: highlightID,
	})
	pipe.Expire(ctx, key, i.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("recording highlight %s: %w", highlightID, err)
	}

	return nil
}

// Since returns the ids of all highlights first seen at or after min
func (i *Index) Since(ctx context.Context, gameKey int, min time.Time) ([]string, error) {
	ids, err := i.client.ZRangeByScore(ctx, i.key(gameKey), &redis.ZRangeBy{
		Min: strconv.FormatInt(min.Unix(), 10),
		Max: "+inf",
	}).Result()
	if err != nil {
		return nil, fmt.Errorf("querying highlights: %w", err)
	}

	return ids, nil
}

func (i *Index) key(gameKey int) string {
	return fmt.Sprintf("game:%d:highlights", gameKey)
}
