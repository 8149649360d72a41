// internal/dating/cache.go

package dating

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/yogeshsaini7172/iosflingzzapp-sub002/internal/compatibility"
)

// ScoreCache holds recently computed pair results. Keys are directional:
// (a, b) and (b, a) are separate entries.
type ScoreCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, userID, candidateID int64) (*compatibility.Result, error)
	Set(ctx context.Context, userID, candidateID int64, result compatibility.Result) error
	Invalidate(ctx context.Context, userID, candidateID int64) error
}

type redisScoreCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisScoreCache returns a no-op cache when client is nil so the
// service runs without Redis.
func NewRedisScoreCache(client *redis.Client, ttl time.Duration) ScoreCache {
	if client == nil {
		return noopCache{}
	}
	return &redisScoreCache{client: client, ttl: ttl}
}

func pairKey(userID, candidateID int64) string {
	return fmt.Sprintf("qcs:pair:%d:%d", userID, candidateID)
}

func (c *redisScoreCache) Get(ctx context.Context, userID, candidateID int64) (*compatibility.Result, error) {
	data, err := c.client.Get(ctx, pairKey(userID, candidateID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var result compatibility.Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode cached score: %w", err)
	}
	return &result, nil
}

func (c *redisScoreCache) Set(ctx context.Context, userID, candidateID int64, result compatibility.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, pairKey(userID, candidateID), data, c.ttl).Err()
}

func (c *redisScoreCache) Invalidate(ctx context.Context, userID, candidateID int64) error {
	return c.client.Del(ctx, pairKey(userID, candidateID), pairKey(candidateID, userID)).Err()
}

type noopCache struct{}

func (noopCache) Get(context.Context, int64, int64) (*compatibility.Result, error) { return nil, nil }
func (noopCache) Set(context.Context, int64, int64, compatibility.Result) error    { return nil }
func (noopCache) Invalidate(context.Context, int64, int64) error                   { return nil }
