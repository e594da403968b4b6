package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// redisResultTTL keeps shared run results for a week.
const redisResultTTL = 7 * 24 * time.Hour

// redisStore writes run results to a shared Redis instance, one hash per
// run keyed by device, so concurrent operators can inspect each other's
// bulk runs.
type redisStore struct {
	client *redis.Client
}

func newRedisStore(addr string) *redisStore {
	return &redisStore{
		client: redis.NewClient(&redis.Options{Addr: addr}),
	}
}

func (s *redisStore) Save(ctx context.Context, runID string, results []Result) error {
	key := "nw:results:" + runID

	fields := make(map[string]interface{}, len(results))
	for _, r := range results {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("encoding result for %s: %w", r.Device, err)
		}
		fields[r.Device] = data
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	pipe.Expire(ctx, key, redisResultTTL)
	pipe.SAdd(ctx, "nw:runs", runID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("storing results in redis: %w", err)
	}
	return nil
}
