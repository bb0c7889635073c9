package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

const DefaultRedisKey = "livescore:feed"

// RedisSource shares one feed snapshot between processes (web and bot) through Redis.
// Redis failures never fail a request: the upstream is queried directly instead.
type RedisSource struct {
	upstream Source
	client   redis.Cmdable
	key      string
	ttl      time.Duration
	tracker  *performance.Tracker
}

// NewRedisClient connects and pings Redis.
func NewRedisClient(addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	return client, nil
}

func NewRedisSource(upstream Source, client redis.Cmdable, key string, ttl time.Duration, tracker *performance.Tracker) *RedisSource {
	if key == "" {
		key = DefaultRedisKey
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &RedisSource{
		upstream: upstream,
		client:   client,
		key:      key,
		ttl:      ttl,
		tracker:  tracker,
	}
}

func (r *RedisSource) Matches(ctx context.Context) ([]RawMatch, error) {
	data, err := r.client.Get(ctx, r.key).Bytes()
	switch {
	case err == nil:
		resp, decodeErr := Decode(data)
		if decodeErr == nil {
			r.tracker.RecordCacheHit()
			return resp.Value, nil
		}
		slog.Warn("livefeed: discarding unreadable redis snapshot", "key", r.key, "error", decodeErr)
	case errors.Is(err, redis.Nil):
	default:
		slog.Warn("livefeed: redis read failed, querying upstream", "key", r.key, "error", err)
	}

	start := time.Now()
	records, err := r.upstream.Matches(ctx)
	r.tracker.RecordFetch(time.Since(start), len(records), err)
	if err != nil {
		return nil, fmt.Errorf("fetch live feed: %w", err)
	}

	payload, err := Encode(records)
	if err != nil {
		slog.Warn("livefeed: failed to encode snapshot", "error", err)
		return records, nil
	}
	if err := r.client.Set(ctx, r.key, payload, r.ttl).Err(); err != nil {
		slog.Warn("livefeed: redis write failed", "key", r.key, "error", err)
	}
	return records, nil
}
