package livescore

import (
	"fmt"
	"log/slog"

	"github.com/Vodeneev/livescore/internal/pkg/config"
	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

// NewSource builds the feed stack described by cfg: the HTTP client wrapped in a Redis
// snapshot when feed.redis.addr is set, otherwise in an in-process cache.
// The returned func releases the Redis connection.
func NewSource(cfg config.FeedConfig, tracker *performance.Tracker) (feed.Source, func(), error) {
	client := feed.NewClient(feed.ClientOptions{
		BaseURL:     cfg.BaseURL,
		MirrorURL:   cfg.MirrorURL,
		Path:        cfg.Path,
		Query:       cfg.Query,
		Timeout:     cfg.Timeout,
		RateLimit:   cfg.RateLimit,
		Burst:       cfg.Burst,
		InsecureTLS: cfg.InsecureTLS,
	})

	if cfg.Redis.Addr == "" {
		slog.Info("Using in-process feed cache", "ttl", cfg.CacheTTL)
		return feed.NewCachedSource(client, cfg.CacheTTL, tracker), func() {}, nil
	}

	rdb, err := feed.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Info("Using redis feed snapshot", "addr", cfg.Redis.Addr, "key", cfg.Redis.Key, "ttl", cfg.CacheTTL)
	closeFn := func() {
		if err := rdb.Close(); err != nil {
			slog.Warn("Failed to close redis client", "error", err)
		}
	}
	return feed.NewRedisSource(client, rdb, cfg.Redis.Key, cfg.CacheTTL, tracker), closeFn, nil
}
