package feed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

// Source yields the current list of raw feed records.
type Source interface {
	Matches(ctx context.Context) ([]RawMatch, error)
}

// StaticSource serves a fixed in-memory list.
type StaticSource []RawMatch

func (s StaticSource) Matches(ctx context.Context) ([]RawMatch, error) {
	return s, nil
}

// DefaultCacheTTL matches the live page refresh cadence.
const DefaultCacheTTL = 60 * time.Second

// DefaultRefreshTimeout bounds one shared upstream refresh.
const DefaultRefreshTimeout = 30 * time.Second

// CachedSource keeps the last upstream snapshot for a TTL. Concurrent refreshes are
// collapsed into one upstream call. When a refresh fails and an older snapshot exists,
// the older snapshot is served.
// The shared refresh does not inherit the cancellation of the caller that started it;
// each caller stops waiting when its own context ends.
type CachedSource struct {
	upstream       Source
	ttl            time.Duration
	refreshTimeout time.Duration
	tracker        *performance.Tracker
	now            func() time.Time

	mu        sync.RWMutex
	data      []RawMatch
	fetchedAt time.Time
	hasData   bool

	group singleflight.Group
}

func NewCachedSource(upstream Source, ttl time.Duration, tracker *performance.Tracker) *CachedSource {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedSource{
		upstream:       upstream,
		ttl:            ttl,
		refreshTimeout: DefaultRefreshTimeout,
		tracker:        tracker,
		now:            time.Now,
	}
}

func (c *CachedSource) Matches(ctx context.Context) ([]RawMatch, error) {
	c.mu.RLock()
	data, fetchedAt, hasData := c.data, c.fetchedAt, c.hasData
	c.mu.RUnlock()

	if hasData && c.now().Sub(fetchedAt) < c.ttl {
		c.tracker.RecordCacheHit()
		return data, nil
	}

	ch := c.group.DoChan("feed", func() (any, error) {
		refreshCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.refreshTimeout)
		defer cancel()

		start := time.Now()
		records, err := c.upstream.Matches(refreshCtx)
		c.tracker.RecordFetch(time.Since(start), len(records), err)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.data = records
		c.fetchedAt = c.now()
		c.hasData = true
		c.mu.Unlock()
		slog.Debug("livefeed: snapshot refreshed", "records", len(records), "duration", time.Since(start))
		return records, nil
	})

	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, fmt.Errorf("fetch live feed: %w", ctx.Err())
	}
	if res.Err != nil {
		if hasData {
			slog.Warn("livefeed: refresh failed, serving previous snapshot", "age", c.now().Sub(fetchedAt), "error", res.Err)
			c.tracker.RecordStale()
			return data, nil
		}
		return nil, fmt.Errorf("fetch live feed: %w", res.Err)
	}
	return res.Val.([]RawMatch), nil
}

// Invalidate drops the snapshot so the next call goes upstream.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.data = nil
	c.hasData = false
	c.fetchedAt = time.Time{}
	c.mu.Unlock()
}
