package feed

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

type countingSource struct {
	calls atomic.Int32
	err   error
	delay time.Duration
	data  []RawMatch
}

func (s *countingSource) Matches(ctx context.Context) ([]RawMatch, error) {
	s.calls.Add(1)
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	if s.err != nil {
		return nil, s.err
	}
	return s.data, nil
}

func TestStaticSource(t *testing.T) {
	src := StaticSource{{"I": 1}, {"I": 2}}
	got, err := src.Matches(context.Background())
	if err != nil || len(got) != 2 {
		t.Errorf("Matches() = %v, %v", got, err)
	}
}

func TestCachedSource_ServesWithinTTL(t *testing.T) {
	upstream := &countingSource{data: []RawMatch{{"I": 1}}}
	tracker := &performance.Tracker{}
	c := NewCachedSource(upstream, time.Minute, tracker)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		if _, err := c.Matches(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if n := upstream.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}

	now = now.Add(61 * time.Second)
	if _, err := c.Matches(context.Background()); err != nil {
		t.Fatal(err)
	}
	if n := upstream.calls.Load(); n != 2 {
		t.Errorf("upstream calls after expiry = %d, want 2", n)
	}

	m := tracker.GetMetrics()
	if m.Feed.Fetches != 2 || m.Feed.CacheHits != 2 {
		t.Errorf("metrics = %+v", m.Feed)
	}
}

func TestCachedSource_StaleOnError(t *testing.T) {
	upstream := &countingSource{data: []RawMatch{{"I": 1}}}
	c := NewCachedSource(upstream, time.Minute, nil)
	now := time.Now()
	c.now = func() time.Time { return now }

	if _, err := c.Matches(context.Background()); err != nil {
		t.Fatal(err)
	}

	upstream.err = errors.New("connection refused")
	now = now.Add(2 * time.Minute)
	got, err := c.Matches(context.Background())
	if err != nil {
		t.Fatalf("expected stale snapshot, got error %v", err)
	}
	if len(got) != 1 {
		t.Errorf("stale snapshot = %v", got)
	}

	c.Invalidate()
	if _, err := c.Matches(context.Background()); err == nil {
		t.Error("expected error with no snapshot to fall back on")
	}
}

func TestCachedSource_CollapsesConcurrentRefresh(t *testing.T) {
	upstream := &countingSource{data: []RawMatch{{"I": 1}}, delay: 50 * time.Millisecond}
	c := NewCachedSource(upstream, time.Minute, nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Matches(context.Background()); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if n := upstream.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
}

// slowSource blocks for delay unless its context ends first.
type slowSource struct {
	delay   time.Duration
	started chan struct{}
	once    sync.Once
}

func (s *slowSource) Matches(ctx context.Context) ([]RawMatch, error) {
	s.once.Do(func() { close(s.started) })
	select {
	case <-time.After(s.delay):
		return []RawMatch{{"I": 1}}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func TestCachedSource_RefreshSurvivesFirstCallerCancel(t *testing.T) {
	upstream := &slowSource{delay: 200 * time.Millisecond, started: make(chan struct{})}
	c := NewCachedSource(upstream, time.Minute, nil)

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.Matches(firstCtx)
		firstErr <- err
	}()
	<-upstream.started

	type result struct {
		records []RawMatch
		err     error
	}
	second := make(chan result, 1)
	go func() {
		records, err := c.Matches(context.Background())
		second <- result{records, err}
	}()

	time.Sleep(40 * time.Millisecond)
	cancelFirst()

	if err := <-firstErr; !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled caller error = %v, want context.Canceled", err)
	}
	got := <-second
	if got.err != nil || len(got.records) != 1 {
		t.Fatalf("second caller = %v, %v; want the fresh snapshot", got.records, got.err)
	}

	if _, err := c.Matches(context.Background()); err != nil {
		t.Errorf("snapshot not stored after shared refresh: %v", err)
	}
}
