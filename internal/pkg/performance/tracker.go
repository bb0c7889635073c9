package performance

import (
	"log/slog"
	"sync"
	"time"
)

// Tracker accumulates feed and normalization metrics for the /metrics endpoint.
type Tracker struct {
	mu sync.RWMutex

	// Feed access
	FeedFetches      int
	FeedErrors       int
	CacheHits        int
	StaleServed      int
	FetchDuration    time.Duration
	LastFetchAt      time.Time
	LastFetchRecords int
	SlowestFetch     time.Duration

	// Normalization
	NormalizeRuns     int
	RecordsIn         int
	RecordsSkipped    int
	NormalizeDuration time.Duration
}

var globalTracker = &Tracker{}

// GetTracker returns the process-wide tracker.
func GetTracker() *Tracker {
	return globalTracker
}

// Reset clears all counters.
func (t *Tracker) Reset() {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.FeedFetches, t.FeedErrors, t.CacheHits, t.StaleServed = 0, 0, 0, 0
	t.FetchDuration, t.SlowestFetch = 0, 0
	t.LastFetchAt, t.LastFetchRecords = time.Time{}, 0
	t.NormalizeRuns, t.RecordsIn, t.RecordsSkipped = 0, 0, 0
	t.NormalizeDuration = 0
}

// RecordFetch records one upstream fetch, successful or not.
func (t *Tracker) RecordFetch(d time.Duration, records int, err error) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.FeedFetches++
	t.FetchDuration += d
	if d > t.SlowestFetch {
		t.SlowestFetch = d
	}
	if err != nil {
		t.FeedErrors++
		return
	}
	t.LastFetchAt = time.Now()
	t.LastFetchRecords = records
}

// RecordCacheHit records a request answered from a cached snapshot.
func (t *Tracker) RecordCacheHit() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.CacheHits++
	t.mu.Unlock()
}

// RecordStale records a request answered from an expired snapshot after a failed refresh.
func (t *Tracker) RecordStale() {
	if t == nil {
		return
	}
	t.mu.Lock()
	t.StaleServed++
	t.mu.Unlock()
}

// RecordNormalize records one batch normalization.
func (t *Tracker) RecordNormalize(d time.Duration, in, skipped int) {
	if t == nil {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.NormalizeRuns++
	t.RecordsIn += in
	t.RecordsSkipped += skipped
	t.NormalizeDuration += d
}

// MetricsResponse is the JSON shape served on /metrics.
type MetricsResponse struct {
	Feed struct {
		Fetches          int     `json:"fetches"`
		Errors           int     `json:"errors"`
		CacheHits        int     `json:"cache_hits"`
		StaleServed      int     `json:"stale_served"`
		AvgFetchTime     string  `json:"avg_fetch_time"`
		SlowestFetch     string  `json:"slowest_fetch"`
		ErrorRate        float64 `json:"error_rate"`
		LastFetchAt      string  `json:"last_fetch_at,omitempty"`
		LastFetchRecords int     `json:"last_fetch_records"`
	} `json:"feed"`

	Normalize struct {
		Runs           int     `json:"runs"`
		RecordsIn      int     `json:"records_in"`
		RecordsSkipped int     `json:"records_skipped"`
		SkipRate       float64 `json:"skip_rate"`
		AvgRunTime     string  `json:"avg_run_time"`
	} `json:"normalize"`
}

// GetMetrics returns a consistent snapshot of the counters.
func (t *Tracker) GetMetrics() MetricsResponse {
	var resp MetricsResponse
	if t == nil {
		return resp
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	resp.Feed.Fetches = t.FeedFetches
	resp.Feed.Errors = t.FeedErrors
	resp.Feed.CacheHits = t.CacheHits
	resp.Feed.StaleServed = t.StaleServed
	resp.Feed.SlowestFetch = t.SlowestFetch.String()
	resp.Feed.LastFetchRecords = t.LastFetchRecords
	if !t.LastFetchAt.IsZero() {
		resp.Feed.LastFetchAt = t.LastFetchAt.UTC().Format(time.RFC3339)
	}
	if t.FeedFetches > 0 {
		resp.Feed.AvgFetchTime = (t.FetchDuration / time.Duration(t.FeedFetches)).String()
		resp.Feed.ErrorRate = float64(t.FeedErrors) / float64(t.FeedFetches) * 100
	} else {
		resp.Feed.AvgFetchTime = time.Duration(0).String()
	}

	resp.Normalize.Runs = t.NormalizeRuns
	resp.Normalize.RecordsIn = t.RecordsIn
	resp.Normalize.RecordsSkipped = t.RecordsSkipped
	if t.RecordsIn > 0 {
		resp.Normalize.SkipRate = float64(t.RecordsSkipped) / float64(t.RecordsIn) * 100
	}
	if t.NormalizeRuns > 0 {
		resp.Normalize.AvgRunTime = (t.NormalizeDuration / time.Duration(t.NormalizeRuns)).String()
	} else {
		resp.Normalize.AvgRunTime = time.Duration(0).String()
	}
	return resp
}

// LogSummary writes the current counters to the default logger.
func (t *Tracker) LogSummary() {
	m := t.GetMetrics()
	slog.Info("Performance summary",
		"feed_fetches", m.Feed.Fetches,
		"feed_errors", m.Feed.Errors,
		"cache_hits", m.Feed.CacheHits,
		"avg_fetch_time", m.Feed.AvgFetchTime,
		"normalize_runs", m.Normalize.Runs,
		"records_in", m.Normalize.RecordsIn,
		"records_skipped", m.Normalize.RecordsSkipped)
}
