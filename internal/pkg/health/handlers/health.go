package handlers

import (
	"fmt"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// HandlePing handles /ping endpoint
func HandlePing(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("pong\n"))
}

// Health handles /health: the process is up, plus when the feed was last read successfully.
func Health(service string, tracker *performance.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		m := tracker.GetMetrics()
		writeJSON(w, map[string]any{
			"status":         "ok",
			"service":        service,
			"timestamp":      time.Now().UTC().Format(time.RFC3339),
			"last_fetch_at":  m.Feed.LastFetchAt,
			"feed_error_pct": m.Feed.ErrorRate,
		})
	}
}

// Metrics handles /metrics
func Metrics(tracker *performance.Tracker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, tracker.GetMetrics())
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, fmt.Sprintf("failed to encode response: %v", err), http.StatusInternalServerError)
	}
}
