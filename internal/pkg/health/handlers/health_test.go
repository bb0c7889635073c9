package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

func TestHandlePing(t *testing.T) {
	rec := httptest.NewRecorder()
	HandlePing(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "pong\n" {
		t.Errorf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	tracker := &performance.Tracker{}
	tracker.RecordFetch(10*time.Millisecond, 3, nil)

	rec := httptest.NewRecorder()
	Health("livescore", tracker)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" || body["service"] != "livescore" {
		t.Errorf("body = %v", body)
	}
	if body["last_fetch_at"] == "" {
		t.Error("last_fetch_at should be set after a successful fetch")
	}
}

func TestMetrics(t *testing.T) {
	tracker := &performance.Tracker{}
	tracker.RecordNormalize(time.Millisecond, 10, 1)

	rec := httptest.NewRecorder()
	Metrics(tracker)(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	var m performance.MetricsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if m.Normalize.RecordsIn != 10 || m.Normalize.RecordsSkipped != 1 {
		t.Errorf("normalize metrics = %+v", m.Normalize)
	}
}
