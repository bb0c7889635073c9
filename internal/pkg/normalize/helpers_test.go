package normalize

import (
	"testing"

	"github.com/Vodeneev/livescore/internal/pkg/feed"
)

// record decodes one feed record the way the live client does, numbers included.
func record(t *testing.T, js string) feed.RawMatch {
	t.Helper()
	resp, err := feed.Decode([]byte("[" + js + "]"))
	if err != nil {
		t.Fatalf("decode %s: %v", js, err)
	}
	if len(resp.Value) != 1 {
		t.Fatalf("expected one record, got %d", len(resp.Value))
	}
	return resp.Value[0]
}

func floatPtr(f float64) *float64 { return &f }
