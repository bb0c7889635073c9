package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/Vodeneev/livescore/internal/pkg/feed"
)

// ExtractScores reads SC.FS.S1 / SC.FS.S2. Absent or unreadable values count as 0.
func ExtractScores(m feed.RawMatch) (int, int) {
	fs := m.Map("SC").Map("FS")
	return scoreValue(fs["S1"]), scoreValue(fs["S2"])
}

func scoreValue(v any) int {
	if v == nil {
		return 0
	}
	var n int64
	if i, ok := feed.AsInt(v); ok {
		n = i
	} else if f, ok := feed.AsFloat(v); ok {
		if math.IsInf(f, 0) {
			return 0
		}
		n = int64(f)
	} else if s, ok := v.(string); ok {
		i, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return 0
		}
		n = i
	}
	if n < 0 {
		return 0
	}
	return int(n)
}

// ExtractMinute resolves elapsed minutes from, in order: SC.TS seconds, SC.ST minutes,
// top-level T seconds. A level that is absent or not integer-typed falls through to the next.
func ExtractMinute(m feed.RawMatch) (int, bool) {
	sc := m.Map("SC")
	if ts, ok := sc.Int("TS"); ok {
		return int(floorDiv(ts, 60)), true
	}
	if st, ok := sc.Int("ST"); ok {
		return int(st), true
	}
	if t, ok := m.Int("T"); ok {
		return int(floorDiv(t, 60)), true
	}
	return 0, false
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
