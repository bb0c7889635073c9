package normalize

import (
	"strconv"
	"strings"

	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/models"
)

// ExtractStats reads the live statistics table from SC.ST[0].Value. When ST carries
// a minute count instead of a list, there are no statistics.
func ExtractStats(m feed.RawMatch) []models.Stat {
	blocks := m.Map("SC").Records("ST")
	if len(blocks) == 0 {
		return []models.Stat{}
	}
	rows := blocks[0].Records("Value")
	stats := make([]models.Stat, 0, len(rows))
	for _, row := range rows {
		home := row.Text("S1", "0")
		away := row.Text("S2", "0")
		stats = append(stats, models.Stat{
			Name:      row.Text("N", "?"),
			Home:      home,
			Away:      away,
			HomeValue: chartValue(home),
			AwayValue: chartValue(away),
		})
	}
	return stats
}

// chartValue accepts plain unsigned decimals ("12", "54.5"); anything else charts as 0.
func chartValue(s string) float64 {
	if s == "" || strings.Count(s, ".") > 1 {
		return 0
	}
	for _, r := range s {
		if r != '.' && (r < '0' || r > '9') {
			return 0
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
