package normalize

import (
	"sort"
	"strconv"

	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/models"
)

// Prediction price band, inclusive on both ends.
const (
	MinPredictionPrice = 1.399
	MaxPredictionPrice = 3.0
)

// NoAlternative is returned by BestAlternative when no alternate line falls in the band.
const NoAlternative = "Aucune alternative dans la fourchette"

// RankPredictions collects every priced entry from "E" and all "AE" groups, keeps those
// inside the price band and orders them favourite first. Equal prices keep feed order.
func RankPredictions(m feed.RawMatch, team1, team2 string) []models.PredictionEntry {
	var out []models.PredictionEntry
	add := func(e models.OddsEntry) {
		if e.Price < MinPredictionPrice || e.Price > MaxPredictionPrice {
			return
		}
		out = append(out, models.PredictionEntry{
			Label:                BetLabel(e.Group, e.Type, e.Param, team1, team2),
			Param:                paramText(e.Param),
			Price:                e.Price,
			EstimatedProbability: 1 / e.Price,
			Group:                e.Group,
			Type:                 e.Type,
			Kind:                 BetKind(e.Group, e.Type),
		})
	}

	for _, rec := range m.Records("E") {
		if e, ok := parseEntry(rec, 0); ok {
			add(e)
		}
	}
	for _, e := range alternateEntries(m) {
		add(e)
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	return out
}

// alternateEntries flattens AE[].ME[]; an entry without its own G takes the group's.
func alternateEntries(m feed.RawMatch) []models.OddsEntry {
	var out []models.OddsEntry
	for _, group := range m.Records("AE") {
		g, _ := intField(group, "G")
		for _, rec := range group.Records("ME") {
			if e, ok := parseEntry(rec, g); ok {
				out = append(out, e)
			}
		}
	}
	return out
}

func isAlternativeKind(k models.PredictionKind) bool {
	switch k {
	case models.KindHandicap, models.KindAsianHandicap, models.KindTotal, models.KindTeamTotal:
		return true
	default:
		return false
	}
}

// BestAlternative summarizes the cheapest handicap or over/under entry as "label @ price".
func BestAlternative(predictions []models.PredictionEntry) string {
	var (
		best  models.PredictionEntry
		found bool
	)
	for _, p := range predictions {
		if !isAlternativeKind(p.Kind) {
			continue
		}
		if !found || p.Price < best.Price {
			best = p
			found = true
		}
	}
	if !found {
		return NoAlternative
	}
	return best.Label + " @ " + strconv.FormatFloat(best.Price, 'f', -1, 64)
}
