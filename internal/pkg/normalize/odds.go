package normalize

import (
	"math"
	"strconv"
	"strings"

	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/models"
)

const (
	// MainMarketGroup is the 1X2 market group id.
	MainMarketGroup = 1

	// NoOddsAvailable is the single display entry shown when a match has no 1X2 prices.
	NoOddsAvailable = "Pas de cotes disponibles"
)

// ExtractOdds returns the priced 1X2 entries. Primary entries ("E") win outright;
// alternate groups ("AE") are read only when "E" has none.
func ExtractOdds(m feed.RawMatch) []models.OddsEntry {
	var out []models.OddsEntry
	for _, rec := range m.Records("E") {
		if entry, ok := parseEntry(rec, 0); ok && isMainLine(entry) {
			out = append(out, entry)
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, group := range m.Records("AE") {
		if g, ok := intField(group, "G"); !ok || g != MainMarketGroup {
			continue
		}
		for _, rec := range group.Records("ME") {
			entry, ok := parseEntry(rec, MainMarketGroup)
			if !ok {
				continue
			}
			// the enclosing group decides the market
			entry.Group = MainMarketGroup
			if isMainLine(entry) {
				out = append(out, entry)
			}
		}
	}
	return out
}

func isMainLine(e models.OddsEntry) bool {
	return e.Group == MainMarketGroup && e.Type >= 1 && e.Type <= 3
}

// parseEntry reads G, T, P and C. inherited is the enclosing AE group id, used when the
// entry carries no G. Entries without a usable price are rejected.
func parseEntry(rec feed.RawMatch, inherited int) (models.OddsEntry, bool) {
	price, text, ok := priceField(rec)
	if !ok {
		return models.OddsEntry{}, false
	}
	entry := models.OddsEntry{Price: price, PriceText: text, Group: inherited}
	if g, ok := intField(rec, "G"); ok {
		entry.Group = g
	}
	t, ok := intField(rec, "T")
	if !ok {
		return models.OddsEntry{}, false
	}
	entry.Type = t
	if p, ok := rec.Float("P"); ok && !math.IsInf(p, 0) {
		entry.Param = &p
	}
	return entry, true
}

// priceField reads "C". Decimal odds at or below 1.0 are not prices.
func priceField(rec feed.RawMatch) (float64, string, bool) {
	price, ok := rec.Float("C")
	if !ok || math.IsInf(price, 0) || price <= 1.0 {
		return 0, "", false
	}
	return price, priceText(rec, price), true
}

// priceText renders a parsed price: integer-typed prices as integers, any other
// price in its shortest form with at least one decimal (1.80 -> "1.8", 4.0 -> "4.0").
func priceText(rec feed.RawMatch, price float64) string {
	if i, ok := rec.Int("C"); ok {
		return strconv.FormatInt(i, 10)
	}
	text := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.Contains(text, ".") {
		text += ".0"
	}
	return text
}

// intField accepts integer-typed values and integral floats (1 and 1.0 both read as 1).
func intField(rec feed.RawMatch, key string) (int, bool) {
	if i, ok := rec.Int(key); ok {
		return int(i), true
	}
	f, ok := rec.Float(key)
	if !ok || f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}

// FormatOdds renders "side: price" per entry, or the single no-odds entry.
func FormatOdds(entries []models.OddsEntry) []string {
	if len(entries) == 0 {
		return []string{NoOddsAvailable}
	}
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Side()+": "+e.PriceText)
	}
	return out
}

// PrimaryPrediction picks the cheapest 1X2 entry, first seen on ties.
func PrimaryPrediction(entries []models.OddsEntry, team1, team2 string) string {
	best, ok := cheapest(entries)
	if !ok {
		return models.Placeholder
	}
	switch best.Side() {
	case "1":
		return team1 + " gagne"
	case "2":
		return team2 + " gagne"
	case "X":
		return "Match nul"
	default:
		return models.Placeholder
	}
}

func cheapest(entries []models.OddsEntry) (models.OddsEntry, bool) {
	if len(entries) == 0 {
		return models.OddsEntry{}, false
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Price < best.Price {
			best = e
		}
	}
	return best, true
}
