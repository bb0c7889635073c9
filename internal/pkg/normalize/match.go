package normalize

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Vodeneev/livescore/internal/pkg/enums"
	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/models"
)

const (
	weatherTemperature = 9
	weatherHumidity    = 27

	kickoffLayout = "02/01/2006 15:04"

	// Explanation accompanies the prediction on the details view.
	Explanation = "La prédiction est basée sur les cotes et les statistiques principales (tirs, possession, etc.)."
)

// Normalize builds the view of one feed record. Missing data falls back to defaults;
// an error is returned only when the record has a shape the accessors cannot walk.
func Normalize(m feed.RawMatch) (nm models.NormalizedMatch, err error) {
	defer func() {
		if r := recover(); r != nil {
			nm = models.NormalizedMatch{}
			err = fmt.Errorf("normalize match: %v", r)
		}
	}()
	return buildMatch(m), nil
}

// buildMatch is swapped in tests to force a failing record.
var buildMatch = normalize

func normalize(m feed.RawMatch) models.NormalizedMatch {
	league := textOr(m, "LE", models.Placeholder)
	sport := enums.DetectSport(league)
	team1 := textOr(m, "O1", models.Placeholder)
	team2 := textOr(m, "O2", models.Placeholder)

	score1, score2 := ExtractScores(m)
	minute, minuteKnown := ExtractMinute(m)
	odds := ExtractOdds(m)

	nm := models.NormalizedMatch{
		Team1:             team1,
		Team2:             team2,
		Score1:            score1,
		Score2:            score2,
		League:            league,
		LeagueName:        textOr(m, "L", league),
		LeagueCountry:     countryOf(m),
		Sport:             sport.String(),
		SportName:         sport.DisplayName(),
		Status:            ResolveStatus(minute, minuteKnown, score1, score2, m),
		KickoffDisplay:    FormatKickoff(m),
		Temperature:       weatherReading(m, weatherTemperature),
		Humidity:          weatherReading(m, weatherHumidity),
		Odds:              FormatOdds(odds),
		MainOdds:          odds,
		PrimaryPrediction: PrimaryPrediction(odds, team1, team2),
		Team1Image:        firstImage(m, "O1IMG"),
		Team2Image:        firstImage(m, "O2IMG"),
		SportImage:        m.String("SIMG", ""),
	}
	if minuteKnown {
		nm.Minute = &minute
	}
	if id, ok := m.ID(); ok {
		nm.ID = &id
	}
	return nm
}

// NormalizeAll normalizes records in order. A record that fails is logged and left out.
func NormalizeAll(records []feed.RawMatch) []models.NormalizedMatch {
	out := make([]models.NormalizedMatch, 0, len(records))
	for i, rec := range records {
		nm, err := Normalize(rec)
		if err != nil {
			slog.Warn("Skipping malformed match", "match_index", i, "error", err)
			continue
		}
		out = append(out, nm)
	}
	return out
}

// Details builds the details view: normalized match, statistics and ranked predictions.
func Details(m feed.RawMatch) (d models.MatchDetails, err error) {
	nm, err := Normalize(m)
	if err != nil {
		return models.MatchDetails{}, err
	}
	defer func() {
		if r := recover(); r != nil {
			d = models.MatchDetails{}
			err = fmt.Errorf("match details: %v", r)
		}
	}()

	d = models.MatchDetails{
		Match:       nm,
		Explanation: Explanation,
		Stats:       ExtractStats(m),
		OddsLabels:  []string{},
		OddsValues:  []float64{},
	}
	if best, ok := cheapest(nm.MainOdds); ok {
		d.PredictionSide = best.Side()
		price := best.Price
		d.PredictionPrice = &price
	}
	for _, e := range nm.MainOdds {
		d.OddsLabels = append(d.OddsLabels, e.Side())
		d.OddsValues = append(d.OddsValues, e.Price)
	}

	d.Predictions = RankPredictions(m, nm.Team1, nm.Team2)
	d.BestAlternative = BestAlternative(d.Predictions)
	for _, e := range alternateEntries(m) {
		d.AltOdds = append(d.AltOdds, models.AltOdd{
			Group: e.Group,
			Type:  e.Type,
			Param: paramText(e.Param),
			Price: e.Price,
			Label: BetLabel(e.Group, e.Type, e.Param, nm.Team1, nm.Team2),
		})
	}
	return d, nil
}

// maxKickoffEpoch is 9999-12-31 23:59:59 UTC.
const maxKickoffEpoch = 253402300799

// FormatKickoff renders "S" (epoch seconds) in UTC, or the placeholder when absent,
// not positive, or past year 9999.
func FormatKickoff(m feed.RawMatch) string {
	ts, ok := m.Float("S")
	if !ok || ts <= 0 || ts > maxKickoffEpoch {
		return models.Placeholder
	}
	sec, frac := math.Modf(ts)
	return time.Unix(int64(sec), int64(frac*1e9)).UTC().Format(kickoffLayout)
}

func weatherReading(m feed.RawMatch, key int) string {
	for _, item := range m.Records("MIS") {
		if k, ok := intField(item, "K"); ok && k == key {
			return item.Text("V", models.Placeholder)
		}
	}
	return models.Placeholder
}

func countryOf(m feed.RawMatch) string {
	if c := m.Text("CN", ""); c != "" {
		return c
	}
	return textOr(m, "CE", models.Placeholder)
}

// textOr returns the value under key, or def when it is absent or empty.
func textOr(m feed.RawMatch, key, def string) string {
	if s := m.Text(key, ""); s != "" {
		return s
	}
	return def
}

// firstImage reads image fields sent either as a list of names or a single name.
func firstImage(m feed.RawMatch, key string) string {
	switch v := m[key].(type) {
	case string:
		return v
	case []any:
		if len(v) > 0 {
			if s, ok := v[0].(string); ok {
				return s
			}
		}
	}
	return ""
}
