package models

import "github.com/Vodeneev/livescore/internal/pkg/enums"

// Placeholder is rendered for any missing display value.
const Placeholder = "–"

// OddsEntry is one priced outcome read from the feed ("E" or "AE[].ME").
type OddsEntry struct {
	Group     int      `json:"group"`
	Type      int      `json:"type"`
	Param     *float64 `json:"param,omitempty"`
	Price     float64  `json:"price"`
	PriceText string   `json:"-"` // display form of Price
}

// Side returns the 1X2 side code of a main-market entry: "1", "X" or "2".
func (o OddsEntry) Side() string {
	switch o.Type {
	case 1:
		return "1"
	case 2:
		return "2"
	case 3:
		return "X"
	default:
		return ""
	}
}

// MatchStatus is the derived lifecycle state plus its display label.
type MatchStatus struct {
	State enums.MatchState `json:"state"`
	Label string           `json:"label"`
}

func (s MatchStatus) IsLive() bool     { return s.State == enums.Live }
func (s MatchStatus) IsFinished() bool { return s.State == enums.Finished }
func (s MatchStatus) IsUpcoming() bool { return s.State == enums.Upcoming }

// NormalizedMatch is the per-record view built by the normalizer. It is never mutated after construction.
type NormalizedMatch struct {
	ID     *int64 `json:"id,omitempty"`
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	Score1 int    `json:"score1"`
	Score2 int    `json:"score2"`

	League        string `json:"league"`
	LeagueName    string `json:"league_name"`
	LeagueCountry string `json:"league_country"`
	Sport         string `json:"sport"`
	SportName     string `json:"sport_name"`

	Status         MatchStatus `json:"status"`
	Minute         *int        `json:"minute,omitempty"`
	KickoffDisplay string      `json:"kickoff"`

	Temperature string `json:"temperature"`
	Humidity    string `json:"humidity"`

	Odds              []string    `json:"odds"`
	MainOdds          []OddsEntry `json:"main_odds"`
	PrimaryPrediction string      `json:"prediction"`

	Team1Image string `json:"team1_image,omitempty"`
	Team2Image string `json:"team2_image,omitempty"`
	SportImage string `json:"sport_image,omitempty"`
}

// HasID reports whether the record carried a usable identifier.
func (m NormalizedMatch) HasID() bool {
	return m.ID != nil
}

// PredictionKind groups bet labels for the "best alternative" query.
type PredictionKind string

const (
	KindMainLine      PredictionKind = "1x2"
	KindDoubleChance  PredictionKind = "double_chance"
	KindHandicap      PredictionKind = "handicap"
	KindAsianHandicap PredictionKind = "asian_handicap"
	KindTotal         PredictionKind = "total"
	KindTeamTotal     PredictionKind = "team_total"
	KindBothScore     PredictionKind = "both_teams_score"
	KindOddEven       PredictionKind = "odd_even"
	KindExactScore    PredictionKind = "exact_score"
	KindHalfFull      PredictionKind = "half_full"
	KindOther         PredictionKind = "other"
)

// PredictionEntry is one ranked betting opportunity.
type PredictionEntry struct {
	Label                string         `json:"label"`
	Param                *string        `json:"param,omitempty"`
	Price                float64        `json:"price"`
	EstimatedProbability float64        `json:"estimated_probability"`
	Group                int            `json:"group"`
	Type                 int            `json:"type"`
	Kind                 PredictionKind `json:"kind"`
}

// Stat is one row of the live statistics table.
type Stat struct {
	Name string `json:"name"`
	Home string `json:"home"`
	Away string `json:"away"`

	// Chart values; non-numeric cells chart as 0.
	HomeValue float64 `json:"home_value"`
	AwayValue float64 `json:"away_value"`
}

// AltOdd is one alternate-market entry as shown on the details page.
type AltOdd struct {
	Group int     `json:"group"`
	Type  int     `json:"type"`
	Param *string `json:"param,omitempty"`
	Price float64 `json:"price"`
	Label string  `json:"label"`
}

// MatchDetails backs the details view.
type MatchDetails struct {
	Match NormalizedMatch `json:"match"`

	PredictionSide  string   `json:"prediction_side,omitempty"`
	PredictionPrice *float64 `json:"prediction_price,omitempty"`
	Explanation     string   `json:"explanation"`

	OddsLabels []string  `json:"odds_labels"`
	OddsValues []float64 `json:"odds_values"`

	Stats           []Stat            `json:"stats"`
	Predictions     []PredictionEntry `json:"predictions"`
	BestAlternative string            `json:"best_alternative"`
	AltOdds         []AltOdd          `json:"alt_odds"`
}
