package normalize

import (
	"math"
	"testing"

	"github.com/Vodeneev/livescore/internal/pkg/models"
)

func TestRankPredictions_Band(t *testing.T) {
	m := record(t, `{"E":[
		{"G":1,"T":1,"C":1.398},
		{"G":1,"T":2,"C":1.399},
		{"G":1,"T":3,"C":3.0},
		{"G":17,"T":9,"P":2.5,"C":3.001}
	]}`)

	got := RankPredictions(m, "A", "B")
	if len(got) != 2 {
		t.Fatalf("expected 2 entries inside the band, got %d: %+v", len(got), got)
	}
	if got[0].Price != 1.399 || got[1].Price != 3.0 {
		t.Errorf("prices = [%v %v], want [1.399 3]", got[0].Price, got[1].Price)
	}
	if got[0].Label != "B gagne" || got[1].Label != "Match nul" {
		t.Errorf("labels = [%q %q]", got[0].Label, got[1].Label)
	}
}

func TestRankPredictions_Order(t *testing.T) {
	m := record(t, `{"E":[{"G":1,"T":1,"C":2.5}],"AE":[{"G":17,"ME":[{"T":9,"P":2.5,"C":1.5},{"G":17,"T":10,"P":2.5,"C":2.0}]}]}`)

	got := RankPredictions(m, "A", "B")
	want := []float64{1.5, 2.0, 2.5}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i, p := range want {
		if got[i].Price != p {
			t.Errorf("entry %d price = %v, want %v", i, got[i].Price, p)
		}
		if math.Abs(got[i].EstimatedProbability-1/p) > 1e-12 {
			t.Errorf("entry %d probability = %v, want %v", i, got[i].EstimatedProbability, 1/p)
		}
	}
	if got[0].Label != "Plus de 2.5" || got[0].Group != 17 {
		t.Errorf("alternate entry should inherit its group label, got %+v", got[0])
	}
	if got[0].Param == nil || *got[0].Param != "2.5" {
		t.Errorf("param = %v, want 2.5", got[0].Param)
	}
}

func TestRankPredictions_StableOnTies(t *testing.T) {
	m := record(t, `{"E":[{"G":1,"T":2,"C":2.0},{"G":1,"T":1,"C":2.0},{"G":1,"T":3,"C":2.0}]}`)
	got := RankPredictions(m, "A", "B")
	if len(got) != 3 || got[0].Type != 2 || got[1].Type != 1 || got[2].Type != 3 {
		t.Errorf("ties should keep feed order, got %+v", got)
	}
}

func TestRankPredictions_Empty(t *testing.T) {
	if got := RankPredictions(record(t, `{}`), "A", "B"); len(got) != 0 {
		t.Errorf("expected no predictions, got %d", len(got))
	}
}

func TestBestAlternative(t *testing.T) {
	tests := []struct {
		name string
		in   []models.PredictionEntry
		want string
	}{
		{
			name: "no entries",
			want: NoAlternative,
		},
		{
			name: "only main line",
			in: []models.PredictionEntry{
				{Label: "A gagne", Price: 1.5, Kind: models.KindMainLine},
			},
			want: NoAlternative,
		},
		{
			name: "cheapest handicap or total",
			in: []models.PredictionEntry{
				{Label: "A gagne", Price: 1.45, Kind: models.KindMainLine},
				{Label: "Plus de 2.5", Price: 1.9, Kind: models.KindTotal},
				{Label: "Handicap A (-1)", Price: 1.6, Kind: models.KindHandicap},
				{Label: "Handicap asiatique B (0.5)", Price: 1.6, Kind: models.KindAsianHandicap},
			},
			want: "Handicap A (-1) @ 1.6",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BestAlternative(tt.in); got != tt.want {
				t.Errorf("BestAlternative() = %q, want %q", got, tt.want)
			}
		})
	}
}
