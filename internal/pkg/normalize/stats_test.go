package normalize

import "testing"

func TestExtractStats(t *testing.T) {
	m := record(t, `{"SC":{"ST":[{"Value":[
		{"N":"Possession","S1":"54.5","S2":"45.5"},
		{"N":"Tirs","S1":7,"S2":3},
		{"N":"Cartons","S1":"1/2","S2":"-1"},
		{"S1":"2"}
	]}]}}`)

	got := ExtractStats(m)
	if len(got) != 4 {
		t.Fatalf("got %d rows, want 4", len(got))
	}

	tests := []struct {
		name, home, away     string
		homeValue, awayValue float64
	}{
		{"Possession", "54.5", "45.5", 54.5, 45.5},
		{"Tirs", "7", "3", 7, 3},
		{"Cartons", "1/2", "-1", 0, 0},
		{"?", "2", "0", 2, 0},
	}
	for i, tt := range tests {
		s := got[i]
		if s.Name != tt.name || s.Home != tt.home || s.Away != tt.away {
			t.Errorf("row %d = %+v", i, s)
		}
		if s.HomeValue != tt.homeValue || s.AwayValue != tt.awayValue {
			t.Errorf("row %d chart values = %v / %v, want %v / %v", i, s.HomeValue, s.AwayValue, tt.homeValue, tt.awayValue)
		}
	}
}

func TestChartValue(t *testing.T) {
	tests := map[string]float64{
		"12":    12,
		"0.5":   0.5,
		"":      0,
		"1.2.3": 0,
		"-4":    0,
		"abc":   0,
	}
	for in, want := range tests {
		if got := chartValue(in); got != want {
			t.Errorf("chartValue(%q) = %v, want %v", in, got, want)
		}
	}
}
