package enums

import "testing"

func TestDetectSport(t *testing.T) {
	tests := []struct {
		league string
		want   Sport
	}{
		{"ATP. Paris Masters", Tennis},
		{"WTA Finals", Tennis},
		{"Tennis Hockey Invitational", Tennis},
		{"NBA", Basketball},
		{"IPBL Pro Division", Basketball},
		{"Basketball. Euroleague", Basketball},
		{"Ice Hockey. KHL", Hockey},
		{"TBL Masters", TableBasketball},
		{"Table League 2x2", TableBasketball},
		{"Cricket. IPL", Cricket},
		{"UEFA Champions League", Football},
		{"–", Football},
		{"", Football},
	}

	for _, tt := range tests {
		t.Run(tt.league, func(t *testing.T) {
			got := DetectSport(tt.league)
			if got != tt.want {
				t.Errorf("DetectSport(%q) = %q, want %q", tt.league, got, tt.want)
			}
			if !got.IsValid() {
				t.Errorf("DetectSport(%q) returned a sport outside the taxonomy", tt.league)
			}
		})
	}
}

func TestParseSport(t *testing.T) {
	tests := []struct {
		in     string
		want   Sport
		wantOK bool
	}{
		{"football", Football, true},
		{"Table Basketball", TableBasketball, true},
		{"table_basketball", TableBasketball, true},
		{" Hockey ", Hockey, true},
		{"curling", Sport("curling"), false},
	}
	for _, tt := range tests {
		got, ok := ParseSport(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseSport(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseMatchState(t *testing.T) {
	for _, s := range []string{"live", "Upcoming", "FINISHED"} {
		if _, ok := ParseMatchState(s); !ok {
			t.Errorf("ParseMatchState(%q) not accepted", s)
		}
	}
	if _, ok := ParseMatchState(""); ok {
		t.Error("empty state should not parse")
	}
}
