package normalize

import (
	"testing"

	"github.com/Vodeneev/livescore/internal/pkg/enums"
)

func TestResolveStatus(t *testing.T) {
	tests := []struct {
		name      string
		json      string
		wantState enums.MatchState
		wantLabel string
	}{
		{
			name:      "nothing set is upcoming",
			json:      `{"O1":"A","O2":"B"}`,
			wantState: enums.Upcoming,
			wantLabel: "À venir",
		},
		{
			name:      "running clock",
			json:      `{"SC":{"TS":1500}}`,
			wantState: enums.Live,
			wantLabel: "En cours (25′)",
		},
		{
			name:      "score without clock",
			json:      `{"SC":{"FS":{"S1":1}}}`,
			wantState: enums.Live,
			wantLabel: "En cours",
		},
		{
			name:      "score with zero minute",
			json:      `{"SC":{"FS":{"S2":1},"TS":30}}`,
			wantState: enums.Live,
			wantLabel: "En cours",
		},
		{
			name:      "finished flag overrides live score",
			json:      `{"SC":{"FS":{"S1":2,"S2":1},"TS":5400},"TN":"Match terminé"}`,
			wantState: enums.Finished,
			wantLabel: "Terminé",
		},
		{
			name:      "finished flag is case insensitive",
			json:      `{"TNS":"TERMINÉ"}`,
			wantState: enums.Finished,
			wantLabel: "Terminé",
		},
		{
			name:      "termination code",
			json:      `{"SC":{"FS":{"S1":3},"TT":3}}`,
			wantState: enums.Finished,
			wantLabel: "Terminé",
		},
		{
			name:      "other termination codes are ignored",
			json:      `{"SC":{"TT":2}}`,
			wantState: enums.Upcoming,
			wantLabel: "À venir",
		},
		{
			name:      "non string flags are ignored",
			json:      `{"TN":3,"SC":{"TS":600}}`,
			wantState: enums.Live,
			wantLabel: "En cours (10′)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := record(t, tt.json)
			s1, s2 := ExtractScores(m)
			minute, known := ExtractMinute(m)
			got := ResolveStatus(minute, known, s1, s2, m)
			if got.State != tt.wantState {
				t.Errorf("State = %q, want %q", got.State, tt.wantState)
			}
			if got.Label != tt.wantLabel {
				t.Errorf("Label = %q, want %q", got.Label, tt.wantLabel)
			}
		})
	}
}
