package normalize

import (
	"fmt"
	"strings"

	"github.com/Vodeneev/livescore/internal/pkg/enums"
	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/models"
)

const (
	finishedKeyword = "terminé"
	finishedCode    = 3
)

// ResolveStatus applies the status rules in order; a later rule overrides an earlier one.
// The finished check runs last so a final score never reads as live.
func ResolveStatus(minute int, minuteKnown bool, score1, score2 int, m feed.RawMatch) models.MatchStatus {
	status := models.MatchStatus{State: enums.Upcoming, Label: enums.LabelUpcoming}

	if (minuteKnown && minute > 0) || score1 > 0 || score2 > 0 {
		status.State = enums.Live
		status.Label = enums.LabelLive
		if minuteKnown && minute != 0 {
			status.Label = fmt.Sprintf("%s (%d′)", enums.LabelLive, minute)
		}
	}

	if isFinished(m) {
		status = models.MatchStatus{State: enums.Finished, Label: enums.LabelFinished}
	}

	if status.Label == enums.LabelUpcoming {
		status.State = enums.Upcoming
	}
	return status
}

func isFinished(m feed.RawMatch) bool {
	tn := strings.ToLower(m.String("TN", ""))
	tns := strings.ToLower(m.String("TNS", ""))
	if strings.Contains(tn, finishedKeyword) || strings.Contains(tns, finishedKeyword) {
		return true
	}
	if tt, ok := m.Map("SC").Float("TT"); ok && tt == finishedCode {
		return true
	}
	return false
}
