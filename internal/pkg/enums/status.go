package enums

import "strings"

// MatchState is the lifecycle state derived for one feed record.
type MatchState string

const (
	Upcoming MatchState = "upcoming"
	Live     MatchState = "live"
	Finished MatchState = "finished"
)

// Display labels used by the listing and details views.
const (
	LabelUpcoming = "À venir"
	LabelLive     = "En cours"
	LabelFinished = "Terminé"
)

// IsValid checks if state is known
func (s MatchState) IsValid() bool {
	switch s {
	case Upcoming, Live, Finished:
		return true
	default:
		return false
	}
}

// String returns string representation
func (s MatchState) String() string {
	return string(s)
}

// ParseMatchState parses a status filter value. The empty string means "any" and is reported as not valid.
func ParseMatchState(s string) (MatchState, bool) {
	state := MatchState(strings.ToLower(strings.TrimSpace(s)))
	return state, state.IsValid()
}
