package enums

import "strings"

// Sport represents the sports the live feed is classified into
type Sport string

const (
	Football        Sport = "football"
	Tennis          Sport = "tennis"
	Basketball      Sport = "basketball"
	Hockey          Sport = "hockey"
	TableBasketball Sport = "table_basketball"
	Cricket         Sport = "cricket"
)

// SportInfo contains additional information about a sport
type SportInfo struct {
	Name  string
	Alias string
}

// GetSportInfo returns sport information
func (s Sport) GetSportInfo() SportInfo {
	switch s {
	case Football:
		return SportInfo{
			Name:  "Football",
			Alias: "football",
		}
	case Tennis:
		return SportInfo{
			Name:  "Tennis",
			Alias: "tennis",
		}
	case Basketball:
		return SportInfo{
			Name:  "Basketball",
			Alias: "basketball",
		}
	case Hockey:
		return SportInfo{
			Name:  "Hockey",
			Alias: "hockey",
		}
	case TableBasketball:
		return SportInfo{
			Name:  "Table Basketball",
			Alias: "table_basketball",
		}
	case Cricket:
		return SportInfo{
			Name:  "Cricket",
			Alias: "cricket",
		}
	default:
		return SportInfo{
			Name:  "Unknown",
			Alias: "unknown",
		}
	}
}

// IsValid checks if sport is supported
func (s Sport) IsValid() bool {
	switch s {
	case Football, Tennis, Basketball, Hockey, TableBasketball, Cricket:
		return true
	default:
		return false
	}
}

// String returns string representation
func (s Sport) String() string {
	return string(s)
}

// DisplayName is the label shown in listings and filters.
func (s Sport) DisplayName() string {
	return s.GetSportInfo().Name
}

// GetAllSports returns all supported sports
func GetAllSports() []Sport {
	return []Sport{
		Football,
		Tennis,
		Basketball,
		Hockey,
		TableBasketball,
		Cricket,
	}
}

// ParseSport accepts either the alias ("table_basketball") or the display name ("Table Basketball").
func ParseSport(s string) (Sport, bool) {
	sport := Sport(strings.ToLower(strings.TrimSpace(s)))
	if sport.IsValid() {
		return sport, true
	}
	for _, candidate := range GetAllSports() {
		if strings.EqualFold(candidate.DisplayName(), strings.TrimSpace(s)) {
			return candidate, true
		}
	}
	return sport, false
}

// sportKeywords is evaluated in order; the first rule with a matching keyword wins.
var sportKeywords = []struct {
	sport    Sport
	keywords []string
}{
	{Tennis, []string{"wta", "atp", "tennis"}},
	{Basketball, []string{"basket", "nbl", "nba", "ipbl"}},
	{Hockey, []string{"hockey"}},
	{TableBasketball, []string{"tbl", "table"}},
	{Cricket, []string{"cricket"}},
}

// DetectSport classifies a league name. Anything unmatched, including the empty name, is Football.
func DetectSport(league string) Sport {
	name := strings.ToLower(league)
	for _, rule := range sportKeywords {
		for _, kw := range rule.keywords {
			if strings.Contains(name, kw) {
				return rule.sport
			}
		}
	}
	return Football
}
