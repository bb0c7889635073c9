package livescore

import (
	"sort"
	"strings"

	"github.com/Vodeneev/livescore/internal/pkg/enums"
	"github.com/Vodeneev/livescore/internal/pkg/models"
)

const DefaultPerPage = 20

// Filter narrows the listing. Empty fields match everything.
type Filter struct {
	Sport  string
	League string
	Status enums.MatchState
}

// Listing is one page of filtered matches plus the filter choices.
type Listing struct {
	Matches    []models.NormalizedMatch `json:"matches"`
	Page       int                      `json:"page"`
	PerPage    int                      `json:"per_page"`
	Total      int                      `json:"total"`
	TotalPages int                      `json:"total_pages"`
	Sports     []string                 `json:"sports"`
	Leagues    []string                 `json:"leagues"`
}

func (f Filter) matches(m models.NormalizedMatch) bool {
	if f.Sport != "" && !sameSport(f.Sport, m) {
		return false
	}
	if f.League != "" && m.League != f.League {
		return false
	}
	if f.Status != "" && m.Status.State != f.Status {
		return false
	}
	return true
}

// sameSport accepts the display name shown in the filter or the sport alias.
func sameSport(want string, m models.NormalizedMatch) bool {
	if want == m.SportName {
		return true
	}
	sport, ok := enums.ParseSport(want)
	return ok && sport.String() == m.Sport
}

// BuildListing filters matches and cuts one page. Sports and leagues are collected
// before filtering so every choice stays selectable. Pages start at 1.
func BuildListing(all []models.NormalizedMatch, f Filter, page, perPage int) Listing {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if page < 1 {
		page = 1
	}

	sports := map[string]struct{}{}
	leagues := map[string]struct{}{}
	filtered := make([]models.NormalizedMatch, 0, len(all))
	for _, m := range all {
		sports[m.SportName] = struct{}{}
		leagues[m.League] = struct{}{}
		if f.matches(m) {
			filtered = append(filtered, m)
		}
	}

	total := len(filtered)
	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Listing{
		Matches:    filtered[start:end],
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: (total + perPage - 1) / perPage,
		Sports:     sortedKeys(sports),
		Leagues:    sortedKeys(leagues),
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ParseFilter reads the query values used by the listing page and API.
func ParseFilter(sport, league, status string) Filter {
	f := Filter{
		Sport:  strings.TrimSpace(sport),
		League: strings.TrimSpace(league),
	}
	if state, ok := enums.ParseMatchState(status); ok {
		f.Status = state
	}
	return f
}
