package normalize

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/Vodeneev/livescore/internal/pkg/models"
)

// UnknownParam stands in for a line value the feed did not send.
const UnknownParam = "?"

// noParam is the feed's "no line" marker.
const noParam = -1

type betKey struct {
	group   int
	betType int
}

type labelArgs struct {
	param        *float64
	team1, team2 string
}

type betLabel struct {
	kind  models.PredictionKind
	label func(a labelArgs) string
}

func fixed(kind models.PredictionKind, text string) betLabel {
	return betLabel{kind: kind, label: func(labelArgs) string { return text }}
}

func withParam(kind models.PredictionKind, format string) betLabel {
	return betLabel{kind: kind, label: func(a labelArgs) string {
		return fmt.Sprintf(format, FormatParam(a.param))
	}}
}

func team1Param(kind models.PredictionKind, format string) betLabel {
	return betLabel{kind: kind, label: func(a labelArgs) string {
		return fmt.Sprintf(format, a.team1, FormatParam(a.param))
	}}
}

func team2Param(kind models.PredictionKind, format string) betLabel {
	return betLabel{kind: kind, label: func(a labelArgs) string {
		return fmt.Sprintf(format, a.team2, FormatParam(a.param))
	}}
}

var exactScore = betLabel{kind: models.KindExactScore, label: func(a labelArgs) string {
	return "Score exact " + rawParam(a.param)
}}

// betLabels covers the 1xBet market codes seen in the live feed, including the virtual-match groups.
var betLabels = map[betKey]betLabel{
	// 1X2
	{1, 1}: {kind: models.KindMainLine, label: func(a labelArgs) string { return a.team1 + " gagne" }},
	{1, 2}: {kind: models.KindMainLine, label: func(a labelArgs) string { return a.team2 + " gagne" }},
	{1, 3}: fixed(models.KindMainLine, "Match nul"),

	// Double chance
	{8, 4}: {kind: models.KindDoubleChance, label: func(a labelArgs) string { return "Double chance 1X (" + a.team1 + " ou nul)" }},
	{8, 5}: {kind: models.KindDoubleChance, label: func(a labelArgs) string { return "Double chance 12 (" + a.team1 + " ou " + a.team2 + ")" }},
	{8, 6}: {kind: models.KindDoubleChance, label: func(a labelArgs) string { return "Double chance X2 (nul ou " + a.team2 + ")" }},

	// Handicaps
	{2, 7}:       team1Param(models.KindHandicap, "Handicap %s (%s)"),
	{2, 8}:       team2Param(models.KindHandicap, "Handicap %s (%s)"),
	{2854, 3829}: team1Param(models.KindAsianHandicap, "Handicap asiatique %s (%s)"),
	{2854, 3830}: team2Param(models.KindAsianHandicap, "Handicap asiatique %s (%s)"),

	// Totals
	{17, 9}:      withParam(models.KindTotal, "Plus de %s"),
	{17, 10}:     withParam(models.KindTotal, "Moins de %s"),
	{2867, 3827}: withParam(models.KindTotal, "Total asiatique plus de %s"),
	{2867, 3828}: withParam(models.KindTotal, "Total asiatique moins de %s"),
	{15, 11}:     team1Param(models.KindTeamTotal, "Total %s plus de %s"),
	{15, 12}:     team1Param(models.KindTeamTotal, "Total %s moins de %s"),
	{62, 13}:     team2Param(models.KindTeamTotal, "Total %s plus de %s"),
	{62, 14}:     team2Param(models.KindTeamTotal, "Total %s moins de %s"),

	{19, 180}: fixed(models.KindBothScore, "Les deux équipes marquent : Oui"),
	{19, 181}: fixed(models.KindBothScore, "Les deux équipes marquent : Non"),
	{14, 182}: fixed(models.KindOddEven, "Total pair"),
	{14, 183}: fixed(models.KindOddEven, "Total impair"),

	{136, 731}: exactScore,

	// Half-time / full-time
	{21, 72}: {kind: models.KindHalfFull, label: func(a labelArgs) string { return "Mi-temps " + a.team1 + " / Fin " + a.team1 }},
	{21, 73}: {kind: models.KindHalfFull, label: func(a labelArgs) string { return "Mi-temps " + a.team1 + " / Fin " + a.team2 }},
	{21, 74}: {kind: models.KindHalfFull, label: func(a labelArgs) string { return "Mi-temps " + a.team2 + " / Fin " + a.team1 }},
	{21, 75}: {kind: models.KindHalfFull, label: func(a labelArgs) string { return "Mi-temps " + a.team2 + " / Fin " + a.team2 }},
}

// groupLabels apply to every bet type of a group.
var groupLabels = map[int]betLabel{
	99: exactScore,
}

var fallbackLabel = betLabel{kind: models.KindOther}

func lookupBet(group, betType int) (betLabel, bool) {
	if l, ok := betLabels[betKey{group, betType}]; ok {
		return l, true
	}
	if l, ok := groupLabels[group]; ok {
		return l, true
	}
	return fallbackLabel, false
}

// BetLabel describes a (group, type, param) bet. Unknown codes get a generic label echoing them.
func BetLabel(group, betType int, param *float64, team1, team2 string) string {
	l, ok := lookupBet(group, betType)
	if !ok {
		label := fmt.Sprintf("Marché G%d / T%d", group, betType)
		if hasParam(param) {
			label += " (" + FormatParam(param) + ")"
		}
		return label
	}
	return l.label(labelArgs{param: param, team1: team1, team2: team2})
}

// BetKind returns the family of a (group, type) pair.
func BetKind(group, betType int) models.PredictionKind {
	l, _ := lookupBet(group, betType)
	return l.kind
}

// FormatParam renders a line value without trailing zeros ("2.50" -> "2.5", "3.0" -> "3").
// An absent value or the -1 marker renders as UnknownParam.
func FormatParam(p *float64) string {
	if !hasParam(p) {
		return UnknownParam
	}
	return decimal.NewFromFloat(*p).String()
}

func hasParam(p *float64) bool {
	return p != nil && *p != noParam
}

// rawParam prints the value as received; exact-score codes are not rounded or padded.
func rawParam(p *float64) string {
	if !hasParam(p) {
		return UnknownParam
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

// paramText is the optional parameter carried by a PredictionEntry.
func paramText(p *float64) *string {
	if !hasParam(p) {
		return nil
	}
	s := FormatParam(p)
	return &s
}
