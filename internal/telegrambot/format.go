package telegrambot

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Vodeneev/livescore/internal/pkg/enums"
	"github.com/Vodeneev/livescore/internal/pkg/models"
)

const maxPredictionsShown = 10

var helpText = strings.Join([]string{
	bold("🤖 Livescore"),
	"",
	bold("Commandes :"),
	"",
	escapeMarkdown("/live [n] - matchs en cours"),
	escapeMarkdown("/upcoming [n] - matchs à venir"),
	escapeMarkdown("/finished [n] - matchs terminés"),
	escapeMarkdown("/match <id> - détails, statistiques et pronostics d'un match"),
	escapeMarkdown("/help - cette aide"),
	"",
	escapeMarkdown(fmt.Sprintf("n est compris entre 1 et %d. Les commandes fonctionnent aussi sans « / » (par exemple « live 5 »).", maxListLimit)),
}, "\n")

var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"[", "\\[",
	"]", "\\]",
	"(", "\\(",
	")", "\\)",
	"~", "\\~",
	"`", "\\`",
	">", "\\>",
	"#", "\\#",
	"+", "\\+",
	"-", "\\-",
	"=", "\\=",
	"|", "\\|",
	"{", "\\{",
	"}", "\\}",
	".", "\\.",
	"!", "\\!",
	"\\", "\\\\",
)

// escapeMarkdown escapes text for ParseMode MarkdownV2.
func escapeMarkdown(text string) string {
	return markdownEscaper.Replace(text)
}

func bold(text string) string {
	return "*" + escapeMarkdown(text) + "*"
}

func stateTitle(state enums.MatchState) string {
	switch state {
	case enums.Live:
		return "en cours"
	case enums.Finished:
		return "terminés"
	default:
		return "à venir"
	}
}

func sportIcon(sport string) string {
	switch enums.Sport(sport) {
	case enums.Football:
		return "⚽"
	case enums.Tennis:
		return "🎾"
	case enums.Basketball, enums.TableBasketball:
		return "🏀"
	case enums.Hockey:
		return "🏒"
	case enums.Cricket:
		return "🏏"
	default:
		return "🏟"
	}
}

func formatMatch(n int, m models.NormalizedMatch) string {
	var sb strings.Builder
	sb.WriteString(bold(fmt.Sprintf("%d. %s - %s", n, m.Team1, m.Team2)))
	sb.WriteString("\n")
	sb.WriteString(escapeMarkdown(fmt.Sprintf("%s %s · %s", sportIcon(m.Sport), m.League, m.Status.Label)))
	sb.WriteString("\n")
	if m.Status.IsUpcoming() {
		sb.WriteString(escapeMarkdown("🕐 " + m.KickoffDisplay))
	} else {
		sb.WriteString(escapeMarkdown(fmt.Sprintf("Score : %d - %d", m.Score1, m.Score2)))
	}
	sb.WriteString("\n")
	sb.WriteString(escapeMarkdown("💰 " + strings.Join(m.Odds, " | ")))
	sb.WriteString("\n")
	sb.WriteString(escapeMarkdown("🔮 " + m.PrimaryPrediction))
	if m.ID != nil {
		sb.WriteString("\n")
		sb.WriteString("`/match " + strconv.FormatInt(*m.ID, 10) + "`")
	}
	sb.WriteString("\n\n")
	return sb.String()
}

func formatDetails(d models.MatchDetails) string {
	m := d.Match
	lines := []string{
		bold(fmt.Sprintf("%s vs %s", m.Team1, m.Team2)),
		escapeMarkdown(fmt.Sprintf("%s %s · %s", sportIcon(m.Sport), m.League, m.SportName)),
		escapeMarkdown(fmt.Sprintf("Statut : %s", m.Status.Label)),
		escapeMarkdown(fmt.Sprintf("Score : %d - %d", m.Score1, m.Score2)),
		escapeMarkdown(fmt.Sprintf("Coup d'envoi : %s", m.KickoffDisplay)),
		escapeMarkdown(fmt.Sprintf("Cotes : %s", strings.Join(m.Odds, " | "))),
	}

	prediction := "Pronostic : " + m.PrimaryPrediction
	if d.PredictionPrice != nil {
		prediction += fmt.Sprintf(" (%s @ %s)", d.PredictionSide, strconv.FormatFloat(*d.PredictionPrice, 'f', -1, 64))
	}
	lines = append(lines, escapeMarkdown(prediction), "_"+escapeMarkdown(d.Explanation)+"_")

	if len(d.Stats) > 0 {
		lines = append(lines, "", bold("Statistiques"))
		for _, s := range d.Stats {
			lines = append(lines, escapeMarkdown(fmt.Sprintf("• %s : %s - %s", s.Name, s.Home, s.Away)))
		}
	}

	if len(d.Predictions) > 0 {
		lines = append(lines, "", bold("Meilleurs pronostics"))
		for i, p := range d.Predictions {
			if i == maxPredictionsShown {
				lines = append(lines, escapeMarkdown(fmt.Sprintf("… et %d autres", len(d.Predictions)-i)))
				break
			}
			lines = append(lines, escapeMarkdown(fmt.Sprintf("%d. %s @ %s (%.1f %%)",
				i+1, p.Label, strconv.FormatFloat(p.Price, 'f', -1, 64), p.EstimatedProbability*100)))
		}
	}

	lines = append(lines, "", escapeMarkdown("Meilleure alternative : "+d.BestAlternative))
	return strings.Join(lines, "\n")
}

// splitMessages packs entries into messages of at most limit bytes, repeating header
// at the top of each. An entry longer than limit is cut at line breaks.
func splitMessages(header string, entries []string, limit int) []string {
	var out []string
	var sb strings.Builder
	flush := func() {
		if sb.Len() > len(header) {
			out = append(out, strings.TrimRight(sb.String(), "\n"))
		}
		sb.Reset()
	}

	sb.WriteString(header)
	for _, entry := range entries {
		for _, piece := range cutLines(entry, limit-len(header)) {
			if sb.Len()+len(piece) > limit {
				flush()
				sb.WriteString(header)
			}
			sb.WriteString(piece)
		}
	}
	flush()
	return out
}

// cutLines splits s into pieces no longer than limit, breaking after newlines when possible.
func cutLines(s string, limit int) []string {
	if len(s) <= limit || limit <= 0 {
		return []string{s}
	}
	var pieces []string
	var cur strings.Builder
	for _, line := range strings.SplitAfter(s, "\n") {
		if cur.Len()+len(line) > limit && cur.Len() > 0 {
			pieces = append(pieces, cur.String())
			cur.Reset()
		}
		for len(line) > limit {
			cut := cutPoint(line, limit)
			pieces = append(pieces, line[:cut])
			line = line[cut:]
		}
		cur.WriteString(line)
	}
	if cur.Len() > 0 {
		pieces = append(pieces, cur.String())
	}
	return pieces
}

// cutPoint returns where to cut s so that the first piece is at most limit bytes, never
// inside a UTF-8 sequence and never between a MarkdownV2 escape and the escaped character.
func cutPoint(s string, limit int) int {
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	backslashes := 0
	for i := cut - 1; i >= 0 && s[i] == '\\'; i-- {
		backslashes++
	}
	if backslashes%2 == 1 {
		cut--
	}
	if cut <= 0 {
		return limit
	}
	return cut
}
