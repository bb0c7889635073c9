package telegrambot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vodeneev/livescore/internal/pkg/enums"
	"github.com/Vodeneev/livescore/internal/pkg/feed"
	"github.com/Vodeneev/livescore/internal/pkg/models"
)

const (
	defaultListLimit = 10
	maxListLimit     = 50

	// Telegram rejects messages over 4096 characters.
	maxMessageLen = 4000
)

// Provider is the part of livescore.Service the bot needs.
type Provider interface {
	Matches(ctx context.Context) ([]models.NormalizedMatch, error)
	Details(ctx context.Context, id int64) (models.MatchDetails, error)
}

// Sender sends one message or chat action. *tgbotapi.BotAPI implements it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Config struct {
	AllowedUserIDs []int64 // empty = everyone
	UpdateTimeout  int
	ListLimit      int
}

type Bot struct {
	sender   Sender
	provider Provider
	cfg      Config
	allowed  map[int64]struct{}
}

func New(sender Sender, provider Provider, cfg Config) *Bot {
	if cfg.ListLimit <= 0 || cfg.ListLimit > maxListLimit {
		cfg.ListLimit = defaultListLimit
	}
	if cfg.UpdateTimeout <= 0 {
		cfg.UpdateTimeout = 60
	}
	allowed := make(map[int64]struct{}, len(cfg.AllowedUserIDs))
	for _, id := range cfg.AllowedUserIDs {
		allowed[id] = struct{}{}
	}
	return &Bot{sender: sender, provider: provider, cfg: cfg, allowed: allowed}
}

// Run long-polls updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context, api *tgbotapi.BotAPI) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	updates := api.GetUpdatesChan(u)

	slog.Info("Telegram bot started", "account", api.Self.UserName, "allowed_users", len(b.allowed))
	for {
		select {
		case <-ctx.Done():
			api.StopReceivingUpdates()
			slog.Info("Telegram bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return errors.New("telegram updates channel closed")
			}
			if update.Message == nil {
				continue
			}
			b.HandleMessage(ctx, update.Message)
		}
	}
}

// HandleMessage answers one incoming message.
func (b *Bot) HandleMessage(ctx context.Context, message *tgbotapi.Message) {
	chatID := message.Chat.ID
	if !b.isAllowed(message.From) {
		b.send(tgbotapi.NewMessage(chatID, "Accès refusé. Vous n'êtes pas autorisé à utiliser ce bot."))
		return
	}

	text := strings.TrimSpace(message.Text)
	if text == "" {
		return
	}

	if _, err := b.sender.Send(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		slog.Debug("Failed to send chat action", "chat_id", chatID, "error", err)
	}

	for _, chunk := range b.Reply(ctx, text) {
		msg := tgbotapi.NewMessage(chatID, chunk)
		msg.ParseMode = tgbotapi.ModeMarkdownV2
		msg.DisableWebPagePreview = true
		b.send(msg)
	}
}

func (b *Bot) isAllowed(from *tgbotapi.User) bool {
	if len(b.allowed) == 0 {
		return true
	}
	if from == nil {
		return false
	}
	_, ok := b.allowed[from.ID]
	return ok
}

func (b *Bot) send(msg tgbotapi.MessageConfig) {
	if _, err := b.sender.Send(msg); err != nil {
		slog.Error("Failed to send message", "chat_id", msg.ChatID, "error", err)
	}
}

// Reply builds the MarkdownV2 messages answering text. Commands may be sent with or
// without the leading slash ("/live 5" or "live 5").
func (b *Bot) Reply(ctx context.Context, text string) []string {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return nil
	}
	command := strings.ToLower(strings.TrimPrefix(parts[0], "/"))
	if i := strings.IndexByte(command, '@'); i >= 0 {
		command = command[:i]
	}
	args := parts[1:]

	switch command {
	case "start", "help":
		return []string{helpText}
	case "live":
		return b.listReply(ctx, enums.Live, b.parseLimit(args))
	case "upcoming":
		return b.listReply(ctx, enums.Upcoming, b.parseLimit(args))
	case "finished":
		return b.listReply(ctx, enums.Finished, b.parseLimit(args))
	case "match":
		if len(args) == 0 {
			return []string{escapeMarkdown("Usage : /match <identifiant>")}
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return []string{escapeMarkdown(fmt.Sprintf("Identifiant invalide : %s", args[0]))}
		}
		return b.detailsReply(ctx, id)
	default:
		return []string{escapeMarkdown("Commande inconnue. Utilisez /help pour voir les commandes disponibles.")}
	}
}

func (b *Bot) parseLimit(args []string) int {
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil && n > 0 && n <= maxListLimit {
			return n
		}
	}
	return b.cfg.ListLimit
}

func (b *Bot) listReply(ctx context.Context, state enums.MatchState, limit int) []string {
	matches, err := b.provider.Matches(ctx)
	if err != nil {
		slog.Error("Failed to load matches for bot", "state", state, "error", err)
		return []string{escapeMarkdown("❌ Erreur : impossible de charger le flux en direct : " + err.Error())}
	}

	var selected []models.NormalizedMatch
	for _, m := range matches {
		if m.Status.State == state {
			selected = append(selected, m)
			if len(selected) == limit {
				break
			}
		}
	}
	if len(selected) == 0 {
		return []string{escapeMarkdown(fmt.Sprintf("📊 Aucun match (%s).", stateTitle(state)))}
	}

	header := bold(fmt.Sprintf("📊 %d matchs (%s)", len(selected), stateTitle(state))) + "\n\n"
	entries := make([]string, 0, len(selected))
	for i, m := range selected {
		entries = append(entries, formatMatch(i+1, m))
	}
	return splitMessages(header, entries, maxMessageLen)
}

func (b *Bot) detailsReply(ctx context.Context, id int64) []string {
	details, err := b.provider.Details(ctx, id)
	switch {
	case errors.Is(err, feed.ErrMatchNotFound):
		return []string{escapeMarkdown(fmt.Sprintf("Aucun match trouvé pour l'identifiant %d", id))}
	case err != nil:
		slog.Error("Failed to build match details for bot", "match_id", id, "error", err)
		return []string{escapeMarkdown("❌ Erreur : " + err.Error())}
	}
	return splitMessages("", []string{formatDetails(details)}, maxMessageLen)
}
