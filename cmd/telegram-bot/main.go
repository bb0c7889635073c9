package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Vodeneev/livescore/internal/livescore"
	pkgconfig "github.com/Vodeneev/livescore/internal/pkg/config"
	"github.com/Vodeneev/livescore/internal/pkg/logging"
	"github.com/Vodeneev/livescore/internal/pkg/performance"
	"github.com/Vodeneev/livescore/internal/telegrambot"
)

const (
	defaultConfigPath = "configs/livescore.yaml"
	serviceName       = "telegram-bot"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Telegram bot failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath, token, allowedUsers string

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}
	flag.StringVar(&configPath, "config", defaultConfig, "Path to config file, empty = defaults and environment only")
	flag.StringVar(&token, "token", "", "Telegram bot token (overrides telegram.bot_token and TELEGRAM_BOT_TOKEN)")
	flag.StringVar(&allowedUsers, "allowed-users", "", "Comma-separated list of allowed user IDs (optional)")
	flag.Parse()

	appConfig, err := pkgconfig.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := logging.SetupLogger(&appConfig.Logging, serviceName); err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	}

	if token != "" {
		appConfig.Telegram.BotToken = token
	}
	if appConfig.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required: set -token, telegram.bot_token or TELEGRAM_BOT_TOKEN")
	}
	if allowedUsers != "" {
		ids, err := parseUserIDs(allowedUsers)
		if err != nil {
			return err
		}
		appConfig.Telegram.AllowedUserIDs = ids
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	tracker := performance.GetTracker()
	defer tracker.LogSummary()

	source, closeSource, err := livescore.NewSource(appConfig.Feed, tracker)
	if err != nil {
		return err
	}
	defer closeSource()

	api, err := tgbotapi.NewBotAPI(appConfig.Telegram.BotToken)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}
	api.Debug = false
	slog.Info("Authorized on account", "account", api.Self.UserName)

	bot := telegrambot.New(api, livescore.NewService(source, tracker), telegrambot.Config{
		AllowedUserIDs: appConfig.Telegram.AllowedUserIDs,
		UpdateTimeout:  appConfig.Telegram.UpdateTimeout,
		ListLimit:      appConfig.Telegram.ListLimit,
	})
	return bot.Run(ctx, api)
}

func parseUserIDs(list string) ([]int64, error) {
	var ids []int64
	for _, idStr := range strings.Split(list, ",") {
		idStr = strings.TrimSpace(idStr)
		if idStr == "" {
			continue
		}
		id, err := strconv.ParseInt(idStr, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q in -allowed-users: %w", idStr, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
