package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vodeneev/livescore/internal/livescore"
	pkgconfig "github.com/Vodeneev/livescore/internal/pkg/config"
	"github.com/Vodeneev/livescore/internal/pkg/health"
	"github.com/Vodeneev/livescore/internal/pkg/logging"
	"github.com/Vodeneev/livescore/internal/pkg/performance"
)

const (
	defaultConfigPath = "configs/livescore.yaml"
	serviceName       = "livescore"
)

type config struct {
	configPath string
	runFor     time.Duration
}

func main() {
	if err := run(); err != nil {
		slog.Error("Livescore service failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	slog.Info("Starting livescore service...")

	cfg := parseFlags()

	slog.Info("Loading config", "path", cfg.configPath)
	appConfig, err := pkgconfig.Load(cfg.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	_, err = logging.SetupLogger(&appConfig.Logging, serviceName)
	if err != nil {
		slog.Warn("Failed to setup logging, continuing with default logger", "error", err)
	} else {
		slog.Info("Logging initialized", "service", serviceName)
	}

	ctx, cancel := createContext(cfg.runFor)
	defer cancel()
	setupSignalHandler(ctx, cancel)

	tracker := performance.GetTracker()
	defer tracker.LogSummary()

	source, closeSource, err := livescore.NewSource(appConfig.Feed, tracker)
	if err != nil {
		return err
	}
	defer closeSource()

	addr, err := health.AddrFor(appConfig.Server.Port)
	if err != nil {
		return fmt.Errorf("server.port: %w", err)
	}

	router := livescore.NewRouter(livescore.NewService(source, tracker), livescore.Options{
		ServiceName:    serviceName,
		PerPage:        appConfig.Server.PerPage,
		RequestTimeout: appConfig.Server.RequestTimeout,
		CORSOrigins:    appConfig.Server.CORSOrigins,
		Tracker:        tracker,
	})

	if err := health.Run(ctx, addr, serviceName, router, appConfig.Server.ReadHeaderTimeout); err != nil {
		return err
	}
	slog.Info("Livescore service stopped gracefully")
	return nil
}

func parseFlags() config {
	var cfg config
	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = defaultConfigPath
	}
	flag.StringVar(&cfg.configPath, "config", defaultConfig, "Path to config file, empty = defaults and environment only")
	flag.DurationVar(&cfg.runFor, "run-for", 0, "Auto-stop after duration. 0 = run until SIGINT/SIGTERM")
	flag.Parse()
	return cfg
}

func createContext(runFor time.Duration) (context.Context, context.CancelFunc) {
	if runFor > 0 {
		return context.WithTimeout(context.Background(), runFor)
	}
	return context.WithCancel(context.Background())
}

func setupSignalHandler(ctx context.Context, cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			slog.Info("Received shutdown signal", "signal", sig.String())
			cancel()
		case <-ctx.Done():
		}
	}()
}
