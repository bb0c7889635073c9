package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
feed:
  mirror_url: "https://mirror.example/fr"
  timeout: 10s
  rate_limit: 2
  burst: 3
  cache_ttl: 30s
  redis:
    addr: "localhost:6379"
server:
  port: 8080
  per_page: 50
telegram:
  allowed_user_ids: [1, 2]
logging:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Feed.MirrorURL != "https://mirror.example/fr" || cfg.Feed.BaseURL != "" {
		t.Errorf("feed urls = %q / %q", cfg.Feed.BaseURL, cfg.Feed.MirrorURL)
	}
	if cfg.Feed.Timeout != 10*time.Second || cfg.Feed.CacheTTL != 30*time.Second {
		t.Errorf("durations = %v / %v", cfg.Feed.Timeout, cfg.Feed.CacheTTL)
	}
	if cfg.Feed.Redis.Addr != "localhost:6379" || cfg.Feed.Redis.Key != "livescore:feed" {
		t.Errorf("redis = %+v", cfg.Feed.Redis)
	}
	if cfg.Server.Port != 8080 || cfg.Server.PerPage != 50 {
		t.Errorf("server = %+v", cfg.Server)
	}
	if len(cfg.Telegram.AllowedUserIDs) != 2 || cfg.Telegram.ListLimit != 10 {
		t.Errorf("telegram = %+v", cfg.Telegram)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Server.Port != 5000 || cfg.Server.PerPage != 20 {
		t.Errorf("server defaults = %+v", cfg.Server)
	}
	if got := cfg.FeedURL(); got != "https://1xbet.com/LiveFeed/Get1x2_VZip?count=100&lng=fr&gr=70&mode=4&country=96&top=true" {
		t.Errorf("FeedURL() = %q", got)
	}
	if cfg.Feed.CacheTTL != time.Minute {
		t.Errorf("CacheTTL = %v", cfg.Feed.CacheTTL)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("FEED_BASE_URL", "http://localhost:1234")
	t.Setenv("REDIS_ADDR", "redis:6379")
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")

	cfg, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Feed.BaseURL != "http://localhost:1234" || cfg.Feed.Redis.Addr != "redis:6379" || cfg.Telegram.BotToken != "token" {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		env     string
		wantErr string
	}{
		{"bad yaml", "server: [", "", "failed to parse config file"},
		{"bad port", "server:\n  port: 70000\n", "", "server.port"},
		{"bad format", "logging:\n  format: xml\n", "", "logging.format"},
		{"bad base url", "feed:\n  base_url: ftp://x\n", "", "feed.base_url"},
		{"bad env port", "", "abc", "invalid PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.env != "" {
				t.Setenv("PORT", tt.env)
			}
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Load() error = %v, want %q", err, tt.wantErr)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
