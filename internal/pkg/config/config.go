package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Feed     FeedConfig     `yaml:"feed"`
	Server   ServerConfig   `yaml:"server"`
	Telegram TelegramConfig `yaml:"telegram"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type FeedConfig struct {
	BaseURL     string        `yaml:"base_url"`
	MirrorURL   string        `yaml:"mirror_url"` // Mirror URL to resolve actual baseURL
	Path        string        `yaml:"path"`
	Query       string        `yaml:"query"`
	Timeout     time.Duration `yaml:"timeout"`
	RateLimit   float64       `yaml:"rate_limit"` // requests per second, 0 = unlimited
	Burst       int           `yaml:"burst"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
	InsecureTLS bool          `yaml:"insecure_tls"`
	Redis       RedisConfig   `yaml:"redis"`
}

// RedisConfig enables the shared snapshot when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Key      string `yaml:"key"`
}

type ServerConfig struct {
	Port              int           `yaml:"port"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	PerPage           int           `yaml:"per_page"`
	CORSOrigins       []string      `yaml:"cors_origins"`
}

type TelegramConfig struct {
	BotToken       string  `yaml:"bot_token"`
	AllowedUserIDs []int64 `yaml:"allowed_user_ids"` // empty = everyone
	UpdateTimeout  int     `yaml:"update_timeout"`   // long polling timeout, seconds
	ListLimit      int     `yaml:"list_limit"`       // matches per list reply by default
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
	File   string `yaml:"file"`   // optional extra output
}

// Default returns a configuration that works without any file.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads .env (if present), the YAML file (if path is not empty), then environment overrides.
func Load(configPath string) (*Config, error) {
	_ = godotenv.Load()

	var config Config
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	config.applyDefaults()
	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.Feed.Path == "" {
		c.Feed.Path = "/LiveFeed/Get1x2_VZip"
	}
	if c.Feed.Query == "" {
		c.Feed.Query = "count=100&lng=fr&gr=70&mode=4&country=96&top=true"
	}
	if c.Feed.BaseURL == "" && c.Feed.MirrorURL == "" {
		c.Feed.BaseURL = "https://1xbet.com"
	}
	if c.Feed.Timeout == 0 {
		c.Feed.Timeout = 30 * time.Second
	}
	if c.Feed.CacheTTL == 0 {
		c.Feed.CacheTTL = 60 * time.Second
	}
	if c.Feed.Redis.Key == "" {
		c.Feed.Redis.Key = "livescore:feed"
	}

	if c.Server.Port == 0 {
		c.Server.Port = 5000
	}
	if c.Server.ReadHeaderTimeout == 0 {
		c.Server.ReadHeaderTimeout = 5 * time.Second
	}
	if c.Server.RequestTimeout == 0 {
		c.Server.RequestTimeout = 60 * time.Second
	}
	if c.Server.PerPage == 0 {
		c.Server.PerPage = 20
	}

	if c.Telegram.UpdateTimeout == 0 {
		c.Telegram.UpdateTimeout = 60
	}
	if c.Telegram.ListLimit == 0 {
		c.Telegram.ListLimit = 10
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	if v := os.Getenv("FEED_BASE_URL"); v != "" {
		c.Feed.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Feed.Redis.Addr = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		c.Telegram.BotToken = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	return nil
}

// Validate rejects values the services cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535, got %d", c.Server.Port)
	}
	if c.Server.PerPage <= 0 {
		return fmt.Errorf("server.per_page must be positive, got %d", c.Server.PerPage)
	}
	if c.Server.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("server.read_header_timeout must be positive")
	}
	if c.Feed.Timeout <= 0 || c.Feed.CacheTTL < 0 {
		return fmt.Errorf("feed.timeout must be positive and feed.cache_ttl not negative")
	}
	if c.Feed.RateLimit < 0 || c.Feed.Burst < 0 {
		return fmt.Errorf("feed.rate_limit and feed.burst must not be negative")
	}
	if !strings.HasPrefix(c.Feed.BaseURL, "http") && c.Feed.BaseURL != "" {
		return fmt.Errorf("feed.base_url must be an http(s) URL, got %q", c.Feed.BaseURL)
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("logging.level %q is not supported", c.Logging.Level)
	}
	return nil
}

// FeedURL is the full upstream URL when a fixed base URL is configured.
func (c *Config) FeedURL() string {
	if c.Feed.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(c.Feed.BaseURL, "/") + c.Feed.Path + "?" + c.Feed.Query
}
