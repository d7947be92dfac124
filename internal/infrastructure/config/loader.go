package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"discoBot/internal/domain"
	"discoBot/internal/usecase/moderation"
	"discoBot/internal/usecase/products"
)

const (
	DefaultPrefix     = "-"
	DefaultWSAddr     = ":8080"
	DefaultConfigPath = "config.yaml"
)

var ErrMissingToken = errors.New("config: DISCORD_TOKEN is not set")

type Config struct {
	DiscordToken   string
	Prefix         string
	LogLevel       string
	LogFormat      string
	WSAddr         string
	APIFootballKey string
	ConfigPath     string

	Bot BotConfig
}

// BotConfig is the YAML part of the configuration.
type BotConfig struct {
	Activities       []string         `yaml:"activities"`
	ActivityInterval time.Duration    `yaml:"activity_interval"`
	Products         []domain.Product `yaml:"products"`
	Moderation       ModerationConfig `yaml:"moderation"`
	Sports           SportsConfig     `yaml:"sports"`
}

type ModerationConfig struct {
	Enabled          bool          `yaml:"enabled"`
	LogChannelName   string        `yaml:"log_channel_name"`
	BannedWords      []string      `yaml:"banned_words"`
	BypassRoles      []string      `yaml:"bypass_roles"`
	MaxWarnings      int           `yaml:"max_warnings"`
	NoticeTTL        time.Duration `yaml:"notice_ttl"`
	MaxWarnNoticeTTL time.Duration `yaml:"max_warn_notice_ttl"`
}

type SportsConfig struct {
	BaseURL           string `yaml:"base_url"`
	LeagueID          int    `yaml:"league_id"`
	Season            int    `yaml:"season"`
	Timezone          string `yaml:"timezone"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// Options overrides where configuration is read from. Empty fields fall back
// to the environment and defaults.
type Options struct {
	EnvFile    string
	ConfigPath string
}

// DefaultBotConfig mirrors the settings the bot ships with.
func DefaultBotConfig() BotConfig {
	return BotConfig{
		Activities:       []string{"with pp", "with pp, very hard", "Warlocks >"},
		ActivityInterval: 15 * time.Second,
		Products:         products.DefaultProducts(),
		Moderation: ModerationConfig{
			Enabled:        true,
			LogChannelName: moderation.DefaultAuditChannel,
			BannedWords:    []string{"badword1", "badword2", "spam"},
			BypassRoles:    []string{"Admin", "Moderator"},
			MaxWarnings:    moderation.DefaultMaxWarnings,
		},
		Sports: SportsConfig{
			BaseURL:           "https://v3.football.api-sports.io",
			LeagueID:          39,
			Season:            2024,
			Timezone:          "Europe/London",
			RequestsPerMinute: 10,
		},
	}
}

func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil {
			return nil, fmt.Errorf("config: load env file %s: %w", opts.EnvFile, err)
		}
	} else {
		_ = godotenv.Load()
	}

	cfg := &Config{
		DiscordToken:   strings.TrimSpace(os.Getenv("DISCORD_TOKEN")),
		Prefix:         envOr("BOT_PREFIX", DefaultPrefix),
		LogLevel:       envOr("LOG_LEVEL", "info"),
		LogFormat:      envOr("LOG_FORMAT", "json"),
		WSAddr:         envOr("CHAT_WS_ADDR", DefaultWSAddr),
		APIFootballKey: strings.TrimSpace(os.Getenv("API_FOOTBALL_KEY")),
		ConfigPath:     envOr("BOT_CONFIG_PATH", DefaultConfigPath),
	}
	if opts.ConfigPath != "" {
		cfg.ConfigPath = opts.ConfigPath
	}

	bot, err := LoadBotConfig(cfg.ConfigPath, opts.ConfigPath != "")
	if err != nil {
		return nil, err
	}
	cfg.Bot = bot

	return cfg, nil
}

// LoadBotConfig reads the YAML file over the defaults. A missing file is only
// an error when required is set.
func LoadBotConfig(path string, required bool) (BotConfig, error) {
	bot := DefaultBotConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return bot, nil
		}
		return bot, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &bot); err != nil {
		return bot, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if bot.ActivityInterval <= 0 {
		bot.ActivityInterval = 15 * time.Second
	}
	return bot, nil
}

func (c *Config) Validate() error {
	if c.DiscordToken == "" {
		return ErrMissingToken
	}
	if strings.TrimSpace(c.Prefix) == "" {
		return fmt.Errorf("config: empty command prefix")
	}
	return nil
}

// ModerationSettings converts the YAML section into the service config.
func (c *Config) ModerationSettings() moderation.Config {
	m := c.Bot.Moderation
	return moderation.Config{
		Enabled:          m.Enabled,
		AuditChannelName: m.LogChannelName,
		BannedTerms:      m.BannedWords,
		BypassRoles:      m.BypassRoles,
		MaxWarnings:      m.MaxWarnings,
		NoticeTTL:        m.NoticeTTL,
		MaxWarnNoticeTTL: m.MaxWarnNoticeTTL,
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
