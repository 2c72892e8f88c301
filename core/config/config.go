package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// TelegramConfig holds Telegram bot transport settings.
type TelegramConfig struct {
	Token   string `yaml:"token" envconfig:"BOT_TOKEN"`
	RunMode string `yaml:"run_mode" envconfig:"TELEGRAM_RUN_MODE"`
	// LongPollTimeoutSeconds defines long polling timeout; 0 -> default
	LongPollTimeoutSeconds int `yaml:"longpoll_timeout_seconds" envconfig:"TELEGRAM_LONGPOLL_TIMEOUT_SECONDS"`
}

// WebhookConfig specifies webhook settings.
type WebhookConfig struct {
	URL    string `yaml:"url" envconfig:"WEBHOOK_URL"`
	Listen string `yaml:"listen" envconfig:"WEBHOOK_LISTEN"`
	Port   int    `yaml:"port" envconfig:"WEBHOOK_PORT"`
}

// LoggingConfig defines logging related configuration.
type LoggingConfig struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	KeysOrder   string `yaml:"keys_order"`
	DebugSample string `yaml:"debug_sample"`
	Dir         string `yaml:"dir"`
	BotFile     string `yaml:"bot_file"`
	// Profile indicates environment profile such as "debug" or "prod".
	Profile string `yaml:"profile"`
}

// LimiterConfig tunes the per-(user, message type) debounce limiter.
type LimiterConfig struct {
	WindowMS             int `yaml:"window_ms" envconfig:"LIMITER_WINDOW_MS"`
	SweepIntervalSeconds int `yaml:"sweep_interval_seconds" envconfig:"LIMITER_SWEEP_INTERVAL_SECONDS"`
	IdleEvictSeconds     int `yaml:"idle_evict_seconds" envconfig:"LIMITER_IDLE_EVICT_SECONDS"`
}

// SheetsConfig points the persistence sink at a spreadsheet.
// Credentials come either inline (GOOGLE_CREDENTIALS, the deployment path)
// or from a local service-account key file (the development path).
type SheetsConfig struct {
	SpreadsheetID   string `yaml:"spreadsheet_id" envconfig:"SPREADSHEET_ID"`
	SheetName       string `yaml:"sheet_name" envconfig:"SHEET_NAME"`
	CredentialsJSON string `yaml:"credentials_json" envconfig:"GOOGLE_CREDENTIALS"`
	CredentialsFile string `yaml:"credentials_file" envconfig:"GOOGLE_CREDENTIALS_FILE"`
}

const (
	// RunModeWebhook selects webhook mode for Telegram updates.
	RunModeWebhook = "webhook"
	// RunModeLongpoll selects long-polling mode for Telegram updates.
	RunModeLongpoll = "longpoll"
)

const (
	defaultSheetName = "Pagos"

	defaultLimiterWindowMS     = 5000
	defaultLimiterSweepSeconds = 60
	defaultLimiterIdleSeconds  = 30
	defaultCredentialsKeyFile  = "credentials.json"
)

// DatabaseConfig holds connection settings for the optional expense archive
// database. An empty Host disables the archive entirely.
type DatabaseConfig struct {
	Host           string `yaml:"host" envconfig:"DB_HOST"`
	Port           string `yaml:"port" envconfig:"DB_PORT"`
	User           string `yaml:"user" envconfig:"DB_USER"`
	Password       string `yaml:"password" envconfig:"DB_PASSWORD"`
	Name           string `yaml:"name" envconfig:"DB_NAME"`
	SSLMode        string `yaml:"sslmode" envconfig:"DB_SSLMODE"`
	MaxConnections int    `yaml:"max_connections" envconfig:"DB_MAX_CONNECTIONS"`
}

// Config aggregates all configuration consumed at startup.
type Config struct {
	Telegram TelegramConfig `yaml:"telegram"`
	Webhook  WebhookConfig  `yaml:"webhook"`
	Logging  LoggingConfig  `yaml:"logging"`
	Limiter  LimiterConfig  `yaml:"limiter"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Database DatabaseConfig `yaml:"database"`
}

// Load reads configuration from a YAML file and environment variables.
func Load(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := Normalize(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Normalize validates required fields and fills defaults.
func Normalize(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}

	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required")
	}

	rm := strings.ToLower(strings.TrimSpace(cfg.Telegram.RunMode))
	if rm == "" {
		rm = RunModeLongpoll
	}
	if rm == "polling" { // accept alias
		rm = RunModeLongpoll
	}
	switch rm {
	case RunModeWebhook:
		if strings.TrimSpace(cfg.Webhook.URL) == "" {
			return fmt.Errorf("webhook.url is required when telegram.run_mode is 'webhook'")
		}
		if strings.TrimSpace(cfg.Webhook.Listen) == "" {
			return fmt.Errorf("webhook.listen is required when telegram.run_mode is 'webhook'")
		}
		if cfg.Webhook.Port <= 0 {
			return fmt.Errorf("webhook.port must be > 0 when telegram.run_mode is 'webhook'")
		}
	case RunModeLongpoll:
		if cfg.Telegram.LongPollTimeoutSeconds < 0 {
			return fmt.Errorf("telegram.longpoll_timeout_seconds must be >= 0")
		}
	default:
		return fmt.Errorf("invalid telegram.run_mode %q; allowed: webhook, longpoll", cfg.Telegram.RunMode)
	}
	cfg.Telegram.RunMode = rm

	if cfg.Limiter.WindowMS < 0 {
		return fmt.Errorf("limiter.window_ms must be >= 0")
	}
	if cfg.Limiter.WindowMS == 0 {
		cfg.Limiter.WindowMS = defaultLimiterWindowMS
	}
	if cfg.Limiter.SweepIntervalSeconds <= 0 {
		cfg.Limiter.SweepIntervalSeconds = defaultLimiterSweepSeconds
	}
	if cfg.Limiter.IdleEvictSeconds <= 0 {
		cfg.Limiter.IdleEvictSeconds = defaultLimiterIdleSeconds
	}

	if strings.TrimSpace(cfg.Sheets.SpreadsheetID) == "" {
		return fmt.Errorf("sheets.spreadsheet_id is required")
	}
	if strings.TrimSpace(cfg.Sheets.SheetName) == "" {
		cfg.Sheets.SheetName = defaultSheetName
	}
	if strings.TrimSpace(cfg.Sheets.CredentialsJSON) == "" &&
		strings.TrimSpace(cfg.Sheets.CredentialsFile) == "" {
		cfg.Sheets.CredentialsFile = defaultCredentialsKeyFile
	}

	return nil
}

// ArchiveEnabled reports whether the optional Postgres archive is configured.
func (c *Config) ArchiveEnabled() bool {
	return c != nil && strings.TrimSpace(c.Database.Host) != ""
}
