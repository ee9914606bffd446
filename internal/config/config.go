package config

import (
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds all runtime configuration for the event API. It is built once
// at startup from an optional YAML file overlaid with environment variables,
// then passed read-only into the component constructors.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	SMTP     SMTPConfig     `koanf:"smtp"`
	Mail     MailConfig     `koanf:"mail"`
	Sheets   SheetsConfig   `koanf:"sheets"`
	Telegram TelegramConfig `koanf:"telegram"`
	Event    EventConfig    `koanf:"event"`
}

type ServerConfig struct {
	Port int `koanf:"port"`
}

// SMTPConfig describes the transactional mail relay connection.
type SMTPConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port"`
	User string `koanf:"user"`
	Pass string `koanf:"pass"`
	From string `koanf:"from"`
}

// Enabled reports whether a relay account is configured at all.
func (c SMTPConfig) Enabled() bool {
	return c.User != ""
}

// Sender returns the From identity, falling back to the relay account.
func (c SMTPConfig) Sender() string {
	if c.From != "" {
		return c.From
	}
	return c.User
}

// MailConfig holds notification addressing that is not part of the relay
// connection itself.
type MailConfig struct {
	Admin string `koanf:"admin"`
}

// SheetsConfig holds the Google service-account credentials and the target
// spreadsheet. All three values must be present for the recorder to run.
type SheetsConfig struct {
	ServiceAccountEmail string `koanf:"service_account_email"`
	PrivateKey          string `koanf:"private_key"`
	SpreadsheetID       string `koanf:"spreadsheet_id"`
}

func (c SheetsConfig) Enabled() bool {
	return c.ServiceAccountEmail != "" && c.PrivateKey != "" && c.SpreadsheetID != ""
}

// TelegramConfig holds the bot credentials. If either value is absent the
// chat notifier stage is skipped entirely.
type TelegramConfig struct {
	BotToken string `koanf:"bot_token"`
	ChatID   string `koanf:"chat_id"`
}

func (c TelegramConfig) Enabled() bool {
	return c.BotToken != "" && c.ChatID != ""
}

// envKeys maps the documented environment variables onto config keys.
// Variables not listed here are ignored.
var envKeys = map[string]string{
	"PORT":                         "server.port",
	"SMTP_HOST":                    "smtp.host",
	"SMTP_PORT":                    "smtp.port",
	"SMTP_USER":                    "smtp.user",
	"SMTP_PASS":                    "smtp.pass",
	"SMTP_FROM":                    "smtp.from",
	"ADMIN_EMAIL":                  "mail.admin",
	"GOOGLE_SERVICE_ACCOUNT_EMAIL": "sheets.service_account_email",
	"GOOGLE_PRIVATE_KEY":           "sheets.private_key",
	"GOOGLE_SHEETS_ID":             "sheets.spreadsheet_id",
	"TELEGRAM_BOT_TOKEN":           "telegram.bot_token",
	"TELEGRAM_CHAT_ID":             "telegram.chat_id",
}

// Load reads configuration from the YAML file at path (if it exists) and
// overlays the recognized environment variables on top.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("load config file %s: %w", path, err)
			}
		}
	}

	// Environment variables win over file values. The callback maps known
	// names to config keys; returning "" skips the variable.
	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// Default values
	defaults := map[string]interface{}{
		"server.port": 8080,
		"smtp.host":   "smtp.gmail.com",
		"smtp.port":   587,
		"mail.admin":  "contact@tingnect.com",
	}
	for key, value := range defaults {
		if !k.Exists(key) {
			k.Set(key, value)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.Event.applyDefaults()

	return &cfg, nil
}
