// Package config loads the settings of pf from a TOML file, a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/tstivers/portfolio/mail"
)

// AppName names the configuration and data directories.
const AppName = "portfolio"

// Config represents the application configuration.
type Config struct {
	DataDir  string        `toml:"data_dir"`
	Currency string        `toml:"currency"`
	Logging  LoggingConfig `toml:"logging"`
	EODHD    EODHDConfig   `toml:"eodhd"`
	Email    mail.Config   `toml:"email"`
	Account  AccountConfig `toml:"account"`
	Assist   AssistConfig  `toml:"assist"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn or error
	File  string `toml:"file"`  // JSON log file, none when empty
}

// EODHDConfig contains the market data API settings.
type EODHDConfig struct {
	APIKey   string  `toml:"api_key"`
	Exchange string  `toml:"exchange"`
	RPS      float64 `toml:"rps"` // requests per second
}

// AccountConfig describes the brokerage account holding the portfolio.
type AccountConfig struct {
	Number string `toml:"number"`
	Name   string `toml:"name"`
	Owner  string `toml:"owner"`
}

// AssistConfig contains the AI assistant settings.
type AssistConfig struct {
	Model  string `toml:"model"`
	APIKey string `toml:"api_key"`
}

// DefaultPath returns the path of the configuration file in the XDG config directory.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, AppName, "config.toml")
}

// Default returns the configuration used when there is no file.
func Default() *Config {
	return &Config{
		DataDir:  filepath.Join(xdg.DataHome, AppName),
		Currency: "USD",
		Logging:  LoggingConfig{Level: "warn"},
		EODHD:    EODHDConfig{Exchange: "US", RPS: 5},
		Email:    mail.Config{Provider: "smtp", SMTPPort: 587},
		Assist:   AssistConfig{Model: "gemini-2.5-flash"},
	}
}

// Load loads the configuration with priority: defaults -> file -> .env -> environment.
//
// An empty path loads DefaultPath, which may not exist.
func Load(path string) (*Config, error) {
	config := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	// .env next to the config file, then in the working directory. Existing variables win.
	for _, env := range []string{filepath.Join(filepath.Dir(path), ".env"), ".env"} {
		if err := godotenv.Load(env); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", env, err)
		}
	}
	applyEnvOverrides(config)
	return config, nil
}

// applyEnvOverrides applies PORTFOLIO_* environment variable overrides to config.
func applyEnvOverrides(config *Config) {
	str := func(dst *string, names ...string) {
		for _, name := range names {
			if v := os.Getenv(name); v != "" {
				*dst = v
				return
			}
		}
	}
	str(&config.DataDir, "PORTFOLIO_DATA_DIR")
	str(&config.Currency, "PORTFOLIO_CURRENCY")
	str(&config.Logging.Level, "PORTFOLIO_LOG_LEVEL")
	str(&config.Logging.File, "PORTFOLIO_LOG_FILE")
	str(&config.EODHD.APIKey, "PORTFOLIO_EODHD_API_KEY", "EODHD_API_KEY")
	str(&config.EODHD.Exchange, "PORTFOLIO_EODHD_EXCHANGE")
	if rps := os.Getenv("PORTFOLIO_EODHD_RPS"); rps != "" {
		if v, err := strconv.ParseFloat(rps, 64); err == nil {
			config.EODHD.RPS = v
		}
	}
	str(&config.Email.Provider, "PORTFOLIO_EMAIL_PROVIDER")
	str(&config.Email.SMTPServer, "PORTFOLIO_SMTP_SERVER")
	if port := os.Getenv("PORTFOLIO_SMTP_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Email.SMTPPort = p
		}
	}
	str(&config.Email.SMTPUser, "PORTFOLIO_SMTP_USER")
	str(&config.Email.SMTPPassword, "PORTFOLIO_SMTP_PASSWORD")
	str(&config.Email.Sender, "PORTFOLIO_EMAIL_SENDER")
	if to := os.Getenv("PORTFOLIO_EMAIL_RECIPIENTS"); to != "" {
		config.Email.Recipients = SplitList(to)
	}
	str(&config.Email.MailgunDomain, "PORTFOLIO_MAILGUN_DOMAIN")
	str(&config.Email.MailgunAPIKey, "PORTFOLIO_MAILGUN_API_KEY")
	str(&config.Assist.Model, "PORTFOLIO_ASSIST_MODEL")
	str(&config.Assist.APIKey, "PORTFOLIO_ASSIST_API_KEY", "GEMINI_API_KEY")
}

// SplitList splits a comma or space separated list, dropping empty items.
func SplitList(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' || r == ' ' })
}

// Save writes the configuration to path, readable by the owner only.
func (c *Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// CacheDir returns the directory for the cached market data responses.
func CacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}
