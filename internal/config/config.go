package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	API     APIConfig
	Session SessionConfig
	UI      UIConfig
	Log     LogConfig
}

// APIConfig holds backend connection settings.
type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// SessionConfig holds where the login token is persisted.
type SessionConfig struct {
	TokenPath string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	CurrencySymbol string
	DateFormat     string
}

// LogConfig holds the debug log destination. The TUI owns the terminal,
// so logs go to a file.
type LogConfig struct {
	Path  string
	Level string
}

// Load reads configuration from file and env. Env var overrides use prefix TRIPDESK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", "http://localhost:5000/api")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("session.token_path", filepath.Join(os.Getenv("HOME"), ".local", "share", "tripdesk", "token"))
	v.SetDefault("ui.currency_symbol", "$")
	v.SetDefault("ui.date_format", "02/01/2006")
	v.SetDefault("log.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "tripdesk", "tripdesk.log"))
	v.SetDefault("log.level", "info")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("TRIPDESK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "tripdesk"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TRIPDESK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	readErr := v.ReadInConfig()

	c := Config{
		API: APIConfig{
			BaseURL: strings.TrimRight(v.GetString("api.base_url"), "/"),
			Timeout: v.GetDuration("api.timeout"),
		},
		Session: SessionConfig{
			TokenPath: v.GetString("session.token_path"),
		},
		UI: UIConfig{
			CurrencySymbol: v.GetString("ui.currency_symbol"),
			DateFormat:     v.GetString("ui.date_format"),
		},
		Log: LogConfig{
			Path:  v.GetString("log.path"),
			Level: v.GetString("log.level"),
		},
	}
	if c.API.BaseURL == "" {
		return Config{}, fmt.Errorf("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		c.API.Timeout = 15 * time.Second
	}

	// First run: write the effective config so there is a file to edit.
	if readErr != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(readErr, &notFound) || os.IsNotExist(readErr) {
			if err := Save(c); err != nil {
				return Config{}, err
			}
		}
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path := os.Getenv("TRIPDESK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "tripdesk", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.timeout", cfg.API.Timeout.String())
	v.Set("session.token_path", cfg.Session.TokenPath)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.date_format", cfg.UI.DateFormat)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
