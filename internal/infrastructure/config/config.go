package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all client configuration
type Config struct {
	App     AppConfig
	Server  ServerConfig
	Session SessionConfig
	Log     LogConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
}

// ServerConfig holds settings for reaching the ERP backend
type ServerConfig struct {
	BaseURL string        // e.g. "http://localhost:8080"
	Timeout time.Duration // per-request timeout for the shared HTTP client
}

// SessionConfig holds settings for local session persistence
type SessionConfig struct {
	TokenFile string // path of the session token file
	Persist   bool   // false keeps the session in memory only
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with ERPCLI_ prefix (e.g., ERPCLI_SERVER_BASE_URL)
// 2. erpcli.toml (or the explicitly given file)
// 3. Built-in defaults
// An empty file argument searches the working directory and the user config
// dir; a non-empty one must exist.
func Load(file string) (*Config, error) {
	v := viper.New()

	// Set config file settings
	v.SetConfigType("toml")
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		v.SetConfigName("erpcli")
		v.AddConfigPath(".")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "erpcli"))
		}
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
			// Config file not found is OK, we'll use defaults and env vars
		}
	}

	// Enable environment variable override
	v.SetEnvPrefix("ERPCLI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Persist defaults to true unless explicitly disabled
	v.SetDefault("session.persist", true)

	// Build config struct
	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
		},
		Server: ServerConfig{
			BaseURL: v.GetString("server.base_url"),
			Timeout: v.GetDuration("server.timeout"),
		},
		Session: SessionConfig{
			TokenFile: v.GetString("session.token_file"),
			Persist:   v.GetBool("session.persist"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
	}

	// Apply defaults for empty values
	applyDefaults(cfg)

	// Validate configuration
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "erpcli"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost:8080"
	}
	if cfg.Server.Timeout == 0 {
		cfg.Server.Timeout = 30 * time.Second
	}
	if cfg.Session.TokenFile == "" {
		cfg.Session.TokenFile = defaultTokenFile()
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		// Command output goes to stdout; keep logs off it.
		cfg.Log.Output = "stderr"
	}
}

// defaultTokenFile returns the default session token path under the user
// config directory. Falls back to a dotfile in the working directory when the
// config dir cannot be resolved.
func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".erpcli-session.json"
	}
	return filepath.Join(dir, "erpcli", "session.json")
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil {
		return fmt.Errorf("server.base_url is not a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url must use http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("server.base_url must include a host")
	}
	if c.Server.Timeout < 0 {
		return fmt.Errorf("server.timeout cannot be negative")
	}
	if c.App.Env == "production" && u.Scheme != "https" {
		return fmt.Errorf("server.base_url must use https in production")
	}
	return nil
}
