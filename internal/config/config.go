// Package config provides runtime configuration for NetCanvas.
// It uses Viper to load settings from a config file and environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all runtime configuration for NetCanvas.
type Config struct {
	// ── Server ───────────────────────────────────────────────────────────────
	ServerHost string `mapstructure:"server_host"`
	// Port serves both the REST API (under /api) and the embedded canvas UI.
	Port     int    `mapstructure:"port"`
	DBPath   string `mapstructure:"db_path"`
	DBDriver string `mapstructure:"db_driver"` // only "sqlite" for now

	// AllowedOrigins is a comma-separated CORS allow-list.
	// Empty means unrestricted.
	AllowedOrigins string `mapstructure:"allowed_origins"`

	// ── Client ───────────────────────────────────────────────────────────────
	// APIBaseURL is where the canvas client reaches the API.
	APIBaseURL string `mapstructure:"api_base_url"`
}

// Origins returns the parsed CORS allow-list, nil when unrestricted.
func (c *Config) Origins() []string {
	if strings.TrimSpace(c.AllowedOrigins) == "" {
		return nil
	}
	var out []string
	for _, o := range strings.Split(c.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Load reads config from file (./config.yaml or ~/.netcanvas/config.yaml)
// and falls back to defaults. Environment variables with prefix CANVAS_
// override file values.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("port", 3001)
	v.SetDefault("db_path", "netcanvas.db")
	v.SetDefault("db_driver", "sqlite")
	v.SetDefault("allowed_origins", "")
	v.SetDefault("api_base_url", "http://localhost:3001/api")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.netcanvas")
	if err := v.ReadInConfig(); err != nil {
		// config file is optional; ignore "not found" errors
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CANVAS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	return &cfg, nil
}
