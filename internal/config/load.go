package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable name, e.g.
// STUDYTRACK_DATABASE_URL for database.url.
const EnvPrefix = "STUDYTRACK"

// defaults lists every configuration key with its default. Keys without a
// meaningful default are still listed so environment variables bind to them.
var defaults = map[string]any{
	"server.port":                     8080,
	"server.log_level":                "info",
	"server.read_timeout_seconds":     5,
	"server.write_timeout_seconds":    10,
	"server.shutdown_timeout_seconds": 10,
	"database.url":                    "",
	"database.max_open_conns":         10,
	"database.max_idle_conns":         5,
	"database.auto_migrate":           true,
	"auth.session_secret":             "",
	"auth.session_lifetime_minutes":   60 * 24,
	"auth.bcrypt_cost":                10,
	"auth.cookie_secure":              false,
	"session.backend":                 "postgres",
	"redis.url":                       "",
	"tasks.page_size":                 5,
	"tasks.max_page_size":             100,
	"tags.seed":                       []string{"DSA", "TSP", "EYC", "All"},
}

// Load configuration from environment variables and optionally a config.yaml
// in the working directory. Environment variables take precedence over
// values from config files.
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file path. An empty path looks
// for an optional config.yaml in the working directory; an explicit path
// must exist.
func LoadFile(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks struct tags and the rules that span several fields.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Session.Backend == "redis" && cfg.Redis.URL == "" {
		return fmt.Errorf("config validation failed: redis.url is required when session.backend is redis")
	}
	if cfg.Tasks.PageSize > cfg.Tasks.MaxPageSize {
		return fmt.Errorf("config validation failed: tasks.page_size (%d) exceeds tasks.max_page_size (%d)",
			cfg.Tasks.PageSize, cfg.Tasks.MaxPageSize)
	}

	return nil
}
