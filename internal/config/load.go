package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. TRELLO_SERVER_PORT for server.port.
const EnvPrefix = "TRELLO"

// defaults are registered with viper so that every key is known to
// AutomaticEnv when unmarshaling.
var defaults = map[string]any{
	"server.port":                  8080,
	"server.log_level":             "info",
	"server.cors_allowed_origins":  []string{"http://localhost:3000"},
	"server.rate_limit_per_minute": 100,
	"storage.driver":               StorageDriverPostgres,
	"database.url":                 "",
	"database.auto_migrate":        true,
	"redis.addr":                   "localhost:6379",
	"redis.password":               "",
	"redis.db":                     0,
	"auth.jwt_secret":              "",
	"auth.token_lifetime_minutes":  60,
	"cards.bug_title_token":        "RandomWord",
}

// Load configuration from a .env file, environment variables and optionally
// a config.yaml file. Environment variables take precedence over values from
// the config file. Returns a populated Config struct or an error if
// loading/validation fails.
func Load() (*Config, error) {
	// A missing .env file is normal outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
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

// Validate checks struct-level constraints and the cross-field rules that
// depend on the selected storage driver.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	switch cfg.Storage.Driver {
	case StorageDriverPostgres:
		if cfg.Database.URL == "" {
			return fmt.Errorf("config validation failed: database.url is required for the %s driver",
				StorageDriverPostgres)
		}
	case StorageDriverRedis:
		if cfg.Redis.Addr == "" {
			return fmt.Errorf("config validation failed: redis.addr is required for the %s driver",
				StorageDriverRedis)
		}
	}

	return nil
}
