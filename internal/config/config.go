package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"  validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Cards    CardsConfig    `mapstructure:"cards"    validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// CORSAllowedOrigins lists the origins allowed to call the API from a browser.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
	// RateLimitPerMinute caps requests per client IP; 0 disables limiting.
	RateLimitPerMinute int `mapstructure:"rate_limit_per_minute" validate:"gte=0"`
}

// Storage drivers understood by the server.
const (
	StorageDriverPostgres = "postgres"
	StorageDriverRedis    = "redis"
	StorageDriverMemory   = "memory"
)

// StorageConfig selects the persistence backend for cards.
type StorageConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres redis memory"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL         string `mapstructure:"url"          validate:"omitempty,url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// RedisConfig contains the connection settings for the redis card store.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"     validate:"omitempty,hostname_port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"       validate:"gte=0"`
}

// AuthConfig contains bearer token settings. Authentication is disabled
// when JWTSecret is empty.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"omitempty,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gt=0,lte=44640"`
}

// Enabled reports whether bearer authentication is configured.
func (a AuthConfig) Enabled() bool {
	return a.JWTSecret != ""
}

// CardsConfig holds card-domain settings.
type CardsConfig struct {
	// BugTitleToken is the middle segment of generated bug titles (Bug-<token>-<n>).
	BugTitleToken string `mapstructure:"bug_title_token" validate:"required,excludesall=-"`
}
