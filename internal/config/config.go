package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Session  SessionConfig  `mapstructure:"session"  validate:"required"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Tasks    TasksConfig    `mapstructure:"tasks"    validate:"required"`
	Tags     TagsConfig     `mapstructure:"tags"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port"                     validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level"                validate:"required,oneof=debug info warn error"`
	ReadTimeoutSeconds     int    `mapstructure:"read_timeout_seconds"     validate:"gt=0"`
	WriteTimeoutSeconds    int    `mapstructure:"write_timeout_seconds"    validate:"gt=0"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL          string `mapstructure:"url"            validate:"required,url"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gt=0"`
	MaxIdleConns int    `mapstructure:"max_idle_conns" validate:"gte=0"`
	// AutoMigrate applies pending migrations at startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains password hashing and session token settings.
type AuthConfig struct {
	// SessionSecret signs session tokens (HMAC-SHA256).
	SessionSecret          string `mapstructure:"session_secret"           validate:"required,min=32"`
	SessionLifetimeMinutes int    `mapstructure:"session_lifetime_minutes" validate:"gt=0,lte=43200"`
	BcryptCost             int    `mapstructure:"bcrypt_cost"              validate:"gte=4,lte=31"`
	// CookieSecure sets the Secure attribute on the session cookie.
	CookieSecure bool `mapstructure:"cookie_secure"`
}

// SessionConfig selects where sessions are persisted.
type SessionConfig struct {
	Backend string `mapstructure:"backend" validate:"required,oneof=postgres redis"`
}

// RedisConfig is only required when the redis session backend is selected.
type RedisConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}

// TasksConfig contains task listing settings.
type TasksConfig struct {
	PageSize    int `mapstructure:"page_size"     validate:"gt=0"`
	MaxPageSize int `mapstructure:"max_page_size" validate:"gt=0,lte=1000"`
}

// TagsConfig lists the tags created at startup when absent.
type TagsConfig struct {
	Seed []string `mapstructure:"seed" validate:"dive,required,max=32"`
}
