package config

// Config holds all application configuration.
// It is constructed once at startup and passed explicitly to the components
// that need it; there is no ambient global settings object.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Email    EmailConfig    `mapstructure:"email" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// BaseURL is the externally reachable base URL of this service,
	// used to build email verification links.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	// JWTSecret signs both access and email verification tokens.
	JWTSecret string `mapstructure:"jwt_secret" validate:"required,min=32"`

	// TokenLifetimeMinutes is the validity window of access tokens.
	TokenLifetimeMinutes int `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`

	// VerificationTokenLifetimeHours is the validity window of email
	// verification tokens. These live much longer than access tokens.
	VerificationTokenLifetimeHours int `mapstructure:"verification_token_lifetime_hours" validate:"required,gt=0"`
}

// EmailConfig contains outbound email settings.
type EmailConfig struct {
	// Mode selects the sender implementation: "smtp" sends real email,
	// "log" writes messages to the application log instead.
	Mode        string `mapstructure:"mode" validate:"required,oneof=smtp log"`
	FromAddress string `mapstructure:"from_address" validate:"required,email"`
	FromName    string `mapstructure:"from_name" validate:"required"`

	SMTPHost     string `mapstructure:"smtp_host" validate:"required_if=Mode smtp"`
	SMTPPort     int    `mapstructure:"smtp_port" validate:"required_if=Mode smtp"`
	SMTPUsername string `mapstructure:"smtp_username"`
	SMTPPassword string `mapstructure:"smtp_password"`
}
