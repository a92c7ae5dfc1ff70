package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server ServerConfig `envconfig:"SERVER"`

	// Database Configuration
	Database DatabaseConfig `envconfig:"DB"`

	// JWT Configuration
	JWT JWTConfig `envconfig:"JWT"`

	// Notification Configuration
	Notification NotificationConfig `envconfig:"NOTIF"`

	// SendGrid Email Configuration
	SendGrid SendGridConfig `envconfig:"SENDGRID"`

	// Logging Configuration
	Logging LoggingConfig `envconfig:"LOG"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Host         string `envconfig:"HOST" default:"0.0.0.0"`
	Port         string `envconfig:"PORT" default:"8000"`
	ReadTimeout  int    `envconfig:"READ_TIMEOUT" default:"15"`
	WriteTimeout int    `envconfig:"WRITE_TIMEOUT" default:"15"`
	Environment  string `envconfig:"ENVIRONMENT" default:"development"` // development, staging, production
	AppName      string `envconfig:"APP_NAME" default:"Courier"`
	AppURL       string `envconfig:"APP_URL" default:"http://localhost:8000"`
}

// DatabaseConfig contains database connection configuration
type DatabaseConfig struct {
	Host         string `envconfig:"HOST" default:"localhost"`
	Port         string `envconfig:"PORT" default:"3306"`
	Username     string `envconfig:"USER" default:"courier"`
	Password     string `envconfig:"PASSWORD" default:""`
	DatabaseName string `envconfig:"NAME" default:"courier"`
	MaxOpenConns int    `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns int    `envconfig:"MAX_IDLE_CONNS" default:"5"`
}

// JWTConfig contains token signing configuration
type JWTConfig struct {
	Secret     string `envconfig:"SECRET" default:"dev-secret-change-in-production"`
	ExpiryMins int    `envconfig:"EXPIRY_MINUTES" default:"30"`
	Issuer     string `envconfig:"ISSUER" default:"courier"`
}

// NotificationConfig contains notification dispatcher configuration
type NotificationConfig struct {
	Workers           int  `envconfig:"WORKERS" default:"5"`           // Number of worker goroutines
	ChannelBufferSize int  `envconfig:"CHANNEL_BUFFER" default:"1000"` // Event channel buffer size
	Enabled           bool `envconfig:"ENABLED" default:"true"`
}

// SendGridConfig contains the transactional email configuration
type SendGridConfig struct {
	APIKey    string `envconfig:"API_KEY" default:""`
	FromEmail string `envconfig:"FROM_EMAIL" default:"noreply@courier.local"`
	FromName  string `envconfig:"FROM_NAME" default:"Courier"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `envconfig:"LEVEL" default:"info"`  // debug, info, warn, error
	Format string `envconfig:"FORMAT" default:"text"` // json, text
}

// LoadConfig reads configuration from the environment. Defaults make a bare
// development environment usable without any variables set.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("COURIER", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return &cfg, nil
}

func (cfg *Config) DSN() string {
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "3306"
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DatabaseName,
	)
}
