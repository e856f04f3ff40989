// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Upstream      UpstreamConfig     `mapstructure:"upstream"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Storage       StorageConfig      `mapstructure:"storage"`
	Auth          AuthConfig         `mapstructure:"auth"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the gateway HTTP listener settings.
type ServerConfig struct {
	Address         string `mapstructure:"address"`
	ReadTimeout     int    `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int    `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"` // milliseconds
	MetricsEnabled  bool   `mapstructure:"metrics_enabled"`
}

func (s ServerConfig) ReadTimeoutDuration() time.Duration {
	return time.Duration(s.ReadTimeout) * time.Millisecond
}

func (s ServerConfig) WriteTimeoutDuration() time.Duration {
	return time.Duration(s.WriteTimeout) * time.Millisecond
}

func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	return time.Duration(s.ShutdownTimeout) * time.Millisecond
}

// UpstreamConfig holds settings for the remote staffing API that owns all
// application persistence.
type UpstreamConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	SubmitTimeout int    `mapstructure:"submit_timeout"` // milliseconds
	UploadTimeout int    `mapstructure:"upload_timeout"` // milliseconds, file-carrying steps
}

// SubmitTimeoutDuration returns the bounded per-call submit timeout.
func (u UpstreamConfig) SubmitTimeoutDuration() time.Duration {
	return time.Duration(u.SubmitTimeout) * time.Millisecond
}

// UploadTimeoutDuration returns the longer bound used for file-carrying steps.
func (u UpstreamConfig) UploadTimeoutDuration() time.Duration {
	return time.Duration(u.UploadTimeout) * time.Millisecond
}

type DatabaseConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// StorageConfig selects the progress store backend. "redis" for deployed
// gateways, "badger" for single-node installs, "memory" for tests.
type StorageConfig struct {
	Backend     string `mapstructure:"backend"`
	BadgerPath  string `mapstructure:"badger_path"`
	ProgressTTL int    `mapstructure:"progress_ttl"` // seconds, 0 = no expiry
}

// ProgressTTLDuration returns the progress record expiry, zero meaning none.
func (s StorageConfig) ProgressTTLDuration() time.Duration {
	return time.Duration(s.ProgressTTL) * time.Second
}

// AuthConfig holds the session token guard settings. With an empty secret the
// guard decodes claims without verifying the signature, matching the portal's
// session-boundary check.
type AuthConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Leeway    int    `mapstructure:"leeway"` // seconds of clock skew tolerated on exp
}

// NotificationConfig holds settings for the finalize confirmation email.
type NotificationConfig struct {
	Email struct {
		Enabled   bool   `mapstructure:"enabled"`
		FromEmail string `mapstructure:"from_email"`
	} `mapstructure:"email"`
	AWS struct {
		Region string `mapstructure:"region"`
	} `mapstructure:"aws"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
