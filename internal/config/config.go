package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Task     TaskConfig     `mapstructure:"task"     validate:"required"`
	Content  ContentConfig  `mapstructure:"content"`
	LLM      LLMConfig      `mapstructure:"llm"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains all authentication and authorization settings.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
	// RefreshTokenLifetimeMinutes defaults to 7 days when unset.
	RefreshTokenLifetimeMinutes int `mapstructure:"refresh_token_lifetime_minutes" validate:"gte=0"`
	// BCryptCost of 0 means bcrypt.DefaultCost.
	BCryptCost int `mapstructure:"bcrypt_cost" validate:"gte=0,lte=31"`
}

// TokenLifetime returns the access token lifetime as a duration.
func (c AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(c.TokenLifetimeMinutes) * time.Minute
}

// RefreshTokenLifetime returns the refresh token lifetime as a duration,
// falling back to 7 days when not configured.
func (c AuthConfig) RefreshTokenLifetime() time.Duration {
	if c.RefreshTokenLifetimeMinutes <= 0 {
		return 7 * 24 * time.Hour
	}
	return time.Duration(c.RefreshTokenLifetimeMinutes) * time.Minute
}

// TaskConfig contains background task processing settings.
type TaskConfig struct {
	WorkerCount         int `mapstructure:"worker_count"           validate:"required,gt=0"`
	QueueSize           int `mapstructure:"queue_size"             validate:"required,gt=0"`
	StuckTaskAgeMinutes int `mapstructure:"stuck_task_age_minutes" validate:"required,gt=0"`
}

// StuckTaskAge returns how long a task may stay in processing state before
// the runner resets it.
func (c TaskConfig) StuckTaskAge() time.Duration {
	return time.Duration(c.StuckTaskAgeMinutes) * time.Minute
}

// ContentConfig locates the markdown study content on disk.
type ContentConfig struct {
	// Dir is the root directory holding topic subdirectories of deck files.
	// Empty disables filesystem content browsing and directory import.
	Dir string `mapstructure:"dir"`
}

// LLMConfig contains all LLM integration related settings. The whole block
// is optional; card generation endpoints return an error when no API key is
// configured.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key"`
	ModelName    string `mapstructure:"model_name"`
	MaxRetries   int    `mapstructure:"max_retries" validate:"gte=0"`
}
