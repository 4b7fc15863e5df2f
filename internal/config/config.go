package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aperturelabs/alms/internal/crypto"
)

const (
	DefaultPort              = 3000
	DefaultTokenValidMinutes = 10
	DefaultRateLimitMax      = 120
	DefaultAuthRateLimitMax  = 10
	DefaultAppName           = "ALMS"
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrInvalidTokenWindow = errors.New("TOKEN_VALID_FOR_MIN must be positive")
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Logging  LoggingConfig
}

type ServerConfig struct {
	Env              string
	Host             string
	Port             int
	CorsOrigins      string
	RateLimitMax     int
	AuthRateLimitMax int
}

type DatabaseConfig struct {
	URL            string
	MigrationsPath string
}

type AuthConfig struct {
	EncryptionKey string
	TokenValidity time.Duration
}

type LoggingConfig struct {
	Level  string
	Folder string
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Env:              getEnv("APP_ENV", "development"),
			Host:             getEnv("HOST", "0.0.0.0"),
			Port:             getEnvInt("PORT", DefaultPort),
			CorsOrigins:      getEnv("CORS_ORIGINS", "*"),
			RateLimitMax:     getEnvInt("RATE_LIMIT_MAX", DefaultRateLimitMax),
			AuthRateLimitMax: getEnvInt("AUTH_RATE_LIMIT_MAX", DefaultAuthRateLimitMax),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MigrationsPath: getEnvPath("MIGRATIONS_PATH", ""),
		},
		Auth: AuthConfig{
			EncryptionKey: getEnv("ENCRYPTION_KEY", ""),
			TokenValidity: time.Duration(getEnvInt("TOKEN_VALID_FOR_MIN", DefaultTokenValidMinutes)) * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Folder: getEnvPath("LOG_FOLDER", ""),
		},
	}
}

// Validate reports the first setting that would keep the service from starting.
func (c *Config) Validate() error {
	if c.Database.URL == "" {
		return ErrMissingDatabaseURL
	}
	if _, err := crypto.ParseKey(c.Auth.EncryptionKey); err != nil {
		return fmt.Errorf("ENCRYPTION_KEY: %w", err)
	}
	if c.Auth.TokenValidity <= 0 {
		return ErrInvalidTokenWindow
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}

	if strings.HasPrefix(path, "$HOME") {
		home, err := os.UserHomeDir()
		if err == nil {
			return strings.Replace(path, "$HOME", home, 1)
		}
	}

	return os.ExpandEnv(path)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvPath(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return expandPath(value)
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
