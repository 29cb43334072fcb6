package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config chứa toàn bộ application configuration
// Struct này được populate từ environment variables
type Config struct {
	App     AppConfig
	Redis   RedisConfig
	Session SessionConfig
	Auth    AuthConfig
}

type AppConfig struct {
	Name        string
	Environment string // development, staging, production
	Port        string
	Version     string
}

type RedisConfig struct {
	Host     string
	Password string
	DB       int
}

// SessionConfig - cookie session ký bằng HS256
type SessionConfig struct {
	Secret       string
	CookieName   string
	TTL          time.Duration // session thường
	RememberTTL  time.Duration // khi user tick "remember me"
	CookieSecure bool
}

type AuthConfig struct {
	// LoginRedirect là đích mặc định sau login/register khi form không có redirectTo hợp lệ
	LoginRedirect string
}

const defaultSessionSecret = "your-secret-key-change-in-production"

// Load đọc config từ environment variables
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Bookstore Admin"),
			Environment: env,
			Port:        getEnv("APP_PORT", "8080"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			Secret:       getEnv("SESSION_SECRET", defaultSessionSecret),
			CookieName:   getEnv("SESSION_COOKIE_NAME", "__session"),
			TTL:          getEnvDuration("SESSION_TTL", 24*time.Hour),
			RememberTTL:  getEnvDuration("SESSION_REMEMBER_TTL", 7*24*time.Hour),
			CookieSecure: env == "production",
		},
		Auth: AuthConfig{
			LoginRedirect: getEnv("AUTH_LOGIN_REDIRECT", "/dashboard"),
		},
	}

	// Validate critical config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate kiểm tra config có hợp lệ không
func (c *Config) Validate() error {
	if c.IsProduction() {
		if c.Session.Secret == defaultSessionSecret {
			return fmt.Errorf("SESSION_SECRET must be set in production")
		}
	}
	if c.Session.TTL <= 0 || c.Session.RememberTTL <= 0 {
		return fmt.Errorf("session TTLs must be positive")
	}
	if c.Auth.LoginRedirect == "" || c.Auth.LoginRedirect[0] != '/' {
		return fmt.Errorf("AUTH_LOGIN_REDIRECT must be an absolute path, got %q", c.Auth.LoginRedirect)
	}

	return nil
}

// IsProduction trả về true khi APP_ENV=production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
