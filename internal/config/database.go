package config

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"bookstore-admin/internal/infrastructure/database"
)

var sslModes = []string{"disable", "allow", "prefer", "require", "verify-ca", "verify-full"}

// LoadDatabaseConfig đọc DB_* env thành DBConfig.
// Mọi giá trị sai được gom lại trả về một lần.
func LoadDatabaseConfig() (*database.DBConfig, error) {
	var env envReader

	cfg := &database.DBConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     env.readInt("DB_PORT", 5432),
		Username: getEnv("DB_USER", "bookstore"),
		Password: getEnv("DB_PASSWORD", "secret"),
		DBName:   getEnv("DB_NAME", "bookstore_admin"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),

		MaxConns:          int32(env.readInt("DB_MAX_CONNECTIONS", 25)),
		MinConns:          int32(env.readInt("DB_MIN_CONNECTIONS", 2)),
		MaxConnLifetime:   env.readDuration("DB_MAX_CONN_LIFETIME", 30*time.Minute),
		MaxConnIdleTime:   env.readDuration("DB_MAX_CONN_IDLE_TIME", 5*time.Minute),
		HealthCheckPeriod: env.readDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),

		MaxRetries:     env.readInt("DB_MAX_RETRIES", 5),
		RetryDelay:     env.readDuration("DB_RETRY_DELAY", time.Second),
		ConnectTimeout: env.readDuration("DB_CONNECT_TIMEOUT", 10*time.Second),

		AutoMigrate: env.readBool("DB_AUTO_MIGRATE", true),
	}

	if !slices.Contains(sslModes, cfg.SSLMode) {
		env.fail("DB_SSLMODE", fmt.Errorf("unsupported mode %q", cfg.SSLMode))
	}
	if cfg.MinConns > cfg.MaxConns {
		env.fail("DB_MIN_CONNECTIONS", fmt.Errorf("%d exceeds DB_MAX_CONNECTIONS %d", cfg.MinConns, cfg.MaxConns))
	}
	if cfg.MaxRetries < 1 {
		env.fail("DB_MAX_RETRIES", errors.New("must be at least 1"))
	}

	if err := env.err(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envReader parse env có kiểu, giữ lại lỗi thay vì fallback về default
// (khác getEnvInt/getEnvDuration dùng cho App config)
type envReader struct {
	errs []error
}

func (r *envReader) fail(key string, err error) {
	r.errs = append(r.errs, fmt.Errorf("invalid %s: %w", key, err))
}

func (r *envReader) err() error {
	return errors.Join(r.errs...)
}

func (r *envReader) readInt(key string, def int) int {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return v
}

func (r *envReader) readDuration(key string, def time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return v
}

func (r *envReader) readBool(key string, def bool) bool {
	raw := getEnv(key, "")
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.fail(key, err)
		return def
	}
	return v
}
