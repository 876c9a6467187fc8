package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// ErrConfiguration marks a missing or malformed configuration value.
// It is fatal at startup.
var ErrConfiguration = errors.New("configuration error")

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string `validate:"required"`
	Port               string `validate:"required"`
	User               string `validate:"required"`
	Password           string
	Name               string `validate:"required"`
	SSLMode            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
}

// MinIOConfig holds object storage settings for the review archive.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Enabled reports whether an archive endpoint was configured.
func (m MinIOConfig) Enabled() bool {
	return m.Endpoint != ""
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Env         string
	LogLevel    string
	Port        string `validate:"required"`
	DatabaseURL string `validate:"required"`
	CORSOrigins string
	Database    DatabaseConfig
	MinIO       MinIOConfig
}

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// DATABASE_URL is required and is parsed into Database.
func Load() (*AppConfig, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", strings.ToLower), nil); err != nil {
		return nil, fmt.Errorf("%w: load env: %v", ErrConfiguration, err)
	}

	cfg := &AppConfig{
		Env:         getString(k, "app_env", "production"),
		LogLevel:    getString(k, "log_level", "info"),
		Port:        getString(k, "port", "8080"),
		DatabaseURL: getString(k, "database_url", ""),
		CORSOrigins: getString(k, "cors_allow_origins", "*"),
		MinIO: MinIOConfig{
			Endpoint:  getString(k, "minio_endpoint", ""),
			AccessKey: getString(k, "minio_access_key", ""),
			SecretKey: getString(k, "minio_secret_key", ""),
			Bucket:    getString(k, "minio_bucket", ""),
			UseSSL:    getBool(k, "minio_use_ssl", false),
		},
	}

	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		return nil, fmt.Errorf("%w: DATABASE_URL env variable missing", ErrConfiguration)
	}

	db, err := ParseDatabaseURL(cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	db.MaxOpenConns = getInt(k, "db_max_open_conns", 10)
	db.MaxIdleConns = getInt(k, "db_max_idle_conns", 5)
	db.ConnMaxLifetimeSec = getInt(k, "db_conn_max_lifetime_sec", 300)
	cfg.Database = db

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	return cfg, nil
}

func getString(k *koanf.Koanf, key, def string) string {
	if v := k.String(key); v != "" {
		return v
	}
	return def
}

func getBool(k *koanf.Koanf, key string, def bool) bool {
	if v := k.String(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getInt(k *koanf.Koanf, key string, def int) int {
	if v := k.String(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}
