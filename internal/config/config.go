package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the full application configuration surface.
type Config struct {
	Server ServerConfig
	Mongo  MongoConfig
	Redis  RedisConfig
	Remote RemoteConfig
	Auth   AuthConfig
	Admin  AdminConfig
	Sync   SyncConfig
}

// ServerConfig holds HTTP server related options.
type ServerConfig struct {
	Port string
}

// MongoConfig holds settings for the durable record store.
type MongoConfig struct {
	URI    string
	DBName string
}

// RedisConfig holds settings for the session store. An empty Addr switches
// sessions to the in-process manager.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RemoteConfig points at the sheet-backed remote store. Endpoint may be
// empty: pulls then fail fast as not-configured and pushes are no-ops.
type RemoteConfig struct {
	Endpoint string
	Timeout  time.Duration
}

// AuthConfig holds session token settings.
type AuthConfig struct {
	JWTSecret  string
	SessionTTL time.Duration
}

// AdminConfig holds the privileged tenant's credentials, re-asserted on
// every startup.
type AdminConfig struct {
	Username    string
	Password    string
	CompanyName string
}

// SyncConfig holds reconciliation scheduling. An empty cron expression
// keeps the single startup pull only.
type SyncConfig struct {
	ResyncCron string
}

// Load reads environment variables (optionally from the provided file) and
// materializes a Config instance.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("failed loading env file %s: %w", envFile, err)
			}
		}
	} else {
		// Ignore the returned error here; missing .env files are acceptable when
		// configuration comes from the environment directly.
		_ = godotenv.Load()
	}

	redisDB, err := strconv.Atoi(getenvWithDefault("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("REDIS_DB must be an integer: %w", err)
	}

	remoteTimeout, err := time.ParseDuration(getenvWithDefault("REMOTE_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("REMOTE_TIMEOUT must be a duration: %w", err)
	}

	sessionTTL, err := time.ParseDuration(getenvWithDefault("SESSION_TTL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("SESSION_TTL must be a duration: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getenvWithDefault("APP_PORT", "8080"),
		},
		Mongo: MongoConfig{
			URI:    getenvWithDefault("MONGODB_URI", "mongodb://localhost:27017"),
			DBName: getenvWithDefault("MONGODB_DB_NAME", "bizstock"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Remote: RemoteConfig{
			Endpoint: os.Getenv("REMOTE_ENDPOINT"),
			Timeout:  remoteTimeout,
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			SessionTTL: sessionTTL,
		},
		Admin: AdminConfig{
			Username:    getenvWithDefault("ADMIN_USERNAME", "admin"),
			Password:    getenvWithDefault("ADMIN_PASSWORD", "admin123"),
			CompanyName: getenvWithDefault("ADMIN_COMPANY", "Head Office"),
		},
		Sync: SyncConfig{
			ResyncCron: os.Getenv("RESYNC_CRON"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate ensures that required configuration fields are populated. The
// remote endpoint is deliberately optional.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}

	if c.Server.Port == "" {
		return errors.New("APP_PORT must be provided")
	}

	switch {
	case c.Mongo.URI == "":
		return errors.New("MONGODB_URI must be provided")
	case c.Mongo.DBName == "":
		return errors.New("MONGODB_DB_NAME must be provided")
	}

	if c.Auth.JWTSecret == "" {
		return errors.New("JWT_SECRET must be provided")
	}
	if c.Auth.SessionTTL <= 0 {
		return errors.New("SESSION_TTL must be positive")
	}

	if c.Admin.Username == "" || c.Admin.Password == "" {
		return errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be provided")
	}

	return nil
}

func getenvWithDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
