package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the console service.
type Config struct {
	App      AppConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Logger   LoggerConfig
	Auth     AuthConfig
	Session  SessionConfig
	CMS      CMSConfig
}

// AppConfig controls server level behavior.
type AppConfig struct {
	Name                  string
	Env                   string
	Host                  string
	Port                  string
	Version               string
	RequestTimeoutSeconds int
}

// PostgresConfig holds DB connection values for the product catalog.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
	MigrationsDir  string
	ConnMaxIdleSec int32
	ConnMaxLifeSec int32
}

// RedisConfig holds Redis connection values.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// AuthConfig defines console token and credential hashing parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// SessionConfig controls the persisted console session.
type SessionConfig struct {
	StorageKey       string
	TTLSeconds       int
	LoginLatencyMS   int
	RehydrateTimeout int
}

// CMSConfig points at the headless content service.
type CMSConfig struct {
	BaseURL         string
	APIKey          string
	TimeoutSeconds  int
	CacheTTLSeconds int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "storefront-console"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8080"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
			MigrationsDir:  getEnv("POSTGRES_MIGRATIONS_DIR", "migrations"),
			ConnMaxIdleSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_IDLE_SECONDS", 30)),
			ConnMaxLifeSec: int32(getEnvAsInt("POSTGRES_CONN_MAX_LIFE_SECONDS", 300)),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Auth: AuthConfig{
			JWTSecret:             getEnv("AUTH_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 480),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 10),
		},
		Session: SessionConfig{
			StorageKey:       getEnv("SESSION_STORAGE_KEY", "manager-auth-storage"),
			TTLSeconds:       getEnvAsInt("SESSION_TTL_SECONDS", 0),
			LoginLatencyMS:   getEnvAsInt("SESSION_LOGIN_LATENCY_MS", 0),
			RehydrateTimeout: getEnvAsInt("SESSION_REHYDRATE_TIMEOUT_SECONDS", 5),
		},
		CMS: CMSConfig{
			BaseURL:         getEnv("CMS_BASE_URL", "https://cdn.builder.io/api/v3/content"),
			APIKey:          os.Getenv("CMS_API_KEY"),
			TimeoutSeconds:  getEnvAsInt("CMS_TIMEOUT_SECONDS", 10),
			CacheTTLSeconds: getEnvAsInt("CMS_CACHE_TTL_SECONDS", 60),
		},
	}

	if cfg.App.Env == "production" && cfg.Auth.JWTSecret == "dev-secret" {
		return nil, fmt.Errorf("AUTH_JWT_SECRET must be set in production")
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	return seconds(a.RequestTimeoutSeconds)
}

// TTL returns how long the persisted session survives; zero means no expiry.
func (s SessionConfig) TTL() time.Duration {
	return seconds(s.TTLSeconds)
}

// LoginLatency returns the simulated login round-trip.
func (s SessionConfig) LoginLatency() time.Duration {
	if s.LoginLatencyMS <= 0 {
		return 0
	}
	return time.Duration(s.LoginLatencyMS) * time.Millisecond
}

// RehydrateDeadline bounds the startup read of the persisted session.
func (s SessionConfig) RehydrateDeadline() time.Duration {
	if s.RehydrateTimeout <= 0 {
		return 5 * time.Second
	}
	return seconds(s.RehydrateTimeout)
}

// Timeout returns the upstream request timeout.
func (c CMSConfig) Timeout() time.Duration {
	return seconds(c.TimeoutSeconds)
}

// CacheTTL returns how long published entries are cached.
func (c CMSConfig) CacheTTL() time.Duration {
	return seconds(c.CacheTTLSeconds)
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvAsBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}
