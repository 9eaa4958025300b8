package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the service.
type Config struct {
	App          AppConfig
	Postgres     PostgresConfig
	Redis        RedisConfig
	Logger       LoggerConfig
	Auth         AuthConfig
	Billing      BillingConfig
	Chat         ChatConfig
	Storage      StorageConfig
	Notification NotificationConfig
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

// PostgresConfig holds DB connection values.
type PostgresConfig struct {
	DSN            string
	MaxConns       int32
	MinConns       int32
	RunMigrations  bool
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

// AuthConfig defines authentication parameters.
type AuthConfig struct {
	JWTSecret             string
	AccessTokenTTLMinutes int
	InvitationTTLHours    int
	BcryptCost            int
}

// BillingConfig governs the unresolved-complaint fee sweep.
type BillingConfig struct {
	FeeAmount             float64
	UnresolvedWindowHours int
	SweepIntervalMinutes  int
	LowBalanceThreshold   float64
}

// ChatConfig controls support chat sessions.
type ChatConfig struct {
	SessionTTLHours int
}

// StorageConfig locates uploaded voice notes.
type StorageConfig struct {
	VoiceUploadDir string
}

// NotificationConfig holds stub notification endpoints.
type NotificationConfig struct {
	EmailFrom  string
	WebhookURL string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	feeAmount, err := strconv.ParseFloat(getEnv("BILLING_FEE_AMOUNT", "50"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BILLING_FEE_AMOUNT: %w", err)
	}
	lowBalance, err := strconv.ParseFloat(getEnv("BILLING_LOW_BALANCE_THRESHOLD", "100"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid BILLING_LOW_BALANCE_THRESHOLD: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name:                  getEnv("APP_NAME", "complainthub-api"),
			Env:                   getEnv("APP_ENV", "development"),
			Host:                  getEnv("APP_HOST", "0.0.0.0"),
			Port:                  getEnv("APP_PORT", "8000"),
			Version:               getEnv("APP_VERSION", "dev"),
			RequestTimeoutSeconds: getEnvAsInt("HTTP_REQUEST_TIMEOUT_SECONDS", 30),
		},
		Postgres: PostgresConfig{
			DSN:            os.Getenv("POSTGRES_DSN"),
			MaxConns:       int32(getEnvAsInt("POSTGRES_MAX_CONNS", 10)),
			MinConns:       int32(getEnvAsInt("POSTGRES_MIN_CONNS", 2)),
			RunMigrations:  getEnvAsBool("POSTGRES_RUN_MIGRATIONS", true),
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
			AccessTokenTTLMinutes: getEnvAsInt("AUTH_ACCESS_TOKEN_TTL_MINUTES", 60),
			InvitationTTLHours:    getEnvAsInt("AUTH_INVITATION_TTL_HOURS", 72),
			BcryptCost:            getEnvAsInt("AUTH_BCRYPT_COST", 12),
		},
		Billing: BillingConfig{
			FeeAmount:             feeAmount,
			UnresolvedWindowHours: getEnvAsInt("BILLING_UNRESOLVED_WINDOW_HOURS", 24),
			SweepIntervalMinutes:  getEnvAsInt("BILLING_SWEEP_INTERVAL_MINUTES", 15),
			LowBalanceThreshold:   lowBalance,
		},
		Chat: ChatConfig{
			SessionTTLHours: getEnvAsInt("CHAT_SESSION_TTL_HOURS", 24),
		},
		Storage: StorageConfig{
			VoiceUploadDir: getEnv("STORAGE_VOICE_UPLOAD_DIR", "uploads/voice"),
		},
		Notification: NotificationConfig{
			EmailFrom:  getEnv("NOTIFY_EMAIL_FROM", "noreply@complainthub.io"),
			WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
		},
	}

	return cfg, nil
}

// Addr returns the HTTP bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// RequestTimeout returns the configured request timeout duration.
func (a AppConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// UnresolvedWindow returns how long a ticket may stay unresolved before the
// fee applies.
func (b BillingConfig) UnresolvedWindow() time.Duration {
	return time.Duration(b.UnresolvedWindowHours) * time.Hour
}

// SweepInterval returns how often the billing worker runs.
func (b BillingConfig) SweepInterval() time.Duration {
	if b.SweepIntervalMinutes <= 0 {
		return 15 * time.Minute
	}
	return time.Duration(b.SweepIntervalMinutes) * time.Minute
}

// SessionTTL returns how long idle chat transcripts are retained.
func (c ChatConfig) SessionTTL() time.Duration {
	if c.SessionTTLHours <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.SessionTTLHours) * time.Hour
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
