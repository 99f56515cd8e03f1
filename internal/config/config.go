package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Auth     AuthConfig
	Ingest   IngestConfig
	Shift    ShiftConfig
	Trend    TrendConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port     int
	Env      string
	LogLevel string
}

// AuthConfig holds the operator access key (bcrypt hash, never plaintext).
type AuthConfig struct {
	AccessKeyHash string
}

// IngestConfig describes where DailyUsage exports land and how they are
// shaped.
type IngestConfig struct {
	ExportDir       string
	HeaderSkipLines int
	PatternRules    string
	IntervalMinutes int
}

// ShiftConfig holds the expected-shift thresholds for daily classification.
type ShiftConfig struct {
	ExpectedStart     string
	ExpectedEnd       string
	LateGraceMinutes  int
	EarlyGraceMinutes int
	ShortDayMinutes   int
	LongDayMinutes    int
}

// TrendConfig holds the multi-day trend thresholds.
type TrendConfig struct {
	ChronicLateThreshold     int
	RepeatedAbsenceThreshold int
	UnstableShiftMinutes     int
}

func Load() (*Config, error) {
	// .env is optional; production supplies real environment variables.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "fleet_attendance"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Auth = AuthConfig{
		AccessKeyHash: getEnv("OPERATOR_ACCESS_KEY_HASH", ""),
	}

	// Ingest configuration
	skipLines, err := strconv.Atoi(getEnv("EXPORT_HEADER_SKIP_LINES", "7"))
	if err != nil {
		return nil, fmt.Errorf("invalid EXPORT_HEADER_SKIP_LINES: %w", err)
	}
	ingestInterval, err := strconv.Atoi(getEnv("INGEST_INTERVAL_MINUTES", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid INGEST_INTERVAL_MINUTES: %w", err)
	}

	config.Ingest = IngestConfig{
		ExportDir:       getEnv("EXPORT_DIR", "./exports"),
		HeaderSkipLines: skipLines,
		PatternRules:    getEnv("ASSET_PATTERN_RULES", ""),
		IntervalMinutes: ingestInterval,
	}

	// Shift thresholds
	config.Shift = ShiftConfig{
		ExpectedStart:     getEnv("EXPECTED_SHIFT_START", "07:00"),
		ExpectedEnd:       getEnv("EXPECTED_SHIFT_END", "17:30"),
		LateGraceMinutes:  getEnvInt("LATE_GRACE_MINUTES", 15),
		EarlyGraceMinutes: getEnvInt("EARLY_GRACE_MINUTES", 15),
		ShortDayMinutes:   getEnvInt("SHORT_DAY_MINUTES", 240),
		LongDayMinutes:    getEnvInt("LONG_DAY_MINUTES", 720),
	}

	// Trend thresholds
	config.Trend = TrendConfig{
		ChronicLateThreshold:     getEnvInt("CHRONIC_LATE_THRESHOLD", 3),
		RepeatedAbsenceThreshold: getEnvInt("REPEATED_ABSENCE_THRESHOLD", 2),
		UnstableShiftMinutes:     getEnvInt("UNSTABLE_SHIFT_MINUTES", 180),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Auth.AccessKeyHash == "" {
		return fmt.Errorf("OPERATOR_ACCESS_KEY_HASH is required")
	}
	if c.Ingest.HeaderSkipLines < 0 {
		return fmt.Errorf("EXPORT_HEADER_SKIP_LINES must not be negative")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
