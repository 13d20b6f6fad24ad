package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database DatabaseConfig
	JWT      JWTConfig
	App      AppConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Payroll  PayrollConfig
	Features FeatureFlags
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
	Secret           string
	AccessExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	Version        string
	AllowedOrigins []string
}

// RedisConfig is optional; an empty Addr disables caching.
type RedisConfig struct {
	Addr     string
	Username string
	Password string
	DB       int
	TTL      time.Duration
}

type StorageConfig struct {
	BasePath   string
	BaseURL    string
	SigningKey string
}

// PayrollConfig holds the attendance and salary policy knobs.
type PayrollConfig struct {
	LateGraceCount            int
	LateTierMinorMinutes      int
	LateTierMajorMinutes      int
	LateDeductOnHalfDays      bool
	FullDayMinHours           float64
	HalfDayMinHours           float64
	EarlyExitToleranceMinutes int
	OvertimeRateMultiplier    float64
	WeekoffMinWorkedDays      float64
	DefaultShiftName          string
	BatchConcurrency          int
	AutoHoldNegativeNet       bool
	CompanyName               string

	// DraftRefreshInterval recalculates open-cycle drafts in the background;
	// zero disables it.
	DraftRefreshInterval time.Duration
}

// FeatureFlags are derived from capability checks performed once at startup.
type FeatureFlags struct {
	OvertimeTable bool
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using process environment")
	}

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
		Name:     getEnv("DB_NAME", "payroll"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		Version:        getEnv("APP_VERSION", "v1.0.0"),
		AllowedOrigins: getEnvSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	config.Redis = RedisConfig{
		Addr:     getEnv("REDIS_ADDR", ""),
		Username: getEnv("REDIS_USERNAME", ""),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
		TTL:      getEnvDuration("REDIS_TTL", 10*time.Minute),
	}

	config.Storage = StorageConfig{
		BasePath: getEnv("STORAGE_BASE_PATH", "./storage"),
		BaseURL:  getEnv("STORAGE_BASE_URL", "http://localhost:8080/files"),
	}
	config.Storage.SigningKey = getEnv("STORAGE_SIGNING_KEY", config.JWT.Secret)

	config.Payroll = PayrollConfig{
		LateGraceCount:            getEnvInt("LATE_GRACE_COUNT", 3),
		LateTierMinorMinutes:      getEnvInt("LATE_TIER_MINOR_MINUTES", 10),
		LateTierMajorMinutes:      getEnvInt("LATE_TIER_MAJOR_MINUTES", 30),
		LateDeductOnHalfDays:      getEnvBool("LATE_DEDUCT_ON_HALF_DAYS", false),
		FullDayMinHours:           getEnvFloat("FULL_DAY_MIN_HOURS", 7),
		HalfDayMinHours:           getEnvFloat("HALF_DAY_MIN_HOURS", 4),
		EarlyExitToleranceMinutes: getEnvInt("EARLY_EXIT_TOLERANCE_MINUTES", 10),
		OvertimeRateMultiplier:    getEnvFloat("OVERTIME_RATE_MULTIPLIER", 1),
		WeekoffMinWorkedDays:      getEnvFloat("WEEKOFF_MIN_WORKED_DAYS", 3),
		DefaultShiftName:          getEnv("DEFAULT_SHIFT_NAME", "Day Shift"),
		BatchConcurrency:          getEnvInt("BATCH_CONCURRENCY", 4),
		AutoHoldNegativeNet:       getEnvBool("AUTO_HOLD_NEGATIVE_NET", true),
		CompanyName:               getEnv("COMPANY_NAME", "EEC Global"),
		DraftRefreshInterval:      getEnvDuration("DRAFT_REFRESH_INTERVAL", 0),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return errors.New("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET_KEY is required")
	}
	return c.Payroll.Validate()
}

func (p PayrollConfig) Validate() error {
	if p.LateGraceCount < 0 {
		return errors.New("LATE_GRACE_COUNT must be non-negative")
	}
	if p.LateTierMinorMinutes <= 0 || p.LateTierMajorMinutes <= p.LateTierMinorMinutes {
		return errors.New("LATE_TIER_MAJOR_MINUTES must be greater than LATE_TIER_MINOR_MINUTES > 0")
	}
	if p.HalfDayMinHours <= 0 || p.FullDayMinHours <= p.HalfDayMinHours {
		return errors.New("FULL_DAY_MIN_HOURS must be greater than HALF_DAY_MIN_HOURS > 0")
	}
	if p.EarlyExitToleranceMinutes < 0 {
		return errors.New("EARLY_EXIT_TOLERANCE_MINUTES must be non-negative")
	}
	if p.OvertimeRateMultiplier < 0 {
		return errors.New("OVERTIME_RATE_MULTIPLIER must be non-negative")
	}
	if p.DraftRefreshInterval < 0 {
		return errors.New("DRAFT_REFRESH_INTERVAL must be non-negative")
	}
	if p.BatchConcurrency < 1 {
		return errors.New("BATCH_CONCURRENCY must be at least 1")
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

func getEnvSlice(key string, fallback []string) []string {
	value := getEnv(key, "")
	if value == "" {
		return fallback
	}
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
		slog.Warn("invalid integer env value, using default", "key", key, "value", v)
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
		slog.Warn("invalid float env value, using default", "key", key, "value", v)
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
		slog.Warn("invalid boolean env value, using default", "key", key, "value", v)
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
		slog.Warn("invalid duration env value, using default", "key", key, "value", v)
	}
	return fallback
}
