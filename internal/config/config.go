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
	SMTP     SMTPConfig
	Engine   EngineConfig
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
	Port     int
	Env      string
	LogLevel string
}

// SMTPConfig holds outbound email configuration. An empty Host disables
// email sending entirely.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// EngineConfig holds the attendance processing knobs.
type EngineConfig struct {
	// Out-window bounds and late-issue threshold, minutes since midnight.
	OutWindowStart            int
	OutWindowEnd              int
	LateIssueThresholdMinutes int

	// Local hours at which the scheduler fires the automatic runs.
	MorningRunHour int
	EveningRunHour int
}

func Load() (*Config, error) {
	// A missing .env file is fine in deployed environments where the
	// variables come from the process environment.
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
		Name:     getEnv("DB_NAME", "attendance-engine"),
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
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", ""),
		FromName: getEnv("SMTP_FROM_NAME", "Attendance Engine"),
	}

	// Engine configuration
	outWindowStart, err := strconv.Atoi(getEnv("ENGINE_OUT_WINDOW_START", "840"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_OUT_WINDOW_START: %w", err)
	}
	outWindowEnd, err := strconv.Atoi(getEnv("ENGINE_OUT_WINDOW_END", "1380"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_OUT_WINDOW_END: %w", err)
	}
	lateThreshold, err := strconv.Atoi(getEnv("ENGINE_LATE_ISSUE_THRESHOLD", "15"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_LATE_ISSUE_THRESHOLD: %w", err)
	}
	morningRunHour, err := strconv.Atoi(getEnv("ENGINE_MORNING_RUN_HOUR", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_MORNING_RUN_HOUR: %w", err)
	}
	eveningRunHour, err := strconv.Atoi(getEnv("ENGINE_EVENING_RUN_HOUR", "23"))
	if err != nil {
		return nil, fmt.Errorf("invalid ENGINE_EVENING_RUN_HOUR: %w", err)
	}

	config.Engine = EngineConfig{
		OutWindowStart:            outWindowStart,
		OutWindowEnd:              outWindowEnd,
		LateIssueThresholdMinutes: lateThreshold,
		MorningRunHour:            morningRunHour,
		EveningRunHour:            eveningRunHour,
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
	if c.Engine.OutWindowStart < 0 || c.Engine.OutWindowEnd > 1440 {
		return fmt.Errorf("out window must lie within a single day")
	}
	if c.Engine.OutWindowStart >= c.Engine.OutWindowEnd {
		return fmt.Errorf("ENGINE_OUT_WINDOW_START must precede ENGINE_OUT_WINDOW_END")
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
