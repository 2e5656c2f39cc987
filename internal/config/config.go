package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	Attendance AttendanceConfig
	Leave      LeaveConfig
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

// AttendanceConfig holds the shift window and auto punch-out policy.
type AttendanceConfig struct {
	ShiftStart         string // HH:MM
	ShiftEnd           string // HH:MM
	GraceMinutes       int
	OffenderThreshold  int // auto punch-outs within the window before a user is flagged
	OffenderWindowDays int
}

// LeaveConfig holds leave policy defaults.
type LeaveConfig struct {
	DefaultMinNoticeDays int
}

func Load() (*Config, error) {
	// .env is optional outside development
	_ = godotenv.Load()

	config := &Config{}

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "worktrace"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:     appPort,
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	config.JWT = JWTConfig{
		Secret:           getEnv("JWT_SECRET_KEY", ""),
		AccessExpiration: getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	graceMinutes, err := strconv.Atoi(getEnv("ATTENDANCE_GRACE_MINUTES", "10"))
	if err != nil {
		return nil, fmt.Errorf("invalid ATTENDANCE_GRACE_MINUTES: %w", err)
	}
	offenderThreshold, err := strconv.Atoi(getEnv("AUTO_PUNCH_OFFENDER_THRESHOLD", "3"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_PUNCH_OFFENDER_THRESHOLD: %w", err)
	}
	offenderWindow, err := strconv.Atoi(getEnv("AUTO_PUNCH_OFFENDER_WINDOW_DAYS", "30"))
	if err != nil {
		return nil, fmt.Errorf("invalid AUTO_PUNCH_OFFENDER_WINDOW_DAYS: %w", err)
	}

	config.Attendance = AttendanceConfig{
		ShiftStart:         getEnv("SHIFT_START", "09:00"),
		ShiftEnd:           getEnv("SHIFT_END", "18:00"),
		GraceMinutes:       graceMinutes,
		OffenderThreshold:  offenderThreshold,
		OffenderWindowDays: offenderWindow,
	}

	minNotice, err := strconv.Atoi(getEnv("LEAVE_DEFAULT_MIN_NOTICE_DAYS", "5"))
	if err != nil {
		return nil, fmt.Errorf("invalid LEAVE_DEFAULT_MIN_NOTICE_DAYS: %w", err)
	}
	config.Leave = LeaveConfig{
		DefaultMinNoticeDays: minNotice,
	}

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
	if _, err := ParseClock(c.Attendance.ShiftStart); err != nil {
		return fmt.Errorf("invalid SHIFT_START: %w", err)
	}
	if _, err := ParseClock(c.Attendance.ShiftEnd); err != nil {
		return fmt.Errorf("invalid SHIFT_END: %w", err)
	}
	if c.Attendance.OffenderThreshold < 1 {
		return fmt.Errorf("AUTO_PUNCH_OFFENDER_THRESHOLD must be >= 1")
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

// ClockTime is a wall-clock time of day without a date.
type ClockTime struct {
	Hour   int
	Minute int
}

// ParseClock parses an HH:MM string.
func ParseClock(s string) (ClockTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return ClockTime{}, fmt.Errorf("expected HH:MM, got %q", s)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return ClockTime{}, fmt.Errorf("out of range clock time %q", s)
	}
	return ClockTime{Hour: h, Minute: m}, nil
}

// ShiftStartClock returns the parsed shift start. Validate must have passed.
func (c *Config) ShiftStartClock() ClockTime {
	ct, _ := ParseClock(c.Attendance.ShiftStart)
	return ct
}

// ShiftEndClock returns the parsed shift end. Validate must have passed.
func (c *Config) ShiftEndClock() ClockTime {
	ct, _ := ParseClock(c.Attendance.ShiftEnd)
	return ct
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
