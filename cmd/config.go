package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"donation/internal/adapters/out/postgres"
	"donation/internal/core/application/usecases/commands"
	"donation/internal/core/domain/model/item"
	"donation/internal/jobs"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort        string
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBSslMode       string
	JWTSecret       string
	LogLevel        slog.Level
	PickupEmbargo   time.Duration
	ConflictRetries int
	LockTimeout     time.Duration
	StatsSchedule   string
}

// DSN returns the lib/pq connection string for the configured database.
func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads envFile if it exists, then the process environment.
// Variables already set in the environment win over the file.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
		}
	}

	config := Config{
		HTTPPort:      getenv("HTTP_PORT", "8080"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     getenv("DB_SSLMODE", "disable"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		StatsSchedule: getenv("STATS_SCHEDULE", jobs.DefaultStatsSchedule),
	}

	var err error
	if config.PickupEmbargo, err = parseDuration("PICKUP_EMBARGO", item.DefaultEmbargo); err != nil {
		return Config{}, err
	}
	if config.ConflictRetries, err = parseInt("CONFLICT_RETRIES", commands.DefaultConflictRetries); err != nil {
		return Config{}, err
	}
	if config.LockTimeout, err = parseDuration("LOCK_TIMEOUT", postgres.DefaultLockTimeout); err != nil {
		return Config{}, err
	}
	if config.LogLevel, err = parseLevel("LOG_LEVEL", slog.LevelInfo); err != nil {
		return Config{}, err
	}

	return config, config.Validate()
}

// Validate checks settings the process cannot start without.
func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.DBName == "" {
		errs = append(errs, errors.New("DB_NAME is required"))
	}
	if c.PickupEmbargo < 0 {
		errs = append(errs, fmt.Errorf("PICKUP_EMBARGO must not be negative, got %s", c.PickupEmbargo))
	}
	if c.ConflictRetries < 0 {
		errs = append(errs, fmt.Errorf("CONFLICT_RETRIES must not be negative, got %d", c.ConflictRetries))
	}
	if c.LockTimeout < 0 {
		errs = append(errs, fmt.Errorf("LOCK_TIMEOUT must not be negative, got %s", c.LockTimeout))
	}
	return errors.Join(errs...)
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func parseInt(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func parseLevel(key string, fallback slog.Level) (slog.Level, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(v)); err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return level, nil
}
