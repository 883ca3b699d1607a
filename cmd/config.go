package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort   string `validate:"required,numeric"`
	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string `validate:"required"`
	DBPassword string
	DBName     string `validate:"required"`
	DBSslMode  string `validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	LogLevel   string `validate:"required,oneof=debug info warn error"`

	StaleAssignmentAfter     time.Duration `validate:"gt=0"`
	StaleAssignmentSchedule  string        `validate:"required"`
	StaleAssignmentBatchSize int           `validate:"min=1"`
}

var defaults = map[string]string{
	"HTTP_PORT":                   "8080",
	"DB_PORT":                     "5432",
	"DB_SSLMODE":                  "disable",
	"LOG_LEVEL":                   "info",
	"STALE_ASSIGNMENT_AFTER":      "10m",
	"STALE_ASSIGNMENT_SCHEDULE":   "0 * * * * *",
	"STALE_ASSIGNMENT_BATCH_SIZE": "100",
}

// LoadConfig reads the configuration from the environment. Values in envFile
// fill in variables the environment does not set; a missing file is not an
// error.
func LoadConfig(envFile string) (Config, error) {
	fileValues, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", envFile, err)
	}

	get := func(key string) string {
		if v, ok := os.LookupEnv(key); ok {
			return v
		}
		if v, ok := fileValues[key]; ok {
			return v
		}
		return defaults[key]
	}

	staleAfter, err := time.ParseDuration(get("STALE_ASSIGNMENT_AFTER"))
	if err != nil {
		return Config{}, fmt.Errorf("STALE_ASSIGNMENT_AFTER: %w", err)
	}
	batchSize, err := strconv.Atoi(get("STALE_ASSIGNMENT_BATCH_SIZE"))
	if err != nil {
		return Config{}, fmt.Errorf("STALE_ASSIGNMENT_BATCH_SIZE: %w", err)
	}

	config := Config{
		HTTPPort:                 get("HTTP_PORT"),
		DBHost:                   get("DB_HOST"),
		DBPort:                   get("DB_PORT"),
		DBUser:                   get("DB_USER"),
		DBPassword:               get("DB_PASSWORD"),
		DBName:                   get("DB_NAME"),
		DBSslMode:                get("DB_SSLMODE"),
		LogLevel:                 get("LOG_LEVEL"),
		StaleAssignmentAfter:     staleAfter,
		StaleAssignmentSchedule:  get("STALE_ASSIGNMENT_SCHEDULE"),
		StaleAssignmentBatchSize: batchSize,
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// SlogLevel maps LogLevel to a slog level.
func (c Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}
