// Package config loads application configuration from the environment, with
// .env file support for local setups.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
)

type Config struct {
	// Database
	DBPath string

	// Backups
	BackupDir string

	// Import
	CSVDelimiter rune

	// Logging
	LogLevel slog.Level
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		DBPath:       getEnv("COMPTA_DB_PATH", "./data/compta.db"),
		BackupDir:    getEnv("COMPTA_BACKUP_DIR", "./backups"),
		CSVDelimiter: firstRune(getEnv("COMPTA_CSV_DELIMITER", ";")),
		LogLevel:     parseLevel(getEnv("COMPTA_LOG_LEVEL", "info")),
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	var errs []string

	if c.DBPath == "" {
		errs = append(errs, "database path cannot be empty")
	}
	if c.CSVDelimiter == 0 {
		errs = append(errs, "CSV delimiter cannot be empty")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errs, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func firstRune(s string) rune {
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return 0
	}
	return r
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
