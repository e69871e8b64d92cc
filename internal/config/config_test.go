package config

import (
	"log/slog"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DBPath != "./data/compta.db" {
		t.Fatalf("unexpected default db path: %s", cfg.DBPath)
	}
	if cfg.BackupDir != "./backups" {
		t.Fatalf("unexpected default backup dir: %s", cfg.BackupDir)
	}
	if cfg.CSVDelimiter != ';' {
		t.Fatalf("unexpected default delimiter: %q", cfg.CSVDelimiter)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Fatalf("unexpected default log level: %v", cfg.LogLevel)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COMPTA_DB_PATH", "/tmp/ledger.db")
	t.Setenv("COMPTA_CSV_DELIMITER", ",")
	t.Setenv("COMPTA_LOG_LEVEL", "debug")

	cfg := Load()
	if cfg.DBPath != "/tmp/ledger.db" {
		t.Fatalf("env override ignored: %s", cfg.DBPath)
	}
	if cfg.CSVDelimiter != ',' {
		t.Fatalf("delimiter override ignored: %q", cfg.CSVDelimiter)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Fatalf("log level override ignored: %v", cfg.LogLevel)
	}
}

func TestValidateRejectsEmpty(t *testing.T) {
	cfg := &Config{}
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty config must not validate")
	}
}
