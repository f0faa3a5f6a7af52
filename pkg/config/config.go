// Package config reads application configuration from environment
// variables, with an optional .env file for local development.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all extractor configuration.
type Config struct {
	Archive ArchiveConfig
	Export  ExportConfig
	Log     LogConfig
}

type ArchiveConfig struct {
	// Enabled controls whether processed documents are archived at all.
	Enabled bool
	// Path is the archive root directory.
	Path string
}

type ExportConfig struct {
	// Currency is assumed for amounts when the document names none.
	Currency string
	// Dir receives generated CSV and XLSX files.
	Dir string
}

type LogConfig struct {
	Level slog.Level
	// JSON switches the handler from text to JSON output.
	JSON bool
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() (*Config, error) {
	_ = godotenv.Load()

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Archive: ArchiveConfig{
			Enabled: getEnvAsBool("ARCHIVE_ENABLED", false),
			Path:    getEnv("ARCHIVE_PATH", "./archive"),
		},
		Export: ExportConfig{
			Currency: strings.ToUpper(getEnv("EXPORT_CURRENCY", "TZS")),
			Dir:      getEnv("EXPORT_DIR", "."),
		},
		Log: LogConfig{
			Level: level,
			JSON:  getEnvAsBool("LOG_JSON", false),
		},
	}

	if cfg.Archive.Enabled && cfg.Archive.Path == "" {
		return nil, fmt.Errorf("ARCHIVE_PATH is required when archiving is enabled")
	}
	return cfg, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown LOG_LEVEL %q", s)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return defaultValue
}
