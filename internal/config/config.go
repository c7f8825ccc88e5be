package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP Server
	Port string

	// Persistence slot
	SlotBackend  string
	DataDir      string
	SQLiteDBPath string

	// Gemini advisor
	GeminiEndpoint string
	GeminiModel    string
	GeminiAPIKey   string

	// Analysis
	BaseCurrency     string
	AnalyzePerMinute int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "8080"),

		SlotBackend:  getEnv("SLOT_BACKEND", "file"),
		DataDir:      getEnv("DATA_DIR", "./data"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/viaggio.db"),

		GeminiEndpoint: getEnv("GEMINI_ENDPOINT", "https://generativelanguage.googleapis.com"),
		GeminiModel:    getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),

		BaseCurrency:     getEnv("BASE_CURRENCY", "TWD"),
		AnalyzePerMinute: getEnvInt("ANALYZE_PER_MINUTE", 6),
	}
}

// Validate validates the configuration and returns an error if invalid.
// A missing GEMINI_API_KEY is deliberately not an error: the advisor
// degrades to its fallback result instead of refusing to start.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"file", "sqlite", "memory"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.SlotBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid slot backend '%s': must be one of %v", c.SlotBackend, validBackends))
	}

	if c.SlotBackend == "file" && c.DataDir == "" {
		errors = append(errors, "data directory cannot be empty when using the file backend")
	}

	if c.SlotBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using the sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if parsed, err := url.Parse(c.GeminiEndpoint); err != nil {
		errors = append(errors, fmt.Sprintf("invalid Gemini endpoint '%s': %v", c.GeminiEndpoint, err))
	} else if parsed.Scheme != "http" && parsed.Scheme != "https" {
		errors = append(errors, fmt.Sprintf("invalid Gemini endpoint scheme '%s': must be 'http' or 'https'", parsed.Scheme))
	}

	if c.GeminiModel == "" {
		errors = append(errors, "Gemini model cannot be empty")
	}

	if c.BaseCurrency == "" {
		errors = append(errors, "base currency cannot be empty")
	}

	if c.AnalyzePerMinute < 1 {
		errors = append(errors, fmt.Sprintf("invalid analyze rate %d: must be at least 1 per minute", c.AnalyzePerMinute))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
