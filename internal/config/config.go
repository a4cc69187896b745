// Package config loads the server configuration from environment variables.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	// HTTP Server
	Port string
	Env  string

	// Sessions
	SessionSecret string
	SessionTTL    time.Duration

	// Entity storage
	DataBackend  string
	SQLiteDBPath string

	// AMQP (optional; empty URL selects the in-process queue)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// Google OAuth login
	GoogleClientID     string
	GoogleClientSecret string
	OAuthRedirectURL   string

	// Google Sheets mirror
	GoogleSpreadsheetID string
	GoogleSheetName     string

	// Worker
	SyncInterval  time.Duration
	SyncQueueSize int
}

func Load() *Config {
	return &Config{
		Port: getEnv("PORT", "5000"),
		Env:  getEnv("APP_ENV", EnvDevelopment),

		SessionSecret: getEnv("SESSION_SECRET", "drawtrack-dev-secret"),
		SessionTTL:    getEnvDuration("SESSION_TTL", 24*time.Hour),

		DataBackend:  getEnv("DATA_BACKEND", "memory"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/drawtrack.db"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "drawtrack"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "mirror_sync"),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		OAuthRedirectURL:   getEnv("OAUTH_REDIRECT_URL", ""),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "DrawingEntries"),

		SyncInterval:  getEnvDuration("SYNC_INTERVAL", 5*time.Minute),
		SyncQueueSize: getEnvInt("SYNC_QUEUE_SIZE", 64),
	}
}

// IsDevelopment reports whether the server runs with the dev conveniences
// (auto-login bypass, lenient sync endpoint) enabled.
func (c *Config) IsDevelopment() bool {
	return c.Env != EnvProduction
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.Env != EnvDevelopment && c.Env != EnvProduction {
		errors = append(errors, fmt.Sprintf("invalid app env '%s': must be '%s' or '%s'", c.Env, EnvDevelopment, EnvProduction))
	}

	if c.SessionSecret == "" {
		errors = append(errors, "session secret cannot be empty")
	}
	if c.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("invalid session ttl %v: must be at least 1 minute", c.SessionTTL))
	}

	switch c.DataBackend {
	case "memory":
	case "sqlite":
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
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
	default:
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be 'memory' or 'sqlite'", c.DataBackend))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			errors = append(errors, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	// OAuth is all-or-nothing: a partial configuration is a deployment bug,
	// not a request for the dev bypass.
	hasClientID := c.GoogleClientID != ""
	hasClientSecret := c.GoogleClientSecret != ""
	if hasClientID != hasClientSecret {
		errors = append(errors, "GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET must be set together")
	}
	if hasClientID && hasClientSecret && c.OAuthRedirectURL == "" {
		errors = append(errors, "OAUTH_REDIRECT_URL is required when Google OAuth is configured")
	}

	if c.SyncInterval != 0 {
		if c.SyncInterval < time.Second {
			errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at least 1 second", c.SyncInterval))
		} else if c.SyncInterval > 24*time.Hour {
			errors = append(errors, fmt.Sprintf("invalid sync interval %v: must be at most 24 hours", c.SyncInterval))
		}
	}
	if c.SyncQueueSize < 1 {
		errors = append(errors, fmt.Sprintf("invalid sync queue size %d: must be at least 1", c.SyncQueueSize))
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

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
