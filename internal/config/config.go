// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Shubham-kumar0001/smarttax-pos/internal/validation"
)

// ErrInvalid is returned by Validate when a setting is out of range.
var ErrInvalid = errors.New("invalid configuration")

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	POS      POSConfig
	App      AppConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string
	ReadTimeout  int // seconds
	WriteTimeout int // seconds
	IdleTimeout  int // seconds
}

// DatabaseConfig holds the SQLite settings backing the in-process store.
// The default DSN is an in-memory database shared by all pool connections,
// so state lives exactly as long as the process.
type DatabaseConfig struct {
	DSN   string
	Debug bool
}

// POSConfig holds the point-of-sale settings.
type POSConfig struct {
	// TaxRate is applied to the cart subtotal, e.g. 0.08 for 8%.
	// Read-only once the process is running.
	TaxRate float64

	// QRDetectDelay is how long QR payment detection is simulated for.
	QRDetectDelay time.Duration

	// PaymentDelay is the simulated payment processing latency.
	PaymentDelay time.Duration

	CatalogSize int
	// CatalogSeed seeds the catalog generator; 0 seeds from the clock.
	CatalogSeed int64

	// ExportDir receives receipt CSV files on checkout completion.
	// Empty disables file export.
	ExportDir string

	DefaultRole string
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev bool
}

// Load reads configuration from environment variables.
// It uses sensible defaults for local development.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8080"),
			ReadTimeout:  getEnvInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			DSN:   getEnv("DATABASE_DSN", "file:smarttax?mode=memory&cache=shared"),
			Debug: getEnvBool("DB_DEBUG", false),
		},
		POS: POSConfig{
			TaxRate:       getEnvFloat("TAX_RATE", 0.08),
			QRDetectDelay: getEnvDuration("QR_DETECT_DELAY", 3*time.Second),
			PaymentDelay:  getEnvDuration("PAYMENT_DELAY", 1500*time.Millisecond),
			CatalogSize:   getEnvInt("CATALOG_SIZE", 320),
			CatalogSeed:   int64(getEnvInt("CATALOG_SEED", 0)),
			ExportDir:     getEnv("EXPORT_DIR", ""),
			DefaultRole:   strings.ToLower(getEnv("DEFAULT_ROLE", "admin")),
		},
		App: AppConfig{
			Dev: getEnvBool("DEV", true),
		},
	}
}

// Validate checks the loaded values. TAX_RATE is a fraction, so "8" for 8%
// is rejected rather than charging 800%.
func (c *Config) Validate() error {
	v := make(validation.Violations)
	validation.RangeFloat("TAX_RATE", c.POS.TaxRate, 0, 1, v)
	validation.MinInt("CATALOG_SIZE", c.POS.CatalogSize, 0, v)
	validation.MinInt("SERVER_READ_TIMEOUT", c.Server.ReadTimeout, 1, v)
	validation.MinInt("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout, 1, v)
	validation.MinInt("SERVER_IDLE_TIMEOUT", c.Server.IdleTimeout, 1, v)
	if !v.Empty() {
		return fmt.Errorf("%w: %v", ErrInvalid, map[string]string(v))
	}
	return nil
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns the integer value of an environment variable or a default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil && f >= 0 {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration accepts Go duration strings ("3s", "1500ms").
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d >= 0 {
			return d
		}
	}
	return defaultValue
}

// getEnvBool returns the boolean value of an environment variable or a default.
// Accepts "1", "true", "yes" as true; everything else is false.
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "1" || value == "true" || value == "yes"
}
