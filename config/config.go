package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	// HTTP Server
	Port         string
	Env          string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CORSOrigins  []string

	// Logging
	LogLevel slog.Level

	// Database
	DBDriver     string
	SQLiteDBPath string
	DatabaseURL  string
	DBHost       string
	DBPort       string
	DBUser       string
	DBPassword   string
	DBName       string
	DBSSLMode    string

	// Firebase
	FirebaseProjectID         string
	FirebaseCredentialsJSON   string
	FirebaseCredentialsBase64 string
	FirebaseCredentialsFile   string
	SessionCookieName         string

	// Pagination
	DefaultPageLimit int
	MaxPageLimit     int

	// Demo data
	SeedDemoData bool
	SeedUserID   string
}

// Load reads configuration from the environment, after loading a .env file
// if one is present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8080"),
		Env:          getEnv("APP_ENV", "development"),
		ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 15*time.Second),
		CORSOrigins:  getEnvList("CORS_ALLOWED_ORIGINS", nil),

		LogLevel: parseLevel(getEnv("LOG_LEVEL", "info")),

		DBDriver:     getEnv("DB_DRIVER", DriverSQLite),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/hisab.db"),
		DatabaseURL:  getEnv("DATABASE_URL", ""),
		DBHost:       getEnv("DB_HOST", "localhost"),
		DBPort:       getEnv("DB_PORT", "5432"),
		DBUser:       getEnv("DB_USER", "postgres"),
		DBPassword:   getEnv("DB_PASSWORD", "postgres"),
		DBName:       getEnv("DB_NAME", "hisab"),
		DBSSLMode:    getEnv("DB_SSL_MODE", "disable"),

		FirebaseProjectID:         getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON:   getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseCredentialsBase64: getEnv("FIREBASE_SERVICE_ACCOUNT_BASE64", ""),
		FirebaseCredentialsFile:   getEnv("FIREBASE_SERVICE_ACCOUNT_FILE", ""),
		SessionCookieName:         getEnv("SESSION_COOKIE_NAME", "session"),

		DefaultPageLimit: getEnvInt("DEFAULT_PAGE_LIMIT", 30),
		MaxPageLimit:     getEnvInt("MAX_PAGE_LIMIT", 100),

		SeedDemoData: getEnvBool("SEED_DEMO_DATA", false),
		SeedUserID:   getEnv("SEED_USER_ID", ""),
	}

	return cfg
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// HasFirebaseCredentials reports whether any Firebase service account source is set.
func (c *Config) HasFirebaseCredentials() bool {
	return c.FirebaseCredentialsJSON != "" || c.FirebaseCredentialsBase64 != "" || c.FirebaseCredentialsFile != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DBDriver {
	case DriverSQLite:
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite driver")
		}
	case DriverPostgres:
		if c.DatabaseURL == "" && (c.DBHost == "" || c.DBName == "") {
			errors = append(errors, "either DATABASE_URL or DB_HOST and DB_NAME must be set when using postgres driver")
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid database driver '%s': must be one of [%s %s]", c.DBDriver, DriverSQLite, DriverPostgres))
	}

	if c.DefaultPageLimit < 1 {
		errors = append(errors, fmt.Sprintf("invalid default page limit %d: must be at least 1", c.DefaultPageLimit))
	}
	if c.MaxPageLimit < c.DefaultPageLimit {
		errors = append(errors, fmt.Sprintf("invalid max page limit %d: must be at least the default page limit %d", c.MaxPageLimit, c.DefaultPageLimit))
	}

	if c.SessionCookieName == "" {
		errors = append(errors, "session cookie name cannot be empty")
	}

	if c.IsProduction() && !c.HasFirebaseCredentials() {
		errors = append(errors, "Firebase credentials are required in production")
	}

	if c.FirebaseCredentialsFile != "" {
		if _, err := os.Stat(c.FirebaseCredentialsFile); os.IsNotExist(err) {
			errors = append(errors, fmt.Sprintf("Firebase service account file does not exist: %s", c.FirebaseCredentialsFile))
		}
	}

	if c.SeedDemoData && c.SeedUserID == "" {
		errors = append(errors, "SEED_USER_ID must be set when SEED_DEMO_DATA is enabled")
	}

	if c.ReadTimeout < time.Second || c.WriteTimeout < time.Second {
		errors = append(errors, "HTTP timeouts must be at least 1 second")
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

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
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

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
