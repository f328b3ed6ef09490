package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env      string
	HTTPPort string

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string

	PGHost     string
	PGPort     int
	PGUser     string
	PGPassword string
	PGDatabase string

	MigrationsDir string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// CatalogTTL is the catalog re-fetch window. Production runs a short
	// window so frequent backend edits by store staff show up quickly.
	CatalogTTL time.Duration

	DefaultLocale    string
	SupportedLocales []string

	// ImageHosts is the allowlist of remote hostnames product images may be
	// served from. Empty means allow everything.
	ImageHosts []string
}

func Load() *Config {
	// .env only exists in local development; deployed environments inject
	// real environment variables.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("failed to load .env file: %v", err)
		}
	}

	env := getEnv("APP_ENV", "development")

	catalogTTL := 5 * time.Minute
	if env == "production" {
		catalogTTL = 30 * time.Second
	}

	return &Config{
		Env:      env,
		HTTPPort: getEnv("HTTP_PORT", "8080"),

		MongoURI: getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB_NAME", "nellystore"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		PGHost:     getEnv("PG_HOST", "localhost"),
		PGPort:     getEnvInt("PG_PORT", 5432),
		PGUser:     getEnv("PG_USER", "postgres"),
		PGPassword: getEnv("PG_PASSWORD", ""),
		PGDatabase: getEnv("PG_DATABASE", "nellystore"),

		MigrationsDir: getEnv("MIGRATIONS_DIR", "migrations"),

		RequestTimeout:  getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 10*time.Second),

		CatalogTTL: getEnvDuration("CATALOG_TTL", catalogTTL),

		DefaultLocale:    getEnv("DEFAULT_LOCALE", "en"),
		SupportedLocales: getEnvList("SUPPORTED_LOCALES", []string{"en", "ar", "fr"}),

		ImageHosts: getEnvList("IMAGE_HOSTS", nil),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
		log.Printf("invalid integer for %s: %q, using default", key, value)
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		log.Printf("invalid duration for %s: %q, using default", key, value)
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
