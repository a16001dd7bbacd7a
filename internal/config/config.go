// Package config loads runtime configuration from environment
// variables.  Required values halt startup when missing; optional
// values carry sensible defaults so a bare dev environment boots.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration values, one field per
// environment variable.
type Config struct {
	Env            string // APP_ENV: dev/test/prod
	Port           string // APP_PORT: HTTP listen port
	DBUser         string
	DBPass         string // optional, empty allowed
	DBHost         string
	DBPort         string
	DBName         string
	JWTSecret      string
	AccessTTLMin   int // access token TTL in minutes
	RefreshTTLDays int // refresh token TTL in days
	BcryptCost     int

	SignupEnabled bool // REGISTRATION_ENABLED, default true

	// Payment-slip storage and limits.
	UploadMaxBytes int64  // UPLOAD_MAX_BYTES, 0 = built-in 5 MiB cap
	StorageDir     string // STORAGE_DIR, default ./data/storage
	StorageBucket  string // STORAGE_BUCKET, default payment-slips
	StorageBaseURL string // STORAGE_BASE_URL, default /storage

	// CONFLICT_MODE: "permissive" (default) fails the advisory
	// conflict check open on read errors, "strict" surfaces them.
	StrictConflicts bool
}

// Load reads configuration from the environment.  Required variables
// are enforced by must(); missing ones exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"),
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		SignupEnabled: boolOr("REGISTRATION_ENABLED", true),

		UploadMaxBytes: int64(intOr("UPLOAD_MAX_BYTES", 0)),
		StorageDir:     stringOr("STORAGE_DIR", "./data/storage"),
		StorageBucket:  stringOr("STORAGE_BUCKET", "payment-slips"),
		StorageBaseURL: stringOr("STORAGE_BASE_URL", "/storage"),

		StrictConflicts: strings.EqualFold(os.Getenv("CONFLICT_MODE"), "strict"),
	}
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but parses the value as an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func stringOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intOr(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func boolOr(key string, def bool) bool {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	return strings.EqualFold(s, "true") || s == "1"
}

func durOr(key string, def time.Duration) time.Duration {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return def
	}
	return d
}
