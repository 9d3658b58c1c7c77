package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	Port    string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Identity provider (external: issues bearer tokens and lifecycle webhooks)
	JWTSecret             string
	IdentityIssuer        string
	IdentityWebhookSecret string

	// Observability (optional)
	SentryDSN string

	// Storage (S3-compatible: MinIO, AWS S3, Cloudflare R2, DigitalOcean Spaces, etc.)
	S3Region                string
	S3Bucket                string
	S3AccessKey             string
	S3SecretKey             string
	S3Endpoint              string        // Optional: for S3-compatible services
	S3PresignExpiryUpload   time.Duration // How long an issued upload target stays writable
	S3PresignExpiryDownload time.Duration // How long an issued download URL stays readable
}

func Load() *Config {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg := &Config{
		// Application
		AppName: envString("APP_NAME", "FilePlace"),
		AppEnv:  envRequired("APP_ENV"), // Required: 'development' or 'production'
		Port:    envString("PORT", "8090"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/fileplace.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Identity provider
		JWTSecret:             envRequired("JWT_SECRET"),
		IdentityIssuer:        envRequired("IDENTITY_ISSUER"), // e.g. https://clerk.example.com
		IdentityWebhookSecret: envString("IDENTITY_WEBHOOK_SECRET", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		// Storage (S3-compatible - required, holds all file bytes)
		S3Region:                envRequired("S3_REGION"),
		S3Bucket:                envRequired("S3_BUCKET"),
		S3AccessKey:             envRequired("S3_ACCESS_KEY"),
		S3SecretKey:             envRequired("S3_SECRET_KEY"),
		S3Endpoint:              envString("S3_ENDPOINT", ""), // Optional: for non-AWS providers
		S3PresignExpiryUpload:   envDuration("S3_PRESIGN_EXPIRY_UPLOAD", 15*time.Minute),
		S3PresignExpiryDownload: envDuration("S3_PRESIGN_EXPIRY_DOWNLOAD", 1*time.Hour),
	}

	// Production: validate required services
	if cfg.IsProduction() {
		validateProduction(cfg)
	}

	return cfg
}

// validateProduction ensures all required services are configured for production
// deployments. Development allows webhook signature verification to be skipped
// for easier local testing.
func validateProduction(cfg *Config) {
	if cfg.IdentityWebhookSecret == "" {
		slog.Error("production deployment requires IDENTITY_WEBHOOK_SECRET",
			"hint", "set APP_ENV=development for local testing with unsigned webhooks")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
