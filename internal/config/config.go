package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort     string
	DatabaseType   string
	DatabaseURL    string
	DatabasePath   string
	MigrationsPath string
	StaticPath     string

	// Teacher dashboard auth
	JWTSecret        string
	TokenDuration    time.Duration
	TeacherSetupCode string

	// Data retention: sessions inactive for longer than this many days
	// are purged by the background sweep. 0 disables the sweep.
	RetentionDays int

	// Outbound email (progress reports)
	SESRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	AllowedOrigin string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:     getEnv("PORT", "8080"),
		DatabaseType:   getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:    getEnv("DB_URL", ""),
		DatabasePath:   getEnv("DB_PATH", "./wordbuilder.db"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "./migrations"),
		StaticPath:     getEnv("STATIC_PATH", "./static"),

		JWTSecret:        getEnv("JWT_SECRET", "dev-secret-change-me"),
		TokenDuration:    time.Duration(getEnvInt("TOKEN_DURATION_HOURS", 12)) * time.Hour,
		TeacherSetupCode: getEnv("TEACHER_SETUP_CODE", ""),

		RetentionDays: getEnvInt("RETENTION_DAYS", 0),

		SESRegion:    getEnv("SES_REGION", "eu-west-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Word Builder"),
		AppBaseURL:   getEnv("APP_BASE_URL", "http://localhost:8080"),

		AllowedOrigin: getEnv("ALLOWED_ORIGIN", "*"),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
