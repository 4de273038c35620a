// Package config loads application configuration from environment
// variables.
package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// Config holds the settings shared by the server and worker binaries.
type Config struct {
	Env  string
	Port string

	RedisAddr     string
	RedisPassword string

	JWTSecret     string
	SessionSecret string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleCallbackURL  string

	MailWebhookURL    string
	MailWebhookSecret string
}

// Load reads configuration from the environment, after loading a .env
// file when one is present.
func Load() *Config {
	// Missing .env is fine; production sets real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		Env:                getEnvWithDefault("ENV", "development"),
		Port:               getEnvWithDefault("PORT", "8080"),
		RedisAddr:          getEnvWithDefault("REDIS_HOST", "localhost") + ":" + getEnvWithDefault("REDIS_PORT", "6379"),
		RedisPassword:      os.Getenv("REDIS_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleCallbackURL:  os.Getenv("GOOGLE_CALLBACK_URL"),
		MailWebhookURL:     os.Getenv("MAIL_WEBHOOK_URL"),
		MailWebhookSecret:  os.Getenv("MAIL_WEBHOOK_SECRET"),
	}

	if cfg.SessionSecret == "" {
		cfg.SessionSecret = "dev-secret-change-in-production"
		slog.Warn("SESSION_SECRET not set, using development default")
	}

	return cfg
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
