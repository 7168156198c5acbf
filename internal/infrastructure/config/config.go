// internal/infrastructure/config/config.go
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// App
	AppVersion string

	// Server
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MongoDB
	MongoURI string
	MongoDB  string

	// PostgreSQL (airline reference data)
	PostgresURI string

	// Pipeline
	RefreshSchedule     string
	DispatchConcurrency int
	ChannelSendTimeout  time.Duration

	// SMS provider
	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string

	// Email provider
	SendgridAPIKey   string
	EmailFromAddress string

	// Push provider
	FCMServerKey string
}

// LoadConfig loads configuration from environment variables. Absence of
// any one provider credential set disables only that channel, never the
// whole pipeline.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "2.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "arrivalive"),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		RefreshSchedule:     getEnv("REFRESH_SCHEDULE", "@every 5m"),
		DispatchConcurrency: getEnvAsInt("DISPATCH_CONCURRENCY", 8),
		ChannelSendTimeout:  time.Duration(getEnvAsInt("CHANNEL_SEND_TIMEOUT", 10)) * time.Second,

		TwilioAccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioFromNumber: getEnv("TWILIO_FROM_NUMBER", ""),

		SendgridAPIKey:   getEnv("SENDGRID_API_KEY", ""),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", "alerts@arrivalive.app"),

		FCMServerKey: getEnv("FCM_SERVER_KEY", ""),
	}

	return config, nil
}

// Helper functions to get environment variables
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
