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

	// Airport
	AirportCode string
	AirportCity string

	// Provider
	GeminiModel  string
	SyncInterval time.Duration

	// MongoDB (optional, notification journal)
	MongoURI      string
	MongoDB       string
	MongoUser     string
	MongoPassword string

	// PostgreSQL (optional, airline reference data)
	PostgresURI string

	// Push notifications (optional)
	NotifyEndpoint string
	NotifyToken    string
}

// LoadConfig loads configuration from environment variables.
// GEMINI_API_KEY is intentionally absent here: the provider reads it from
// the environment when the first request is built, so a missing key shows
// up as a fetch-time configuration error instead of a startup crash.
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	// Set defaults and override with env vars
	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		AirportCode: getEnv("AIRPORT_CODE", "KEJ"),
		AirportCity: getEnv("AIRPORT_CITY", "Кемерово"),

		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		SyncInterval: time.Duration(getEnvAsInt("SYNC_INTERVAL", 60)) * time.Second,

		MongoURI:      getEnv("MONGODB_DSN", ""),
		MongoDB:       getEnv("MONGO_DB", "arrivals"),
		MongoUser:     getEnv("MONGO_USER", ""),
		MongoPassword: getEnv("MONGO_PASSWORD", ""),

		PostgresURI: getEnv("POSTGRES_DSN", ""),

		NotifyEndpoint: getEnv("NOTIFY_ENDPOINT", ""),
		NotifyToken:    getEnv("NOTIFY_TOKEN", ""),
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
