package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
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

	// Auth
	AuthPassword string
	AuthToken    string

	// Exhibitions is the fixed set of ticket partitions. Every request
	// must name one of these; each maps to its own collection.
	Exhibitions []string

	// CORS
	CORSOrigin string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		AppVersion:   getEnv("APP_VERSION", "1.0.0"),
		Port:         getEnv("PORT", "8080"),
		ReadTimeout:  time.Duration(getEnvAsInt("READ_TIMEOUT", 30)) * time.Second,
		WriteTimeout: time.Duration(getEnvAsInt("WRITE_TIMEOUT", 30)) * time.Second,

		MongoURI: getEnv("MONGODB_DSN", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "boxoffice"),

		AuthPassword: getEnv("AUTH_PASSWORD", ""),
		AuthToken:    getEnv("AUTH_TOKEN", ""),

		Exhibitions: splitList(getEnv("EXHIBITIONS", "japan,chagall")),

		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
	}

	if config.AuthPassword == "" {
		return nil, fmt.Errorf("AUTH_PASSWORD must be set")
	}
	if config.AuthToken == "" {
		return nil, fmt.Errorf("AUTH_TOKEN must be set")
	}
	if len(config.Exhibitions) == 0 {
		return nil, fmt.Errorf("EXHIBITIONS must name at least one exhibition")
	}

	return config, nil
}

// KnownExhibition reports whether name belongs to the configured set
func (c *Config) KnownExhibition(name string) bool {
	for _, exhibition := range c.Exhibitions {
		if exhibition == name {
			return true
		}
	}
	return false
}

func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
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
