// Package config loads application configuration from the environment.
package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	localAPIBaseURL    = "http://localhost:8000/api/v1"
	deployedAPIBaseURL = "https://thimarapi.gumra-ai.com/api/v1"
)

// Config holds application configuration
type Config struct {
	// Server
	Port string
	Env  string

	// Backend API
	APIBaseURL string

	// Durable client-side state
	StatePath string

	// Recommendation service
	RecommendURL string
	RecommendKey string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	env := getEnv("ENV", "development")

	config := &Config{
		Port: getEnv("PORT", "3000"),
		Env:  env,

		APIBaseURL: getEnv("API_BASE_URL", defaultAPIBaseURL(env)),

		StatePath: getEnv("STATE_PATH", "thimar.db"),

		RecommendURL: getEnv("RECOMMEND_URL", ""),
		RecommendKey: getEnv("RECOMMEND_API_KEY", ""),
	}

	return config, nil
}

// defaultAPIBaseURL picks the local backend for development environments and
// the deployed backend otherwise.
func defaultAPIBaseURL(env string) string {
	if isLocalEnv(env) {
		return localAPIBaseURL
	}
	return deployedAPIBaseURL
}

func isLocalEnv(env string) bool {
	switch strings.ToLower(env) {
	case "development", "dev", "local", "test":
		return true
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
