package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	// Upstream tennis API
	APIBaseURL string
	WSURL      string

	// Optional alternative delta transports
	MQTTBroker string
	AMQPURL    string
	AMQPQueue  string

	// Preference storage (empty disables persistence; the theme preference
	// then falls back to the in-memory default)
	DatabaseURL string

	// Server
	Port string

	// Other
	Environment string
}

func Load() *Config {
	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	return &Config{
		APIBaseURL: getEnv("API_BASE_URL", "http://localhost:8000"),
		WSURL:      getEnv("WS_URL", "ws://localhost:8000/ws"),

		MQTTBroker: getEnv("MQTT_BROKER", ""),
		AMQPURL:    getEnv("AMQP_URL", ""),
		AMQPQueue:  getEnv("AMQP_QUEUE", "match-deltas"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		Port: getEnv("PORT", "8080"),

		Environment: getEnv("ENVIRONMENT", "development"),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
