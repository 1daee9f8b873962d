// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the API server and the queue
// consumer. The physical queue URL and bucket name must match what the
// provisioning stack exports.
type Config struct {
	Port   string
	AppEnv string

	// Queue transport (SQS; LocalStack locally, AWS in production)
	QueueURL    string
	QueueName   string
	AWSRegion   string
	AWSEndpoint string // emulator override; empty routes to the live service

	// Object storage (S3-compatible: LocalStack/MinIO locally, S3 in production)
	StorageEndpoint  string
	StorageAccessKey string
	StorageSecretKey string
	StorageBucket    string
	StorageUseSSL    bool

	// Consumer worker pool size
	ConsumerWorkers int
}

// Load reads configuration from a .env file (if present) and environment
// variables. The rest of the code only consumes these values; no resolution
// logic lives anywhere else.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	return &Config{
		Port:   getEnv("PORT", "8080"),
		AppEnv: getEnv("APP_ENV", "development"),

		QueueURL:  getEnv("QUEUE_URL", "http://localhost:4566/000000000000/ancas-message-queue.fifo"),
		QueueName: getEnv("QUEUE_NAME", "ancas-message-queue.fifo"),
		AWSRegion: getEnv("AWS_REGION", "us-east-1"),
		// The emulator is strictly opt-in: unset or empty means the live
		// service and the default credential chain.
		AWSEndpoint: os.Getenv("AWS_ENDPOINT_URL"),

		StorageEndpoint:  getEnv("STORAGE_ENDPOINT", "localhost:4566"),
		StorageAccessKey: getEnv("STORAGE_ACCESS_KEY", "test"),
		StorageSecretKey: getEnv("STORAGE_SECRET_KEY", "test"),
		StorageBucket:    getEnv("STORAGE_BUCKET", "ancas-message-bucket"),
		StorageUseSSL:    getEnv("STORAGE_USE_SSL", "false") == "true",

		ConsumerWorkers: getEnvInt("CONSUMER_WORKERS", 4),
	}
}

// IsProduction returns true when the app is running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
