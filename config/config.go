package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	ServerPort string
	ServerHost string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis configuration
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string

	// JWT configuration
	JWTSecret string

	// Day exports
	ExportBucket string
	AWSRegion    string

	// Nutrition estimator
	EstimatorURL       string
	EstimatorAPIKey    string
	EstimatorModel     string
	EstimateRateLimit  int // requests per hour and user
	FastingTickSeconds int

	// Logging
	LogLevel string
	LogFile  string

	// Allowed browser origins
	CORSOrigins []string
}

// LoadConfig creates a new Config instance with values from environment variables or secrets
func LoadConfig() (*Config, error) {
	// A local .env is optional; real environment variables win.
	_ = godotenv.Load()

	env := GetEnvironment()
	cfg := &Config{}

	switch env {
	case CI:
		loadCIConfig(cfg)
	case Development, Test:
		loadDevConfig(cfg)
	case Production:
		loadProdConfig(cfg)
	default:
		return nil, fmt.Errorf("unknown environment: %s", env)
	}
	loadCommon(cfg)

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// loadCIConfig reads everything from environment variables.
func loadCIConfig(cfg *Config) {
	cfg.ServerPort = os.Getenv("SERVER_PORT")
	cfg.ServerHost = os.Getenv("SERVER_HOST")
	cfg.DBHost = os.Getenv("DB_HOST")
	cfg.DBPort = os.Getenv("DB_PORT")
	cfg.DBUser = os.Getenv("DB_USER")
	cfg.DBName = os.Getenv("DB_NAME")
	cfg.DBSSLMode = os.Getenv("DB_SSL_MODE")
	cfg.RedisHost = os.Getenv("REDIS_HOST")
	cfg.RedisPort = os.Getenv("REDIS_PORT")

	cfg.DBPassword = os.Getenv("DB_PASSWORD")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	cfg.RedisURL = os.Getenv("REDIS_URL")
	cfg.EstimatorAPIKey = os.Getenv("ESTIMATOR_API_KEY")
}

// loadDevConfig prefers environment variables and falls back to Docker
// secrets for anything unset.
func loadDevConfig(cfg *Config) {
	cfg.ServerPort = envOrSecret("SERVER_PORT", "server_port")
	cfg.ServerHost = envOrSecret("SERVER_HOST", "server_host")
	cfg.DBHost = envOrSecret("DB_HOST", "db_host")
	cfg.DBPort = envOrSecret("DB_PORT", "db_port")
	cfg.DBUser = envOrSecret("DB_USER", "db_user")
	cfg.DBPassword = envOrSecret("DB_PASSWORD", "db_password")
	cfg.DBName = envOrSecret("DB_NAME", "db_name")
	cfg.DBSSLMode = envOrSecret("DB_SSL_MODE", "db_ssl_mode")
	cfg.RedisHost = envOrSecret("REDIS_HOST", "redis_host")
	cfg.RedisPort = envOrSecret("REDIS_PORT", "redis_port")
	cfg.RedisPassword = envOrSecret("REDIS_PASSWORD", "redis_password")
	cfg.RedisURL = envOrSecret("REDIS_URL", "redis_url")
	cfg.JWTSecret = envOrSecret("JWT_SECRET", "jwt_secret")
	cfg.EstimatorAPIKey = envOrSecret("ESTIMATOR_API_KEY", "estimator_api_key")
}

// loadProdConfig loads configuration for production environment using ONLY Docker secrets
func loadProdConfig(cfg *Config) {
	cfg.ServerPort = readSecret("server_port")
	cfg.ServerHost = readSecret("server_host")
	cfg.DBHost = readSecret("db_host")
	cfg.DBPort = readSecret("db_port")
	cfg.DBUser = readSecret("db_user")
	cfg.DBPassword = readSecret("db_password")
	cfg.DBName = readSecret("db_name")
	cfg.DBSSLMode = readSecret("db_ssl_mode")
	cfg.RedisHost = readSecret("redis_host")
	cfg.RedisPort = readSecret("redis_port")
	cfg.RedisPassword = readSecret("redis_password")
	cfg.JWTSecret = readSecret("jwt_secret")
	cfg.RedisURL = readSecret("redis_url")
	cfg.EstimatorAPIKey = readSecret("estimator_api_key")
}

// loadCommon fills the non-secret settings shared by every environment.
func loadCommon(cfg *Config) {
	cfg.RedisDB = 0
	cfg.ExportBucket = os.Getenv("EXPORT_BUCKET")
	cfg.AWSRegion = getEnv("AWS_REGION", "us-east-1")
	cfg.EstimatorURL = getEnv("ESTIMATOR_URL", "https://api.openai.com/v1/chat/completions")
	cfg.EstimatorModel = getEnv("ESTIMATOR_MODEL", "gpt-4o-mini")
	cfg.EstimateRateLimit = getEnvInt("ESTIMATE_RATE_LIMIT", 10)
	cfg.FastingTickSeconds = getEnvInt("FASTING_TICK_SECONDS", 1)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFile = os.Getenv("LOG_FILE")
	cfg.CORSOrigins = splitList(os.Getenv("CORS_ORIGINS"))
	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.DBSSLMode == "" {
		cfg.DBSSLMode = "disable"
	}
}

// DSN returns the lib/pq connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	secretPath := filepath.Join(secretsDir, name)
	if data, err := os.ReadFile(secretPath); err == nil {
		return strings.TrimSpace(string(data))
	}
	return ""
}

func envOrSecret(key, secret string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return readSecret(secret)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
