package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server       ServerConfig
	API          APIConfig
	Session      SessionConfig
	Redis        RedisConfig
	Database     DatabaseConfig
	Storage      StorageConfig
	Notification NotificationConfig
	Pagination   PaginationConfig
}

// ServerConfig holds companion server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	AllowedOrigins  []string
	ShutdownTimeout int
}

// APIConfig points at the remote SmartSpace REST API
type APIConfig struct {
	BaseURL string
	// Timeout of zero means no client-side timeout.
	Timeout time.Duration
}

// SessionConfig selects where the session token is kept
type SessionConfig struct {
	Store string // "memory" or "redis"
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL string
}

// DatabaseConfig holds database configuration for the notification failure log
type DatabaseConfig struct {
	Enabled     bool
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	SSLMode     string
	MaxConns    int
	MinConns    int
	AutoMigrate bool
}

// StorageConfig holds attachment archive configuration
type StorageConfig struct {
	Type            string // "fs" or "minio"
	Dir             string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// NotificationConfig is read with envconfig from NOTIFY_* variables
type NotificationConfig struct {
	Queue      string        `envconfig:"QUEUE" default:"local"`
	Workers    int           `envconfig:"WORKERS" default:"4"`
	Buffer     int           `envconfig:"BUFFER" default:"256"`
	MaxRetries uint64        `envconfig:"MAX_RETRIES" default:"0"`
	JobTimeout time.Duration `envconfig:"JOB_TIMEOUT" default:"30s"`
	Desktop    bool          `envconfig:"DESKTOP" default:"true"`
	AsynqQueue string        `envconfig:"ASYNQ_QUEUE" default:"notifications"`
}

// PaginationConfig holds list view defaults
type PaginationConfig struct {
	PageSize int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "127.0.0.1"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			AllowedOrigins:  getEnvAsList("ALLOWED_ORIGINS", "http://localhost:3000"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		API: APIConfig{
			BaseURL: strings.TrimRight(getEnv("SMARTSPACE_API_URL", "http://localhost:5000/api"), "/"),
			Timeout: getEnvAsDuration("API_TIMEOUT", "0s"),
		},
		Session: SessionConfig{
			Store: getEnv("SESSION_STORE", "memory"),
		},
		Redis: RedisConfig{
			URL: getEnv("REDIS_URL", ""),
		},
		Database: DatabaseConfig{
			Enabled:     getEnvAsBool("DB_ENABLED", false),
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", "postgres"),
			Name:        getEnv("DB_NAME", "smartspace_client"),
			SSLMode:     getEnv("DB_SSLMODE", "disable"),
			MaxConns:    getEnvAsInt("DB_MAX_CONNS", 5),
			MinConns:    getEnvAsInt("DB_MIN_CONNS", 1),
			AutoMigrate: getEnvAsBool("DB_AUTO_MIGRATE", false),
		},
		Storage: StorageConfig{
			Type:            getEnv("STORAGE_TYPE", "fs"),
			Dir:             getEnv("STORAGE_DIR", "attachments"),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "smartspace-attachments"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		Pagination: PaginationConfig{
			PageSize: getEnvAsInt("PAGE_SIZE", 5),
		},
	}

	if err := envconfig.Process("NOTIFY", &config.Notification); err != nil {
		return nil, fmt.Errorf("failed to read NOTIFY_* settings: %w", err)
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("SMARTSPACE_API_URL is required")
	}
	if c.Session.Store != "memory" && c.Session.Store != "redis" {
		return fmt.Errorf("SESSION_STORE must be memory or redis, got %q", c.Session.Store)
	}
	if c.Session.Store == "redis" && c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required when SESSION_STORE=redis")
	}
	if c.Notification.Queue != "local" && c.Notification.Queue != "asynq" {
		return fmt.Errorf("NOTIFY_QUEUE must be local or asynq, got %q", c.Notification.Queue)
	}
	if c.Notification.Queue == "asynq" && c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required when NOTIFY_QUEUE=asynq")
	}
	if c.Notification.Workers < 1 {
		return fmt.Errorf("NOTIFY_WORKERS must be at least 1")
	}
	if c.Pagination.PageSize < 1 {
		return fmt.Errorf("PAGE_SIZE must be at least 1")
	}
	if c.Storage.Type != "fs" && c.Storage.Type != "minio" {
		return fmt.Errorf("STORAGE_TYPE must be fs or minio, got %q", c.Storage.Type)
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// IsProduction reports whether the server runs in production mode
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}

func getEnvAsList(key, defaultValue string) []string {
	var out []string
	for _, part := range strings.Split(getEnv(key, defaultValue), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
