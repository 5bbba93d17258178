package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Queue    QueueConfig
	Auth     AuthConfig
	Chat     ChatConfig
	Quota    QuotaConfig
	Reminder ReminderConfig
	Metrics  MetricsConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port            int
	Host            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
	MinConns int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// StorageConfig holds object storage configuration for uploaded images
type StorageConfig struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	UseSSL          bool
	PublicBaseURL   string
}

// QueueConfig holds message queue configuration
type QueueConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Vhost    string
}

// AuthConfig holds session token configuration
type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// ChatConfig holds chat completion configuration
type ChatConfig struct {
	APIKey        string
	Model         string
	StreamBuffer  int
	RequestBurst  int
	RequestPerSec int
}

// QuotaConfig holds daily message quota configuration
type QuotaConfig struct {
	Enforced      bool
	FreeLimit     int
	SignedInLimit int
	IPSalt        string
}

// ReminderConfig holds reminder scanner and delivery configuration
type ReminderConfig struct {
	ScanInterval time.Duration
	WebhookURL   string
	WebhookKey   string
}

// MetricsConfig holds metrics server configuration
type MetricsConfig struct {
	Enabled bool
	Port    int
}

// Load reads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.readTimeout", "30s")
	viper.SetDefault("server.writeTimeout", "30s")
	viper.SetDefault("server.shutdownTimeout", "10s")

	// Database defaults
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "postgres")
	viper.SetDefault("database.dbname", "giftgrug")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.maxConns", 25)
	viper.SetDefault("database.minConns", 5)

	// Redis defaults
	viper.SetDefault("redis.host", "localhost")
	viper.SetDefault("redis.port", 6379)
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)

	// Storage defaults
	viper.SetDefault("storage.endpoint", "localhost:9000")
	viper.SetDefault("storage.accessKeyID", "minioadmin")
	viper.SetDefault("storage.secretAccessKey", "minioadmin")
	viper.SetDefault("storage.bucketName", "grug-images")
	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.useSSL", false)
	viper.SetDefault("storage.publicBaseURL", "")

	// Queue defaults
	viper.SetDefault("queue.host", "localhost")
	viper.SetDefault("queue.port", 5672)
	viper.SetDefault("queue.user", "guest")
	viper.SetDefault("queue.password", "guest")
	viper.SetDefault("queue.vhost", "/")

	// Auth defaults
	viper.SetDefault("auth.jwtSecret", "")
	viper.SetDefault("auth.tokenTTL", "720h")

	// Chat defaults
	viper.SetDefault("chat.apiKey", "")
	viper.SetDefault("chat.model", "gpt-5-mini-2025-08-07")
	viper.SetDefault("chat.streamBuffer", 32)
	viper.SetDefault("chat.requestBurst", 5)
	viper.SetDefault("chat.requestPerSec", 1)

	// Quota defaults
	viper.SetDefault("quota.enforced", true)
	viper.SetDefault("quota.freeLimit", 5)
	viper.SetDefault("quota.signedInLimit", 25)
	viper.SetDefault("quota.ipSalt", "")

	// Reminder defaults
	viper.SetDefault("reminder.scanInterval", "1h")
	viper.SetDefault("reminder.webhookURL", "")
	viper.SetDefault("reminder.webhookKey", "")

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.port", 9090)
}
