package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration values
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Token    TokenConfig
	Uploads  UploadsConfig
	Accounts AccountsConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// URL returns the database connection URL
func (c DatabaseConfig) URL() string {
	return "postgres://" + c.User + ":" + c.Password + "@" + c.Host + ":" + strconv.Itoa(c.Port) + "/" + c.DBName + "?sslmode=" + c.SSLMode
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	URL      string
	Password string
}

// SessionConfig holds session configuration. Timeout is absolute: a session
// dies that long after login regardless of activity.
type SessionConfig struct {
	EncryptionKey string
	Timeout       time.Duration
}

// TokenConfig holds API access token configuration
type TokenConfig struct {
	Secret string
	Expiry time.Duration
}

// UploadsConfig holds evidence upload configuration
type UploadsConfig struct {
	Backend  string // "local" or "s3"
	Dir      string
	S3Bucket string
	S3Region string
}

// AccountsConfig holds registration policy configuration
type AccountsConfig struct {
	StudentEmailDomain string
	AdminEmailDomain   string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "hosteldesk"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", "redis://localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Session: SessionConfig{
			EncryptionKey: getEnv("SESSION_ENCRYPTION_KEY", "0000000000000000000000000000000000000000000000000000000000000000"), // 32-bytes hex string
			Timeout:       getEnvAsDuration("SESSION_TIMEOUT", 10*time.Minute),
		},
		Token: TokenConfig{
			Secret: getEnv("TOKEN_SECRET", "change-this-in-production"),
			Expiry: getEnvAsDuration("TOKEN_EXPIRY", 15*time.Minute),
		},
		Uploads: UploadsConfig{
			Backend:  getEnv("UPLOADS_BACKEND", "local"),
			Dir:      getEnv("UPLOADS_DIR", "./uploads"),
			S3Bucket: getEnv("UPLOADS_S3_BUCKET", ""),
			S3Region: getEnv("UPLOADS_S3_REGION", "ap-southeast-1"),
		},
		Accounts: AccountsConfig{
			StudentEmailDomain: getEnv("STUDENT_EMAIL_DOMAIN", "student.usm.my"),
			AdminEmailDomain:   getEnv("ADMIN_EMAIL_DOMAIN", "usm.my"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
