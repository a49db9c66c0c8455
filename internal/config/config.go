package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrEmptyEnvironmentVariable = errors.New("empty environment variable")

const (
	DefaultRealtimeURL   = "wss://api.openai.com/v1/realtime"
	DefaultRealtimeModel = "gpt-4o-realtime-preview"
	DefaultIdleTimeout   = 300 * time.Second
	DefaultGreetingDelay = time.Second
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Realtime RealtimeConfig
	Twilio   TwilioConfig
	Redis    RedisConfig
	Server   ServerConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// RealtimeConfig holds the model leg settings shared by every call
type RealtimeConfig struct {
	OpenAIAPIKey  string
	URL           string
	DefaultModel  string
	MCPServerURL  string
	IdleTimeout   time.Duration
	GreetingDelay time.Duration
}

// TwilioConfig holds telephony settings. AccountSID and AuthToken are
// optional; without them idle calls are closed but not hung up over REST.
type TwilioConfig struct {
	AccountSID        string
	AuthToken         string
	PublicHost        string
	StreamTokenSecret string
}

// RedisConfig holds the optional presence store settings
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Password string
	DB       int
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	WebAppURI string
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}

	// Database configuration
	var err error
	if cfg.Database, err = databaseFromEnv(); err != nil {
		return nil, err
	}

	// Realtime configuration
	if cfg.Realtime.OpenAIAPIKey, err = requireEnv("OPENAI_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Realtime.URL = getEnvWithDefault("OPENAI_REALTIME_URL", DefaultRealtimeURL)
	cfg.Realtime.DefaultModel = getEnvWithDefault("OPENAI_REALTIME_MODEL", DefaultRealtimeModel)
	cfg.Realtime.MCPServerURL = os.Getenv("MCP_SERVER_URL")

	idleSeconds, err := strconv.Atoi(getEnvWithDefault("IDLE_TIMEOUT_SECONDS", "300"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse IDLE_TIMEOUT_SECONDS: %w", err)
	}
	cfg.Realtime.IdleTimeout = time.Duration(idleSeconds) * time.Second

	greetingMillis, err := strconv.Atoi(getEnvWithDefault("GREETING_DELAY_MS", "1000"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse GREETING_DELAY_MS: %w", err)
	}
	cfg.Realtime.GreetingDelay = time.Duration(greetingMillis) * time.Millisecond

	// Twilio configuration
	if cfg.Twilio.PublicHost, err = requireEnv("PUBLIC_HOST"); err != nil {
		return nil, err
	}
	cfg.Twilio.AccountSID = os.Getenv("TWILIO_ACCOUNT_SID")
	cfg.Twilio.AuthToken = os.Getenv("TWILIO_AUTH_TOKEN")
	cfg.Twilio.StreamTokenSecret = os.Getenv("STREAM_TOKEN_SECRET")

	// Redis configuration
	cfg.Redis.Enabled = getEnvWithDefault("REDIS_ENABLED", "false") == "true"
	if cfg.Redis.Enabled {
		cfg.Redis.Host = getEnvWithDefault("REDIS_HOST", "localhost")
		cfg.Redis.Password = os.Getenv("REDIS_PASSWORD")
		if cfg.Redis.Port, err = strconv.Atoi(getEnvWithDefault("REDIS_PORT", "6379")); err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_PORT: %w", err)
		}
		if cfg.Redis.DB, err = strconv.Atoi(getEnvWithDefault("REDIS_DB", "0")); err != nil {
			return nil, fmt.Errorf("failed to parse REDIS_DB: %w", err)
		}
	}

	// Server configuration
	serverPort, err := requireEnv("SERVER_PORT")
	if err != nil {
		return nil, err
	}
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")

	return cfg, nil
}

// LoadDatabase reads only the database settings. It is used by the operator
// CLI, which does not need the telephony or model configuration.
func LoadDatabase() (DatabaseConfig, error) {
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil {
			return DatabaseConfig{}, fmt.Errorf("failed to load env.local: %w", err)
		}
	}
	return databaseFromEnv()
}

func databaseFromEnv() (DatabaseConfig, error) {
	var db DatabaseConfig
	var err error
	if db.Host, err = requireEnv("DB_HOST"); err != nil {
		return DatabaseConfig{}, err
	}
	if db.Username, err = requireEnv("DB_USERNAME"); err != nil {
		return DatabaseConfig{}, err
	}
	if db.Password, err = requireEnv("DB_PASSWORD"); err != nil {
		return DatabaseConfig{}, err
	}
	if db.Name, err = requireEnv("DB_NAME"); err != nil {
		return DatabaseConfig{}, err
	}
	return db, nil
}

// ConnectionString returns a PostgreSQL connection string with the
// credentials escaped.
func (c *DatabaseConfig) ConnectionString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.Username, c.Password),
		Host:   c.Host,
		Path:   "/" + c.Name,
	}
	return u.String()
}

// HasRESTCredentials reports whether the Twilio REST API can be used.
func (c *TwilioConfig) HasRESTCredentials() bool {
	return c.AccountSID != "" && c.AuthToken != ""
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
