package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	Database DatabaseConfig

	// AI Service
	AI AIConfig

	// Session memory
	Session SessionConfig

	// Nearby facility search
	Places PlacesConfig

	// Admin endpoints
	Admin AdminConfig
}

type DatabaseConfig struct {
	URI      string
	Name     string
	Host     string
	Port     string
	Username string
	Password string

	// Connection pool settings
	MaxConnections int
	MinConnections int
	MaxIdleTime    time.Duration
}

type AIConfig struct {
	GroqAPIKey  string
	GroqBaseURL string
	GroqModel   string
	OllamaURL   string
	OllamaModel string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

type SessionConfig struct {
	StoreType  string // "memory" or "redis"
	TTL        time.Duration
	MaxHistory int // turn pairs kept per session
	RedisAddr  string
	RedisDB    int
}

type PlacesConfig struct {
	DefaultRadius float64 // metres
	MaxResults    int
	Timeout       time.Duration
}

type AdminConfig struct {
	APIKey string
}

var cfg *Config

// Load initializes the configuration
func Load() error {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg = &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),

		Database: DatabaseConfig{
			URI:      getEnv("DATABASE_URL", ""),
			Name:     getEnv("DB_NAME", "sehatmand"),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "27017"),
			Username: getEnv("DB_USERNAME", ""),
			Password: getEnv("DB_PASSWORD", ""),

			MaxConnections: getEnvAsInt("DB_MAX_CONNECTIONS", 100),
			MinConnections: getEnvAsInt("DB_MIN_CONNECTIONS", 10),
			MaxIdleTime:    getEnvAsDuration("DB_MAX_IDLE_TIME", "30m"),
		},

		AI: AIConfig{
			GroqAPIKey:  getEnv("GROQ_API_KEY", ""),
			GroqBaseURL: getEnv("GROQ_BASE_URL", "https://api.groq.com/openai/v1"),
			GroqModel:   getEnv("GROQ_MODEL", "llama-3.1-8b-instant"),
			OllamaURL:   getEnv("OLLAMA_URL", "http://localhost:11434/api/generate"),
			OllamaModel: getEnv("OLLAMA_MODEL", "llama3"),
			MaxTokens:   getEnvAsInt("AI_MAX_TOKENS", 700),
			Temperature: 0.5,
			Timeout:     getEnvAsDuration("AI_TIMEOUT", "30s"),
		},

		Session: SessionConfig{
			StoreType:  getEnv("SESSION_STORE", "memory"),
			TTL:        getEnvAsDuration("SESSION_TTL", "30m"),
			MaxHistory: getEnvAsInt("SESSION_MAX_HISTORY", 10),
			RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
			RedisDB:    getEnvAsInt("REDIS_DB", 0),
		},

		Places: PlacesConfig{
			DefaultRadius: float64(getEnvAsInt("PLACES_DEFAULT_RADIUS", 5000)),
			MaxResults:    getEnvAsInt("PLACES_MAX_RESULTS", 20),
			Timeout:       getEnvAsDuration("PLACES_TIMEOUT", "20s"),
		},

		Admin: AdminConfig{
			APIKey: getEnv("ADMIN_API_KEY", ""),
		},
	}

	if err := validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	return nil
}

// Get returns the loaded configuration
func Get() *Config {
	if cfg == nil {
		log.Fatal("Configuration not loaded. Call Load() first")
	}
	return cfg
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

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}

func validate() error {
	// Most upstreams are allowed to be absent: the chat endpoint degrades to
	// fallback replies instead of refusing to start. Only hard mistakes are
	// rejected here.
	switch cfg.Session.StoreType {
	case "memory", "redis":
	default:
		return fmt.Errorf("unsupported session store: %s", cfg.Session.StoreType)
	}

	if cfg.Session.MaxHistory <= 0 {
		return fmt.Errorf("SESSION_MAX_HISTORY must be positive")
	}

	if cfg.AI.GroqAPIKey == "" {
		log.Println("WARNING: GROQ_API_KEY not set, AI replies will depend on the local Ollama fallback")
	}

	return nil
}

// BuildDatabaseURI constructs the MongoDB URI if not provided
func (c *Config) BuildDatabaseURI() string {
	if c.Database.URI != "" {
		return c.Database.URI
	}

	if c.Database.Username != "" && c.Database.Password != "" {
		return fmt.Sprintf("mongodb://%s:%s@%s:%s/%s",
			c.Database.Username,
			c.Database.Password,
			c.Database.Host,
			c.Database.Port,
			c.Database.Name,
		)
	}
	return fmt.Sprintf("mongodb://%s:%s/%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
	)
}

// AllowedOrigins returns the CORS origins for the frontend.
func (c *Config) AllowedOrigins() []string {
	raw := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	return strings.Split(raw, ",")
}
