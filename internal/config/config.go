package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Logging
	LogLevel  string
	LogFormat string // "json" or "console"

	// OpenAI
	OpenAIAPIKey  string
	OpenAIBaseURL string
	DefaultModel  string // env: DEFAULT_MODEL, default: "gpt-5-nano"
	InsightModel  string // env: INSIGHT_MODEL, default: "gpt-4.1"
	LLMTimeout    time.Duration

	// Naver Search Ad
	NaverAPIKey     string
	NaverSecretKey  string
	NaverCustomerID string
	NaverBaseURL    string

	// Classifier
	BatchSize            int
	MaxRetries           int
	RetryBaseDelay       time.Duration
	MaxConcurrentBatches int // 0 means no limit

	// Optional backing services
	DatabaseURL   string // outcome counters; empty disables
	RedisURL      string // stats cache and limiter storage; empty disables
	StatsCacheTTL time.Duration

	// Rate limiting
	RateLimitMax int // requests per minute per IP

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "Keyword Journey"

	// Assets
	ViewsDir  string
	StaticDir string

	// YAML overlay
	YAML *YAMLConfig
}

// LoadDotEnv loads a .env file from the working directory if present.
// Variables already set in the environment win.
func LoadDotEnv(paths ...string) bool {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := godotenv.Load(path); err == nil {
			return true
		}
	}
	return false
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:        getEnv("ENV", "development"),
		ServerAddr: getEnv("SERVER_ADDR", ":3000"),
		BaseURL:    getEnv("BASE_URL", "http://localhost:3000"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),
		LogFormat:  getEnv("LOG_FORMAT", "console"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		DefaultModel:  getEnv("DEFAULT_MODEL", "gpt-5-nano"),
		InsightModel:  getEnv("INSIGHT_MODEL", "gpt-4.1"),
		LLMTimeout:    getDuration("LLM_TIMEOUT", 120*time.Second),

		NaverAPIKey:     getEnv("NAVER_API_KEY", ""),
		NaverSecretKey:  getEnv("NAVER_SECRET_KEY", ""),
		NaverCustomerID: getEnv("NAVER_CUSTOMER_ID", ""),
		NaverBaseURL:    getEnv("NAVER_BASE_URL", "https://api.searchad.naver.com"),

		BatchSize:            getInt("BATCH_SIZE", 50),
		MaxRetries:           getInt("MAX_RETRIES", 2),
		RetryBaseDelay:       getDuration("RETRY_BASE_DELAY", time.Second),
		MaxConcurrentBatches: getInt("MAX_CONCURRENT_BATCHES", 0),

		DatabaseURL:   getEnv("DATABASE_URL", ""),
		RedisURL:      getEnv("REDIS_URL", ""),
		StatsCacheTTL: getDuration("STATS_CACHE_TTL", time.Hour),

		RateLimitMax: getInt("RATE_LIMIT_MAX", 100),
		CORSOrigins:  getEnv("CORS_ORIGINS", ""),

		SiteTitle: getEnv("SITE_TITLE", "Keyword Journey"),

		ViewsDir:  getEnv("VIEWS_DIR", "./views"),
		StaticDir: getEnv("STATIC_DIR", "./static"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// HasOpenAI reports whether an OpenAI key is configured.
func (c *Config) HasOpenAI() bool {
	return c.OpenAIAPIKey != ""
}

// HasNaver reports whether all three Search Ad credentials are configured.
func (c *Config) HasNaver() bool {
	return c.NaverAPIKey != "" && c.NaverSecretKey != "" && c.NaverCustomerID != ""
}
