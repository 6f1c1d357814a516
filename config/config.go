package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	MaxPrice int
	Debug    bool

	CacheDir     string
	CacheBackend string
	RedisURL     string
	OutputDir    string

	Fetcher     string
	UserAgent   string
	RateLimitMs int
	MaxRetries  int
	ChromeBin   string

	PostgresEnabled  bool
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	MetricsPort string
	SEKToEUR    float64
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	return &Config{
		MaxPrice: getEnvInt("MAX_PRICE", 500000),
		Debug:    getEnvBool("DEBUG", false),

		CacheDir:     getEnv("CACHE_DIR", "."),
		CacheBackend: getEnv("CACHE_BACKEND", "file"),
		RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379/0"),
		OutputDir:    getEnv("OUTPUT_DIR", "."),

		Fetcher: getEnv("FETCHER", "http"),
		UserAgent: getEnv("USER_AGENT", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 "+
			"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		RateLimitMs: getEnvInt("RATE_LIMIT_MS", 0),
		MaxRetries:  getEnvInt("MAX_RETRIES", 3),
		ChromeBin:   getEnv("CHROME_BIN", ""),

		PostgresEnabled:  getEnvBool("POSTGRES_ENABLED", false),
		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "scraper"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "scraper123"),
		PostgresDB:       getEnv("POSTGRES_DB", "boats"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		MetricsPort: getEnv("METRICS_PORT", ""),
		SEKToEUR:    getEnvFloat("SEK_EUR_RATE", 0.088),
	}
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		f, err := strconv.ParseFloat(val, 64)
		if err == nil {
			return f
		}
	}
	return fallback
}
