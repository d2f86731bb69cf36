package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	CORSOrigins []string
	// Auth Configuration
	SecretKey                string
	AccessTokenExpireMinutes int
	// Upload Configuration
	UploadDir         string
	MaxUploadSize     int64
	AllowedExtensions []string
	// AI Classification Configuration
	AIBaseURL        string
	AIModel          string
	AITimeoutSeconds int
	// Redis Configuration
	RedisURL      string
	RedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitLoginThreshold  int
	RateLimitGlobalThreshold int
	// Logging
	LogLevel string
}

func LoadConfig() (*Config, error) {
	// Load .env file (effective locally, ignored in production if the file is absent)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// Auth Configuration
		SecretKey:                getEnv("SECRET_KEY", ""),
		AccessTokenExpireMinutes: getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 1440),
		// Upload Configuration
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		MaxUploadSize:     int64(getEnvInt("MAX_UPLOAD_SIZE", 5*1024*1024)),
		AllowedExtensions: []string{".pdf", ".doc", ".docx"},
		// AI Classification Configuration
		AIBaseURL:        getEnv("AI_BASE_URL", ""),
		AIModel:          getEnv("AI_MODEL", "llama3.2"),
		AITimeoutSeconds: getEnvInt("AI_TIMEOUT_SECONDS", 30),
		// Redis Configuration
		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitLoginThreshold:  getEnvInt("RATE_LIMIT_LOGIN_THRESHOLD", 10),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Logging
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	// CORS origins: comma-separated list, falling back to the frontend URL
	if origins := getEnv("CORS_ORIGINS", ""); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	} else {
		cfg.CORSOrigins = []string{cfg.FrontendURL}
	}

	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.SecretKey == "" {
		log.Println("WARNING: SECRET_KEY is missing. Issued tokens will not survive restarts.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}
	if cfg.AIBaseURL == "" {
		log.Println("WARNING: AI_BASE_URL not configured. JD classification will be unavailable.")
	}

	return cfg, nil
}

// TokenTTL returns the configured access token lifetime.
func (c *Config) TokenTTL() time.Duration {
	return time.Duration(c.AccessTokenExpireMinutes) * time.Minute
}

// AITimeout returns the configured AI request timeout.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AITimeoutSeconds) * time.Second
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
