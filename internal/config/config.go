package config

import (
	"os"
	"strconv"

	"farm_webapp/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogLevel string
	LogJSON  bool

	// Request limits
	APIRateLimit   int
	APIRateWindow  int // seconds
	AuthRateLimit  int
	AuthRateWindow int // seconds

	// Per-user limit on game actions (collect clicks mostly)
	ActionRateLimit  int
	ActionRateWindow int // seconds
}

// Load reads configuration from the environment (.env is honored in dev).
func Load() *Config {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		logger.Fatal("DATABASE_URL is not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Fatal("JWT_SECRET is not set")
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	redisDB := 0
	if v := os.Getenv("REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			redisDB = n
		}
	}

	return &Config{
		AppPort:     port,
		DatabaseURL: dbURL,
		JWTSecret:   jwtSecret,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  os.Getenv("LOG_JSON") == "true",

		APIRateLimit:   getEnvInt("API_RATE_LIMIT", 60),
		APIRateWindow:  getEnvInt("API_RATE_WINDOW_SECONDS", 60),
		AuthRateLimit:  getEnvInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: getEnvInt("AUTH_RATE_WINDOW_SECONDS", 60),

		// Collect is click-driven, so the per-user budget is generous
		ActionRateLimit:  getEnvInt("ACTION_RATE_LIMIT", 300),
		ActionRateWindow: getEnvInt("ACTION_RATE_WINDOW_SECONDS", 60),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return def
}
