package config

import (
	"os"
	"strconv"
	"time"

	"points_platform/internal/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	AppPort     string
	DatabaseURL string
	JWTSecret   string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Origin allowed to open websocket connections; empty allows all
	AllowedOrigin string

	// Chat policy
	ChatHistoryLimit int
	ChatMaxLength    int

	// Rain policy
	RainMaxAmount float64

	// Moderation policy
	TimeoutDefaultMinutes int
	TimeoutMaxMinutes     int

	// Rate limits
	APIRateLimit   int
	APIRateWindow  time.Duration
	ChatRateLimit  int
	ChatRateWindow time.Duration

	LogLevel string
	LogJSON  bool
	DevMode  bool
}

// Load reads configuration from env, with code defaults for everything
// except the database URL and the JWT secret.
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

	historyLimit := 20
	if v := os.Getenv("CHAT_HISTORY_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			historyLimit = n
		}
	}

	maxLength := 230
	if v := os.Getenv("CHAT_MAX_LENGTH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			maxLength = n
		}
	}

	rainMax := float64(5000)
	if v := os.Getenv("RAIN_MAX_AMOUNT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			rainMax = f
		}
	}

	apiRateLimit := 60
	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateLimit = n
		}
	}

	apiRateWindow := time.Minute
	if v := os.Getenv("API_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			apiRateWindow = time.Duration(n) * time.Second
		}
	}

	chatRateLimit := 10
	if v := os.Getenv("CHAT_RATE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			chatRateLimit = n
		}
	}

	chatRateWindow := 30 * time.Second
	if v := os.Getenv("CHAT_RATE_WINDOW_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			chatRateWindow = time.Duration(n) * time.Second
		}
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		AppPort:               port,
		DatabaseURL:           dbURL,
		JWTSecret:             jwtSecret,
		RedisAddr:             os.Getenv("REDIS_ADDR"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		RedisDB:               redisDB,
		AllowedOrigin:         os.Getenv("ALLOWED_ORIGIN"),
		ChatHistoryLimit:      historyLimit,
		ChatMaxLength:         maxLength,
		RainMaxAmount:         rainMax,
		TimeoutDefaultMinutes: 60,
		TimeoutMaxMinutes:     1440,
		APIRateLimit:          apiRateLimit,
		APIRateWindow:         apiRateWindow,
		ChatRateLimit:         chatRateLimit,
		ChatRateWindow:        chatRateWindow,
		LogLevel:              logLevel,
		LogJSON:               os.Getenv("LOG_JSON") == "true",
		DevMode:               os.Getenv("DEV_MODE") == "true",
	}
}
