package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string
	LogLevel      string

	// REST API маркетплейса
	APIBaseURL string
	APITimeout time.Duration
	APIRetries int

	// Redis для распределённой блокировки отправок (необязательно)
	RedisAddr     string
	RedisPassword string
	InFlightTTL   time.Duration

	WatchInterval time.Duration
	Timezone      string

	// Ограничение частоты апдейтов от одного пользователя
	UserRateLimit float64
	UserRateBurst int
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	return FromEnv()
}

// FromEnv читает конфигурацию из переменных окружения
func FromEnv() (*Config, error) {
	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:         os.Getenv("DB_DSN"),
		Environment:   getEnv("ENV", "development"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		APIBaseURL:    getEnv("API_BASE_URL", "http://localhost:8080/api"),
		APITimeout:    getDuration("API_TIMEOUT", 10*time.Second),
		APIRetries:    getInt("API_RETRIES", 2),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		InFlightTTL:   getDuration("INFLIGHT_TTL", 30*time.Second),
		WatchInterval: getDuration("WATCH_INTERVAL", 2*time.Minute),
		Timezone:      getEnv("TIMEZONE", "America/El_Salvador"),
		UserRateLimit: getFloat("USER_RATE_LIMIT", 2),
		UserRateBurst: getInt("USER_RATE_BURST", 5),
	}

	// Проверяем обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}
	if cfg.APIRetries < 0 {
		return nil, fmt.Errorf("API_RETRIES must not be negative")
	}
	if cfg.APITimeout <= 0 {
		return nil, fmt.Errorf("API_TIMEOUT must be positive, got %s", cfg.APITimeout)
	}
	if cfg.InFlightTTL <= 0 {
		return nil, fmt.Errorf("INFLIGHT_TTL must be positive, got %s", cfg.InFlightTTL)
	}
	if cfg.WatchInterval <= 0 {
		return nil, fmt.Errorf("WATCH_INTERVAL must be positive, got %s", cfg.WatchInterval)
	}
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Location часовой пояс, в котором бот показывает и генерирует слоты
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %s", key, v, fallback)
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using %g", key, v, fallback)
		return fallback
	}
	return f
}
