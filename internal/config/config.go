package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config настройки консоли, собранные из переменных окружения
type Config struct {
	Port    string
	GinMode string

	LogLevel      string
	LogFormat     string
	LogFile       string
	LogMaxAgeDays int

	APIBaseURL string
	APITimeout time.Duration

	RedisEnabled  bool
	RedisHost     string
	RedisPort     string
	RedisPassword string
	FlashTTL      time.Duration

	SessionSecret string
	SessionTTL    time.Duration

	AllowOrigins []string
}

// Load читает .env (если есть) и переменные окружения
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Debug("Файл .env не найден, используем переменные окружения")
	}

	return Config{
		Port:    getEnv("PORT", "8080"),
		GinMode: getEnv("GIN_MODE", ""),

		LogLevel:      strings.ToUpper(getEnv("LOG_LEVEL", "INFO")),
		LogFormat:     getEnv("LOG_FORMAT", "text"),
		LogFile:       getEnv("LOG_FILE", ""),
		LogMaxAgeDays: getInt("LOG_MAX_AGE_DAYS", 7),

		APIBaseURL: strings.TrimRight(getEnv("FLEET_API_URL", "http://localhost:8000"), "/"),
		APITimeout: time.Duration(getInt("FLEET_API_TIMEOUT_SECONDS", 10)) * time.Second,

		RedisEnabled:  getEnv("REDIS_ENABLED", "false") == "true",
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		FlashTTL:      time.Duration(getInt("FLASH_TTL_SECONDS", 60)) * time.Second,

		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    time.Duration(getInt("SESSION_TTL_HOURS", 24)) * time.Hour,

		AllowOrigins: splitList(getEnv("CORS_ALLOW_ORIGINS", "*")),
	}
}

// GetLogLevel переводит строковый уровень логирования в уровень logrus
func (c Config) GetLogLevel() log.Level {
	switch c.LogLevel {
	case "DEBUG":
		return log.DebugLevel
	case "INFO":
		return log.InfoLevel
	case "WARN":
		return log.WarnLevel
	case "ERROR":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if val, err := strconv.Atoi(os.Getenv(key)); err == nil && val > 0 {
		return val
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
