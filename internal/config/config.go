package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config содержит все настройки приложения
type Config struct {
	// Server
	Port string
	Host string

	// Database
	DatabaseURL string // PostgreSQL DSN; пусто — локальный SQLite
	SQLitePath  string

	// Redis (пустой адрес — кэширование отключено)
	RedisAddr string

	// Security
	JWTSecret     string
	JWTExpiration time.Duration

	// Отчеты
	ReportCacheTTL       time.Duration
	AbsenceDaysThreshold int // порог длительного отсутствия по умолчанию, дни
}

// Load загружает конфигурацию из переменных окружения
func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	config := &Config{
		Port:           getEnv("PORT", "8080"),
		Host:           getEnv("HOST", "0.0.0.0"),
		DatabaseURL:    getEnv("DB_URL", ""),
		SQLitePath:     getEnv("SQLITE_PATH", "/tmp/attendance.db"),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		JWTSecret:      getEnv("JWT_SECRET", "attendance_secret_key"),
		JWTExpiration:  24 * time.Hour,
		ReportCacheTTL: 5 * time.Minute,
	}

	if days, err := strconv.Atoi(getEnv("ABSENCE_DAYS_THRESHOLD", "14")); err == nil && days > 0 {
		config.AbsenceDaysThreshold = days
	} else {
		config.AbsenceDaysThreshold = 14
	}

	return config, nil
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
