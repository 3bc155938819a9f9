package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config содержит конфигурацию сервера калькуляторов
type Config struct {
	MaxPrice         decimal.Decimal
	MaxRate          decimal.Decimal
	MaxYield         decimal.Decimal
	MaxAmount        decimal.Decimal
	MaxUnits         int
	MaxParents       int
	MaxDays          int
	BreedingSchedule string
	OTELEndpoint     string
	OTELServiceName  string
	LogLevel         string
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	// Загружаем .env файл, если он существует (игнорируем ошибку)
	_ = godotenv.Load()

	cfg := &Config{
		MaxPrice:         getEnvDecimal("MAX_PRICE", decimal.NewFromInt(1_000_000)),
		MaxRate:          getEnvDecimal("MAX_RATE", decimal.NewFromInt(1_000_000)),
		MaxYield:         getEnvDecimal("MAX_YIELD", decimal.NewFromInt(100_000_000)),
		MaxAmount:        getEnvDecimal("MAX_AMOUNT", decimal.NewFromInt(1_000_000_000)),
		MaxUnits:         getEnvInt("MAX_UNITS", 10_000),
		MaxParents:       getEnvInt("MAX_PARENTS", 100),
		MaxDays:          getEnvInt("MAX_DAYS", 3650),
		BreedingSchedule: getEnvString("BREEDING_SCHEDULE", "classic"),
		OTELEndpoint:     getEnvString("OTEL_ENDPOINT", ""),
		OTELServiceName:  getEnvString("OTEL_SERVICE_NAME", "mcp-roi-server"),
		LogLevel:         getEnvString("LOG_LEVEL", "INFO"),
	}

	return cfg, nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	if value := os.Getenv(key); value != "" {
		if decValue, err := decimal.NewFromString(value); err == nil {
			return decValue
		}
	}
	return defaultValue
}
