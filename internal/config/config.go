package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/tidyhome/tidyhome-api/internal/domain/pricing"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Redis; empty keeps booking sessions in memory
	RedisURL   string
	SessionTTL time.Duration

	// RabbitMQ; empty logs events instead of publishing them
	RabbitMQURL string

	// CORS
	AllowedOrigins []string

	// Pricing
	HourlyRate  decimal.Decimal
	IroningRate decimal.Decimal
	VATRate     decimal.Decimal

	// Suggested hours per size code; nil keeps the built-in tables
	HomeDurations   map[string]int
	OfficeDurations map[string]int

	// Logging
	LogLevel string
}

func Load() *Config {
	// Load .env file in development
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Redis
		RedisURL:   getEnv("REDIS_URL", ""),
		SessionTTL: parseDuration(getEnv("SESSION_TTL", "2h"), 2*time.Hour),

		// RabbitMQ
		RabbitMQURL: getEnv("RABBITMQ_URL", ""),

		// CORS
		AllowedOrigins: parseStringSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		// Pricing
		HourlyRate:  parseDecimal(getEnv("HOURLY_RATE", pricing.DefaultHourlyRate), pricing.DefaultRates().Hourly),
		IroningRate: parseDecimal(getEnv("IRONING_RATE", pricing.DefaultIroningRate), pricing.DefaultRates().Ironing),
		VATRate:     parseDecimal(getEnv("VAT_RATE", pricing.DefaultVATRate), pricing.DefaultRates().VAT),

		// Durations, e.g. "studio=2,1br=2,2br=3"
		HomeDurations:   parseIntMap(getEnv("HOME_DURATIONS", "")),
		OfficeDurations: parseIntMap(getEnv("OFFICE_DURATIONS", "")),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return defaultValue
	}
	return d
}

func parseDecimal(s string, defaultValue decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil || d.IsNegative() {
		return defaultValue
	}
	return d
}

// parseIntMap reads "key=value" pairs; malformed pairs are skipped.
func parseIntMap(s string) map[string]int {
	if s == "" {
		return nil
	}

	result := make(map[string]int)
	for _, pair := range parseStringSlice(s) {
		key, raw, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		value, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || value < 1 {
			continue
		}
		result[strings.TrimSpace(key)] = value
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

func parseStringSlice(s string) []string {
	if s == "" {
		return []string{}
	}

	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

// Rates returns the configured pricing rates.
func (c *Config) Rates() pricing.Rates {
	return pricing.Rates{Hourly: c.HourlyRate, Ironing: c.IroningRate, VAT: c.VATRate}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
