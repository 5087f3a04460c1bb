package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"REDIS_URL", "RABBITMQ_URL", "HOURLY_RATE", "VAT_RATE", "SESSION_TTL", "HOME_DURATIONS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.RedisURL != "" || cfg.RabbitMQURL != "" {
		t.Fatalf("expected empty broker urls, got %q %q", cfg.RedisURL, cfg.RabbitMQURL)
	}
	if !cfg.HourlyRate.Equal(decimal.NewFromInt(50)) {
		t.Fatalf("expected hourly rate 50, got %s", cfg.HourlyRate)
	}
	if !cfg.VATRate.Equal(decimal.RequireFromString("0.05")) {
		t.Fatalf("expected vat 0.05, got %s", cfg.VATRate)
	}
	if cfg.SessionTTL != 2*time.Hour {
		t.Fatalf("expected 2h ttl, got %s", cfg.SessionTTL)
	}
	if cfg.HomeDurations != nil {
		t.Fatalf("expected nil home durations, got %v", cfg.HomeDurations)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HOURLY_RATE", "62.5")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("OFFICE_DURATIONS", "0-50=2,bad,50-100=x,100-150=4")

	cfg := Load()

	if !cfg.HourlyRate.Equal(decimal.RequireFromString("62.5")) {
		t.Fatalf("expected 62.5, got %s", cfg.HourlyRate)
	}
	if cfg.SessionTTL != 30*time.Minute {
		t.Fatalf("expected 30m, got %s", cfg.SessionTTL)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected two trimmed origins, got %v", cfg.AllowedOrigins)
	}
	if len(cfg.OfficeDurations) != 2 || cfg.OfficeDurations["100-150"] != 4 {
		t.Fatalf("expected two parsed durations, got %v", cfg.OfficeDurations)
	}
}

func TestParseDecimal_RejectsNegative(t *testing.T) {
	if got := parseDecimal("-1", decimal.NewFromInt(7)); !got.Equal(decimal.NewFromInt(7)) {
		t.Fatalf("expected default 7, got %s", got)
	}
}
