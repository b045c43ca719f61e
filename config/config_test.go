package config

import (
	"testing"
	"time"
)

func TestLoad_Recurring(t *testing.T) {
	t.Setenv("RECURRING_TIMEZONE", "America/Sao_Paulo")
	t.Setenv("RECURRING_RATE_LIMIT", "3")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, ,kafka-2:9092")

	cfg := Load()

	if cfg.Recurring.RateLimit != 3 {
		t.Errorf("expected rate limit 3, got %d", cfg.Recurring.RateLimit)
	}
	if cfg.Recurring.RateLimitWindow != time.Minute {
		t.Errorf("expected default window 1m, got %s", cfg.Recurring.RateLimitWindow)
	}
	if got := cfg.Recurring.Location().String(); got != "America/Sao_Paulo" {
		t.Errorf("expected America/Sao_Paulo, got %s", got)
	}
	if len(cfg.Kafka.Brokers) != 2 || cfg.Kafka.Brokers[1] != "kafka-2:9092" {
		t.Errorf("unexpected brokers %v", cfg.Kafka.Brokers)
	}
}

func TestRecurringConfig_LocationFallback(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
	}{
		{"empty", ""},
		{"unknown", "Mars/Olympus_Mons"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := RecurringConfig{Timezone: tt.timezone}
			if cfg.Location() != time.UTC {
				t.Errorf("expected UTC fallback for %q", tt.timezone)
			}
		})
	}
}
