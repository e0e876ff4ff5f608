package ratelimit

import (
	"strings"
	"time"

	"github.com/ayushk-1801/jobwise/internal/config"
)

// Config holds rate limiting configuration.
type Config struct {
	Enabled           bool
	RequestsPerMinute int
	Burst             int
	CleanupInterval   time.Duration
	// IdleTimeout is how long an unused client bucket is kept.
	IdleTimeout time.Duration
	Whitelist   map[string]bool
}

// DefaultConfig returns the limits used when none are configured.
func DefaultConfig() *Config {
	return &Config{
		Enabled:           true,
		RequestsPerMinute: 30,
		Burst:             5,
		CleanupInterval:   5 * time.Minute,
		IdleTimeout:       10 * time.Minute,
		Whitelist:         map[string]bool{},
	}
}

// FromSettings builds a Config from the application's ratelimit section.
func FromSettings(settings config.RateLimitConfig) *Config {
	cfg := DefaultConfig()
	cfg.Enabled = settings.Enabled
	if settings.RequestsPerMinute > 0 {
		cfg.RequestsPerMinute = settings.RequestsPerMinute
	}
	if settings.Burst > 0 {
		cfg.Burst = settings.Burst
	}
	cfg.Whitelist = parseIPList(settings.Whitelist)
	return cfg
}

func parseIPList(ips []string) map[string]bool {
	result := make(map[string]bool, len(ips))
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
