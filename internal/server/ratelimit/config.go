package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig overrides the default limit for one endpoint.
type EndpointConfig struct {
	Path   string // exact path, or a prefix when it ends with "/"
	Method string
	RPS    float64 // sustained requests per second; 0 means unlimited
	Burst  int     // defaults to 1 when RPS > 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	RPS             float64
	Burst           int
	CleanupInterval time.Duration
	IdleTTL         time.Duration // limiters unused for this long are dropped
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig returns a Config with the given default rate and the
// built-in endpoint overrides.
func DefaultConfig(enabled bool, rps float64, burst int) *Config {
	return &Config{
		Enabled:         enabled,
		RPS:             rps,
		Burst:           burst,
		CleanupInterval: 5 * time.Minute,
		IdleTTL:         time.Hour,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns stricter limits for expensive endpoints.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// LLM calls
		{Path: "/assist/", Method: "POST", RPS: 0.2, Burst: 3},
		// five PDFs per request
		{Path: "/render/batch", Method: "POST", RPS: 0.5, Burst: 2},
		// headless Chrome
		{Path: "/portfolio", Method: "POST", RPS: 1, Burst: 5},
	}
}

// ParseIPList parses a comma-separated list of IP addresses into a set.
func ParseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
