package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig is the limit applied to one route. Paths ending in "/" match
// every path below them.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // requests per Window
	Window time.Duration
	Burst  int // bucket capacity; Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds the server's limits from a steady request rate and burst.
// A non-positive rate disables limiting.
func NewConfig(requestsPerSecond float64, burst int) *Config {
	if requestsPerSecond <= 0 {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    max(1, int(requestsPerSecond*60)),
		DefaultWindow:   time.Minute,
		DefaultBurst:    burst,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-route limits. Document generation
// is the expensive path and gets the strictest limits.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		{Path: "/builder/export", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/builder/export/stream", Method: "POST", Limit: 30, Window: time.Hour, Burst: 3},
		{Path: "/builder/preview", Method: "POST", Limit: 120, Window: time.Hour, Burst: 10},

		{Path: "/auth/register", Method: "POST", Limit: 10, Window: time.Hour, Burst: 3},
		{Path: "/auth/login", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},
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
