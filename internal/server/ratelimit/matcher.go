package ratelimit

import "strings"

// unlimited marks routes that are never limited
var unlimited = &EndpointConfig{Path: "/health", Method: "GET"}

// MatchEndpoint returns the configuration for path and method, preferring an
// exact path over a prefix ("/builder/" matches "/builder/{id}"). It returns
// nil when no configuration applies.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	if path == unlimited.Path && method == unlimited.Method {
		return unlimited
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
