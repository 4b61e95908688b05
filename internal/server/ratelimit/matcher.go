package ratelimit

import (
	"strings"
)

// MatchEndpoint resolves the budget for a request path and method.
// Exact matches win; paths ending in "/" match as prefixes. Returns nil
// when no specific budget applies (caller falls back to the default).
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	// Liveness probes must never be throttled.
	if path == "/health" && method == "GET" {
		return &EndpointConfig{Limit: 0}
	}

	for i := range configs {
		ec := &configs[i]
		if ec.Path == path && ec.Method == method {
			return ec
		}
	}

	for i := range configs {
		ec := &configs[i]
		if ec.Method == method && strings.HasSuffix(ec.Path, "/") && strings.HasPrefix(path, ec.Path) {
			return ec
		}
	}

	return nil
}
