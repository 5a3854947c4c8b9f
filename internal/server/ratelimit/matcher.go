package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig overrides the default rate for one endpoint.
// A Path ending in "/" matches by prefix. Zero RequestsPerSecond means unlimited.
type EndpointConfig struct {
	Path              string
	Method            string
	RequestsPerSecond float64
	Burst             int
}

// DefaultConfig returns the limiter configuration for a default per-client rate.
// A non-positive rps disables limiting.
func DefaultConfig(rps float64, burst int) *Config {
	return &Config{
		Enabled:           rps > 0,
		RequestsPerSecond: rps,
		Burst:             burst,
		CleanupInterval:   5 * time.Minute,
		IdleTTL:           time.Hour,
		Whitelist:         make(map[string]bool),
		Blacklist:         make(map[string]bool),
		EndpointConfigs:   DefaultEndpointConfigs(rps, burst),
	}
}

// DefaultEndpointConfigs scales the default rate down for endpoints that score a whole pool.
func DefaultEndpointConfigs(rps float64, burst int) []EndpointConfig {
	poolRPS, poolBurst := rps/4, max(1, burst/4)
	return []EndpointConfig{
		// Pool scoring and resume parsing
		{Path: "/candidates/", Method: "GET", RequestsPerSecond: poolRPS, Burst: poolBurst},
		{Path: "/jobs/", Method: "GET", RequestsPerSecond: poolRPS, Burst: poolBurst},
		{Path: "/resumes/analyze", Method: "POST", RequestsPerSecond: rps / 2, Burst: max(1, burst/2)},

		// Probes
		{Path: "/health", Method: "GET"},
		{Path: "/metrics", Method: "GET"},
	}
}

// MatchEndpoint returns the configuration for method+path, or nil for the default rate.
// Exact paths win over prefixes.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		config := &configs[i]
		if config.Path == path && config.Method == method {
			return config
		}
	}

	for i := range configs {
		config := &configs[i]
		if config.Method == method && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path) {
			return config
		}
	}
	return nil
}
