package ratelimit

import (
	"strings"
)

// unlimited marks endpoints that are never limited.
var unlimited = []EndpointConfig{
	{Path: "/health", Method: "GET"},
	// Event streams are long-lived; reconnects must not be throttled.
	{Path: "/sessions/*/events", Method: "GET"},
}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Patterns are matched segment by segment; "*" matches any single segment.
// Returns nil if no pattern matches.
func MatchEndpoint(path, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range unlimited {
		if unlimited[i].Method == method && matchPath(unlimited[i].Path, path) {
			return &EndpointConfig{Path: unlimited[i].Path, Method: method}
		}
	}
	for i := range configs {
		if configs[i].Method == method && matchPath(configs[i].Path, path) {
			return &configs[i]
		}
	}
	return nil
}

func matchPath(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	if len(ps) != len(xs) {
		return false
	}
	for i := range ps {
		if ps[i] != "*" && ps[i] != xs[i] {
			return false
		}
	}
	return true
}
