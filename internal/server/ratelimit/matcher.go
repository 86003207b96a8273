package ratelimit

import (
	"strings"
)

// MatchEndpoint returns the first config whose method and pattern match the request,
// or nil. Exact and wildcard patterns are tried before trailing-slash prefixes, so a
// specific route always beats the catch-all for its subtree.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	for i := range configs {
		cfg := &configs[i]
		if cfg.Method == method && !isPrefixPattern(cfg.Pattern) && matchSegments(cfg.Pattern, path) {
			return cfg
		}
	}

	for i := range configs {
		cfg := &configs[i]
		if cfg.Method == method && isPrefixPattern(cfg.Pattern) && strings.HasPrefix(path, cfg.Pattern) {
			return cfg
		}
	}

	return nil
}

func isPrefixPattern(pattern string) bool {
	return len(pattern) > 1 && strings.HasSuffix(pattern, "/")
}

// matchSegments compares pattern and path segment by segment; "*" matches any one non-empty segment.
func matchSegments(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] == "*" {
			if got[i] == "" {
				return false
			}
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
