package gate

import "strings"

// Matcher lists the paths that never reach the gate: API routes, static and
// image assets, and the favicon.
type Matcher struct {
	ExcludedPrefixes []string
	ExcludedPaths    []string
}

// DefaultMatcher returns the portal exclusion list.
func DefaultMatcher() Matcher {
	return Matcher{
		ExcludedPrefixes: []string{"/api/", "/static/", "/images/"},
		ExcludedPaths:    []string{"/favicon.ico"},
	}
}

// Excluded reports whether path bypasses the gate.
func (m Matcher) Excluded(path string) bool {
	for _, exact := range m.ExcludedPaths {
		if path == exact {
			return true
		}
	}
	for _, prefix := range m.ExcludedPrefixes {
		if prefix != "" && strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}
