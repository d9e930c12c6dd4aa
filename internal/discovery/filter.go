package discovery

import (
	"path/filepath"
	"strings"
)

// Filter filters test files by name pattern
type Filter struct{}

// NewFilter creates a new Filter
func NewFilter() *Filter {
	return &Filter{}
}

// FilterByName filters test files by a wildcard pattern on the file name.
// Supports patterns like "*user.test.ts" or "*payment*"; a pattern without
// wildcards matches any file name containing it.
func (f *Filter) FilterByName(tests []string, pattern string) []string {
	if pattern == "" {
		return tests
	}

	filtered := []string{}
	for _, test := range tests {
		if matchName(filepath.Base(test), pattern) {
			filtered = append(filtered, test)
		}
	}
	return filtered
}

func matchName(name, pattern string) bool {
	if matched, err := filepath.Match(pattern, name); err == nil && matched {
		return true
	}

	if !strings.ContainsAny(pattern, "*?") {
		return strings.Contains(name, pattern)
	}
	if !strings.Contains(pattern, "*") {
		return false
	}

	// Loose match: every literal segment must appear, in order
	rest := name
	matchedAny := false
	for _, part := range strings.Split(pattern, "*") {
		if part == "" {
			continue
		}
		idx := strings.Index(rest, part)
		if idx < 0 {
			return false
		}
		rest = rest[idx+len(part):]
		matchedAny = true
	}
	return matchedAny
}
