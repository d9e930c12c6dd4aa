package discovery

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_FilterByName(t *testing.T) {
	filter := NewFilter()
	files := []string{
		"/app/src/user.test.ts",
		"/app/src/payment.test.ts",
		"/app/src/order.spec.js",
		"/app/src/payment-service.test.ts",
	}

	tests := []struct {
		name     string
		pattern  string
		expected []string
	}{
		{
			name:     "empty pattern returns all",
			pattern:  "",
			expected: files,
		},
		{
			name:     "wildcard pattern matches suffix",
			pattern:  "*user.test.ts",
			expected: []string{"/app/src/user.test.ts"},
		},
		{
			name:     "wildcard pattern matches substring",
			pattern:  "*payment*",
			expected: []string{"/app/src/payment.test.ts", "/app/src/payment-service.test.ts"},
		},
		{
			name:     "simple contains match",
			pattern:  "order",
			expected: []string{"/app/src/order.spec.js"},
		},
		{
			name:     "segments must appear in order",
			pattern:  "*service*payment*",
			expected: []string{},
		},
		{
			name:     "no matches",
			pattern:  "*nonexistent*",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, filter.FilterByName(files, tt.pattern))
		})
	}
}

func TestFilter_FilterByName_EmptyList(t *testing.T) {
	result := NewFilter().FilterByName([]string{}, "*.test.ts")
	assert.Empty(t, result)
}
