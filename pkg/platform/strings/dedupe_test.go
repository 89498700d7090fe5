package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupeAndTrim(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "trims whitespace",
			input:    []string{"  #svc-1  ", "#svc-2  "},
			expected: []string{"#svc-1", "#svc-2"},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"#a", "#b", "#a", "#c", "#b"},
			expected: []string{"#a", "#b", "#c"},
		},
		{
			name:     "removes empty strings",
			input:    []string{"#a", "", "  ", "#b"},
			expected: []string{"#a", "#b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DedupeAndTrim(tt.input))
		})
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		exclude  []string
		expected []string
	}{
		{
			name:     "nil values",
			values:   nil,
			exclude:  []string{"#a"},
			expected: nil,
		},
		{
			name:     "removes excluded preserving order",
			values:   []string{"#a", "#b", "#c"},
			exclude:  []string{"#b"},
			expected: []string{"#a", "#c"},
		},
		{
			name:     "empty exclude keeps everything",
			values:   []string{"#a", "#b"},
			exclude:  nil,
			expected: []string{"#a", "#b"},
		},
		{
			name:     "full overlap yields empty",
			values:   []string{"#a", "#b"},
			exclude:  []string{"#a", "#b"},
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Subtract(tt.values, tt.exclude))
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, Contains([]string{"#a", "#b"}, "#b"))
	assert.False(t, Contains([]string{"#a", "#b"}, "#c"))
	assert.False(t, Contains(nil, "#a"))
}
