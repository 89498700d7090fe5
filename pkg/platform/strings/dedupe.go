// Package strings provides string manipulation utilities.
package strings

import (
	"strings"
)

// DedupeAndTrim removes duplicates and empty strings from a slice,
// trimming whitespace from each element. Order is preserved.
//
// Example:
//
//	DedupeAndTrim([]string{"  foo ", "bar", "foo", "", "  "})
//	// Returns: []string{"foo", "bar"}
func DedupeAndTrim(values []string) []string {
	if len(values) == 0 {
		return values
	}

	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed == "" {
			continue
		}
		if _, ok := seen[trimmed]; !ok {
			seen[trimmed] = struct{}{}
			result = append(result, trimmed)
		}
	}

	return result
}

// Subtract returns the elements of values not present in exclude, preserving
// order. Used for set differences over service id lists.
func Subtract(values, exclude []string) []string {
	if len(values) == 0 {
		return values
	}

	excluded := make(map[string]struct{}, len(exclude))
	for _, v := range exclude {
		excluded[v] = struct{}{}
	}

	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := excluded[v]; !ok {
			result = append(result, v)
		}
	}
	return result
}

// Contains reports whether values carries v.
func Contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
