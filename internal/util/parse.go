package util

import (
	"strconv"
)

// ParseInt parses a string to an integer, returning defaultValue if parsing fails
func ParseInt(s string, defaultValue int) int {
	if val, err := strconv.Atoi(s); err == nil {
		return val
	}
	return defaultValue
}

// ClampLimit bounds a requested page size to [1, max], substituting
// defaultValue when the request is zero or negative
func ClampLimit(requested, defaultValue, max int) int {
	if requested <= 0 {
		requested = defaultValue
	}
	if requested > max {
		return max
	}
	return requested
}
