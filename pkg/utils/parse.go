package utils

import "strconv"

// ParseInt parses a query parameter, falling back when absent or malformed.
func ParseInt(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}
