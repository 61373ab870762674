package core

import "strings"

// CleanString trims all leading and trailing whitespace in `s`.
func CleanString(s string) string {
	return strings.TrimSpace(s)
}

// CleanLower trims and lowercases `s`, for case-insensitive inputs.
func CleanLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
