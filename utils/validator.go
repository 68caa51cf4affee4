// utils/validator.go - Input validation
package utils

import (
	"strings"
)

// HasEmailDomain reports whether email ends with "@"+domain, ignoring case.
func HasEmailDomain(email, domain string) bool {
	domain = strings.TrimPrefix(domain, "@")
	if domain == "" {
		return false
	}
	return strings.HasSuffix(strings.ToLower(email), "@"+strings.ToLower(domain))
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove null bytes first so spaces next to them are trimmed too
	input = strings.ReplaceAll(input, "\x00", "")

	// Remove leading/trailing spaces
	return strings.TrimSpace(input)
}
