// utils/validation.go
package utils

import (
	"regexp"
	"strings"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[1-9]\d{6,14}$`)
	clockPattern = regexp.MustCompile(`^([01]?\d|2[0-3]):[0-5]\d$`)
)

// NormalizePhone strips spaces, dashes and parentheses.
func NormalizePhone(phone string) string {
	return strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(phone)
}

// ValidatePhone checks if a phone number is in a valid international format
func ValidatePhone(phone string) bool {
	// Allows + prefix followed by 7-15 digits
	return phonePattern.MatchString(NormalizePhone(phone))
}

// ValidateClock reports whether s is a well-formed H:MM or HH:MM time.
func ValidateClock(s string) bool {
	return clockPattern.MatchString(s)
}

var (
	scriptTagPattern    = regexp.MustCompile(`(?is)<script\b.*?</script>`)
	eventHandlerPattern = regexp.MustCompile(`(?i)on\w+\s*=`)
	jsProtocolPattern   = regexp.MustCompile(`(?i)javascript:`)
)

// IsInputSafe rejects free text carrying script tags, inline event
// handlers or javascript: URLs.
func IsInputSafe(input string) bool {
	return !scriptTagPattern.MatchString(input) &&
		!eventHandlerPattern.MatchString(input) &&
		!jsProtocolPattern.MatchString(input)
}
