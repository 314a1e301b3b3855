package validators

import (
	"strings"
	"unicode/utf8"
)

// TruncateRunes caps input at maxLen runes without touching whitespace.
func TruncateRunes(input string, maxLen int) string {
	if maxLen <= 0 || utf8.RuneCountInString(input) <= maxLen {
		return input
	}
	return string([]rune(input)[:maxLen])
}

// SanitizeString trims whitespace and caps the result at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 || utf8.RuneCountInString(trimmed) <= maxLen {
		return trimmed
	}
	runes := []rune(trimmed)
	return strings.TrimSpace(string(runes[:maxLen]))
}
