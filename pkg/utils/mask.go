package utils

import "strings"

// MaskSecret hides all but the last four characters of a credential so it
// can be logged.
func MaskSecret(s string) string {
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
