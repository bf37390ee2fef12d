package logger

import "strings"

const redacted = "[REDACTED]"

var secretKeys = []string{"authorization", "token", "secret", "password", "cookie"}

// redactValue masks values whose key names a credential.
func redactValue(key, val string) string {
	key = strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(key, s) {
			return Mask(val)
		}
	}
	return val
}

// Mask hides a secret for safe logging, keeping the first two characters of
// long values: "abcdef123" -> "ab[REDACTED]". Short values are fully masked.
func Mask(val string) string {
	if len(val) > 8 {
		return val[:2] + redacted
	}
	return redacted
}
