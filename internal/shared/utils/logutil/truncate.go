// Package logutil shortens values before they reach a log line or error detail.
package logutil

import "unicode/utf8"

// TruncateForLog keeps at most maxLen bytes of s and appends "..." when it
// cut something. The cut never splits a UTF-8 sequence.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

// MaskKey shows the first visible bytes of a secret such as a subscription key.
func MaskKey(key string, visible int) string {
	if len(key) <= visible {
		return "***"
	}
	return TruncateForLog(key, visible)
}
