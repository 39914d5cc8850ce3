// Package logutil holds helpers for keeping secrets out of log lines.
package logutil

// TruncateForLog keeps the first maxLen bytes of s and marks the cut with
// "...". Tokens are logged this way so only a prefix is visible.
func TruncateForLog(s string, maxLen int) string {
	if maxLen <= 0 {
		return "..."
	}
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
