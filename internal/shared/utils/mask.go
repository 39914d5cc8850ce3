package utils

import "strings"

// MaskEmail keeps the first character of the local part so login logs can
// be correlated without recording the address: "owner@example.com" becomes
// "o***@example.com".
func MaskEmail(email string) string {
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return "***"
	}
	if local == "" {
		return "***@" + domain
	}
	return local[:1] + "***@" + domain
}
