package ban

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Ban is never deleted. Lifting sets ExpiresAt to the lift time.
type Ban struct {
	BanID       string
	LicenseKey  string
	PlayerID    string
	Reason      string
	Duration    string
	CreatedAt   time.Time
	ExpiresAt   *time.Time
	BannedBy    string
	EvidenceURL *string
	Identifiers []string
}

// IsActive reports whether the ban is still enforced at now.
func (b *Ban) IsActive(now time.Time) bool {
	return b.ExpiresAt == nil || b.ExpiresAt.After(now)
}

// IsPermanent reports whether the ban has no expiry.
func (b *Ban) IsPermanent() bool {
	return b.ExpiresAt == nil
}

var durationPattern = regexp.MustCompile(`^(\d+)([mhd])$`)

// ParseExpiry turns a raw duration into an absolute expiry relative to now.
// "P", "perm" and "permanent" (any case) are permanent. "<n>m", "<n>h" and
// "<n>d" are offsets. Anything else is also permanent, so nil is returned.
// An offset too large for time.Duration is permanent as well; it never
// wraps into the past.
func ParseExpiry(raw string, now time.Time) *time.Time {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "p", "perm", "permanent":
		return nil
	}

	m := durationPattern.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return nil
	}

	var unit time.Duration
	switch m[2] {
	case "m":
		unit = time.Minute
	case "h":
		unit = time.Hour
	case "d":
		unit = 24 * time.Hour
	}
	if n > math.MaxInt64/int64(unit) {
		return nil
	}
	t := now.Add(time.Duration(n) * unit)
	return &t
}

// NormalizeIdentifiers trims entries, drops blanks and removes duplicates
// while keeping first-seen order.
func NormalizeIdentifiers(in []string) []string {
	if len(in) == 0 {
		return []string{}
	}
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, raw := range in {
		v := strings.TrimSpace(raw)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
