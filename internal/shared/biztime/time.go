// Package biztime holds the process clock. All timestamps are UTC.
package biztime

import (
	"sync"
	"time"
)

// Clock returns the current time. Services take one so tests can move time.
type Clock func() time.Time

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// FixedClock returns a Clock pinned to t and a func that advances it.
func FixedClock(t time.Time) (Clock, func(time.Duration)) {
	var mu sync.Mutex
	current := t
	now := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return current
	}
	advance := func(d time.Duration) {
		mu.Lock()
		current = current.Add(d)
		mu.Unlock()
	}
	return now, advance
}
