// Package retention defines the time window for which activity log entries are
// kept. A single Policy value is constructed from configuration at startup and
// injected into everything that needs the horizon: read queries, the startup
// sweep, and the periodic sweeper. Keeping one formula in one place guarantees
// readers and sweepers never disagree about what "expired" means.
package retention

import "time"

// DefaultDays is the retention window applied when configuration is absent or
// non-positive.
const DefaultDays = 7

// Policy is an immutable retention window in whole days.
type Policy struct {
	days int
}

// New returns a Policy for the given number of days. Non-positive values fall
// back to DefaultDays rather than erroring, so a misconfigured deployment
// degrades to the default instead of keeping logs forever or refusing to start.
func New(days int) Policy {
	if days <= 0 {
		days = DefaultDays
	}
	return Policy{days: days}
}

// Days returns the window length in days.
func (p Policy) Days() int { return p.days }

// Duration returns the window length as a time.Duration.
func (p Policy) Duration() time.Duration {
	return time.Duration(p.days) * 24 * time.Hour
}

// Seconds returns the window length in seconds.
func (p Policy) Seconds() int64 {
	return int64(p.days) * 86400
}

// Horizon returns the oldest timestamp still inside the retention window,
// relative to now. Entries strictly older than the horizon are expired:
// readers must not return them and sweepers delete them.
func (p Policy) Horizon(now time.Time) time.Time {
	return now.Add(-p.Duration())
}
