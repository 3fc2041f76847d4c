package domain

import "time"

// Dates are passed around as ISO "2006-01-02" strings in UTC. String
// keys make the per-day upsert and the backward streak walk exact —
// no timezone or DST arithmetic on the hot path.

const dateLayout = "2006-01-02"

// ParseDate parses an ISO date into a UTC midnight time.
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(dateLayout, s, time.UTC)
}

// ValidDate reports whether s is a well-formed ISO date.
func ValidDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// FormatDate renders t as an ISO date in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

// AddDays shifts an ISO date by n days (n may be negative). The input
// must be valid; callers validate at the boundary.
func AddDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return FormatDate(t.AddDate(0, 0, n))
}

// Today returns the current UTC date.
func Today() string {
	return FormatDate(time.Now())
}
