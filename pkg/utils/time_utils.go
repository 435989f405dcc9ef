package utils

import "time"

func NowUnixSeconds() int64 { return time.Now().Unix() }

// NextResetDate returns the first instant of the next calendar month in UTC.
// Usage counters store it as reset_date when the row is created; nothing in
// this service reads it back to zero the counters — the monthly reset lives
// with whoever owns the database schema.
func NextResetDate(now time.Time) time.Time {
	now = now.UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	return firstOfMonth.AddDate(0, 1, 0)
}
