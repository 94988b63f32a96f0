package aggregate

import (
	"time"

	appErrors "github.com/trainops/analytics-api/pkg/errors"
)

// Bucket selects a calendar grouping for time-series aggregation.
type Bucket string

const (
	ByDay   Bucket = "day"
	ByWeek  Bucket = "week"
	ByMonth Bucket = "month"
	ByYear  Bucket = "year"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// ParseDate parses the store's date string formats. The second return is
// false for missing or malformed dates; callers exclude such rows rather
// than failing.
func ParseDate(raw string) (time.Time, bool) {
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// BucketKey maps a timestamp to its bucket's sortable string key. Weeks
// start on Sunday and are keyed by the week's first day.
func BucketKey(t time.Time, bucket Bucket) (string, error) {
	switch bucket {
	case ByDay:
		return t.Format("2006-01-02"), nil
	case ByWeek:
		start := t.AddDate(0, 0, -int(t.Weekday()))
		return start.Format("2006-01-02"), nil
	case ByMonth:
		return t.Format("2006-01"), nil
	case ByYear:
		return t.Format("2006"), nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, "unknown bucket: "+string(bucket))
	}
}

// MonthKey is the month bucket key used by enrollment trends.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}
