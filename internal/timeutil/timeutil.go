package timeutil

import "time"

// Timestamps exchanged with the backend are RFC3339, sometimes without an
// offset (the backend serializes naive UTC datetimes).
const naiveLayout = "2006-01-02T15:04:05"

// FormatTimestamp formats a time as RFC3339 in UTC, the shape the backend
// emits and the cache stores.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// ParseTimestamp parses a backend timestamp, tolerating missing offsets and
// fractional seconds. Naive values are interpreted as UTC.
func ParseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(naiveLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(naiveLayout+".999999999", value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
