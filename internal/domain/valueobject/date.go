package valueobject

import "time"

// DateLayout is the wire format of calendar dates.
const DateLayout = "2006-01-02"

// DateOnly normalizes t to midnight UTC of its calendar day.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today returns the current UTC calendar day.
func Today() time.Time {
	return DateOnly(time.Now().UTC())
}
