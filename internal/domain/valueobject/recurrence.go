// Package valueobject contains domain value objects for the agency CRM.
package valueobject

import (
	"errors"
	"time"
)

// Frequency is the unit a recurring schedule advances by.
type Frequency string

const (
	FrequencyDaily      Frequency = "daily"
	FrequencyWeekly     Frequency = "weekly"
	FrequencyMonthly    Frequency = "monthly"
	FrequencyQuarterly  Frequency = "quarterly"
	FrequencyYearly     Frequency = "yearly"
	FrequencyCustomDays Frequency = "custom_days"
)

var (
	// ErrInvalidFrequency is returned for an unknown frequency.
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")

	// ErrInvalidInterval is returned when the interval is below 1.
	ErrInvalidInterval = errors.New("recurrence interval must be at least 1")
)

// Recurrence describes how often a recurring invoice or task repeats.
type Recurrence struct {
	Frequency Frequency
	Interval  int
}

// NewRecurrence builds a Recurrence, defaulting the interval to 1.
func NewRecurrence(frequency Frequency, interval int) (Recurrence, error) {
	if interval == 0 {
		interval = 1
	}
	r := Recurrence{Frequency: frequency, Interval: interval}
	if err := r.Validate(); err != nil {
		return Recurrence{}, err
	}
	return r, nil
}

// Validate checks frequency and interval.
func (r Recurrence) Validate() error {
	switch r.Frequency {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly, FrequencyCustomDays:
	default:
		return ErrInvalidFrequency
	}
	if r.Interval < 1 {
		return ErrInvalidInterval
	}
	return nil
}

// Next returns the occurrence following from.
//
// Month based frequencies keep anchorDay as the day of month and clamp it to
// the last day of shorter months, so a schedule anchored on the 31st yields
// Jan 31, Feb 29, Mar 31. An anchorDay of 0 uses from's own day.
func (r Recurrence) Next(from time.Time, anchorDay int) time.Time {
	interval := r.Interval
	if interval < 1 {
		interval = 1
	}
	if anchorDay <= 0 {
		anchorDay = from.Day()
	}

	switch r.Frequency {
	case FrequencyDaily, FrequencyCustomDays:
		return from.AddDate(0, 0, interval)
	case FrequencyWeekly:
		return from.AddDate(0, 0, 7*interval)
	case FrequencyMonthly:
		return AddMonthsClamped(from, interval, anchorDay)
	case FrequencyQuarterly:
		return AddMonthsClamped(from, 3*interval, anchorDay)
	case FrequencyYearly:
		return AddMonthsClamped(from, 12*interval, anchorDay)
	default:
		return from
	}
}

// AddMonthsClamped moves t forward by months calendar months and places it on
// anchorDay, or on the last day of the target month when anchorDay does not exist there.
func AddMonthsClamped(t time.Time, months, anchorDay int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month(), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()).
		AddDate(0, months, 0)

	day := anchorDay
	if last := DaysInMonth(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}

	return firstOfTarget.AddDate(0, 0, day-1)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsDue reports whether a schedule whose next occurrence is next should fire at now.
func IsDue(next, now time.Time) bool {
	return !next.After(now)
}
