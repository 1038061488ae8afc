package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, day int) time.Time {
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

func TestRecurrence_Next(t *testing.T) {
	tests := []struct {
		name      string
		rec       Recurrence
		from      time.Time
		anchorDay int
		want      time.Time
	}{
		{"daily", Recurrence{FrequencyDaily, 1}, date(2024, 2, 28), 0, date(2024, 2, 29)},
		{"every three days", Recurrence{FrequencyDaily, 3}, date(2024, 12, 30), 0, date(2025, 1, 2)},
		{"weekly", Recurrence{FrequencyWeekly, 1}, date(2024, 1, 1), 0, date(2024, 1, 8)},
		{"biweekly", Recurrence{FrequencyWeekly, 2}, date(2024, 1, 1), 0, date(2024, 1, 15)},
		{"monthly keeps day", Recurrence{FrequencyMonthly, 1}, date(2024, 3, 15), 0, date(2024, 4, 15)},
		{"jan 31 clamps to leap feb 29", Recurrence{FrequencyMonthly, 1}, date(2024, 1, 31), 0, date(2024, 2, 29)},
		{"jan 31 clamps to feb 28", Recurrence{FrequencyMonthly, 1}, date(2023, 1, 31), 0, date(2023, 2, 28)},
		{"anchor restores the 31st", Recurrence{FrequencyMonthly, 1}, date(2024, 2, 29), 31, date(2024, 3, 31)},
		{"anchor 31 into april", Recurrence{FrequencyMonthly, 1}, date(2024, 3, 31), 31, date(2024, 4, 30)},
		{"every two months across year", Recurrence{FrequencyMonthly, 2}, date(2024, 11, 30), 30, date(2025, 1, 30)},
		{"quarterly", Recurrence{FrequencyQuarterly, 1}, date(2024, 11, 30), 30, date(2025, 2, 28)},
		{"yearly from leap day", Recurrence{FrequencyYearly, 1}, date(2024, 2, 29), 29, date(2025, 2, 28)},
		{"yearly back to leap day", Recurrence{FrequencyYearly, 4}, date(2024, 2, 29), 29, date(2028, 2, 29)},
		{"custom days", Recurrence{FrequencyCustomDays, 10}, date(2024, 1, 25), 0, date(2024, 2, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rec.Next(tt.from, tt.anchorDay)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecurrence_NextIsStrictlyForward(t *testing.T) {
	frequencies := []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyQuarterly, FrequencyYearly, FrequencyCustomDays}
	start := date(2024, 1, 31)

	for _, f := range frequencies {
		t.Run(string(f), func(t *testing.T) {
			rec := Recurrence{Frequency: f, Interval: 1}
			current := start
			for i := 0; i < 24; i++ {
				next := rec.Next(current, start.Day())
				assert.True(t, next.After(current), "%s did not advance from %s", f, current)
				current = next
			}
		})
	}
}

func TestNewRecurrence(t *testing.T) {
	rec, err := NewRecurrence(FrequencyMonthly, 0)
	assert.NoError(t, err)
	assert.Equal(t, 1, rec.Interval)

	_, err = NewRecurrence("fortnightly", 1)
	assert.ErrorIs(t, err, ErrInvalidFrequency)

	_, err = NewRecurrence(FrequencyWeekly, -2)
	assert.ErrorIs(t, err, ErrInvalidInterval)
}

func TestIsDue(t *testing.T) {
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	assert.True(t, IsDue(date(2024, 5, 1), now))
	assert.True(t, IsDue(date(2024, 4, 1), now))
	assert.False(t, IsDue(date(2024, 5, 2), now))
}
