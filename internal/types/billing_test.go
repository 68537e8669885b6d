package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAddMonthsClamped(t *testing.T) {
	tests := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "mid month is preserved",
			start:  date(2024, time.January, 15),
			months: 1,
			want:   date(2024, time.February, 15),
		},
		{
			name:   "jan 31 clamps to feb 29 in a leap year",
			start:  date(2024, time.January, 31),
			months: 1,
			want:   date(2024, time.February, 29),
		},
		{
			name:   "jan 31 clamps to feb 28 in a non leap year",
			start:  date(2023, time.January, 31),
			months: 1,
			want:   date(2023, time.February, 28),
		},
		{
			name:   "mar 31 clamps to apr 30",
			start:  date(2024, time.March, 31),
			months: 1,
			want:   date(2024, time.April, 30),
		},
		{
			name:   "quarterly nov 30 lands on feb 28",
			start:  date(2024, time.November, 30),
			months: 3,
			want:   date(2025, time.February, 28),
		},
		{
			name:   "annual keeps the day",
			start:  date(2024, time.February, 29),
			months: 12,
			want:   date(2025, time.February, 28),
		},
		{
			name:   "year rollover",
			start:  date(2024, time.December, 31),
			months: 1,
			want:   date(2025, time.January, 31),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonthsClamped(tt.start, tt.months))
		})
	}
}

func TestBillingFrequencyMonthCount(t *testing.T) {
	assert.Equal(t, 1, BillingFrequencyMonthly.MonthCount())
	assert.Equal(t, 3, BillingFrequencyQuarterly.MonthCount())
	assert.Equal(t, 6, BillingFrequencySemiAnnual.MonthCount())
	assert.Equal(t, 12, BillingFrequencyAnnual.MonthCount())
}

func TestBillingFrequencyValidate(t *testing.T) {
	assert.NoError(t, BillingFrequencyMonthly.Validate())
	assert.Error(t, BillingFrequency("WEEKLY").Validate())
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 7, DaysBetween(date(2024, time.March, 1), date(2024, time.March, 8)))
	assert.Equal(t, 0, DaysBetween(date(2024, time.March, 1), date(2024, time.March, 1)))
	assert.Equal(t, -5, DaysBetween(date(2024, time.March, 10), date(2024, time.March, 5)))

	// Time-of-day is ignored
	a := time.Date(2024, time.March, 1, 23, 59, 0, 0, time.UTC)
	b := time.Date(2024, time.March, 2, 0, 1, 0, 0, time.UTC)
	assert.Equal(t, 1, DaysBetween(a, b))
}

func TestToDate(t *testing.T) {
	in := time.Date(2024, time.June, 15, 13, 45, 12, 999, time.UTC)
	assert.Equal(t, date(2024, time.June, 15), ToDate(in))
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-01-31")
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.January, 31), got)

	_, err = ParseDate("31/01/2024")
	require.Error(t, err)

	_, err = ParseDate("")
	require.Error(t, err)
}
