package types

import (
	"time"

	ierr "github.com/leaseflow/leaseflow/internal/errors"
)

// DateFormat is the wire format for date-only values
const DateFormat = "2006-01-02"

// BillingFrequency is how often a recurring template spawns charges
type BillingFrequency string

const (
	BillingFrequencyMonthly    BillingFrequency = "MONTHLY"
	BillingFrequencyQuarterly  BillingFrequency = "QUARTERLY"
	BillingFrequencySemiAnnual BillingFrequency = "SEMI_ANNUALLY"
	BillingFrequencyAnnual     BillingFrequency = "ANNUALLY"
)

// Validate checks the frequency is one of the known values
func (f BillingFrequency) Validate() error {
	switch f {
	case BillingFrequencyMonthly, BillingFrequencyQuarterly,
		BillingFrequencySemiAnnual, BillingFrequencyAnnual:
		return nil
	default:
		return ierr.NewErrorf("invalid billing frequency: %s", f).
			WithHint("Frequency must be one of: MONTHLY, QUARTERLY, SEMI_ANNUALLY, ANNUALLY").
			Mark(ierr.ErrValidation)
	}
}

// MonthCount returns how many months a single billing period spans
func (f BillingFrequency) MonthCount() int {
	switch f {
	case BillingFrequencyQuarterly:
		return 3
	case BillingFrequencySemiAnnual:
		return 6
	case BillingFrequencyAnnual:
		return 12
	default:
		return 1
	}
}

// AddMonthsClamped advances t by the given number of months, preserving the
// day of month and clamping to the last valid day when the target month is
// shorter. time.AddDate alone would normalize Jan 31 + 1 month to Mar 2/3,
// which is wrong for billing dates.
func AddMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// ToDate truncates a time to midnight UTC
func ToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole days from a to b, comparing dates only
func DaysBetween(a, b time.Time) int {
	return int(ToDate(b).Sub(ToDate(a)).Hours() / 24)
}

// ParseDate parses a date-only value, returning a validation error on
// malformed input
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateFormat, value)
	if err != nil {
		return time.Time{}, ierr.WithError(err).
			WithHintf("Date must be in %s format", DateFormat).
			WithReportableDetails(map[string]interface{}{"value": value}).
			Mark(ierr.ErrValidation)
	}
	return t.UTC(), nil
}
