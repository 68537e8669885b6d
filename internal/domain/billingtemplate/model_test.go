package billingtemplate

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leaseflow/leaseflow/internal/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestAdvanceNextDueClampsShortMonths(t *testing.T) {
	tests := []struct {
		name      string
		frequency types.BillingFrequency
		nextDue   time.Time
		want      time.Time
	}{
		{
			name:      "monthly jan 31 lands on leap day",
			frequency: types.BillingFrequencyMonthly,
			nextDue:   day(2024, time.January, 31),
			want:      day(2024, time.February, 29),
		},
		{
			name:      "monthly jan 31 non leap year",
			frequency: types.BillingFrequencyMonthly,
			nextDue:   day(2023, time.January, 31),
			want:      day(2023, time.February, 28),
		},
		{
			name:      "quarterly nov 30",
			frequency: types.BillingFrequencyQuarterly,
			nextDue:   day(2024, time.November, 30),
			want:      day(2025, time.February, 28),
		},
		{
			name:      "semi annual keeps day",
			frequency: types.BillingFrequencySemiAnnual,
			nextDue:   day(2024, time.March, 15),
			want:      day(2024, time.September, 15),
		},
		{
			name:      "annual from leap day",
			frequency: types.BillingFrequencyAnnual,
			nextDue:   day(2024, time.February, 29),
			want:      day(2025, time.February, 28),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl := &Template{Frequency: tt.frequency, NextDue: tt.nextDue}
			assert.Equal(t, tt.want, tmpl.AdvanceNextDue())
		})
	}
}

func TestWindowExhausted(t *testing.T) {
	until := day(2024, time.June, 30)

	unbounded := &Template{}
	assert.False(t, unbounded.WindowExhausted(day(2030, time.January, 1)))

	bounded := &Template{AutoGenerateUntil: &until}
	assert.False(t, bounded.WindowExhausted(day(2024, time.June, 30)))
	assert.True(t, bounded.WindowExhausted(day(2024, time.July, 1)))
}

func TestTemplateValidate(t *testing.T) {
	valid := &Template{
		ID:        "tmpl_1",
		LeaseID:   "lease_1",
		Frequency: types.BillingFrequencyMonthly,
		NextDue:   day(2024, time.January, 1),
		Amount:    decimal.NewFromInt(1000),
	}
	require.NoError(t, valid.Validate())

	missingLease := *valid
	missingLease.LeaseID = ""
	assert.Error(t, missingLease.Validate())

	zeroAmount := *valid
	zeroAmount.Amount = decimal.Zero
	assert.Error(t, zeroAmount.Validate())

	badFrequency := *valid
	badFrequency.Frequency = "WEEKLY"
	assert.Error(t, badFrequency.Validate())
}
