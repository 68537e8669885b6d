package lease

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRentIncreasePercentage(t *testing.T) {
	tests := []struct {
		name    string
		oldRent decimal.Decimal
		newRent decimal.Decimal
		want    string
	}{
		{
			name:    "ten percent increase",
			oldRent: decimal.NewFromInt(1000),
			newRent: decimal.NewFromInt(1100),
			want:    "10",
		},
		{
			name:    "decrease is negative",
			oldRent: decimal.NewFromInt(1000),
			newRent: decimal.NewFromInt(950),
			want:    "-5",
		},
		{
			name:    "rounded to two decimals",
			oldRent: decimal.NewFromInt(3000),
			newRent: decimal.NewFromInt(3100),
			want:    "3.33",
		},
		{
			name:    "unchanged rent",
			oldRent: decimal.NewFromInt(1000),
			newRent: decimal.NewFromInt(1000),
			want:    "0",
		},
		{
			name:    "zero old rent yields zero",
			oldRent: decimal.Zero,
			newRent: decimal.NewFromInt(500),
			want:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RentIncreasePercentage(tt.oldRent, tt.newRent)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
