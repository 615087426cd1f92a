package pricing

import (
	"testing"

	"nyumbani/models"
	"nyumbani/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultPolicy() Policy {
	return NewPolicy(models.DefaultPricingSettings())
}

func TestViewingFeePerBlock(t *testing.T) {
	p := defaultPolicy()

	cases := []struct {
		n    int
		want float64
	}{
		{1, 1500}, {2, 1500}, {3, 1500},
		{4, 2000}, {5, 2000}, {6, 2000},
		{7, 2500}, {8, 2500}, {9, 2500},
		{10, 3000},
	}
	for _, tc := range cases {
		got, err := p.ViewingFee(tc.n)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got, "n=%d", tc.n)
	}
}

func TestViewingFeePerProperty(t *testing.T) {
	settings := models.DefaultPricingSettings()
	settings.ViewingFeeStrategy = models.ViewingFeePerProperty
	p := NewPolicy(settings)

	got, err := p.ViewingFee(3)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, got)

	got, err = p.ViewingFee(5)
	require.NoError(t, err)
	assert.Equal(t, 2500.0, got)

	got, err = p.ViewingFee(8)
	require.NoError(t, err)
	assert.Equal(t, 4000.0, got)
}

func TestViewingFeeRejectsInvalidInput(t *testing.T) {
	p := defaultPolicy()

	_, err := p.ViewingFee(0)
	require.Error(t, err)
	se, ok := utils.AsServiceError(err)
	require.True(t, ok)
	assert.Equal(t, utils.CodeInvalidArgument, se.Code)

	_, err = p.ViewingFee(-4)
	require.Error(t, err)
}

func TestBookingTotalsIncludesAddOns(t *testing.T) {
	p := defaultPolicy()

	b := &models.Booking{
		NumberOfProperties: 5,
		ViewingFee:         999999, // stale client value, must be overwritten
		TotalFee:           999999,
		CleaningService:    models.AddOnService{Required: true, Fee: 800},
		MovingService:      models.AddOnService{Required: false, Fee: 400},
	}
	require.NoError(t, p.BookingTotals(b))
	assert.Equal(t, 2000.0, b.ViewingFee)
	// Moving add-on is not required, so only cleaning contributes.
	assert.Equal(t, 2800.0, b.TotalFee)
}

func TestBookingTotalsRejectsNegativeAddOnFee(t *testing.T) {
	p := defaultPolicy()
	b := &models.Booking{
		NumberOfProperties: 1,
		CleaningService:    models.AddOnService{Required: true, Fee: -5},
	}
	err := p.BookingTotals(b)
	require.Error(t, err)
	se, _ := utils.AsServiceError(err)
	assert.Equal(t, utils.CodeInvalidArgument, se.Code)
}

func TestServiceAmount(t *testing.T) {
	// Garbage scenario: 500 base + 10kg * 50, floored at 900 -> 1000.
	got, err := ServiceAmount(500, 10, 50, 900)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got)

	// Minimum charge kicks in.
	got, err = ServiceAmount(100, 2, 25, 900)
	require.NoError(t, err)
	assert.Equal(t, 900.0, got)

	// No minimum charge configured.
	got, err = ServiceAmount(100, 2, 25, 0)
	require.NoError(t, err)
	assert.Equal(t, 150.0, got)

	_, err = ServiceAmount(-1, 2, 25, 0)
	require.Error(t, err)
	_, err = ServiceAmount(100, -2, 25, 0)
	require.Error(t, err)
}

func TestSplitCommissionExactness(t *testing.T) {
	cases := []struct {
		total, pct float64
	}{
		{1000, 20},
		{999.99, 20},
		{1234.56, 17.5},
		{0.01, 33},
		{0, 50},
		{100, 0},
		{100, 100},
	}
	for _, tc := range cases {
		split, err := SplitCommission(tc.total, tc.pct)
		require.NoError(t, err)
		assert.Equal(t, RoundCents(tc.total), RoundCents(split.CommissionAmount+split.ProviderEarnings),
			"total=%v pct=%v", tc.total, tc.pct)
	}

	split, err := SplitCommission(1000, 20)
	require.NoError(t, err)
	assert.Equal(t, 200.0, split.CommissionAmount)
	assert.Equal(t, 800.0, split.ProviderEarnings)
}

func TestSplitCommissionRejectsInvalidInput(t *testing.T) {
	_, err := SplitCommission(-1, 20)
	require.Error(t, err)
	_, err = SplitCommission(100, -1)
	require.Error(t, err)
	_, err = SplitCommission(100, 101)
	require.Error(t, err)
}

func TestSplitDownPayment(t *testing.T) {
	split, err := SplitDownPayment(500000, 20)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, split.DownPaymentAmount)
	assert.Equal(t, 400000.0, split.RemainingAmount)

	split, err = SplitDownPayment(333333.33, 15)
	require.NoError(t, err)
	assert.Equal(t, RoundCents(333333.33), RoundCents(split.DownPaymentAmount+split.RemainingAmount))

	_, err = SplitDownPayment(100, 120)
	require.Error(t, err)
}
