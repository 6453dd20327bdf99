package rates_test

import (
	"testing"

	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/utils/rates"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestSpread(t *testing.T) {
	assert.True(t, rates.Spread(dec("98"), dec("102")).Equal(dec("4")))
	assert.True(t, rates.Spread(dec("102"), dec("98")).Equal(dec("-4")))
}

func TestMargin(t *testing.T) {
	assert.True(t, rates.Margin(dec("100"), dec("0.02")).Equal(dec("2")))
	assert.True(t, rates.Margin(dec("3.75"), dec("0")).Equal(dec("0")))
}

func TestFinalRateIsDirectional(t *testing.T) {
	buy, err := rates.FinalRate(domain.SideBuy, dec("100"), dec("0.02"))
	require.NoError(t, err)
	assert.True(t, buy.Equal(dec("102")), "buy rate should move up, got %s", buy)

	sell, err := rates.FinalRate(domain.SideSell, dec("100"), dec("0.02"))
	require.NoError(t, err)
	assert.True(t, sell.Equal(dec("98")), "sell rate should move down, got %s", sell)
}

func TestFinalRateRejectsUnknownSide(t *testing.T) {
	_, err := rates.FinalRate(domain.RateSide("hold"), dec("100"), dec("0.02"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestConvertBridgesThroughBaseUnit(t *testing.T) {
	// 100 USD at final rate 1.0 into SAR at final rate 3.75.
	result, err := rates.Convert(dec("100"), dec("1.0"), dec("3.75"), 4)
	require.NoError(t, err)
	assert.True(t, result.Equal(dec("375")), "got %s", result)

	// Reverse direction.
	result, err = rates.Convert(dec("375"), dec("3.75"), dec("1.0"), 4)
	require.NoError(t, err)
	assert.True(t, result.Equal(dec("100")), "got %s", result)
}

func TestConvertRoundsHalfAwayFromZero(t *testing.T) {
	// 1 / 3 * 1 = 0.333333... → 0.3333 at 4dp.
	result, err := rates.Convert(dec("1"), dec("3"), dec("1"), 4)
	require.NoError(t, err)
	assert.True(t, result.Equal(dec("0.3333")), "got %s", result)

	// Gold precision is 2dp: 10 / 3 = 3.333... → 3.33.
	result, err = rates.Convert(dec("10"), dec("3"), dec("1"), 2)
	require.NoError(t, err)
	assert.True(t, result.Equal(dec("3.33")), "got %s", result)
}

func TestConvertRejectsZeroRates(t *testing.T) {
	_, err := rates.Convert(dec("100"), dec("0"), dec("3.75"), 4)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)

	_, err = rates.Convert(dec("100"), dec("3.75"), dec("0"), 4)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)
}

func TestCrossRate(t *testing.T) {
	cross, err := rates.CrossRate(dec("1.0"), dec("3.75"), 4)
	require.NoError(t, err)
	assert.True(t, cross.Equal(dec("3.75")), "got %s", cross)

	_, err = rates.CrossRate(dec("0"), dec("3.75"), 4)
	assert.ErrorIs(t, err, apperrors.ErrInvalidRate)
}
