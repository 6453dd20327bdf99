package rates

import (
	"fmt"

	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// divPrecision is the intermediate precision used before the final rounding
// of a conversion result.
const divPrecision = 12

// Spread returns sell minus buy for a raw quote pair.
func Spread(buy, sell decimal.Decimal) decimal.Decimal {
	return sell.Sub(buy)
}

// Margin returns the margin amount for a raw rate and a margin fraction
// (e.g. 0.02 for 2%).
func Margin(rawRate, marginFraction decimal.Decimal) decimal.Decimal {
	return rawRate.Mul(marginFraction)
}

// FinalRate applies the house margin to a raw rate. The margin is
// directional: it raises the quoted buy price and lowers the quoted sell
// price, widening the effective spread.
func FinalRate(side domain.RateSide, rawRate, marginFraction decimal.Decimal) (decimal.Decimal, error) {
	margin := Margin(rawRate, marginFraction)
	switch side {
	case domain.SideBuy:
		return rawRate.Add(margin), nil
	case domain.SideSell:
		return rawRate.Sub(margin), nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown rate side %q", apperrors.ErrValidation, side)
	}
}

// Convert bridges an amount between two instruments through the base unit:
// divide by the source final rate, multiply by the target final rate. The
// result is rounded half away from zero to places decimal places. A zero
// rate on either side is rejected rather than producing Inf/NaN.
func Convert(amount, fromFinal, toFinal decimal.Decimal, places int32) (decimal.Decimal, error) {
	if fromFinal.IsZero() || toFinal.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: conversion rate is zero", apperrors.ErrInvalidRate)
	}
	base := amount.DivRound(fromFinal, divPrecision)
	return base.Mul(toFinal).Round(places), nil
}

// CrossRate returns the rate quoted for one unit of the source instrument in
// units of the target instrument, rounded to places decimal places.
func CrossRate(fromFinal, toFinal decimal.Decimal, places int32) (decimal.Decimal, error) {
	if fromFinal.IsZero() || toFinal.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: cross rate against zero", apperrors.ErrInvalidRate)
	}
	return toFinal.DivRound(fromFinal, divPrecision).Round(places), nil
}
