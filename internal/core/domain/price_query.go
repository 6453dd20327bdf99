package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryFilter bounds and paginates a price history listing.
type HistoryFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Limit     int
	Offset    int
}

// PriceStatistics aggregates buy/sell extremes over a trailing window.
type PriceStatistics struct {
	Count   int64
	MinBuy  decimal.Decimal
	MaxBuy  decimal.Decimal
	AvgBuy  decimal.Decimal
	MinSell decimal.Decimal
	MaxSell decimal.Decimal
	AvgSell decimal.Decimal
}
