package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateSide selects which quoted price a calculation applies to.
type RateSide string

const (
	SideBuy  RateSide = "buy"
	SideSell RateSide = "sell"
)

// PriceRecord is one effective-dated price version for an instrument.
// History is append-only: a record is mutable only while it is open
// (EffectiveUntil == nil); creating a successor closes it.
type PriceRecord struct {
	PriceRecordID  string          `json:"priceRecordID"`
	InstrumentKind InstrumentKind  `json:"instrumentKind"`
	InstrumentID   string          `json:"instrumentID"`
	BuyRaw         decimal.Decimal `json:"buyRaw"`
	SellRaw        decimal.Decimal `json:"sellRaw"`
	Spread         decimal.Decimal `json:"spread"` // SellRaw - BuyRaw
	MarginBuy      decimal.Decimal `json:"marginBuy"`
	MarginSell     decimal.Decimal `json:"marginSell"`
	IsManual       bool            `json:"isManual"`
	EffectiveFrom  time.Time       `json:"effectiveFrom"`
	EffectiveUntil *time.Time      `json:"effectiveUntil,omitempty"` // nil while the record is in force
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedBy      string          `json:"updatedBy"`
}

// IsOpen reports whether this record is the instrument's current version.
func (p *PriceRecord) IsOpen() bool {
	return p.EffectiveUntil == nil
}
