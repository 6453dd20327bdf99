package models

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// PriceRecord is the price_records row. EffectiveUntil is NULL while the
// record is the instrument's open version.
type PriceRecord struct {
	PriceRecordID  string          `db:"price_record_id"`
	InstrumentKind string          `db:"instrument_kind"`
	InstrumentID   string          `db:"instrument_id"`
	BuyRaw         decimal.Decimal `db:"buy_raw"`
	SellRaw        decimal.Decimal `db:"sell_raw"`
	Spread         decimal.Decimal `db:"spread"`
	MarginBuy      decimal.Decimal `db:"margin_buy"`
	MarginSell     decimal.Decimal `db:"margin_sell"`
	IsManual       bool            `db:"is_manual"`
	EffectiveFrom  time.Time       `db:"effective_from"`
	EffectiveUntil sql.NullTime    `db:"effective_until"`
	CreatedAt      time.Time       `db:"created_at"`
	UpdatedBy      string          `db:"updated_by"`
}
