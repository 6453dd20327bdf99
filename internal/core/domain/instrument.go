package domain

import "github.com/shopspring/decimal"

// InstrumentKind distinguishes the two families of quotable instruments.
type InstrumentKind string

const (
	InstrumentGold     InstrumentKind = "gold"
	InstrumentCurrency InstrumentKind = "currency"
)

// DecimalPlaces returns the rounding precision used for quoted values of
// this kind: 2 for gold (price per gram), 4 for currency cross rates.
func (k InstrumentKind) DecimalPlaces() int32 {
	if k == InstrumentGold {
		return 2
	}
	return 4
}

// GoldType is a quotable gold purity grade (e.g. 24k, 21k, 18k).
type GoldType struct {
	GoldTypeID string          `json:"goldTypeID"`
	Name       string          `json:"name"`   // e.g. "Gold 24k"
	Karat      int             `json:"karat"`  // e.g. 24
	Purity     decimal.Decimal `json:"purity"` // fraction, e.g. 0.999
	IsActive   bool            `json:"isActive"`
	AuditFields
}

// Currency is a quotable foreign currency.
type Currency struct {
	CurrencyID string `json:"currencyID"`
	Code       string `json:"code"`   // ISO 4217, e.g. "USD"
	Symbol     string `json:"symbol"` // e.g. "$"
	Name       string `json:"name"`   // e.g. "US Dollar"
	Flag       string `json:"flag"`   // emoji or asset key shown by the storefront
	IsActive   bool   `json:"isActive"`
	AuditFields
}
