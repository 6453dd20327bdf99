package models

import "github.com/shopspring/decimal"

// GoldType is the gold_types row.
type GoldType struct {
	GoldTypeID string          `db:"gold_type_id"`
	Name       string          `db:"name"`
	Karat      int             `db:"karat"`
	Purity     decimal.Decimal `db:"purity"`
	IsActive   bool            `db:"is_active"`
	AuditFields
}

// Currency is the currencies row.
type Currency struct {
	CurrencyID string `db:"currency_id"`
	Code       string `db:"code"`
	Symbol     string `db:"symbol"`
	Name       string `db:"name"`
	Flag       string `db:"flag"`
	IsActive   bool   `db:"is_active"`
	AuditFields
}
