package dto

import (
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoldTypeRequest adds a quotable gold grade.
type CreateGoldTypeRequest struct {
	Name   string          `json:"name" binding:"required"`
	Karat  int             `json:"karat" binding:"required,gt=0,lte=24"`
	Purity decimal.Decimal `json:"purity" binding:"required"`
}

// UpdateGoldTypeRequest patches a gold grade.
type UpdateGoldTypeRequest struct {
	Name     *string          `json:"name,omitempty"`
	Purity   *decimal.Decimal `json:"purity,omitempty"`
	IsActive *bool            `json:"isActive,omitempty"`
}

// CreateCurrencyRequest adds a quotable currency.
type CreateCurrencyRequest struct {
	Code   string `json:"code" binding:"required,len=3"`
	Symbol string `json:"symbol" binding:"required"`
	Name   string `json:"name" binding:"required"`
	Flag   string `json:"flag"`
}

// UpdateCurrencyRequest patches a currency.
type UpdateCurrencyRequest struct {
	Symbol   *string `json:"symbol,omitempty"`
	Name     *string `json:"name,omitempty"`
	Flag     *string `json:"flag,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// GoldTypeResponse is the public shape of a gold grade.
type GoldTypeResponse struct {
	GoldTypeID string          `json:"goldTypeID"`
	Name       string          `json:"name"`
	Karat      int             `json:"karat"`
	Purity     decimal.Decimal `json:"purity"`
	IsActive   bool            `json:"isActive"`
}

// ToGoldTypeResponse maps a domain GoldType.
func ToGoldTypeResponse(g *domain.GoldType) GoldTypeResponse {
	return GoldTypeResponse{
		GoldTypeID: g.GoldTypeID,
		Name:       g.Name,
		Karat:      g.Karat,
		Purity:     g.Purity,
		IsActive:   g.IsActive,
	}
}

// ToGoldTypeResponseSlice maps a list of gold grades.
func ToGoldTypeResponseSlice(gs []domain.GoldType) []GoldTypeResponse {
	out := make([]GoldTypeResponse, len(gs))
	for i := range gs {
		out[i] = ToGoldTypeResponse(&gs[i])
	}
	return out
}

// CurrencyResponse is the public shape of a currency.
type CurrencyResponse struct {
	CurrencyID string `json:"currencyID"`
	Code       string `json:"code"`
	Symbol     string `json:"symbol"`
	Name       string `json:"name"`
	Flag       string `json:"flag"`
	IsActive   bool   `json:"isActive"`
}

// ToCurrencyResponse maps a domain Currency.
func ToCurrencyResponse(c *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyID: c.CurrencyID,
		Code:       c.Code,
		Symbol:     c.Symbol,
		Name:       c.Name,
		Flag:       c.Flag,
		IsActive:   c.IsActive,
	}
}

// ToCurrencyResponseSlice maps a list of currencies.
func ToCurrencyResponseSlice(cs []domain.Currency) []CurrencyResponse {
	out := make([]CurrencyResponse, len(cs))
	for i := range cs {
		out[i] = ToCurrencyResponse(&cs[i])
	}
	return out
}

// QuoteResponse pairs an instrument with its current price for listings.
type QuoteResponse struct {
	Instrument interface{}    `json:"instrument"`
	Price      *PriceResponse `json:"price,omitempty"`
}
