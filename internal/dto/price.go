package dto

import (
	"time"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/utils/rates"
	"github.com/shopspring/decimal"
)

// CreatePriceRequest opens a new price version for an instrument.
type CreatePriceRequest struct {
	InstrumentID string          `json:"instrumentID" binding:"required"`
	Buy          decimal.Decimal `json:"buy" binding:"required"`
	Sell         decimal.Decimal `json:"sell" binding:"required"`
	MarginBuy    decimal.Decimal `json:"marginBuy"`
	MarginSell   decimal.Decimal `json:"marginSell"`
	IsManual     bool            `json:"isManual"`
}

// UpdatePriceRequest patches a price record. Open records are revised into a
// new version; closed records are amended in place.
type UpdatePriceRequest struct {
	Buy        *decimal.Decimal `json:"buy,omitempty"`
	Sell       *decimal.Decimal `json:"sell,omitempty"`
	MarginBuy  *decimal.Decimal `json:"marginBuy,omitempty"`
	MarginSell *decimal.Decimal `json:"marginSell,omitempty"`
	IsManual   *bool            `json:"isManual,omitempty"`
}

// AutoUpdateGoldRequest derives all karat prices from a 24k base price.
type AutoUpdateGoldRequest struct {
	BasePrice24k decimal.Decimal `json:"basePrice24k" binding:"required"`
}

// BulkRateEntry is one currency rate inside a bulk update.
type BulkRateEntry struct {
	Code       string           `json:"code" binding:"required,len=3"`
	Buy        decimal.Decimal  `json:"buy" binding:"required"`
	Sell       decimal.Decimal  `json:"sell" binding:"required"`
	MarginBuy  *decimal.Decimal `json:"marginBuy,omitempty"`
	MarginSell *decimal.Decimal `json:"marginSell,omitempty"`
}

// BulkUpdateCurrenciesRequest updates many currency rates in one call.
type BulkUpdateCurrenciesRequest struct {
	Rates []BulkRateEntry `json:"rates" binding:"required,min=1,dive"`
}

// BulkUpdateFailure reports one rejected entry of a bulk update.
type BulkUpdateFailure struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// BulkUpdateResult summarizes a bulk update.
type BulkUpdateResult struct {
	Updated  int                 `json:"updated"`
	Failures []BulkUpdateFailure `json:"failures,omitempty"`
}

// ConvertRequest converts an amount between two instruments of one kind.
type ConvertRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	From   string          `json:"from" binding:"required"`
	To     string          `json:"to" binding:"required"`
	Type   string          `json:"type" binding:"required,oneof=buy sell"`
}

// ConvertResponse carries the conversion result and the effective cross rate.
type ConvertResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Side      string          `json:"side"`
	Result    decimal.Decimal `json:"result"`
	CrossRate decimal.Decimal `json:"crossRate"`
}

// HistoryQuery filters a paginated price history listing.
type HistoryQuery struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02"`
	Limit     int        `form:"limit,default=50" binding:"max=500"`
	Offset    int        `form:"offset,default=0" binding:"min=0"`
}

// PriceResponse is one price version with the quoted final rates applied.
type PriceResponse struct {
	PriceRecordID  string          `json:"priceRecordID"`
	InstrumentKind string          `json:"instrumentKind"`
	InstrumentID   string          `json:"instrumentID"`
	BuyRaw         decimal.Decimal `json:"buyRaw"`
	SellRaw        decimal.Decimal `json:"sellRaw"`
	Spread         decimal.Decimal `json:"spread"`
	MarginBuy      decimal.Decimal `json:"marginBuy"`
	MarginSell     decimal.Decimal `json:"marginSell"`
	FinalBuy       decimal.Decimal `json:"finalBuy"`
	FinalSell      decimal.Decimal `json:"finalSell"`
	IsManual       bool            `json:"isManual"`
	EffectiveFrom  time.Time       `json:"effectiveFrom"`
	EffectiveUntil *time.Time      `json:"effectiveUntil,omitempty"`
	UpdatedBy      string          `json:"updatedBy"`
}

// ToPriceResponse maps a record to its response shape, quoting final rates
// at the kind's precision.
func ToPriceResponse(r *domain.PriceRecord) PriceResponse {
	places := r.InstrumentKind.DecimalPlaces()
	finalBuy, _ := rates.FinalRate(domain.SideBuy, r.BuyRaw, r.MarginBuy)
	finalSell, _ := rates.FinalRate(domain.SideSell, r.SellRaw, r.MarginSell)
	return PriceResponse{
		PriceRecordID:  r.PriceRecordID,
		InstrumentKind: string(r.InstrumentKind),
		InstrumentID:   r.InstrumentID,
		BuyRaw:         r.BuyRaw,
		SellRaw:        r.SellRaw,
		Spread:         r.Spread,
		MarginBuy:      r.MarginBuy,
		MarginSell:     r.MarginSell,
		FinalBuy:       finalBuy.Round(places),
		FinalSell:      finalSell.Round(places),
		IsManual:       r.IsManual,
		EffectiveFrom:  r.EffectiveFrom,
		EffectiveUntil: r.EffectiveUntil,
		UpdatedBy:      r.UpdatedBy,
	}
}

// ToPriceResponseSlice maps a history page.
func ToPriceResponseSlice(rs []domain.PriceRecord) []PriceResponse {
	out := make([]PriceResponse, len(rs))
	for i := range rs {
		out[i] = ToPriceResponse(&rs[i])
	}
	return out
}

// StatisticsResponse aggregates a trailing price window.
type StatisticsResponse struct {
	InstrumentID string          `json:"instrumentID"`
	WindowDays   int             `json:"windowDays"`
	Count        int64           `json:"count"`
	MinBuy       decimal.Decimal `json:"minBuy"`
	MaxBuy       decimal.Decimal `json:"maxBuy"`
	AvgBuy       decimal.Decimal `json:"avgBuy"`
	MinSell      decimal.Decimal `json:"minSell"`
	MaxSell      decimal.Decimal `json:"maxSell"`
	AvgSell      decimal.Decimal `json:"avgSell"`
}

// CompareEntry is one instrument inside a comparison, with its cross rates
// against the first instrument in the request.
type CompareEntry struct {
	InstrumentID string           `json:"instrumentID"`
	FinalBuy     decimal.Decimal  `json:"finalBuy"`
	FinalSell    decimal.Decimal  `json:"finalSell"`
	CrossBuy     *decimal.Decimal `json:"crossBuy,omitempty"`
	CrossSell    *decimal.Decimal `json:"crossSell,omitempty"`
}
