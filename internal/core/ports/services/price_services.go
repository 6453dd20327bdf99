package services

import (
	"context"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// PriceReaderSvc defines the public quoting operations.
type PriceReaderSvc interface {
	// GetCurrentPrice resolves the record in force now for an instrument.
	// For currencies the ref may be an instrument id or an ISO code.
	GetCurrentPrice(ctx context.Context, kind domain.InstrumentKind, ref string) (*domain.PriceRecord, error)

	// ListCurrentPrices resolves the record in force now per instrument.
	ListCurrentPrices(ctx context.Context, kind domain.InstrumentKind) ([]domain.PriceRecord, error)

	// GetPriceHistory pages an instrument's version history.
	GetPriceHistory(ctx context.Context, kind domain.InstrumentKind, instrumentID string, filter domain.HistoryFilter) ([]domain.PriceRecord, error)

	// GetPriceStatistics aggregates the trailing window.
	GetPriceStatistics(ctx context.Context, kind domain.InstrumentKind, instrumentID string, windowDays int) (*domain.PriceStatistics, error)

	// Convert bridges an amount between two instruments on one quote side.
	Convert(ctx context.Context, kind domain.InstrumentKind, req dto.ConvertRequest) (*dto.ConvertResponse, error)

	// Compare quotes a set of instruments with cross rates against the first.
	Compare(ctx context.Context, kind domain.InstrumentKind, instrumentIDs []string) ([]dto.CompareEntry, error)
}

// PriceWriterSvc defines the admin price mutations.
type PriceWriterSvc interface {
	// CreatePrice opens a new version, closing the previous open record.
	CreatePrice(ctx context.Context, kind domain.InstrumentKind, req dto.CreatePriceRequest, actorUserID string) (*domain.PriceRecord, error)

	// UpdatePrice routes a patch: ReviseOpen when the target is open,
	// AmendClosed when it is already closed.
	UpdatePrice(ctx context.Context, priceRecordID string, req dto.UpdatePriceRequest, actorUserID string) (*domain.PriceRecord, error)

	// ReviseOpen merges a patch onto an open record and versions it.
	ReviseOpen(ctx context.Context, priceRecordID string, req dto.UpdatePriceRequest, actorUserID string) (*domain.PriceRecord, error)

	// AmendClosed corrects a closed record in place.
	AmendClosed(ctx context.Context, priceRecordID string, req dto.UpdatePriceRequest, actorUserID string) (*domain.PriceRecord, error)

	// DeletePrice removes a version (audit-then-delete).
	DeletePrice(ctx context.Context, priceRecordID string, actorUserID string) error

	// AutoUpdateGold derives every active karat price from a 24k base.
	AutoUpdateGold(ctx context.Context, basePrice24k decimal.Decimal, actorUserID string) ([]domain.PriceRecord, error)

	// BulkUpdateCurrencies versions many currency rates, reporting per-code
	// failures.
	BulkUpdateCurrencies(ctx context.Context, req dto.BulkUpdateCurrenciesRequest, actorUserID string) (*dto.BulkUpdateResult, error)
}

// PriceSvcFacade combines all price service interfaces.
type PriceSvcFacade interface {
	PriceReaderSvc
	PriceWriterSvc
}
