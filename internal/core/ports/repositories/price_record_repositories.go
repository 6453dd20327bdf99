package repositories

import (
	"context"
	"time"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// PriceRecordReader defines read operations over the price version history.
type PriceRecordReader interface {
	// FindCurrentPrice returns the record in force now for an instrument:
	// effectiveFrom <= now and (effectiveUntil is null or now < effectiveUntil),
	// most recent effectiveFrom first, highest id breaking ties.
	FindCurrentPrice(ctx context.Context, kind domain.InstrumentKind, instrumentID string) (*domain.PriceRecord, error)

	// ListCurrentPrices returns the record in force now for every active
	// instrument of a kind.
	ListCurrentPrices(ctx context.Context, kind domain.InstrumentKind) ([]domain.PriceRecord, error)

	// FindPriceRecordByID retrieves one version by id.
	FindPriceRecordByID(ctx context.Context, priceRecordID string) (*domain.PriceRecord, error)

	// ListPriceHistory returns versions descending by effectiveFrom.
	ListPriceHistory(ctx context.Context, kind domain.InstrumentKind, instrumentID string, filter domain.HistoryFilter) ([]domain.PriceRecord, error)

	// GetPriceStatistics aggregates buy/sell extremes since the given time.
	GetPriceStatistics(ctx context.Context, kind domain.InstrumentKind, instrumentID string, since time.Time) (*domain.PriceStatistics, error)
}

// PriceRecordWriter defines write operations over the price version history.
type PriceRecordWriter interface {
	// CreatePriceVersion atomically closes the instrument's open record (if
	// any) at the new record's effectiveFrom and inserts the new open record.
	CreatePriceVersion(ctx context.Context, record domain.PriceRecord) error

	// AmendPriceRecord updates a closed record in place.
	AmendPriceRecord(ctx context.Context, record domain.PriceRecord) error

	// DeletePriceRecord removes a version outright.
	DeletePriceRecord(ctx context.Context, priceRecordID string) error
}

// PriceRecordRepositoryFacade combines all price record repository interfaces.
type PriceRecordRepositoryFacade interface {
	PriceRecordReader
	PriceRecordWriter
}
