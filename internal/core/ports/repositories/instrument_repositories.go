package repositories

import (
	"context"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
)

// GoldTypeReader defines read operations for gold grades.
type GoldTypeReader interface {
	// FindGoldTypeByID retrieves a gold grade by id.
	FindGoldTypeByID(ctx context.Context, goldTypeID string) (*domain.GoldType, error)

	// ListGoldTypes retrieves gold grades, optionally only active ones.
	ListGoldTypes(ctx context.Context, activeOnly bool) ([]domain.GoldType, error)
}

// GoldTypeWriter defines write operations for gold grades.
type GoldTypeWriter interface {
	// SaveGoldType persists a new gold grade.
	SaveGoldType(ctx context.Context, goldType domain.GoldType) error

	// UpdateGoldType persists changes to an existing gold grade.
	UpdateGoldType(ctx context.Context, goldType domain.GoldType) error
}

// GoldTypeRepositoryFacade combines gold grade repository interfaces.
type GoldTypeRepositoryFacade interface {
	GoldTypeReader
	GoldTypeWriter
}

// CurrencyReader defines read operations for currencies.
type CurrencyReader interface {
	// FindCurrencyByID retrieves a currency by id.
	FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error)

	// FindCurrencyByCode retrieves a currency by its ISO code.
	FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies retrieves currencies, optionally only active ones.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)
}

// CurrencyWriter defines write operations for currencies.
type CurrencyWriter interface {
	// SaveCurrency persists a new currency.
	SaveCurrency(ctx context.Context, currency domain.Currency) error

	// UpdateCurrency persists changes to an existing currency.
	UpdateCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines currency repository interfaces.
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
