package services

import (
	"context"

	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
)

// GoldTypeSvcFacade manages gold grades.
type GoldTypeSvcFacade interface {
	// GetGoldType retrieves one gold grade.
	GetGoldType(ctx context.Context, goldTypeID string) (*domain.GoldType, error)

	// ListGoldTypes lists gold grades.
	ListGoldTypes(ctx context.Context, activeOnly bool) ([]domain.GoldType, error)

	// CreateGoldType adds a gold grade.
	CreateGoldType(ctx context.Context, req dto.CreateGoldTypeRequest, actorUserID string) (*domain.GoldType, error)

	// UpdateGoldType patches a gold grade.
	UpdateGoldType(ctx context.Context, goldTypeID string, req dto.UpdateGoldTypeRequest, actorUserID string) (*domain.GoldType, error)
}

// CurrencySvcFacade manages currencies.
type CurrencySvcFacade interface {
	// GetCurrency retrieves one currency by id.
	GetCurrency(ctx context.Context, currencyID string) (*domain.Currency, error)

	// GetCurrencyByCode retrieves one currency by ISO code.
	GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error)

	// ListCurrencies lists currencies.
	ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error)

	// CreateCurrency adds a currency.
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actorUserID string) (*domain.Currency, error)

	// UpdateCurrency patches a currency.
	UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, actorUserID string) (*domain.Currency, error)
}
