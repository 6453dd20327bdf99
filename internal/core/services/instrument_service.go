package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portsrepo "github.com/sarrafhq/sarraf-backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/shopspring/decimal"
)

// GoldTypeService manages the catalogue of quotable gold grades.
type GoldTypeService struct {
	goldTypeRepo portsrepo.GoldTypeRepositoryFacade
	audit        portssvc.AuditSvc
}

// NewGoldTypeService creates a new GoldTypeService.
func NewGoldTypeService(goldTypeRepo portsrepo.GoldTypeRepositoryFacade, audit portssvc.AuditSvc) *GoldTypeService {
	return &GoldTypeService{goldTypeRepo: goldTypeRepo, audit: audit}
}

// GetGoldType retrieves one gold grade.
func (s *GoldTypeService) GetGoldType(ctx context.Context, goldTypeID string) (*domain.GoldType, error) {
	return s.goldTypeRepo.FindGoldTypeByID(ctx, goldTypeID)
}

// ListGoldTypes lists gold grades.
func (s *GoldTypeService) ListGoldTypes(ctx context.Context, activeOnly bool) ([]domain.GoldType, error) {
	return s.goldTypeRepo.ListGoldTypes(ctx, activeOnly)
}

// CreateGoldType adds a gold grade.
func (s *GoldTypeService) CreateGoldType(ctx context.Context, req dto.CreateGoldTypeRequest, actorUserID string) (*domain.GoldType, error) {
	if err := validatePurity(req.Purity); err != nil {
		return nil, err
	}

	now := time.Now()
	goldType := domain.GoldType{
		GoldTypeID: uuid.NewString(),
		Name:       req.Name,
		Karat:      req.Karat,
		Purity:     req.Purity,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.goldTypeRepo.SaveGoldType(ctx, goldType); err != nil {
		return nil, fmt.Errorf("failed to save gold type: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionCreate,
		EntityType: "gold_type",
		EntityID:   goldType.GoldTypeID,
		NewValues:  map[string]interface{}{"name": goldType.Name, "karat": goldType.Karat, "purity": goldType.Purity.String()},
	})
	return &goldType, nil
}

// UpdateGoldType patches a gold grade.
func (s *GoldTypeService) UpdateGoldType(ctx context.Context, goldTypeID string, req dto.UpdateGoldTypeRequest, actorUserID string) (*domain.GoldType, error) {
	goldType, err := s.goldTypeRepo.FindGoldTypeByID(ctx, goldTypeID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Name != nil {
		goldType.Name = *req.Name
		changes["name"] = *req.Name
	}
	if req.Purity != nil {
		if err := validatePurity(*req.Purity); err != nil {
			return nil, err
		}
		goldType.Purity = *req.Purity
		changes["purity"] = req.Purity.String()
	}
	if req.IsActive != nil {
		goldType.IsActive = *req.IsActive
		changes["isActive"] = *req.IsActive
	}
	if len(changes) == 0 {
		return goldType, nil
	}

	goldType.LastUpdatedAt = time.Now()
	goldType.LastUpdatedBy = actorUserID
	if err := s.goldTypeRepo.UpdateGoldType(ctx, *goldType); err != nil {
		return nil, fmt.Errorf("failed to update gold type: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionAmend,
		EntityType: "gold_type",
		EntityID:   goldTypeID,
		NewValues:  changes,
	})
	return goldType, nil
}

func validatePurity(purity decimal.Decimal) error {
	if purity.LessThanOrEqual(decimal.Zero) || purity.GreaterThan(decimal.NewFromInt(1)) {
		return apperrors.NewValidationError("purity must be a fraction in (0, 1]")
	}
	return nil
}

// CurrencyService manages the catalogue of quotable currencies.
type CurrencyService struct {
	currencyRepo portsrepo.CurrencyRepositoryFacade
	audit        portssvc.AuditSvc
}

// NewCurrencyService creates a new CurrencyService.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade, audit portssvc.AuditSvc) *CurrencyService {
	return &CurrencyService{currencyRepo: currencyRepo, audit: audit}
}

// GetCurrency retrieves one currency by id.
func (s *CurrencyService) GetCurrency(ctx context.Context, currencyID string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByID(ctx, currencyID)
}

// GetCurrencyByCode retrieves one currency by ISO code.
func (s *CurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
}

// ListCurrencies lists currencies.
func (s *CurrencyService) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx, activeOnly)
}

// CreateCurrency adds a currency. Codes are stored uppercased and must be
// unique.
func (s *CurrencyService) CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, actorUserID string) (*domain.Currency, error) {
	code := strings.ToUpper(req.Code)
	if existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code); err == nil && existing != nil {
		return nil, apperrors.NewValidationError(fmt.Sprintf("currency %s already exists", code))
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check currency code: %w", err)
	}

	now := time.Now()
	currency := domain.Currency{
		CurrencyID: uuid.NewString(),
		Code:       code,
		Symbol:     req.Symbol,
		Name:       req.Name,
		Flag:       req.Flag,
		IsActive:   true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}
	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		return nil, fmt.Errorf("failed to save currency: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionCreate,
		EntityType: "currency",
		EntityID:   currency.CurrencyID,
		NewValues:  map[string]interface{}{"code": currency.Code, "name": currency.Name},
	})
	return &currency, nil
}

// UpdateCurrency patches a currency. The ISO code is immutable.
func (s *CurrencyService) UpdateCurrency(ctx context.Context, currencyID string, req dto.UpdateCurrencyRequest, actorUserID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, err
	}

	changes := map[string]interface{}{}
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
		changes["symbol"] = *req.Symbol
	}
	if req.Name != nil {
		currency.Name = *req.Name
		changes["name"] = *req.Name
	}
	if req.Flag != nil {
		currency.Flag = *req.Flag
		changes["flag"] = *req.Flag
	}
	if req.IsActive != nil {
		currency.IsActive = *req.IsActive
		changes["isActive"] = *req.IsActive
	}
	if len(changes) == 0 {
		return currency, nil
	}

	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = actorUserID
	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionAmend,
		EntityType: "currency",
		EntityID:   currencyID,
		NewValues:  changes,
	})
	return currency, nil
}
