package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	portsrepo "github.com/sarrafhq/sarraf-backend/internal/core/ports/repositories"
	portssvc "github.com/sarrafhq/sarraf-backend/internal/core/ports/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
	"github.com/sarrafhq/sarraf-backend/internal/utils/rates"
	"github.com/shopspring/decimal"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
	defaultWindowDays   = 30
)

// autoUpdateMargin is the fixed margin applied to prices derived from a 24k
// base by the auto-update batch.
var autoUpdateMargin = decimal.NewFromFloat(0.02)

// PriceService provides the effective-dated price versioning logic and the
// quoting/conversion operations built on it.
type PriceService struct {
	priceRepo    portsrepo.PriceRecordRepositoryFacade
	goldTypeRepo portsrepo.GoldTypeRepositoryFacade
	currencyRepo portsrepo.CurrencyRepositoryFacade
	settings     portssvc.SettingsReaderSvc
	audit        portssvc.AuditSvc
}

// NewPriceService creates a new PriceService.
func NewPriceService(
	priceRepo portsrepo.PriceRecordRepositoryFacade,
	goldTypeRepo portsrepo.GoldTypeRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade,
	settings portssvc.SettingsReaderSvc,
	audit portssvc.AuditSvc,
) *PriceService {
	return &PriceService{
		priceRepo:    priceRepo,
		goldTypeRepo: goldTypeRepo,
		currencyRepo: currencyRepo,
		settings:     settings,
		audit:        audit,
	}
}

// GetCurrentPrice resolves the record in force now for an instrument. For
// currencies the ref may be either the instrument id or the ISO code.
func (s *PriceService) GetCurrentPrice(ctx context.Context, kind domain.InstrumentKind, ref string) (*domain.PriceRecord, error) {
	return s.currentRecord(ctx, kind, ref)
}

// ListCurrentPrices resolves the record in force now per instrument of a kind.
func (s *PriceService) ListCurrentPrices(ctx context.Context, kind domain.InstrumentKind) ([]domain.PriceRecord, error) {
	return s.priceRepo.ListCurrentPrices(ctx, kind)
}

// CreatePrice opens a new price version, closing the instrument's previous
// open record in the same transaction.
func (s *PriceService) CreatePrice(ctx context.Context, kind domain.InstrumentKind, req dto.CreatePriceRequest, actorUserID string) (*domain.PriceRecord, error) {
	if req.Buy.LessThanOrEqual(decimal.Zero) || req.Sell.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: buy and sell prices must be positive", apperrors.ErrValidation)
	}
	if err := validateMargin(req.MarginBuy); err != nil {
		return nil, err
	}
	if err := validateMargin(req.MarginSell); err != nil {
		return nil, err
	}
	if err := s.instrumentExists(ctx, kind, req.InstrumentID); err != nil {
		return nil, err
	}

	record := domain.PriceRecord{
		PriceRecordID:  uuid.NewString(),
		InstrumentKind: kind,
		InstrumentID:   req.InstrumentID,
		BuyRaw:         req.Buy,
		SellRaw:        req.Sell,
		Spread:         rates.Spread(req.Buy, req.Sell),
		MarginBuy:      req.MarginBuy,
		MarginSell:     req.MarginSell,
		IsManual:       req.IsManual,
		EffectiveFrom:  time.Now(),
		CreatedAt:      time.Now(),
		UpdatedBy:      actorUserID,
	}

	if err := s.priceRepo.CreatePriceVersion(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create price version: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionCreate,
		EntityType: "price_record",
		EntityID:   record.PriceRecordID,
		NewValues:  auditValues(&record),
	})

	return &record, nil
}

// UpdatePrice routes a patch on a record's state: an open record is revised
// into a new version, a closed record is amended in place.
func (s *PriceService) UpdatePrice(ctx context.Context, priceRecordID string, req dto.UpdatePriceRequest, actorUserID string) (*domain.PriceRecord, error) {
	record, err := s.priceRepo.FindPriceRecordByID(ctx, priceRecordID)
	if err != nil {
		return nil, err
	}
	if record.IsOpen() {
		return s.reviseOpen(ctx, record, req, actorUserID)
	}
	return s.amendClosed(ctx, record, req, actorUserID)
}

// ReviseOpen merges a patch onto an open record and versions it.
func (s *PriceService) ReviseOpen(ctx context.Context, priceRecordID string, req dto.UpdatePriceRequest, actorUserID string) (*domain.PriceRecord, error) {
	record, err := s.priceRepo.FindPriceRecordByID(ctx, priceRecordID)
	if err != nil {
		return nil, err
	}
	if !record.IsOpen() {
		return nil, fmt.Errorf("%w: price record %s is closed; amend it instead", apperrors.ErrValidation, priceRecordID)
	}
	return s.reviseOpen(ctx, record, req, actorUserID)
}

// AmendClosed corrects a closed record in place without opening a version.
func (s *PriceService) AmendClosed(ctx context.Context, priceRecordID string, req dto.UpdatePriceRequest, actorUserID string) (*domain.PriceRecord, error) {
	record, err := s.priceRepo.FindPriceRecordByID(ctx, priceRecordID)
	if err != nil {
		return nil, err
	}
	if record.IsOpen() {
		return nil, fmt.Errorf("%w: price record %s is open; revise it instead", apperrors.ErrValidation, priceRecordID)
	}
	return s.amendClosed(ctx, record, req, actorUserID)
}

func (s *PriceService) reviseOpen(ctx context.Context, record *domain.PriceRecord, req dto.UpdatePriceRequest, actorUserID string) (*domain.PriceRecord, error) {
	merged := *record
	if err := applyPricePatch(&merged, req); err != nil {
		return nil, err
	}

	successor := domain.PriceRecord{
		PriceRecordID:  uuid.NewString(),
		InstrumentKind: merged.InstrumentKind,
		InstrumentID:   merged.InstrumentID,
		BuyRaw:         merged.BuyRaw,
		SellRaw:        merged.SellRaw,
		Spread:         rates.Spread(merged.BuyRaw, merged.SellRaw),
		MarginBuy:      merged.MarginBuy,
		MarginSell:     merged.MarginSell,
		IsManual:       merged.IsManual,
		EffectiveFrom:  time.Now(),
		CreatedAt:      time.Now(),
		UpdatedBy:      actorUserID,
	}

	if err := s.priceRepo.CreatePriceVersion(ctx, successor); err != nil {
		return nil, fmt.Errorf("failed to revise open price record: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionRevise,
		EntityType: "price_record",
		EntityID:   successor.PriceRecordID,
		NewValues:  auditValues(&successor),
	})

	return &successor, nil
}

func (s *PriceService) amendClosed(ctx context.Context, record *domain.PriceRecord, req dto.UpdatePriceRequest, actorUserID string) (*domain.PriceRecord, error) {
	merged := *record
	if err := applyPricePatch(&merged, req); err != nil {
		return nil, err
	}
	merged.Spread = rates.Spread(merged.BuyRaw, merged.SellRaw)
	merged.UpdatedBy = actorUserID

	if err := s.priceRepo.AmendPriceRecord(ctx, merged); err != nil {
		return nil, fmt.Errorf("failed to amend closed price record: %w", err)
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionAmend,
		EntityType: "price_record",
		EntityID:   merged.PriceRecordID,
		NewValues:  auditValues(&merged),
	})

	return &merged, nil
}

// DeletePrice removes a version outright, audit-then-delete. Permitted on
// both open and closed records.
func (s *PriceService) DeletePrice(ctx context.Context, priceRecordID string, actorUserID string) error {
	record, err := s.priceRepo.FindPriceRecordByID(ctx, priceRecordID)
	if err != nil {
		return err
	}

	s.audit.Record(ctx, domain.AuditLogEntry{
		UserID:     actorUserID,
		Action:     domain.AuditActionDelete,
		EntityType: "price_record",
		EntityID:   record.PriceRecordID,
		NewValues:  auditValues(record),
	})

	return s.priceRepo.DeletePriceRecord(ctx, priceRecordID)
}

// GetPriceHistory pages an instrument's version history, newest first.
func (s *PriceService) GetPriceHistory(ctx context.Context, kind domain.InstrumentKind, instrumentID string, filter domain.HistoryFilter) ([]domain.PriceRecord, error) {
	if filter.Limit <= 0 {
		filter.Limit = defaultHistoryLimit
	}
	if filter.Limit > maxHistoryLimit {
		filter.Limit = maxHistoryLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return s.priceRepo.ListPriceHistory(ctx, kind, instrumentID, filter)
}

// GetPriceStatistics aggregates the trailing windowDays of versions.
func (s *PriceService) GetPriceStatistics(ctx context.Context, kind domain.InstrumentKind, instrumentID string, windowDays int) (*domain.PriceStatistics, error) {
	if windowDays <= 0 {
		windowDays = defaultWindowDays
	}
	since := time.Now().AddDate(0, 0, -windowDays)
	return s.priceRepo.GetPriceStatistics(ctx, kind, instrumentID, since)
}

// Convert bridges an amount between two instruments of one kind on the
// requested quote side: divide by the source final rate to reach the base
// unit, multiply by the target final rate.
func (s *PriceService) Convert(ctx context.Context, kind domain.InstrumentKind, req dto.ConvertRequest) (*dto.ConvertResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}
	side := domain.RateSide(req.Type)

	fromFinal, err := s.currentFinalRate(ctx, kind, req.From, side)
	if err != nil {
		return nil, err
	}
	toFinal, err := s.currentFinalRate(ctx, kind, req.To, side)
	if err != nil {
		return nil, err
	}

	places := kind.DecimalPlaces()
	result, err := rates.Convert(req.Amount, fromFinal, toFinal, places)
	if err != nil {
		return nil, err
	}
	cross, err := rates.CrossRate(fromFinal, toFinal, places)
	if err != nil {
		return nil, err
	}

	return &dto.ConvertResponse{
		Amount:    req.Amount,
		From:      req.From,
		To:        req.To,
		Side:      string(side),
		Result:    result,
		CrossRate: cross,
	}, nil
}

// Compare quotes a set of instruments, with each entry's cross rates
// expressed against the first instrument in the list.
func (s *PriceService) Compare(ctx context.Context, kind domain.InstrumentKind, instrumentIDs []string) ([]dto.CompareEntry, error) {
	if len(instrumentIDs) < 2 {
		return nil, fmt.Errorf("%w: compare requires at least two instruments", apperrors.ErrValidation)
	}

	places := kind.DecimalPlaces()
	entries := make([]dto.CompareEntry, 0, len(instrumentIDs))
	var baseBuy, baseSell decimal.Decimal

	for i, ref := range instrumentIDs {
		record, err := s.currentRecord(ctx, kind, ref)
		if err != nil {
			return nil, err
		}
		finalBuy, _ := rates.FinalRate(domain.SideBuy, record.BuyRaw, record.MarginBuy)
		finalSell, _ := rates.FinalRate(domain.SideSell, record.SellRaw, record.MarginSell)
		finalBuy = finalBuy.Round(places)
		finalSell = finalSell.Round(places)

		entry := dto.CompareEntry{
			InstrumentID: record.InstrumentID,
			FinalBuy:     finalBuy,
			FinalSell:    finalSell,
		}
		if i == 0 {
			baseBuy, baseSell = finalBuy, finalSell
		} else {
			crossBuy, err := rates.CrossRate(baseBuy, finalBuy, places)
			if err != nil {
				return nil, err
			}
			crossSell, err := rates.CrossRate(baseSell, finalSell, places)
			if err != nil {
				return nil, err
			}
			entry.CrossBuy = &crossBuy
			entry.CrossSell = &crossSell
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// AutoUpdateGold derives a raw price for every active karat grade from a 24k
// base (base × karat ÷ 24) and opens a new version per grade with the fixed
// 2% margins.
func (s *PriceService) AutoUpdateGold(ctx context.Context, basePrice24k decimal.Decimal, actorUserID string) ([]domain.PriceRecord, error) {
	if basePrice24k.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: base 24k price must be positive", apperrors.ErrValidation)
	}

	goldTypes, err := s.goldTypeRepo.ListGoldTypes(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("failed to list gold types for auto-update: %w", err)
	}
	if len(goldTypes) == 0 {
		return nil, apperrors.NewNotFoundError("no active gold types to update")
	}

	twentyFour := decimal.NewFromInt(24)
	created := make([]domain.PriceRecord, 0, len(goldTypes))
	for _, gt := range goldTypes {
		raw := basePrice24k.Mul(decimal.NewFromInt(int64(gt.Karat))).DivRound(twentyFour, 4)
		record, err := s.CreatePrice(ctx, domain.InstrumentGold, dto.CreatePriceRequest{
			InstrumentID: gt.GoldTypeID,
			Buy:          raw,
			Sell:         raw,
			MarginBuy:    autoUpdateMargin,
			MarginSell:   autoUpdateMargin,
			IsManual:     false,
		}, actorUserID)
		if err != nil {
			return nil, fmt.Errorf("auto-update failed for gold type %s: %w", gt.GoldTypeID, err)
		}
		created = append(created, *record)
	}

	return created, nil
}

// BulkUpdateCurrencies opens a version per submitted rate. Entries that fail
// validation or name an unknown code are reported individually; the rest
// still apply.
func (s *PriceService) BulkUpdateCurrencies(ctx context.Context, req dto.BulkUpdateCurrenciesRequest, actorUserID string) (*dto.BulkUpdateResult, error) {
	defaults := s.settings.Margins(ctx)

	result := &dto.BulkUpdateResult{}
	for _, entry := range req.Rates {
		currency, err := s.currencyRepo.FindCurrencyByCode(ctx, entry.Code)
		if err != nil {
			result.Failures = append(result.Failures, dto.BulkUpdateFailure{Code: entry.Code, Message: failureMessage(err)})
			continue
		}

		marginBuy := defaults.DefaultMarginBuy
		if entry.MarginBuy != nil {
			marginBuy = *entry.MarginBuy
		}
		marginSell := defaults.DefaultMarginSell
		if entry.MarginSell != nil {
			marginSell = *entry.MarginSell
		}

		_, err = s.CreatePrice(ctx, domain.InstrumentCurrency, dto.CreatePriceRequest{
			InstrumentID: currency.CurrencyID,
			Buy:          entry.Buy,
			Sell:         entry.Sell,
			MarginBuy:    marginBuy,
			MarginSell:   marginSell,
			IsManual:     false,
		}, actorUserID)
		if err != nil {
			result.Failures = append(result.Failures, dto.BulkUpdateFailure{Code: entry.Code, Message: failureMessage(err)})
			continue
		}
		result.Updated++
	}

	return result, nil
}

// currentRecord resolves an instrument reference (id, or ISO code for
// currencies) to its current price record.
func (s *PriceService) currentRecord(ctx context.Context, kind domain.InstrumentKind, ref string) (*domain.PriceRecord, error) {
	instrumentID := ref
	if kind == domain.InstrumentCurrency {
		currency, err := s.currencyRepo.FindCurrencyByCode(ctx, ref)
		if err == nil {
			instrumentID = currency.CurrencyID
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}
	return s.priceRepo.FindCurrentPrice(ctx, kind, instrumentID)
}

func (s *PriceService) currentFinalRate(ctx context.Context, kind domain.InstrumentKind, ref string, side domain.RateSide) (decimal.Decimal, error) {
	record, err := s.currentRecord(ctx, kind, ref)
	if err != nil {
		return decimal.Zero, err
	}
	if side == domain.SideBuy {
		return rates.FinalRate(domain.SideBuy, record.BuyRaw, record.MarginBuy)
	}
	return rates.FinalRate(domain.SideSell, record.SellRaw, record.MarginSell)
}

func (s *PriceService) instrumentExists(ctx context.Context, kind domain.InstrumentKind, instrumentID string) error {
	switch kind {
	case domain.InstrumentGold:
		_, err := s.goldTypeRepo.FindGoldTypeByID(ctx, instrumentID)
		return err
	case domain.InstrumentCurrency:
		_, err := s.currencyRepo.FindCurrencyByID(ctx, instrumentID)
		return err
	default:
		return fmt.Errorf("%w: unknown instrument kind %q", apperrors.ErrValidation, kind)
	}
}

func applyPricePatch(record *domain.PriceRecord, req dto.UpdatePriceRequest) error {
	if req.Buy != nil {
		if req.Buy.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: buy price must be positive", apperrors.ErrValidation)
		}
		record.BuyRaw = *req.Buy
	}
	if req.Sell != nil {
		if req.Sell.LessThanOrEqual(decimal.Zero) {
			return fmt.Errorf("%w: sell price must be positive", apperrors.ErrValidation)
		}
		record.SellRaw = *req.Sell
	}
	if req.MarginBuy != nil {
		if err := validateMargin(*req.MarginBuy); err != nil {
			return err
		}
		record.MarginBuy = *req.MarginBuy
	}
	if req.MarginSell != nil {
		if err := validateMargin(*req.MarginSell); err != nil {
			return err
		}
		record.MarginSell = *req.MarginSell
	}
	if req.IsManual != nil {
		record.IsManual = *req.IsManual
	}
	return nil
}

func validateMargin(margin decimal.Decimal) error {
	if margin.IsNegative() || margin.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return fmt.Errorf("%w: margin must be a fraction in [0, 1)", apperrors.ErrValidation)
	}
	return nil
}

func auditValues(record *domain.PriceRecord) map[string]interface{} {
	return map[string]interface{}{
		"instrumentKind": string(record.InstrumentKind),
		"instrumentID":   record.InstrumentID,
		"buyRaw":         record.BuyRaw.String(),
		"sellRaw":        record.SellRaw.String(),
		"spread":         record.Spread.String(),
		"marginBuy":      record.MarginBuy.String(),
		"marginSell":     record.MarginSell.String(),
		"isManual":       record.IsManual,
	}
}

func failureMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}
