package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/core/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
)

// MockPriceRecordRepository is a mock of PriceRecordRepositoryFacade.
type MockPriceRecordRepository struct {
	mock.Mock
}

func (m *MockPriceRecordRepository) FindCurrentPrice(ctx context.Context, kind domain.InstrumentKind, instrumentID string) (*domain.PriceRecord, error) {
	args := m.Called(ctx, kind, instrumentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceRecord), args.Error(1)
}

func (m *MockPriceRecordRepository) ListCurrentPrices(ctx context.Context, kind domain.InstrumentKind) ([]domain.PriceRecord, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceRecord), args.Error(1)
}

func (m *MockPriceRecordRepository) FindPriceRecordByID(ctx context.Context, priceRecordID string) (*domain.PriceRecord, error) {
	args := m.Called(ctx, priceRecordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceRecord), args.Error(1)
}

func (m *MockPriceRecordRepository) ListPriceHistory(ctx context.Context, kind domain.InstrumentKind, instrumentID string, filter domain.HistoryFilter) ([]domain.PriceRecord, error) {
	args := m.Called(ctx, kind, instrumentID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PriceRecord), args.Error(1)
}

func (m *MockPriceRecordRepository) GetPriceStatistics(ctx context.Context, kind domain.InstrumentKind, instrumentID string, since time.Time) (*domain.PriceStatistics, error) {
	args := m.Called(ctx, kind, instrumentID, since)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PriceStatistics), args.Error(1)
}

func (m *MockPriceRecordRepository) CreatePriceVersion(ctx context.Context, record domain.PriceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPriceRecordRepository) AmendPriceRecord(ctx context.Context, record domain.PriceRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

func (m *MockPriceRecordRepository) DeletePriceRecord(ctx context.Context, priceRecordID string) error {
	args := m.Called(ctx, priceRecordID)
	return args.Error(0)
}

// MockGoldTypeRepository is a mock of GoldTypeRepositoryFacade.
type MockGoldTypeRepository struct {
	mock.Mock
}

func (m *MockGoldTypeRepository) FindGoldTypeByID(ctx context.Context, goldTypeID string) (*domain.GoldType, error) {
	args := m.Called(ctx, goldTypeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoldType), args.Error(1)
}

func (m *MockGoldTypeRepository) ListGoldTypes(ctx context.Context, activeOnly bool) ([]domain.GoldType, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GoldType), args.Error(1)
}

func (m *MockGoldTypeRepository) SaveGoldType(ctx context.Context, goldType domain.GoldType) error {
	args := m.Called(ctx, goldType)
	return args.Error(0)
}

func (m *MockGoldTypeRepository) UpdateGoldType(ctx context.Context, goldType domain.GoldType) error {
	args := m.Called(ctx, goldType)
	return args.Error(0)
}

// MockCurrencyRepository is a mock of CurrencyRepositoryFacade.
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context, activeOnly bool) ([]domain.Currency, error) {
	args := m.Called(ctx, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

// MockAuditService is a mock of AuditSvc.
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry domain.AuditLogEntry) {
	m.Called(ctx, entry)
}

// stubSettingsReader satisfies SettingsReaderSvc with fixed values; the price
// service only consumes Margins.
type stubSettingsReader struct {
	marginBuy  decimal.Decimal
	marginSell decimal.Decimal
}

func (s *stubSettingsReader) GetString(context.Context, string, string) string { return "" }
func (s *stubSettingsReader) GetInt(context.Context, string, int64) int64      { return 0 }
func (s *stubSettingsReader) GetDecimal(_ context.Context, _ string, def decimal.Decimal) decimal.Decimal {
	return def
}
func (s *stubSettingsReader) GetBool(context.Context, string, bool) bool { return false }
func (s *stubSettingsReader) GetJSON(context.Context, string) map[string]interface{} {
	return map[string]interface{}{}
}
func (s *stubSettingsReader) GetSetting(context.Context, string) (*domain.Setting, error) {
	return nil, apperrors.ErrNotFound
}
func (s *stubSettingsReader) ListSettings(context.Context) ([]domain.Setting, error) {
	return nil, nil
}
func (s *stubSettingsReader) IsMarketOpen(context.Context) bool { return true }
func (s *stubSettingsReader) StoreInfo(context.Context) dto.StoreInfoResponse {
	return dto.StoreInfoResponse{}
}
func (s *stubSettingsReader) MarketHours(context.Context) dto.MarketHoursResponse {
	return dto.MarketHoursResponse{}
}
func (s *stubSettingsReader) Margins(context.Context) dto.MarginsResponse {
	return dto.MarginsResponse{DefaultMarginBuy: s.marginBuy, DefaultMarginSell: s.marginSell}
}
func (s *stubSettingsReader) SecurityThresholds(context.Context) dto.SecurityThresholdsResponse {
	return dto.SecurityThresholdsResponse{}
}

type PriceServiceTestSuite struct {
	suite.Suite
	priceRepo    *MockPriceRecordRepository
	goldTypeRepo *MockGoldTypeRepository
	currencyRepo *MockCurrencyRepository
	audit        *MockAuditService
	service      *services.PriceService
	ctx          context.Context
}

func (s *PriceServiceTestSuite) SetupTest() {
	s.priceRepo = new(MockPriceRecordRepository)
	s.goldTypeRepo = new(MockGoldTypeRepository)
	s.currencyRepo = new(MockCurrencyRepository)
	s.audit = new(MockAuditService)
	settings := &stubSettingsReader{
		marginBuy:  decimal.RequireFromString("0.02"),
		marginSell: decimal.RequireFromString("0.02"),
	}
	s.service = services.NewPriceService(s.priceRepo, s.goldTypeRepo, s.currencyRepo, settings, s.audit)
	s.ctx = context.Background()
}

func TestPriceServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PriceServiceTestSuite))
}

func (s *PriceServiceTestSuite) openRecord(id, instrumentID string, buy, sell string) *domain.PriceRecord {
	return &domain.PriceRecord{
		PriceRecordID:  id,
		InstrumentKind: domain.InstrumentCurrency,
		InstrumentID:   instrumentID,
		BuyRaw:         decimal.RequireFromString(buy),
		SellRaw:        decimal.RequireFromString(sell),
		MarginBuy:      decimal.Zero,
		MarginSell:     decimal.Zero,
		EffectiveFrom:  time.Now().Add(-time.Hour),
	}
}

func (s *PriceServiceTestSuite) TestCreatePriceComputesSpreadAndOpensVersion() {
	gt := &domain.GoldType{GoldTypeID: "gold-24k", Karat: 24, IsActive: true}
	s.goldTypeRepo.On("FindGoldTypeByID", s.ctx, "gold-24k").Return(gt, nil)

	var created domain.PriceRecord
	s.priceRepo.On("CreatePriceVersion", s.ctx, mock.AnythingOfType("domain.PriceRecord")).
		Run(func(args mock.Arguments) { created = args.Get(1).(domain.PriceRecord) }).
		Return(nil)
	s.audit.On("Record", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditActionCreate && e.EntityType == "price_record"
	})).Return()

	record, err := s.service.CreatePrice(s.ctx, domain.InstrumentGold, dto.CreatePriceRequest{
		InstrumentID: "gold-24k",
		Buy:          decimal.RequireFromString("98"),
		Sell:         decimal.RequireFromString("102"),
		MarginBuy:    decimal.RequireFromString("0.02"),
		MarginSell:   decimal.RequireFromString("0.02"),
		IsManual:     true,
	}, "user-1")

	s.Require().NoError(err)
	s.True(record.Spread.Equal(decimal.RequireFromString("4")))
	s.True(record.IsOpen())
	s.Equal("user-1", record.UpdatedBy)
	s.True(created.Spread.Equal(decimal.RequireFromString("4")))
	s.priceRepo.AssertExpectations(s.T())
	s.audit.AssertExpectations(s.T())
}

func (s *PriceServiceTestSuite) TestCreatePriceRejectsMarginOutsideUnitInterval() {
	_, err := s.service.CreatePrice(s.ctx, domain.InstrumentGold, dto.CreatePriceRequest{
		InstrumentID: "gold-24k",
		Buy:          decimal.RequireFromString("98"),
		Sell:         decimal.RequireFromString("102"),
		MarginBuy:    decimal.NewFromInt(1),
	}, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.priceRepo.AssertNotCalled(s.T(), "CreatePriceVersion", mock.Anything, mock.Anything)
}

func (s *PriceServiceTestSuite) TestCreatePriceRejectsNonPositivePrices() {
	_, err := s.service.CreatePrice(s.ctx, domain.InstrumentGold, dto.CreatePriceRequest{
		InstrumentID: "gold-24k",
		Buy:          decimal.Zero,
		Sell:         decimal.RequireFromString("102"),
	}, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PriceServiceTestSuite) TestCreatePriceRejectsUnknownInstrument() {
	s.goldTypeRepo.On("FindGoldTypeByID", s.ctx, "missing").
		Return(nil, apperrors.NewNotFoundError("gold type not found"))

	_, err := s.service.CreatePrice(s.ctx, domain.InstrumentGold, dto.CreatePriceRequest{
		InstrumentID: "missing",
		Buy:          decimal.RequireFromString("98"),
		Sell:         decimal.RequireFromString("102"),
	}, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PriceServiceTestSuite) TestUpdatePriceVersionsOpenRecord() {
	existing := s.openRecord("pr-1", "cur-usd", "1.00", "1.02")
	s.priceRepo.On("FindPriceRecordByID", s.ctx, "pr-1").Return(existing, nil)

	var successor domain.PriceRecord
	s.priceRepo.On("CreatePriceVersion", s.ctx, mock.AnythingOfType("domain.PriceRecord")).
		Run(func(args mock.Arguments) { successor = args.Get(1).(domain.PriceRecord) }).
		Return(nil)
	s.audit.On("Record", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditActionRevise
	})).Return()

	newBuy := decimal.RequireFromString("1.10")
	updated, err := s.service.UpdatePrice(s.ctx, "pr-1", dto.UpdatePriceRequest{Buy: &newBuy}, "user-1")

	s.Require().NoError(err)
	s.NotEqual("pr-1", updated.PriceRecordID)
	s.True(updated.BuyRaw.Equal(newBuy))
	s.True(updated.SellRaw.Equal(existing.SellRaw))
	s.Equal(successor.PriceRecordID, updated.PriceRecordID)
	s.priceRepo.AssertNotCalled(s.T(), "AmendPriceRecord", mock.Anything, mock.Anything)
	s.audit.AssertExpectations(s.T())
}

func (s *PriceServiceTestSuite) TestUpdatePriceAmendsClosedRecordInPlace() {
	closedAt := time.Now().Add(-time.Minute)
	existing := s.openRecord("pr-2", "cur-usd", "1.00", "1.02")
	existing.EffectiveUntil = &closedAt
	s.priceRepo.On("FindPriceRecordByID", s.ctx, "pr-2").Return(existing, nil)

	var amended domain.PriceRecord
	s.priceRepo.On("AmendPriceRecord", s.ctx, mock.AnythingOfType("domain.PriceRecord")).
		Run(func(args mock.Arguments) { amended = args.Get(1).(domain.PriceRecord) }).
		Return(nil)
	s.audit.On("Record", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditActionAmend
	})).Return()

	newSell := decimal.RequireFromString("1.05")
	updated, err := s.service.UpdatePrice(s.ctx, "pr-2", dto.UpdatePriceRequest{Sell: &newSell}, "user-1")

	s.Require().NoError(err)
	s.Equal("pr-2", updated.PriceRecordID)
	s.True(updated.Spread.Equal(decimal.RequireFromString("0.05")))
	s.Equal("pr-2", amended.PriceRecordID)
	s.priceRepo.AssertNotCalled(s.T(), "CreatePriceVersion", mock.Anything, mock.Anything)
	s.audit.AssertExpectations(s.T())
}

func (s *PriceServiceTestSuite) TestReviseOpenRejectsClosedRecord() {
	closedAt := time.Now().Add(-time.Minute)
	existing := s.openRecord("pr-3", "cur-usd", "1.00", "1.02")
	existing.EffectiveUntil = &closedAt
	s.priceRepo.On("FindPriceRecordByID", s.ctx, "pr-3").Return(existing, nil)

	_, err := s.service.ReviseOpen(s.ctx, "pr-3", dto.UpdatePriceRequest{}, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PriceServiceTestSuite) TestAmendClosedRejectsOpenRecord() {
	existing := s.openRecord("pr-4", "cur-usd", "1.00", "1.02")
	s.priceRepo.On("FindPriceRecordByID", s.ctx, "pr-4").Return(existing, nil)

	_, err := s.service.AmendClosed(s.ctx, "pr-4", dto.UpdatePriceRequest{}, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PriceServiceTestSuite) TestDeletePriceAuditsThenDeletes() {
	existing := s.openRecord("pr-5", "cur-usd", "1.00", "1.02")
	s.priceRepo.On("FindPriceRecordByID", s.ctx, "pr-5").Return(existing, nil)
	s.audit.On("Record", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditActionDelete && e.EntityID == "pr-5"
	})).Return()
	s.priceRepo.On("DeletePriceRecord", s.ctx, "pr-5").Return(nil)

	err := s.service.DeletePrice(s.ctx, "pr-5", "user-1")

	s.Require().NoError(err)
	s.priceRepo.AssertExpectations(s.T())
	s.audit.AssertExpectations(s.T())
}

func (s *PriceServiceTestSuite) TestGetPriceHistoryClampsPaging() {
	s.priceRepo.On("ListPriceHistory", s.ctx, domain.InstrumentGold, "gold-24k",
		domain.HistoryFilter{Limit: 500, Offset: 0}).Return([]domain.PriceRecord{}, nil)

	_, err := s.service.GetPriceHistory(s.ctx, domain.InstrumentGold, "gold-24k",
		domain.HistoryFilter{Limit: 9999, Offset: -5})

	s.Require().NoError(err)
	s.priceRepo.AssertExpectations(s.T())
}

func (s *PriceServiceTestSuite) TestConvertBridgesThroughBaseUnit() {
	usd := &domain.Currency{CurrencyID: "cur-usd", Code: "USD"}
	sar := &domain.Currency{CurrencyID: "cur-sar", Code: "SAR"}
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "USD").Return(usd, nil)
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "SAR").Return(sar, nil)
	s.priceRepo.On("FindCurrentPrice", s.ctx, domain.InstrumentCurrency, "cur-usd").
		Return(s.openRecord("pr-usd", "cur-usd", "1.0", "1.0"), nil)
	s.priceRepo.On("FindCurrentPrice", s.ctx, domain.InstrumentCurrency, "cur-sar").
		Return(s.openRecord("pr-sar", "cur-sar", "3.75", "3.75"), nil)

	resp, err := s.service.Convert(s.ctx, domain.InstrumentCurrency, dto.ConvertRequest{
		Amount: decimal.NewFromInt(100),
		From:   "USD",
		To:     "SAR",
		Type:   "buy",
	})

	s.Require().NoError(err)
	s.True(resp.Result.Equal(decimal.RequireFromString("375")), "got %s", resp.Result)
	s.True(resp.CrossRate.Equal(decimal.RequireFromString("3.75")))
	s.Equal("buy", resp.Side)
}

func (s *PriceServiceTestSuite) TestGetCurrentPriceResolvesCurrencyCode() {
	sar := &domain.Currency{CurrencyID: "cur-sar", Code: "SAR"}
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "SAR").Return(sar, nil)
	s.priceRepo.On("FindCurrentPrice", s.ctx, domain.InstrumentCurrency, "cur-sar").
		Return(s.openRecord("pr-sar", "cur-sar", "3.70", "3.80"), nil)

	got, err := s.service.GetCurrentPrice(s.ctx, domain.InstrumentCurrency, "SAR")

	s.Require().NoError(err)
	s.Equal("pr-sar", got.PriceRecordID)
}

func (s *PriceServiceTestSuite) TestGetCurrentPriceFallsBackToRawID() {
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "cur-sar").
		Return(nil, apperrors.NewNotFoundError("no currency with that code"))
	s.priceRepo.On("FindCurrentPrice", s.ctx, domain.InstrumentCurrency, "cur-sar").
		Return(s.openRecord("pr-sar", "cur-sar", "3.70", "3.80"), nil)

	got, err := s.service.GetCurrentPrice(s.ctx, domain.InstrumentCurrency, "cur-sar")

	s.Require().NoError(err)
	s.Equal("pr-sar", got.PriceRecordID)
}

func (s *PriceServiceTestSuite) TestConvertRejectsNonPositiveAmount() {
	_, err := s.service.Convert(s.ctx, domain.InstrumentCurrency, dto.ConvertRequest{
		Amount: decimal.Zero,
		From:   "USD",
		To:     "SAR",
		Type:   "buy",
	})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PriceServiceTestSuite) TestCompareRequiresAtLeastTwoInstruments() {
	_, err := s.service.Compare(s.ctx, domain.InstrumentGold, []string{"gold-24k"})

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
}

func (s *PriceServiceTestSuite) TestCompareCrossesAgainstFirstInstrument() {
	usd := &domain.Currency{CurrencyID: "cur-usd", Code: "USD"}
	sar := &domain.Currency{CurrencyID: "cur-sar", Code: "SAR"}
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "USD").Return(usd, nil)
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "SAR").Return(sar, nil)
	s.priceRepo.On("FindCurrentPrice", s.ctx, domain.InstrumentCurrency, "cur-usd").
		Return(s.openRecord("pr-usd", "cur-usd", "1.0", "1.0"), nil)
	s.priceRepo.On("FindCurrentPrice", s.ctx, domain.InstrumentCurrency, "cur-sar").
		Return(s.openRecord("pr-sar", "cur-sar", "3.75", "3.75"), nil)

	entries, err := s.service.Compare(s.ctx, domain.InstrumentCurrency, []string{"USD", "SAR"})

	s.Require().NoError(err)
	s.Require().Len(entries, 2)
	s.Nil(entries[0].CrossBuy)
	s.Require().NotNil(entries[1].CrossBuy)
	s.True(entries[1].CrossBuy.Equal(decimal.RequireFromString("3.75")))
}

func (s *PriceServiceTestSuite) TestAutoUpdateGoldDerivesKaratPrices() {
	grades := []domain.GoldType{
		{GoldTypeID: "gold-24k", Karat: 24, IsActive: true},
		{GoldTypeID: "gold-18k", Karat: 18, IsActive: true},
	}
	s.goldTypeRepo.On("ListGoldTypes", s.ctx, true).Return(grades, nil)
	s.goldTypeRepo.On("FindGoldTypeByID", s.ctx, "gold-24k").Return(&grades[0], nil)
	s.goldTypeRepo.On("FindGoldTypeByID", s.ctx, "gold-18k").Return(&grades[1], nil)

	created := make([]domain.PriceRecord, 0, 2)
	s.priceRepo.On("CreatePriceVersion", s.ctx, mock.AnythingOfType("domain.PriceRecord")).
		Run(func(args mock.Arguments) { created = append(created, args.Get(1).(domain.PriceRecord)) }).
		Return(nil)
	s.audit.On("Record", s.ctx, mock.Anything).Return()

	records, err := s.service.AutoUpdateGold(s.ctx, decimal.NewFromInt(240), "user-1")

	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Require().Len(created, 2)
	s.True(created[0].BuyRaw.Equal(decimal.NewFromInt(240)), "24k keeps the base: %s", created[0].BuyRaw)
	s.True(created[1].BuyRaw.Equal(decimal.NewFromInt(180)), "18k is base*18/24: %s", created[1].BuyRaw)
	s.False(created[0].IsManual)
	s.True(created[0].MarginBuy.Equal(decimal.RequireFromString("0.02")))
}

func (s *PriceServiceTestSuite) TestAutoUpdateGoldRejectsNonPositiveBase() {
	_, err := s.service.AutoUpdateGold(s.ctx, decimal.Zero, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.goldTypeRepo.AssertNotCalled(s.T(), "ListGoldTypes", mock.Anything, mock.Anything)
}

func (s *PriceServiceTestSuite) TestBulkUpdateCurrenciesReportsPerEntryFailures() {
	usd := &domain.Currency{CurrencyID: "cur-usd", Code: "USD"}
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "USD").Return(usd, nil)
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "XXX").
		Return(nil, apperrors.NewNotFoundError("currency not found"))
	s.currencyRepo.On("FindCurrencyByID", s.ctx, "cur-usd").Return(usd, nil)

	s.priceRepo.On("CreatePriceVersion", s.ctx, mock.MatchedBy(func(r domain.PriceRecord) bool {
		return r.InstrumentID == "cur-usd" && r.MarginBuy.Equal(decimal.RequireFromString("0.02"))
	})).Return(nil)
	s.audit.On("Record", s.ctx, mock.Anything).Return()

	result, err := s.service.BulkUpdateCurrencies(s.ctx, dto.BulkUpdateCurrenciesRequest{
		Rates: []dto.BulkRateEntry{
			{Code: "USD", Buy: decimal.RequireFromString("1.00"), Sell: decimal.RequireFromString("1.02")},
			{Code: "XXX", Buy: decimal.RequireFromString("2.00"), Sell: decimal.RequireFromString("2.02")},
		},
	}, "user-1")

	s.Require().NoError(err)
	s.Equal(1, result.Updated)
	s.Require().Len(result.Failures, 1)
	s.Equal("XXX", result.Failures[0].Code)
}
