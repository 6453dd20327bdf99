package services_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/sarrafhq/sarraf-backend/internal/apperrors"
	"github.com/sarrafhq/sarraf-backend/internal/core/domain"
	"github.com/sarrafhq/sarraf-backend/internal/core/services"
	"github.com/sarrafhq/sarraf-backend/internal/dto"
)

type GoldTypeServiceTestSuite struct {
	suite.Suite
	goldTypeRepo *MockGoldTypeRepository
	audit        *MockAuditService
	service      *services.GoldTypeService
	ctx          context.Context
}

func (s *GoldTypeServiceTestSuite) SetupTest() {
	s.goldTypeRepo = new(MockGoldTypeRepository)
	s.audit = new(MockAuditService)
	s.service = services.NewGoldTypeService(s.goldTypeRepo, s.audit)
	s.ctx = context.Background()
}

func TestGoldTypeServiceTestSuite(t *testing.T) {
	suite.Run(t, new(GoldTypeServiceTestSuite))
}

func (s *GoldTypeServiceTestSuite) TestCreateGoldTypeStampsActorAndAudits() {
	var saved domain.GoldType
	s.goldTypeRepo.On("SaveGoldType", s.ctx, mock.AnythingOfType("domain.GoldType")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.GoldType) }).
		Return(nil)
	s.audit.On("Record", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditActionCreate && e.EntityType == "gold_type"
	})).Return()

	goldType, err := s.service.CreateGoldType(s.ctx, dto.CreateGoldTypeRequest{
		Name:   "Gold 21k",
		Karat:  21,
		Purity: decimal.RequireFromString("0.875"),
	}, "user-1")

	s.Require().NoError(err)
	s.NotEmpty(goldType.GoldTypeID)
	s.True(goldType.IsActive)
	s.Equal("user-1", goldType.CreatedBy)
	s.Equal(saved.GoldTypeID, goldType.GoldTypeID)
	s.audit.AssertExpectations(s.T())
}

func (s *GoldTypeServiceTestSuite) TestCreateGoldTypeRejectsBadPurity() {
	for _, purity := range []string{"0", "-0.1", "1.5"} {
		_, err := s.service.CreateGoldType(s.ctx, dto.CreateGoldTypeRequest{
			Name:   "Bad",
			Karat:  24,
			Purity: decimal.RequireFromString(purity),
		}, "user-1")

		s.Require().Error(err, purity)
		s.ErrorIs(err, apperrors.ErrValidation)
	}
	s.goldTypeRepo.AssertNotCalled(s.T(), "SaveGoldType", mock.Anything, mock.Anything)
}

func (s *GoldTypeServiceTestSuite) TestUpdateGoldTypeNoopSkipsPersistence() {
	existing := &domain.GoldType{GoldTypeID: "gold-24k", Name: "Gold 24k", Karat: 24, IsActive: true}
	s.goldTypeRepo.On("FindGoldTypeByID", s.ctx, "gold-24k").Return(existing, nil)

	goldType, err := s.service.UpdateGoldType(s.ctx, "gold-24k", dto.UpdateGoldTypeRequest{}, "user-1")

	s.Require().NoError(err)
	s.Equal("gold-24k", goldType.GoldTypeID)
	s.goldTypeRepo.AssertNotCalled(s.T(), "UpdateGoldType", mock.Anything, mock.Anything)
	s.audit.AssertNotCalled(s.T(), "Record", mock.Anything, mock.Anything)
}

func (s *GoldTypeServiceTestSuite) TestUpdateGoldTypeDeactivates() {
	existing := &domain.GoldType{GoldTypeID: "gold-18k", Name: "Gold 18k", Karat: 18, IsActive: true}
	s.goldTypeRepo.On("FindGoldTypeByID", s.ctx, "gold-18k").Return(existing, nil)
	s.goldTypeRepo.On("UpdateGoldType", s.ctx, mock.MatchedBy(func(gt domain.GoldType) bool {
		return !gt.IsActive
	})).Return(nil)
	s.audit.On("Record", s.ctx, mock.MatchedBy(func(e domain.AuditLogEntry) bool {
		return e.Action == domain.AuditActionAmend
	})).Return()

	inactive := false
	goldType, err := s.service.UpdateGoldType(s.ctx, "gold-18k", dto.UpdateGoldTypeRequest{IsActive: &inactive}, "user-1")

	s.Require().NoError(err)
	s.False(goldType.IsActive)
	s.Equal("user-1", goldType.LastUpdatedBy)
	s.goldTypeRepo.AssertExpectations(s.T())
}

type CurrencyServiceTestSuite struct {
	suite.Suite
	currencyRepo *MockCurrencyRepository
	audit        *MockAuditService
	service      *services.CurrencyService
	ctx          context.Context
}

func (s *CurrencyServiceTestSuite) SetupTest() {
	s.currencyRepo = new(MockCurrencyRepository)
	s.audit = new(MockAuditService)
	s.service = services.NewCurrencyService(s.currencyRepo, s.audit)
	s.ctx = context.Background()
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}

func (s *CurrencyServiceTestSuite) TestCreateCurrencyUppercasesCode() {
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "USD").
		Return(nil, apperrors.NewNotFoundError("currency not found"))

	var saved domain.Currency
	s.currencyRepo.On("SaveCurrency", s.ctx, mock.AnythingOfType("domain.Currency")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Currency) }).
		Return(nil)
	s.audit.On("Record", s.ctx, mock.Anything).Return()

	currency, err := s.service.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{
		Code:   "usd",
		Symbol: "$",
		Name:   "US Dollar",
	}, "user-1")

	s.Require().NoError(err)
	s.Equal("USD", currency.Code)
	s.True(currency.IsActive)
	s.Equal("USD", saved.Code)
}

func (s *CurrencyServiceTestSuite) TestCreateCurrencyRejectsDuplicateCode() {
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "USD").
		Return(&domain.Currency{CurrencyID: "cur-usd", Code: "USD"}, nil)

	_, err := s.service.CreateCurrency(s.ctx, dto.CreateCurrencyRequest{
		Code:   "USD",
		Symbol: "$",
		Name:   "US Dollar",
	}, "user-1")

	s.Require().Error(err)
	s.ErrorIs(err, apperrors.ErrValidation)
	s.currencyRepo.AssertNotCalled(s.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (s *CurrencyServiceTestSuite) TestGetCurrencyByCodeUppercases() {
	currency := &domain.Currency{CurrencyID: "cur-eur", Code: "EUR"}
	s.currencyRepo.On("FindCurrencyByCode", s.ctx, "EUR").Return(currency, nil)

	got, err := s.service.GetCurrencyByCode(s.ctx, "eur")

	s.Require().NoError(err)
	s.Equal("EUR", got.Code)
}

func (s *CurrencyServiceTestSuite) TestUpdateCurrencyKeepsCodeImmutable() {
	existing := &domain.Currency{CurrencyID: "cur-usd", Code: "USD", Symbol: "$", Name: "US Dollar", IsActive: true}
	s.currencyRepo.On("FindCurrencyByID", s.ctx, "cur-usd").Return(existing, nil)

	var updated domain.Currency
	s.currencyRepo.On("UpdateCurrency", s.ctx, mock.AnythingOfType("domain.Currency")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.Currency) }).
		Return(nil)
	s.audit.On("Record", s.ctx, mock.Anything).Return()

	newName := "United States Dollar"
	currency, err := s.service.UpdateCurrency(s.ctx, "cur-usd", dto.UpdateCurrencyRequest{Name: &newName}, "user-1")

	s.Require().NoError(err)
	s.Equal("USD", currency.Code)
	s.Equal(newName, currency.Name)
	s.Equal("USD", updated.Code)
}
