package services_test

import (
	"context"
	"testing"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/core/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) CreateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) DeleteCurrency(ctx context.Context, currencyID string) error {
	args := m.Called(ctx, currencyID)
	return args.Error(0)
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

func (m *MockCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) IsReferencedByRates(ctx context.Context, currencyID string) (bool, error) {
	args := m.Called(ctx, currencyID)
	return args.Bool(0), args.Error(1)
}

// --- Test Suite ---
type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  portssvc.CurrencySvcFacade
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	actorID := uuid.NewString()
	req := dto.CreateCurrencyRequest{
		Code:   "gnf",
		Name:   "Guinean Franc",
		Symbol: "FG",
	}

	suite.mockRepo.On("CreateCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.Code == "GNF" && c.IsActive && !c.IsBase && c.CreatedBy == actorID
	})).Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, actorID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(currency)
	suite.NotEmpty(currency.CurrencyID)
	suite.Equal("GNF", currency.Code)
	suite.True(currency.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Duplicate() {
	ctx := context.Background()
	req := dto.CreateCurrencyRequest{Code: "EUR", Name: "Euro", Symbol: "€"}

	suite.mockRepo.On("CreateCurrency", ctx, mock.AnythingOfType("domain.Currency")).
		Return(apperrors.ErrDuplicate).Once()

	currency, err := suite.service.CreateCurrency(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestUpdateCurrency_PromoteToBase() {
	ctx := context.Background()
	actorID := uuid.NewString()
	existing := &domain.Currency{
		CurrencyID: uuid.NewString(),
		Code:       "GNF",
		Name:       "Guinean Franc",
		IsActive:   true,
	}
	isBase := true
	req := dto.UpdateCurrencyRequest{IsBase: &isBase}

	suite.mockRepo.On("FindCurrencyByID", ctx, existing.CurrencyID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return c.IsBase && c.LastUpdatedBy == actorID
	})).Return(nil).Once()

	currency, err := suite.service.UpdateCurrency(ctx, actorID, existing.CurrencyID, req)

	suite.Require().NoError(err)
	suite.True(currency.IsBase)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestToggleCurrencyActive() {
	ctx := context.Background()
	existing := &domain.Currency{
		CurrencyID: uuid.NewString(),
		Code:       "XOF",
		IsActive:   true,
	}

	suite.mockRepo.On("FindCurrencyByID", ctx, existing.CurrencyID).Return(existing, nil).Once()
	suite.mockRepo.On("UpdateCurrency", ctx, mock.MatchedBy(func(c domain.Currency) bool {
		return !c.IsActive
	})).Return(nil).Once()

	currency, err := suite.service.ToggleCurrencyActive(ctx, uuid.NewString(), existing.CurrencyID)

	suite.Require().NoError(err)
	suite.False(currency.IsActive)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_BaseCurrencyRejected() {
	ctx := context.Background()
	base := &domain.Currency{
		CurrencyID: uuid.NewString(),
		Code:       "GNF",
		IsBase:     true,
	}

	suite.mockRepo.On("FindCurrencyByID", ctx, base.CurrencyID).Return(base, nil).Once()

	err := suite.service.DeleteCurrency(ctx, uuid.NewString(), base.CurrencyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "base currency")
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCurrency")
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_ReferencedRejected() {
	ctx := context.Background()
	currency := &domain.Currency{
		CurrencyID: uuid.NewString(),
		Code:       "EUR",
	}

	suite.mockRepo.On("FindCurrencyByID", ctx, currency.CurrencyID).Return(currency, nil).Once()
	suite.mockRepo.On("IsReferencedByRates", ctx, currency.CurrencyID).Return(true, nil).Once()

	err := suite.service.DeleteCurrency(ctx, uuid.NewString(), currency.CurrencyID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.Contains(err.Error(), "referenced")
	suite.mockRepo.AssertNotCalled(suite.T(), "DeleteCurrency")
}

func (suite *CurrencyServiceTestSuite) TestDeleteCurrency_Success() {
	ctx := context.Background()
	currency := &domain.Currency{
		CurrencyID: uuid.NewString(),
		Code:       "XOF",
	}

	suite.mockRepo.On("FindCurrencyByID", ctx, currency.CurrencyID).Return(currency, nil).Once()
	suite.mockRepo.On("IsReferencedByRates", ctx, currency.CurrencyID).Return(false, nil).Once()
	suite.mockRepo.On("DeleteCurrency", ctx, currency.CurrencyID).Return(nil).Once()

	err := suite.service.DeleteCurrency(ctx, uuid.NewString(), currency.CurrencyID)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_UpperCasesInput() {
	ctx := context.Background()
	expected := &domain.Currency{CurrencyID: uuid.NewString(), Code: "EUR"}

	suite.mockRepo.On("FindCurrencyByCode", ctx, "EUR").Return(expected, nil).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "eur")

	suite.Require().NoError(err)
	suite.Equal(expected, currency)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CurrencyServiceTestSuite) TestGetBaseCurrency_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindBaseCurrency", ctx).Return(nil, apperrors.ErrNotFound).Once()

	currency, err := suite.service.GetBaseCurrency(ctx)

	suite.Require().Error(err)
	suite.Nil(currency)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- Run Suite ---
func TestCurrencyService(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
