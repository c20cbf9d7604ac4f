package services_test

import (
	"context"
	"testing"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/core/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) CreateRateWithHistory(ctx context.Context, rate domain.ExchangeRate, entry domain.RateHistory) error {
	args := m.Called(ctx, rate, entry)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) UpdateRateWithHistory(ctx context.Context, rate domain.ExchangeRate, entry *domain.RateHistory) error {
	args := m.Called(ctx, rate, entry)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) DeleteRate(ctx context.Context, rateID string) error {
	args := m.Called(ctx, rateID)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, rateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindCurrentRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCurrencyID, toCurrencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListCurrentRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListRates(ctx context.Context, filter portsrepo.ListRatesFilter, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, filter, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

// MockCurrencyService implements the CurrencySvcFacade interface.
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateCurrency(ctx context.Context, actorID string, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	args := m.Called(ctx, actorID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) UpdateCurrency(ctx context.Context, actorID string, currencyID string, req dto.UpdateCurrencyRequest) (*domain.Currency, error) {
	args := m.Called(ctx, actorID, currencyID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ToggleCurrencyActive(ctx context.Context, actorID string, currencyID string) (*domain.Currency, error) {
	args := m.Called(ctx, actorID, currencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) DeleteCurrency(ctx context.Context, actorID string, currencyID string) error {
	args := m.Called(ctx, actorID, currencyID)
	return args.Error(0)
}

// MockUserReader implements the UserSvcReader interface.
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserReader) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo    *MockExchangeRateRepository
	mockCurrencySvc *MockCurrencyService
	mockUserSvc     *MockUserReader
	service         portssvc.ExchangeRateSvcFacade
}

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.mockUserSvc = new(MockUserReader)
	suite.service = services.NewExchangeRateService(suite.mockRateRepo, suite.mockCurrencySvc, suite.mockUserSvc)
}

func (suite *ExchangeRateServiceTestSuite) activeCurrency(code string) *domain.Currency {
	return &domain.Currency{
		CurrencyID: uuid.NewString(),
		Code:       code,
		IsActive:   true,
	}
}

// --- Test Cases ---

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_Success() {
	ctx := context.Background()
	agentID := uuid.NewString()
	from := suite.activeCurrency("EUR")
	to := suite.activeCurrency("GNF")
	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: from.CurrencyID,
		ToCurrencyID:   to.CurrencyID,
		Rate:           decimal.NewFromInt(10700),
	}

	suite.mockCurrencySvc.On("GetCurrencyByID", ctx, from.CurrencyID).Return(from, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByID", ctx, to.CurrencyID).Return(to, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, agentID).Return(&domain.User{UserID: agentID, Role: domain.RoleAgent}, nil).Once()
	suite.mockRateRepo.On("CreateRateWithHistory", ctx,
		mock.AnythingOfType("domain.ExchangeRate"),
		mock.MatchedBy(func(entry domain.RateHistory) bool {
			return !entry.OldRate.Valid &&
				entry.NewRate.Equal(req.Rate) &&
				entry.ChangedBy == agentID &&
				entry.ChangeReason == domain.HistoryReasonCreation
		}),
	).Return(nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, agentID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.NotEmpty(rate.ExchangeRateID)
	suite.True(rate.IsCurrent)
	suite.True(rate.Rate.Equal(req.Rate))
	suite.True(rate.DayHigh.Equal(req.Rate))
	suite.True(rate.DayLow.Equal(req.Rate))
	suite.True(rate.ChangeAbs.IsZero())
	suite.Equal(domain.DirectionFlat, rate.Direction)
	suite.Equal(agentID, rate.AgentID)
	suite.Equal(agentID, rate.CreatedBy)

	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
	suite.mockUserSvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_MissingAgent() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: uuid.NewString(),
		ToCurrencyID:   uuid.NewString(),
		Rate:           decimal.NewFromInt(10700),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, "", req)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "acting agent is required")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "CreateRateWithHistory")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_InvalidRate() {
	ctx := context.Background()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: uuid.NewString(),
		ToCurrencyID:   uuid.NewString(),
		Rate:           decimal.Zero,
	}

	rate, err := suite.service.CreateExchangeRate(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "must be positive")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_SamePair() {
	ctx := context.Background()
	currencyID := uuid.NewString()
	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: currencyID,
		ToCurrencyID:   currencyID,
		Rate:           decimal.NewFromInt(1),
	}

	rate, err := suite.service.CreateExchangeRate(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "cannot be the same")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_InactiveCurrency() {
	ctx := context.Background()
	from := suite.activeCurrency("EUR")
	inactive := &domain.Currency{CurrencyID: uuid.NewString(), Code: "XOF", IsActive: false}
	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: from.CurrencyID,
		ToCurrencyID:   inactive.CurrencyID,
		Rate:           decimal.NewFromInt(10700),
	}

	suite.mockCurrencySvc.On("GetCurrencyByID", ctx, from.CurrencyID).Return(from, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByID", ctx, inactive.CurrencyID).Return(inactive, nil).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, uuid.NewString(), req)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.Contains(err.Error(), "inactive")
	suite.mockRateRepo.AssertNotCalled(suite.T(), "CreateRateWithHistory")
}

func (suite *ExchangeRateServiceTestSuite) TestCreateExchangeRate_UnknownAgent() {
	ctx := context.Background()
	agentID := uuid.NewString()
	from := suite.activeCurrency("EUR")
	to := suite.activeCurrency("GNF")
	req := dto.CreateExchangeRateRequest{
		FromCurrencyID: from.CurrencyID,
		ToCurrencyID:   to.CurrencyID,
		Rate:           decimal.NewFromInt(10700),
	}

	suite.mockCurrencySvc.On("GetCurrencyByID", ctx, from.CurrencyID).Return(from, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByID", ctx, to.CurrencyID).Return(to, nil).Once()
	suite.mockUserSvc.On("GetUserByID", ctx, agentID).Return(nil, apperrors.ErrNotFound).Once()

	rate, err := suite.service.CreateExchangeRate(ctx, agentID, req)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrReference)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "CreateRateWithHistory")
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_RateChangeAppendsEntry() {
	ctx := context.Background()
	agentID := uuid.NewString()
	existing := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrencyID: uuid.NewString(),
		ToCurrencyID:   uuid.NewString(),
		Rate:           decimal.NewFromInt(10700),
		IsCurrent:      true,
	}
	existing.InitializeStats()
	newRate := decimal.NewFromInt(10800)
	req := dto.UpdateExchangeRateRequest{Rate: &newRate}

	suite.mockRateRepo.On("FindRateByID", ctx, existing.ExchangeRateID).Return(existing, nil).Once()
	suite.mockRateRepo.On("UpdateRateWithHistory", ctx,
		mock.AnythingOfType("domain.ExchangeRate"),
		mock.MatchedBy(func(entry *domain.RateHistory) bool {
			return entry != nil &&
				entry.OldRate.Valid &&
				entry.OldRate.Decimal.Equal(decimal.NewFromInt(10700)) &&
				entry.NewRate.Equal(newRate) &&
				entry.ChangedBy == agentID &&
				entry.ChangeReason == domain.HistoryReasonRateUpdate
		}),
	).Return(nil).Once()

	rate, err := suite.service.UpdateExchangeRate(ctx, agentID, existing.ExchangeRateID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.True(rate.Rate.Equal(newRate))
	suite.True(rate.ChangeAbs.Equal(decimal.NewFromInt(100)))
	suite.True(rate.ChangePct.Round(4).Equal(decimal.RequireFromString("0.9346")))
	suite.Equal(domain.DirectionUp, rate.Direction)
	suite.True(rate.DayHigh.Equal(newRate))
	suite.True(rate.DayLow.Equal(decimal.NewFromInt(10700)))
	suite.Equal(agentID, rate.LastUpdatedBy)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_UnchangedRateAppendsNothing() {
	ctx := context.Background()
	agentID := uuid.NewString()
	existing := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		Rate:           decimal.NewFromInt(10700),
		IsCurrent:      true,
	}
	existing.InitializeStats()
	sameRate := decimal.NewFromInt(10700)
	req := dto.UpdateExchangeRateRequest{Rate: &sameRate}

	suite.mockRateRepo.On("FindRateByID", ctx, existing.ExchangeRateID).Return(existing, nil).Once()
	suite.mockRateRepo.On("UpdateRateWithHistory", ctx,
		mock.AnythingOfType("domain.ExchangeRate"),
		mock.MatchedBy(func(entry *domain.RateHistory) bool { return entry == nil }),
	).Return(nil).Once()

	rate, err := suite.service.UpdateExchangeRate(ctx, agentID, existing.ExchangeRateID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(rate)
	suite.Equal(domain.DirectionFlat, rate.Direction)
	suite.True(rate.ChangeAbs.IsZero())
	suite.True(rate.ChangePct.IsZero())
	suite.True(rate.DayHigh.Equal(sameRate))
	suite.True(rate.DayLow.Equal(sameRate))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestUpdateExchangeRate_InvalidNewRate() {
	ctx := context.Background()
	existing := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		Rate:           decimal.NewFromInt(10700),
	}
	existing.InitializeStats()
	badRate := decimal.NewFromInt(-5)
	req := dto.UpdateExchangeRateRequest{Rate: &badRate}

	suite.mockRateRepo.On("FindRateByID", ctx, existing.ExchangeRateID).Return(existing, nil).Once()

	rate, err := suite.service.UpdateExchangeRate(ctx, uuid.NewString(), existing.ExchangeRateID, req)

	suite.Require().Error(err)
	suite.Nil(rate)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "UpdateRateWithHistory")
}

func (suite *ExchangeRateServiceTestSuite) TestDeleteExchangeRate_MissingAgent() {
	ctx := context.Background()

	err := suite.service.DeleteExchangeRate(ctx, "", uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "DeleteRate")
}

func (suite *ExchangeRateServiceTestSuite) TestGetCurrentRate_Success() {
	ctx := context.Background()
	from := suite.activeCurrency("EUR")
	to := suite.activeCurrency("GNF")
	expected := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrencyID: from.CurrencyID,
		ToCurrencyID:   to.CurrencyID,
		Rate:           decimal.NewFromInt(10850),
		IsCurrent:      true,
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(from, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "GNF").Return(to, nil).Once()
	suite.mockRateRepo.On("FindCurrentRate", ctx, from.CurrencyID, to.CurrencyID).Return(expected, nil).Once()

	rate, err := suite.service.GetCurrentRate(ctx, "EUR", "GNF")

	suite.Require().NoError(err)
	suite.Equal(expected, rate)
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_Success() {
	ctx := context.Background()
	from := suite.activeCurrency("EUR")
	to := suite.activeCurrency("GNF")
	current := &domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrencyID: from.CurrencyID,
		ToCurrencyID:   to.CurrencyID,
		Rate:           decimal.NewFromInt(10850),
		IsCurrent:      true,
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(from, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "GNF").Return(to, nil).Once()
	suite.mockRateRepo.On("FindCurrentRate", ctx, from.CurrencyID, to.CurrencyID).Return(current, nil).Once()

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(100), "EUR", "GNF")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.ConvertedAmount.Equal(decimal.NewFromInt(1085000)))
	suite.True(result.Rate.Equal(current.Rate))
	suite.Equal("EUR", result.FromCurrency.Code)
	suite.Equal("GNF", result.ToCurrency.Code)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_NonPositiveAmount() {
	ctx := context.Background()

	result, err := suite.service.Convert(ctx, decimal.Zero, "EUR", "GNF")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestConvert_NoCurrentRate() {
	ctx := context.Background()
	from := suite.activeCurrency("EUR")
	to := suite.activeCurrency("XOF")

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(from, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "XOF").Return(to, nil).Once()
	suite.mockRateRepo.On("FindCurrentRate", ctx, from.CurrencyID, to.CurrencyID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.Convert(ctx, decimal.NewFromInt(100), "EUR", "XOF")

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.Contains(err.Error(), "no current rate")
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestListExchangeRates_NormalizesPaging() {
	ctx := context.Background()
	filter := portsrepo.ListRatesFilter{CurrentOnly: true}

	suite.mockRateRepo.On("ListRates", ctx, filter, 1, 20).Return([]domain.ExchangeRate{}, 0, nil).Once()

	_, total, err := suite.service.ListExchangeRates(ctx, filter, 0, 500)

	suite.Require().NoError(err)
	suite.Equal(0, total)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func TestNewExchangeRateService(t *testing.T) {
	service := services.NewExchangeRateService(new(MockExchangeRateRepository), new(MockCurrencyService), new(MockUserReader))
	assert.NotNil(t, service)
}

// --- Run Suite ---
func TestExchangeRateService(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
