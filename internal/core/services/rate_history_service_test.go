package services_test

import (
	"context"
	"testing"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock RateHistoryRepository ---
type MockRateHistoryRepository struct {
	mock.Mock
}

func (m *MockRateHistoryRepository) ListByRateID(ctx context.Context, exchangeRateID string, page, pageSize int) ([]domain.RateHistory, int, error) {
	args := m.Called(ctx, exchangeRateID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RateHistory), args.Int(1), args.Error(2)
}

func (m *MockRateHistoryRepository) ListByPair(ctx context.Context, fromCurrencyID, toCurrencyID string, days, page, pageSize int) ([]domain.RateHistory, int, error) {
	args := m.Called(ctx, fromCurrencyID, toCurrencyID, days, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RateHistory), args.Int(1), args.Error(2)
}

func (m *MockRateHistoryRepository) ListByAgent(ctx context.Context, agentID string, page, pageSize int) ([]domain.RateHistory, int, error) {
	args := m.Called(ctx, agentID, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RateHistory), args.Int(1), args.Error(2)
}

func (m *MockRateHistoryRepository) ListRecent(ctx context.Context, days, page, pageSize int) ([]domain.RateHistory, int, error) {
	args := m.Called(ctx, days, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.RateHistory), args.Int(1), args.Error(2)
}

func (m *MockRateHistoryRepository) ListForStats(ctx context.Context, filter portsrepo.HistoryStatsFilter) ([]domain.RateHistory, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RateHistory), args.Error(1)
}

// --- Test Suite ---
type RateHistoryServiceTestSuite struct {
	suite.Suite
	mockHistoryRepo *MockRateHistoryRepository
	mockCurrencySvc *MockCurrencyService
	service         portssvc.RateHistorySvcFacade
}

func (suite *RateHistoryServiceTestSuite) SetupTest() {
	suite.mockHistoryRepo = new(MockRateHistoryRepository)
	suite.mockCurrencySvc = new(MockCurrencyService)
	suite.service = services.NewRateHistoryService(suite.mockHistoryRepo, suite.mockCurrencySvc)
}

// --- Test Cases ---

func (suite *RateHistoryServiceTestSuite) TestListHistoryByRate_NormalizesPaging() {
	ctx := context.Background()
	rateID := uuid.NewString()
	entries := []domain.RateHistory{{RateHistoryID: uuid.NewString(), ExchangeRateID: rateID}}

	suite.mockHistoryRepo.On("ListByRateID", ctx, rateID, 1, 20).Return(entries, 1, nil).Once()

	got, total, err := suite.service.ListHistoryByRate(ctx, rateID, 0, -3)

	suite.Require().NoError(err)
	suite.Equal(entries, got)
	suite.Equal(1, total)
	suite.mockHistoryRepo.AssertExpectations(suite.T())
}

func (suite *RateHistoryServiceTestSuite) TestListHistoryByPair_ResolvesCodes() {
	ctx := context.Background()
	from := &domain.Currency{CurrencyID: uuid.NewString(), Code: "EUR"}
	to := &domain.Currency{CurrencyID: uuid.NewString(), Code: "GNF"}
	entries := []domain.RateHistory{
		{FromCurrencyID: from.CurrencyID, ToCurrencyID: to.CurrencyID, NewRate: decimal.NewFromInt(10800)},
	}

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "EUR").Return(from, nil).Once()
	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "GNF").Return(to, nil).Once()
	suite.mockHistoryRepo.On("ListByPair", ctx, from.CurrencyID, to.CurrencyID, 30, 1, 20).Return(entries, 1, nil).Once()

	got, total, err := suite.service.ListHistoryByPair(ctx, "EUR", "GNF", 30, 1, 20)

	suite.Require().NoError(err)
	suite.Equal(entries, got)
	suite.Equal(1, total)
	suite.mockHistoryRepo.AssertExpectations(suite.T())
	suite.mockCurrencySvc.AssertExpectations(suite.T())
}

func (suite *RateHistoryServiceTestSuite) TestListHistoryByPair_UnknownCurrency() {
	ctx := context.Background()

	suite.mockCurrencySvc.On("GetCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	got, total, err := suite.service.ListHistoryByPair(ctx, "ZZZ", "GNF", 30, 1, 20)

	suite.Require().Error(err)
	suite.Nil(got)
	suite.Equal(0, total)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockHistoryRepo.AssertNotCalled(suite.T(), "ListByPair")
}

func (suite *RateHistoryServiceTestSuite) TestListRecentHistory() {
	ctx := context.Background()
	entries := []domain.RateHistory{{RateHistoryID: uuid.NewString()}}

	suite.mockHistoryRepo.On("ListRecent", ctx, 7, 1, 20).Return(entries, 1, nil).Once()

	got, total, err := suite.service.ListRecentHistory(ctx, 7, 1, 20)

	suite.Require().NoError(err)
	suite.Equal(entries, got)
	suite.Equal(1, total)
}

func (suite *RateHistoryServiceTestSuite) TestGetHistoryStats() {
	ctx := context.Background()
	filter := portsrepo.HistoryStatsFilter{Days: 30}
	entries := []domain.RateHistory{
		{NewRate: decimal.NewFromInt(10800)},
		{NewRate: decimal.NewFromInt(10700)},
	}

	suite.mockHistoryRepo.On("ListForStats", ctx, filter).Return(entries, nil).Once()

	stats, err := suite.service.GetHistoryStats(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().NotNil(stats)
	suite.Equal(2, stats.TotalChanges)
	suite.True(stats.LatestRate.Equal(decimal.NewFromInt(10800)))
	suite.True(stats.FirstRate.Equal(decimal.NewFromInt(10700)))
	suite.Require().NotNil(stats.TotalVariation)
	suite.True(stats.TotalVariation.Equal(decimal.NewFromInt(100)))
	suite.mockHistoryRepo.AssertExpectations(suite.T())
}

func (suite *RateHistoryServiceTestSuite) TestGetHistoryStats_EmptyLedger() {
	ctx := context.Background()
	filter := portsrepo.HistoryStatsFilter{}

	suite.mockHistoryRepo.On("ListForStats", ctx, filter).Return([]domain.RateHistory{}, nil).Once()

	stats, err := suite.service.GetHistoryStats(ctx, filter)

	suite.Require().NoError(err)
	suite.Require().NotNil(stats)
	suite.Equal(0, stats.TotalChanges)
	suite.Nil(stats.TotalVariation)
}

// --- Run Suite ---
func TestRateHistoryService(t *testing.T) {
	suite.Run(t, new(RateHistoryServiceTestSuite))
}
