package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// exchangeRateService provides business logic for quotes and the rate
// transition ledger. Every value-changing write goes through the repository's
// transactional methods so the ledger never misses an entry.
type exchangeRateService struct {
	BaseService
	rateRepo    portsrepo.ExchangeRateRepository
	currencySvc portssvc.CurrencySvcFacade
	userSvc     portssvc.UserSvcReader
}

// NewExchangeRateService creates a new exchange rate service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepository, currencySvc portssvc.CurrencySvcFacade, userSvc portssvc.UserSvcReader) portssvc.ExchangeRateSvcFacade {
	return &exchangeRateService{
		rateRepo:    rateRepo,
		currencySvc: currencySvc,
		userSvc:     userSvc,
	}
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

// CreateExchangeRate publishes a new quote for a pair. The previous current
// quote of the pair is demoted in the same transaction and a creation entry
// (old rate null) is appended to the ledger.
func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, agentID string, req dto.CreateExchangeRateRequest) (*domain.ExchangeRate, error) {
	if agentID == "" {
		return nil, fmt.Errorf("%w: acting agent is required", apperrors.ErrValidation)
	}
	if req.Rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	if req.FromCurrencyID == req.ToCurrencyID {
		return nil, fmt.Errorf("%w: from and to currencies cannot be the same", apperrors.ErrValidation)
	}
	if req.BuyRate != nil && req.BuyRate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: buy rate must be positive", apperrors.ErrValidation)
	}

	if err := s.validateCurrency(ctx, req.FromCurrencyID, "from"); err != nil {
		return nil, err
	}
	if err := s.validateCurrency(ctx, req.ToCurrencyID, "to"); err != nil {
		return nil, err
	}
	if _, err := s.userSvc.GetUserByID(ctx, agentID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: acting agent %s not found", apperrors.ErrReference, agentID)
		}
		return nil, fmt.Errorf("failed to validate acting agent: %w", err)
	}

	now := time.Now()
	effectiveDate := now
	if req.EffectiveDate != nil {
		effectiveDate = *req.EffectiveDate
	}

	rate := domain.ExchangeRate{
		ExchangeRateID: uuid.NewString(),
		FromCurrencyID: req.FromCurrencyID,
		ToCurrencyID:   req.ToCurrencyID,
		Rate:           req.Rate,
		AgentID:        agentID,
		EffectiveDate:  effectiveDate,
		IsCurrent:      true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     agentID,
			LastUpdatedAt: now,
			LastUpdatedBy: agentID,
		},
	}
	if req.BuyRate != nil {
		rate.BuyRate = decimal.NewNullDecimal(*req.BuyRate)
	}
	rate.InitializeStats()

	entry := domain.RateHistory{
		RateHistoryID:  uuid.NewString(),
		ExchangeRateID: rate.ExchangeRateID,
		FromCurrencyID: rate.FromCurrencyID,
		ToCurrencyID:   rate.ToCurrencyID,
		NewRate:        rate.Rate,
		ChangedBy:      agentID,
		ChangeReason:   domain.HistoryReasonCreation,
		CreatedAt:      now,
	}

	if err := s.rateRepo.CreateRateWithHistory(ctx, rate, entry); err != nil {
		s.LogError(ctx, err, "failed to create exchange rate",
			slog.String("from_currency_id", rate.FromCurrencyID),
			slog.String("to_currency_id", rate.ToCurrencyID))
		return nil, fmt.Errorf("failed to create exchange rate: %w", err)
	}

	s.LogInfo(ctx, "exchange rate created",
		slog.String("exchange_rate_id", rate.ExchangeRateID),
		slog.String("rate", rate.Rate.String()),
		slog.String("agent_id", agentID))
	return &rate, nil
}

// UpdateExchangeRate revises a quote in place. An unchanged rate is a no-op
// for the derived statistics and appends nothing to the ledger.
func (s *exchangeRateService) UpdateExchangeRate(ctx context.Context, agentID string, exchangeRateID string, req dto.UpdateExchangeRateRequest) (*domain.ExchangeRate, error) {
	if agentID == "" {
		return nil, fmt.Errorf("%w: acting agent is required", apperrors.ErrValidation)
	}

	rate, err := s.rateRepo.FindRateByID(ctx, exchangeRateID)
	if err != nil {
		return nil, err
	}

	var entry *domain.RateHistory
	now := time.Now()

	if req.Rate != nil && !req.Rate.Equal(rate.Rate) {
		if req.Rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
		}
		oldRate := rate.Rate
		rate.ApplyRateChange(*req.Rate)
		entry = &domain.RateHistory{
			RateHistoryID:  uuid.NewString(),
			ExchangeRateID: rate.ExchangeRateID,
			FromCurrencyID: rate.FromCurrencyID,
			ToCurrencyID:   rate.ToCurrencyID,
			OldRate:        decimal.NewNullDecimal(oldRate),
			NewRate:        rate.Rate,
			ChangedBy:      agentID,
			ChangeReason:   domain.HistoryReasonRateUpdate,
			CreatedAt:      now,
		}
	}

	if req.BuyRate != nil {
		if req.BuyRate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: buy rate must be positive", apperrors.ErrValidation)
		}
		rate.BuyRate = decimal.NewNullDecimal(*req.BuyRate)
	}
	if req.EffectiveDate != nil {
		rate.EffectiveDate = *req.EffectiveDate
	}
	rate.LastUpdatedAt = now
	rate.LastUpdatedBy = agentID

	if err := s.rateRepo.UpdateRateWithHistory(ctx, *rate, entry); err != nil {
		s.LogError(ctx, err, "failed to update exchange rate", slog.String("exchange_rate_id", exchangeRateID))
		return nil, fmt.Errorf("failed to update exchange rate: %w", err)
	}

	if entry != nil {
		s.LogInfo(ctx, "exchange rate revised",
			slog.String("exchange_rate_id", exchangeRateID),
			slog.String("new_rate", rate.Rate.String()),
			slog.String("direction", string(rate.Direction)),
			slog.String("agent_id", agentID))
	}
	return rate, nil
}

// DeleteExchangeRate removes a quote. Ledger entries for the quote survive.
func (s *exchangeRateService) DeleteExchangeRate(ctx context.Context, agentID string, exchangeRateID string) error {
	if agentID == "" {
		return fmt.Errorf("%w: acting agent is required", apperrors.ErrValidation)
	}
	if err := s.rateRepo.DeleteRate(ctx, exchangeRateID); err != nil {
		return err
	}
	s.LogInfo(ctx, "exchange rate deleted", slog.String("exchange_rate_id", exchangeRateID), slog.String("agent_id", agentID))
	return nil
}

// GetExchangeRateByID retrieves a quote by its ID.
func (s *exchangeRateService) GetExchangeRateByID(ctx context.Context, exchangeRateID string) (*domain.ExchangeRate, error) {
	return s.rateRepo.FindRateByID(ctx, exchangeRateID)
}

// GetCurrentRate retrieves the effective current quote for a pair of
// currency codes.
func (s *exchangeRateService) GetCurrentRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	from, err := s.currencySvc.GetCurrencyByCode(ctx, fromCode)
	if err != nil {
		return nil, err
	}
	to, err := s.currencySvc.GetCurrencyByCode(ctx, toCode)
	if err != nil {
		return nil, err
	}
	return s.rateRepo.FindCurrentRate(ctx, from.CurrencyID, to.CurrencyID)
}

// ListCurrentRates returns the current quote of every pair.
func (s *exchangeRateService) ListCurrentRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	return s.rateRepo.ListCurrentRates(ctx)
}

// ListExchangeRates returns a filtered, paginated list of quotes.
func (s *exchangeRateService) ListExchangeRates(ctx context.Context, filter portsrepo.ListRatesFilter, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return s.rateRepo.ListRates(ctx, filter, page, pageSize)
}

// Convert applies the current rate of the pair to an amount. Only the direct
// pair is consulted; there is no inverse or cross-rate fallback.
func (s *exchangeRateService) Convert(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (*portssvc.ConversionResult, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", apperrors.ErrValidation)
	}

	from, err := s.currencySvc.GetCurrencyByCode(ctx, fromCode)
	if err != nil {
		return nil, err
	}
	to, err := s.currencySvc.GetCurrencyByCode(ctx, toCode)
	if err != nil {
		return nil, err
	}

	rate, err := s.rateRepo.FindCurrentRate(ctx, from.CurrencyID, to.CurrencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no current rate for pair %s/%s", apperrors.ErrNotFound, from.Code, to.Code)
		}
		return nil, err
	}

	return &portssvc.ConversionResult{
		Amount:          amount,
		FromCurrency:    *from,
		ToCurrency:      *to,
		Rate:            rate.Rate,
		ConvertedAmount: rate.Convert(amount),
	}, nil
}

func (s *exchangeRateService) validateCurrency(ctx context.Context, currencyID, side string) error {
	currency, err := s.currencySvc.GetCurrencyByID(ctx, currencyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return fmt.Errorf("%w: '%s' currency %s not found", apperrors.ErrValidation, side, currencyID)
		}
		return fmt.Errorf("failed to validate '%s' currency %s: %w", side, currencyID, err)
	}
	if !currency.IsActive {
		return fmt.Errorf("%w: '%s' currency %s is inactive", apperrors.ErrValidation, side, currency.Code)
	}
	return nil
}
