package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	portssvc "github.com/dalpho/currency_exchange_app/internal/core/ports/services"
	"github.com/dalpho/currency_exchange_app/internal/dto"
	"github.com/google/uuid"
)

// currencyService provides business logic for the currency catalog.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepository
}

// NewCurrencyService creates a new currency service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepository) portssvc.CurrencySvcFacade {
	return &currencyService{currencyRepo: currencyRepo}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

// CreateCurrency registers a new currency. Marking it base demotes any
// previous base currency inside the repository transaction.
func (s *currencyService) CreateCurrency(ctx context.Context, actorID string, req dto.CreateCurrencyRequest) (*domain.Currency, error) {
	now := time.Now()
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	currency := domain.Currency{
		CurrencyID: uuid.NewString(),
		Code:       strings.ToUpper(req.Code),
		Name:       req.Name,
		Symbol:     req.Symbol,
		IsActive:   isActive,
		IsBase:     req.IsBase,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	if err := s.currencyRepo.CreateCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "failed to create currency", slog.String("code", currency.Code))
		return nil, fmt.Errorf("failed to create currency: %w", err)
	}

	s.LogInfo(ctx, "currency created", slog.String("currency_id", currency.CurrencyID), slog.String("code", currency.Code))
	return &currency, nil
}

// UpdateCurrency applies a partial update to a currency.
func (s *currencyService) UpdateCurrency(ctx context.Context, actorID string, currencyID string, req dto.UpdateCurrencyRequest) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		currency.Name = *req.Name
	}
	if req.Symbol != nil {
		currency.Symbol = *req.Symbol
	}
	if req.IsActive != nil {
		currency.IsActive = *req.IsActive
	}
	if req.IsBase != nil {
		currency.IsBase = *req.IsBase
	}
	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = actorID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "failed to update currency", slog.String("currency_id", currencyID))
		return nil, fmt.Errorf("failed to update currency: %w", err)
	}

	return currency, nil
}

// ToggleCurrencyActive flips the active flag on a currency. The base currency
// may not be deactivated.
func (s *currencyService) ToggleCurrencyActive(ctx context.Context, actorID string, currencyID string) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return nil, err
	}
	if currency.IsBase && currency.IsActive {
		return nil, fmt.Errorf("%w: cannot deactivate the base currency", apperrors.ErrConflict)
	}

	currency.IsActive = !currency.IsActive
	currency.LastUpdatedAt = time.Now()
	currency.LastUpdatedBy = actorID

	if err := s.currencyRepo.UpdateCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "failed to toggle currency", slog.String("currency_id", currencyID))
		return nil, fmt.Errorf("failed to toggle currency: %w", err)
	}

	return currency, nil
}

// DeleteCurrency removes a currency unless exchange rates still reference it.
func (s *currencyService) DeleteCurrency(ctx context.Context, actorID string, currencyID string) error {
	currency, err := s.currencyRepo.FindCurrencyByID(ctx, currencyID)
	if err != nil {
		return err
	}
	if currency.IsBase {
		return fmt.Errorf("%w: cannot delete the base currency", apperrors.ErrConflict)
	}

	referenced, err := s.currencyRepo.IsReferencedByRates(ctx, currencyID)
	if err != nil {
		return fmt.Errorf("failed to check currency references: %w", err)
	}
	if referenced {
		return fmt.Errorf("%w: currency is referenced by exchange rates", apperrors.ErrConflict)
	}

	if err := s.currencyRepo.DeleteCurrency(ctx, currencyID); err != nil {
		s.LogError(ctx, err, "failed to delete currency", slog.String("currency_id", currencyID))
		return err
	}

	s.LogInfo(ctx, "currency deleted", slog.String("currency_id", currencyID), slog.String("deleted_by", actorID))
	return nil
}

// GetCurrencyByID retrieves a currency by its ID.
func (s *currencyService) GetCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByID(ctx, currencyID)
}

// GetCurrencyByCode retrieves a currency by its code, case-insensitively.
func (s *currencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	return s.currencyRepo.FindCurrencyByCode(ctx, strings.ToUpper(code))
}

// GetBaseCurrency retrieves the currency flagged as base.
func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	return s.currencyRepo.FindBaseCurrency(ctx)
}

// ListCurrencies returns all currencies, base currency first.
func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListCurrencies(ctx)
}

// ListActiveCurrencies returns currencies available for quoting.
func (s *currencyService) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	return s.currencyRepo.ListActiveCurrencies(ctx)
}
