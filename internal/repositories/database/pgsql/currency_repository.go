package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	"github.com/dalpho/currency_exchange_app/internal/models"
	"github.com/dalpho/currency_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const currencyColumns = `currency_id, code, name, symbol, is_active, is_base_currency, created_at, created_by, last_updated_at, last_updated_by`

type PgxCurrencyRepository struct {
	BaseRepository
}

// newPgxCurrencyRepository creates a new repository for the currency catalog.
func newPgxCurrencyRepository(pool *pgxpool.Pool) portsrepo.CurrencyRepository {
	return &PgxCurrencyRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.CurrencyRepository = (*PgxCurrencyRepository)(nil)

func scanCurrency(row pgx.Row) (models.Currency, error) {
	var currency models.Currency
	err := row.Scan(
		&currency.CurrencyID,
		&currency.Code,
		&currency.Name,
		&currency.Symbol,
		&currency.IsActive,
		&currency.IsBase,
		&currency.CreatedAt,
		&currency.CreatedBy,
		&currency.LastUpdatedAt,
		&currency.LastUpdatedBy,
	)
	return currency, err
}

// CreateCurrency inserts a new currency. When the currency is flagged as
// base, every previous base currency is demoted in the same transaction.
func (r *PgxCurrencyRepository) CreateCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if modelCurr.IsBase {
		if err := demoteBaseCurrencies(ctx, tx, modelCurr.LastUpdatedBy); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO currencies (` + currencyColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err = tx.Exec(ctx, query,
		modelCurr.CurrencyID,
		modelCurr.Code,
		modelCurr.Name,
		modelCurr.Symbol,
		modelCurr.IsActive,
		modelCurr.IsBase,
		modelCurr.CreatedAt,
		modelCurr.CreatedBy,
		modelCurr.LastUpdatedAt,
		modelCurr.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: currency with code %s already exists", apperrors.ErrDuplicate, modelCurr.Code)
		}
		return fmt.Errorf("failed to insert currency %s: %w", modelCurr.Code, err)
	}

	return r.Commit(ctx, tx)
}

// UpdateCurrency persists changes to an existing currency, applying the same
// base demotion rule when the currency becomes base.
func (r *PgxCurrencyRepository) UpdateCurrency(ctx context.Context, currency domain.Currency) error {
	modelCurr := mapping.ToModelCurrency(currency)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if modelCurr.IsBase {
		if err := demoteBaseCurrencies(ctx, tx, modelCurr.LastUpdatedBy); err != nil {
			return err
		}
	}

	query := `
		UPDATE currencies
		SET name = $2, symbol = $3, is_active = $4, is_base_currency = $5, last_updated_at = $6, last_updated_by = $7
		WHERE currency_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		modelCurr.CurrencyID,
		modelCurr.Name,
		modelCurr.Symbol,
		modelCurr.IsActive,
		modelCurr.IsBase,
		modelCurr.LastUpdatedAt,
		modelCurr.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update currency %s: %w", modelCurr.CurrencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return r.Commit(ctx, tx)
}

// demoteBaseCurrencies clears the base flag on every currency that carries it.
func demoteBaseCurrencies(ctx context.Context, tx pgx.Tx, actorID string) error {
	query := `
		UPDATE currencies
		SET is_base_currency = FALSE, last_updated_at = NOW(), last_updated_by = $1
		WHERE is_base_currency = TRUE;
	`
	if _, err := tx.Exec(ctx, query, actorID); err != nil {
		return fmt.Errorf("failed to demote base currencies: %w", err)
	}
	return nil
}

// DeleteCurrency removes a currency row.
func (r *PgxCurrencyRepository) DeleteCurrency(ctx context.Context, currencyID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM currencies WHERE currency_id = $1;`, currencyID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return fmt.Errorf("%w: currency %s is referenced by exchange rates", apperrors.ErrConflict, currencyID)
		}
		return fmt.Errorf("failed to delete currency %s: %w", currencyID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindCurrencyByID retrieves a currency by its ID.
func (r *PgxCurrencyRepository) FindCurrencyByID(ctx context.Context, currencyID string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE currency_id = $1;`
	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query, currencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by id %s: %w", currencyID, err)
	}
	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// FindCurrencyByCode retrieves a currency by its code.
func (r *PgxCurrencyRepository) FindCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE code = $1;`
	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find currency by code %s: %w", code, err)
	}
	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// FindBaseCurrency retrieves the single currency flagged as base.
func (r *PgxCurrencyRepository) FindBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_base_currency = TRUE;`
	modelCurr, err := scanCurrency(r.Pool.QueryRow(ctx, query))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find base currency: %w", err)
	}
	domainCurr := mapping.ToDomainCurrency(modelCurr)
	return &domainCurr, nil
}

// ListCurrencies retrieves all currencies, base currency first then by name.
func (r *PgxCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies ORDER BY is_base_currency DESC, name;`
	return r.listCurrencies(ctx, query)
}

// ListActiveCurrencies retrieves currencies available for quoting.
func (r *PgxCurrencyRepository) ListActiveCurrencies(ctx context.Context) ([]domain.Currency, error) {
	query := `SELECT ` + currencyColumns + ` FROM currencies WHERE is_active = TRUE ORDER BY is_base_currency DESC, name;`
	return r.listCurrencies(ctx, query)
}

func (r *PgxCurrencyRepository) listCurrencies(ctx context.Context, query string, args ...interface{}) ([]domain.Currency, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query currencies: %w", err)
	}
	defer rows.Close()

	modelCurrencies, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Currency, error) {
		return scanCurrency(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan currencies: %w", err)
	}

	return mapping.ToDomainCurrencySlice(modelCurrencies), nil
}

// IsReferencedByRates reports whether any exchange rate uses the currency on
// either side of a pair.
func (r *PgxCurrencyRepository) IsReferencedByRates(ctx context.Context, currencyID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM exchange_rates
			WHERE from_currency_id = $1 OR to_currency_id = $1
		);
	`
	var referenced bool
	if err := r.Pool.QueryRow(ctx, query, currencyID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check currency references for %s: %w", currencyID, err)
	}
	return referenced, nil
}
