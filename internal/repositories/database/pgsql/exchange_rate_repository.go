package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dalpho/currency_exchange_app/internal/apperrors"
	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	"github.com/dalpho/currency_exchange_app/internal/models"
	"github.com/dalpho/currency_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const exchangeRateColumns = `exchange_rate_id, from_currency_id, to_currency_id, rate, buy_rate, agent_id, effective_date, is_current, day_high, day_low, change_abs, change_pct, direction, created_at, created_by, last_updated_at, last_updated_by`

type PgxExchangeRateRepository struct {
	BaseRepository
}

// newPgxExchangeRateRepository creates a new repository for exchange rate quotes.
func newPgxExchangeRateRepository(pool *pgxpool.Pool) portsrepo.ExchangeRateRepository {
	return &PgxExchangeRateRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExchangeRateRepository = (*PgxExchangeRateRepository)(nil)

func scanExchangeRate(row pgx.Row) (models.ExchangeRate, error) {
	var rate models.ExchangeRate
	err := row.Scan(
		&rate.ExchangeRateID,
		&rate.FromCurrencyID,
		&rate.ToCurrencyID,
		&rate.Rate,
		&rate.BuyRate,
		&rate.AgentID,
		&rate.EffectiveDate,
		&rate.IsCurrent,
		&rate.DayHigh,
		&rate.DayLow,
		&rate.ChangeAbs,
		&rate.ChangePct,
		&rate.Direction,
		&rate.CreatedAt,
		&rate.CreatedBy,
		&rate.LastUpdatedAt,
		&rate.LastUpdatedBy,
	)
	return rate, err
}

// CreateRateWithHistory demotes any current quote for the pair, inserts the
// new current quote and appends its creation ledger entry, all in one
// transaction. The partial unique index on (from_currency_id, to_currency_id)
// WHERE is_current backs the demotion against concurrent writers.
func (r *PgxExchangeRateRepository) CreateRateWithHistory(ctx context.Context, rate domain.ExchangeRate, entry domain.RateHistory) error {
	modelRate := mapping.ToModelExchangeRate(rate)
	modelEntry := mapping.ToModelRateHistory(entry)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	demoteQuery := `
		UPDATE exchange_rates
		SET is_current = FALSE, last_updated_at = NOW(), last_updated_by = $3
		WHERE from_currency_id = $1 AND to_currency_id = $2 AND is_current = TRUE;
	`
	if _, err := tx.Exec(ctx, demoteQuery, modelRate.FromCurrencyID, modelRate.ToCurrencyID, modelRate.CreatedBy); err != nil {
		return fmt.Errorf("failed to demote current rate for pair %s/%s: %w", modelRate.FromCurrencyID, modelRate.ToCurrencyID, err)
	}

	insertQuery := `
		INSERT INTO exchange_rates (` + exchangeRateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, insertQuery,
		modelRate.ExchangeRateID,
		modelRate.FromCurrencyID,
		modelRate.ToCurrencyID,
		modelRate.Rate,
		modelRate.BuyRate,
		modelRate.AgentID,
		modelRate.EffectiveDate,
		modelRate.IsCurrent,
		modelRate.DayHigh,
		modelRate.DayLow,
		modelRate.ChangeAbs,
		modelRate.ChangePct,
		modelRate.Direction,
		modelRate.CreatedAt,
		modelRate.CreatedBy,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case "23505": // unique_violation
				return fmt.Errorf("%w: pair %s/%s already has a current rate", apperrors.ErrDuplicate, modelRate.FromCurrencyID, modelRate.ToCurrencyID)
			case "23503": // foreign_key_violation
				return fmt.Errorf("%w: %s", apperrors.ErrReference, pgErr.Detail)
			}
		}
		return fmt.Errorf("failed to insert exchange rate %s: %w", modelRate.ExchangeRateID, err)
	}

	if err := insertHistoryEntry(ctx, tx, modelEntry); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateRateWithHistory persists the revised quote and, when entry is
// non-nil, appends the ledger entry in the same transaction. It never touches
// the is_current flag of other rows.
func (r *PgxExchangeRateRepository) UpdateRateWithHistory(ctx context.Context, rate domain.ExchangeRate, entry *domain.RateHistory) error {
	modelRate := mapping.ToModelExchangeRate(rate)

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	query := `
		UPDATE exchange_rates
		SET rate = $2, buy_rate = $3, effective_date = $4, day_high = $5, day_low = $6,
			change_abs = $7, change_pct = $8, direction = $9, last_updated_at = $10, last_updated_by = $11
		WHERE exchange_rate_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		modelRate.ExchangeRateID,
		modelRate.Rate,
		modelRate.BuyRate,
		modelRate.EffectiveDate,
		modelRate.DayHigh,
		modelRate.DayLow,
		modelRate.ChangeAbs,
		modelRate.ChangePct,
		modelRate.Direction,
		modelRate.LastUpdatedAt,
		modelRate.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update exchange rate %s: %w", modelRate.ExchangeRateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	if entry != nil {
		if err := insertHistoryEntry(ctx, tx, mapping.ToModelRateHistory(*entry)); err != nil {
			return err
		}
	}

	return r.Commit(ctx, tx)
}

// insertHistoryEntry appends a row to the ledger inside the caller's transaction.
func insertHistoryEntry(ctx context.Context, tx pgx.Tx, entry models.RateHistory) error {
	query := `
		INSERT INTO exchange_rate_history (rate_history_id, exchange_rate_id, from_currency_id, to_currency_id, old_rate, new_rate, changed_by, change_reason, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		entry.RateHistoryID,
		entry.ExchangeRateID,
		entry.FromCurrencyID,
		entry.ToCurrencyID,
		entry.OldRate,
		entry.NewRate,
		entry.ChangedBy,
		entry.ChangeReason,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert history entry %s: %w", entry.RateHistoryID, err)
	}
	return nil
}

// DeleteRate hard-deletes a quote. Ledger rows reference the quote without a
// cascading foreign key and survive the deletion.
func (r *PgxExchangeRateRepository) DeleteRate(ctx context.Context, rateID string) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM exchange_rates WHERE exchange_rate_id = $1;`, rateID)
	if err != nil {
		return fmt.Errorf("failed to delete exchange rate %s: %w", rateID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindRateByID retrieves a quote by its ID.
func (r *PgxExchangeRateRepository) FindRateByID(ctx context.Context, rateID string) (*domain.ExchangeRate, error) {
	query := `SELECT ` + exchangeRateColumns + ` FROM exchange_rates WHERE exchange_rate_id = $1;`
	modelRate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, rateID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find exchange rate by id %s: %w", rateID, err)
	}
	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// FindCurrentRate returns the current quote for the pair whose effective date
// is not in the future, most recent effective date first.
func (r *PgxExchangeRateRepository) FindCurrentRate(ctx context.Context, fromCurrencyID, toCurrencyID string) (*domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE from_currency_id = $1 AND to_currency_id = $2 AND is_current = TRUE AND effective_date <= NOW()
		ORDER BY effective_date DESC
		LIMIT 1;
	`
	modelRate, err := scanExchangeRate(r.Pool.QueryRow(ctx, query, fromCurrencyID, toCurrencyID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find current rate for pair %s/%s: %w", fromCurrencyID, toCurrencyID, err)
	}
	domainRate := mapping.ToDomainExchangeRate(modelRate)
	return &domainRate, nil
}

// ListCurrentRates returns every current, effective quote.
func (r *PgxExchangeRateRepository) ListCurrentRates(ctx context.Context) ([]domain.ExchangeRate, error) {
	query := `
		SELECT ` + exchangeRateColumns + `
		FROM exchange_rates
		WHERE is_current = TRUE AND effective_date <= NOW()
		ORDER BY effective_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query current rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan current rates: %w", err)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), nil
}

// ListRates returns a page of quotes matching the filter, ordered by
// effective_date desc then created_at desc, plus the unpaginated total.
func (r *PgxExchangeRateRepository) ListRates(ctx context.Context, filter portsrepo.ListRatesFilter, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	conditions := []string{}
	args := []interface{}{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if filter.FromCurrencyID != nil {
		addCondition("from_currency_id = $%d", *filter.FromCurrencyID)
	}
	if filter.ToCurrencyID != nil {
		addCondition("to_currency_id = $%d", *filter.ToCurrencyID)
	}
	if filter.AgentID != nil {
		addCondition("agent_id = $%d", *filter.AgentID)
	}
	if filter.CurrentOnly {
		conditions = append(conditions, "is_current = TRUE")
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM exchange_rates %s;`, whereClause)
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchange rates: %w", err)
	}

	offset := (page - 1) * pageSize
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM exchange_rates
		%s
		ORDER BY effective_date DESC, created_at DESC
		LIMIT $%d OFFSET $%d;
	`, exchangeRateColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exchange rates: %w", err)
	}
	defer rows.Close()

	modelRates, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.ExchangeRate, error) {
		return scanExchangeRate(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan exchange rates: %w", err)
	}

	return mapping.ToDomainExchangeRateSlice(modelRates), total, nil
}
