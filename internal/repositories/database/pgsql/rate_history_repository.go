package pgsql

import (
	"context"
	"fmt"
	"strings"

	"github.com/dalpho/currency_exchange_app/internal/core/domain"
	portsrepo "github.com/dalpho/currency_exchange_app/internal/core/ports/repositories"
	"github.com/dalpho/currency_exchange_app/internal/models"
	"github.com/dalpho/currency_exchange_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const rateHistoryColumns = `rate_history_id, exchange_rate_id, from_currency_id, to_currency_id, old_rate, new_rate, changed_by, change_reason, created_at`

type PgxRateHistoryRepository struct {
	BaseRepository
}

// newPgxRateHistoryRepository creates a new read-only repository over the
// rate transition ledger. Inserts happen through the exchange rate
// repository's transactions.
func newPgxRateHistoryRepository(pool *pgxpool.Pool) portsrepo.RateHistoryRepository {
	return &PgxRateHistoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.RateHistoryRepository = (*PgxRateHistoryRepository)(nil)

func scanRateHistory(row pgx.Row) (models.RateHistory, error) {
	var entry models.RateHistory
	err := row.Scan(
		&entry.RateHistoryID,
		&entry.ExchangeRateID,
		&entry.FromCurrencyID,
		&entry.ToCurrencyID,
		&entry.OldRate,
		&entry.NewRate,
		&entry.ChangedBy,
		&entry.ChangeReason,
		&entry.CreatedAt,
	)
	return entry, err
}

// ListByRateID returns the ledger of one quote, most recent first.
func (r *PgxRateHistoryRepository) ListByRateID(ctx context.Context, exchangeRateID string, page, pageSize int) ([]domain.RateHistory, int, error) {
	return r.listPaged(ctx, []string{"exchange_rate_id = $1"}, []interface{}{exchangeRateID}, page, pageSize)
}

// ListByPair returns ledger entries for a currency pair, optionally limited
// to the last days days, most recent first.
func (r *PgxRateHistoryRepository) ListByPair(ctx context.Context, fromCurrencyID, toCurrencyID string, days, page, pageSize int) ([]domain.RateHistory, int, error) {
	conditions := []string{"from_currency_id = $1", "to_currency_id = $2"}
	args := []interface{}{fromCurrencyID, toCurrencyID}
	if days > 0 {
		args = append(args, days)
		conditions = append(conditions, fmt.Sprintf("created_at >= NOW() - make_interval(days => $%d)", len(args)))
	}
	return r.listPaged(ctx, conditions, args, page, pageSize)
}

// ListByAgent returns entries recorded by one acting agent, most recent first.
func (r *PgxRateHistoryRepository) ListByAgent(ctx context.Context, agentID string, page, pageSize int) ([]domain.RateHistory, int, error) {
	return r.listPaged(ctx, []string{"changed_by = $1"}, []interface{}{agentID}, page, pageSize)
}

// ListRecent returns entries across all pairs from the last days days.
func (r *PgxRateHistoryRepository) ListRecent(ctx context.Context, days, page, pageSize int) ([]domain.RateHistory, int, error) {
	conditions := []string{}
	args := []interface{}{}
	if days > 0 {
		args = append(args, days)
		conditions = append(conditions, fmt.Sprintf("created_at >= NOW() - make_interval(days => $%d)", len(args)))
	}
	return r.listPaged(ctx, conditions, args, page, pageSize)
}

// ListForStats returns the full filtered set without pagination, most recent
// first, for in-memory aggregation.
func (r *PgxRateHistoryRepository) ListForStats(ctx context.Context, filter portsrepo.HistoryStatsFilter) ([]domain.RateHistory, error) {
	conditions := []string{}
	args := []interface{}{}
	if filter.FromCurrencyID != "" && filter.ToCurrencyID != "" {
		args = append(args, filter.FromCurrencyID)
		conditions = append(conditions, fmt.Sprintf("from_currency_id = $%d", len(args)))
		args = append(args, filter.ToCurrencyID)
		conditions = append(conditions, fmt.Sprintf("to_currency_id = $%d", len(args)))
	}
	if filter.Days > 0 {
		args = append(args, filter.Days)
		conditions = append(conditions, fmt.Sprintf("created_at >= NOW() - make_interval(days => $%d)", len(args)))
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM exchange_rate_history
		%s
		ORDER BY created_at DESC;
	`, rateHistoryColumns, whereOf(conditions))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for stats: %w", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RateHistory, error) {
		return scanRateHistory(row)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan history for stats: %w", err)
	}

	return mapping.ToDomainRateHistorySlice(modelEntries), nil
}

func (r *PgxRateHistoryRepository) listPaged(ctx context.Context, conditions []string, args []interface{}, page, pageSize int) ([]domain.RateHistory, int, error) {
	whereClause := whereOf(conditions)

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM exchange_rate_history %s;`, whereClause)
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count history entries: %w", err)
	}

	offset := (page - 1) * pageSize
	listQuery := fmt.Sprintf(`
		SELECT %s
		FROM exchange_rate_history
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d;
	`, rateHistoryColumns, whereClause, len(args)+1, len(args)+2)
	args = append(args, pageSize, offset)

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query history entries: %w", err)
	}
	defer rows.Close()

	modelEntries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.RateHistory, error) {
		return scanRateHistory(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan history entries: %w", err)
	}

	return mapping.ToDomainRateHistorySlice(modelEntries), total, nil
}

func whereOf(conditions []string) string {
	if len(conditions) == 0 {
		return ""
	}
	return "WHERE " + strings.Join(conditions, " AND ")
}
