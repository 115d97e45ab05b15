package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portsrepo "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/repositories"
	"github.com/lgu-treasury/rpt_ledger_app/internal/models"
	"github.com/lgu-treasury/rpt_ledger_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

type PgxRateRepository struct {
	BaseRepository
}

// newPgxRateRepository creates the repository for the rate reference tables.
func newPgxRateRepository(pool *pgxpool.Pool) portsrepo.RateRepository {
	return &PgxRateRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RateRepository = (*PgxRateRepository)(nil)

// PenaltyRate returns the global monthly penalty interest rate. The table
// carries a single effective row; when it is absent the statutory default of
// 2% per month applies.
func (r *PgxRateRepository) PenaltyRate(ctx context.Context) (decimal.Decimal, error) {
	var rate decimal.Decimal
	err := r.Pool.QueryRow(ctx, `
		SELECT rate FROM penalty_rate
		ORDER BY tag
		LIMIT 1;
	`).Scan(&rate)
	if err != nil {
		if errNoRows(err) {
			return domain.DefaultPenaltyRate, nil
		}
		return decimal.Zero, apperrors.NewAppError(500, "failed to query penalty rate", err)
	}
	return rate, nil
}

// DiscountRates returns the bucketed discount rates whose year range covers
// the given as-of year. Buckets with no row stay absent and read as zero.
func (r *PgxRateRepository) DiscountRates(ctx context.Context, year int) (domain.DiscountRateTable, error) {
	rows, err := r.Pool.Query(ctx, `
		SELECT year_from, year_to, discount_month, interest_rate
		FROM discount_rate
		WHERE year_from <= $1 AND year_to >= $1;
	`, year)
	if err != nil {
		return domain.DiscountRateTable{}, apperrors.NewAppError(500, "failed to query discount rates", err)
	}
	defer rows.Close()

	rates := make(map[domain.DiscountBucket]decimal.Decimal)
	for rows.Next() {
		var m models.DiscountRate
		if err := rows.Scan(&m.YearFrom, &m.YearTo, &m.DiscountMonth, &m.InterestRate); err != nil {
			return domain.DiscountRateTable{}, apperrors.NewAppError(500, "failed to scan discount rate row", err)
		}
		d := mapping.ToDomainDiscountRate(m)
		rates[d.Bucket] = d.Rate
	}
	if err := rows.Err(); err != nil {
		return domain.DiscountRateTable{}, apperrors.NewAppError(500, "error iterating discount rate rows", err)
	}

	return domain.NewDiscountRateTable(rates), nil
}
