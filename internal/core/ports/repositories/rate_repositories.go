package repositories

import (
	"context"

	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RateRepository defines read-only lookups over the penalty and discount rate
// reference tables.
type RateRepository interface {
	// PenaltyRate returns the global monthly penalty interest rate. When the
	// table has no row it returns domain.DefaultPenaltyRate.
	PenaltyRate(ctx context.Context) (decimal.Decimal, error)

	// DiscountRates returns the bucketed discount rates effective for the
	// given as-of year. Buckets with no row carry a zero rate.
	DiscountRates(ctx context.Context, year int) (domain.DiscountRateTable, error)
}
