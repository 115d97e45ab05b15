package taxrules

import (
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PenaltyMonths returns the number of months of penalty interest accrued on a
// due from taxYear when evaluated at asOf. Months are counted in whole tax
// years, floored at one month for same-year lateness and capped at the
// statutory 36 months.
func PenaltyMonths(asOf domain.YearMonth, taxYear int) int {
	months := (asOf.Year - taxYear) * 12
	if months < 1 {
		months = 1
	}
	if months > domain.MaxPenaltyMonths {
		months = domain.MaxPenaltyMonths
	}
	return months
}

// PenaltyAmount computes penalty interest on base: base * rate * months,
// rounded to 2dp. A zero rate yields zero, which callers never persist.
func PenaltyAmount(asOf domain.YearMonth, taxYear int, base, rate decimal.Decimal) decimal.Decimal {
	months := decimal.NewFromInt(int64(PenaltyMonths(asOf, taxYear)))
	return base.Mul(rate).Mul(months).Round(2)
}

// DiscountAmount computes the discount on base for the given period. The rate
// bucket depends on timing: advance payment of an annual due uses the annual
// advance bucket, payment in month 1..3 of the tax year uses the matching
// annual month bucket, and the quarterly-advance period uses its advance or
// prompt bucket. Every other combination carries no configured rate and
// yields zero. Rounded to 2dp.
func DiscountAmount(asOf domain.YearMonth, taxYear int, period domain.TaxPeriod, base decimal.Decimal, table domain.DiscountRateTable) decimal.Decimal {
	var rate decimal.Decimal

	switch period {
	case domain.PeriodAnnual:
		switch {
		case asOf.Year < taxYear:
			rate = table.Rate(domain.BucketAnnualAdvance)
		case asOf.Month == 1:
			rate = table.Rate(domain.BucketAnnualMonth1)
		case asOf.Month == 2:
			rate = table.Rate(domain.BucketAnnualMonth2)
		case asOf.Month == 3:
			rate = table.Rate(domain.BucketAnnualMonth3)
		}
	case domain.PeriodQ1:
		if asOf.Year < taxYear {
			rate = table.Rate(domain.BucketQuarterlyAdvance)
		} else {
			rate = table.Rate(domain.BucketQuarterlyPrompt)
		}
	}

	return base.Mul(rate).Round(2)
}

// Amount computes the ledger magnitude for a classified due. It returns zero
// for EventNone and EventInvalid; callers skip non-positive amounts.
func Amount(event Event, asOf domain.YearMonth, taxYear int, period domain.TaxPeriod, base, penaltyRate decimal.Decimal, discounts domain.DiscountRateTable) decimal.Decimal {
	switch event {
	case EventPenalty:
		return PenaltyAmount(asOf, taxYear, base, penaltyRate)
	case EventDiscount:
		return DiscountAmount(asOf, taxYear, period, base, discounts)
	default:
		return decimal.Zero
	}
}
