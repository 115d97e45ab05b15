package domain

import "github.com/shopspring/decimal"

// DefaultPenaltyRate is the fallback monthly interest applied when the rate
// table has no row (2% per month).
var DefaultPenaltyRate = decimal.NewFromFloat(0.02)

// MaxPenaltyMonths caps accumulated penalty interest at 36 months.
const MaxPenaltyMonths = 36

// DiscountBucket identifies a row of the discount rate table. The numeric
// values are the legacy DISCOUNTMONTH codes.
type DiscountBucket int

const (
	BucketAnnualAdvance    DiscountBucket = 0
	BucketAnnualMonth1     DiscountBucket = 1
	BucketAnnualMonth2     DiscountBucket = 2
	BucketAnnualMonth3     DiscountBucket = 3
	BucketQuarterlyPrompt  DiscountBucket = 40
	BucketQuarterlyAdvance DiscountBucket = 41
)

// DiscountRateTable holds the per-bucket discount rates effective for one
// as-of year. Missing buckets carry a zero rate, which makes the computed
// discount zero and therefore never persisted.
type DiscountRateTable struct {
	rates map[DiscountBucket]decimal.Decimal
}

// NewDiscountRateTable builds a table from bucket rates.
func NewDiscountRateTable(rates map[DiscountBucket]decimal.Decimal) DiscountRateTable {
	if rates == nil {
		rates = map[DiscountBucket]decimal.Decimal{}
	}
	return DiscountRateTable{rates: rates}
}

// Rate returns the rate for a bucket, zero when unconfigured.
func (t DiscountRateTable) Rate(b DiscountBucket) decimal.Decimal {
	if r, ok := t.rates[b]; ok {
		return r
	}
	return decimal.Zero
}

// DiscountRate is one row of the discount reference table.
type DiscountRate struct {
	YearFrom int
	YearTo   int
	Bucket   DiscountBucket
	Rate     decimal.Decimal
}
