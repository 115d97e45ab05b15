package models

import "github.com/shopspring/decimal"

// DiscountRate mirrors one row of the discount_rate reference table.
// DiscountMonth is the legacy bucket code (0 annual advance, 1..3 annual
// months, 40 quarterly prompt, 41 quarterly advance).
type DiscountRate struct {
	YearFrom      int             `json:"yearFrom"`
	YearTo        int             `json:"yearTo"`
	DiscountMonth int             `json:"discountMonth"`
	InterestRate  decimal.Decimal `json:"interestRate"`
}

// PenaltyRate mirrors one row of the penalty_rate reference table.
type PenaltyRate struct {
	Tag    string          `json:"tag"`
	UsedBy string          `json:"usedBy"`
	Rate   decimal.Decimal `json:"rate"`
}
