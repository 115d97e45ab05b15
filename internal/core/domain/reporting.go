package domain

import "github.com/shopspring/decimal"

// DueSummary is the per-TD-per-year breakdown read off the ledger. Credits are
// nominal (the storage doubling has already been undone).
type DueSummary struct {
	TaxYear         int             `json:"taxYear"`
	TDNumber        string          `json:"tdNumber"`
	PropertyID      int64           `json:"propertyID"`
	JournalID       int64           `json:"journalID"`
	AmountDue       decimal.Decimal `json:"amountDue"`
	PenaltyDiscount decimal.Decimal `json:"penaltyDiscount"`
	Credits         decimal.Decimal `json:"credits"`
	TotalTaxDue     decimal.Decimal `json:"totalTaxDue"`
	Period          string          `json:"period"`
}

// TaxYearSummary is the per-taxpayer-per-year view over the posting journal.
type TaxYearSummary struct {
	TaxYear   int             `json:"taxYear"`
	RPTDue    decimal.Decimal `json:"rptDue"`
	SEFDue    decimal.Decimal `json:"sefDue"`
	TotalPaid decimal.Decimal `json:"totalPaid"`
	Balance   decimal.Decimal `json:"balance"`
}

// AssessmentDetail is one row of the manual-debit assessment view, with the
// display status derived from the ledger earmark.
type AssessmentDetail struct {
	TDNumber     string          `json:"tdNo"`
	TaxYear      int             `json:"year"`
	PIN          string          `json:"pin"`
	Land         decimal.Decimal `json:"land"`
	Improvements decimal.Decimal `json:"improvements"`
	Total        decimal.Decimal `json:"total"`
	Basic        decimal.Decimal `json:"basic"`
	SEF          decimal.Decimal `json:"sef"`
	Source       EventKind       `json:"source"`
	Status       string          `json:"status"`
}

// PenaltyCandidate is an open due eligible for a batch posting run.
type PenaltyCandidate struct {
	TDNumber         string `json:"tdNumber"`
	TaxYear          int    `json:"taxYear"`
	TaxpayerID       string `json:"taxpayerID"`
	TaxTransactionID int64  `json:"taxTransactionID"`
	PropertyID       int64  `json:"propertyID"`
}

// CandidateFilter narrows the candidate listing.
type CandidateFilter struct {
	TaxYear  int
	TDNumber string
}
