package domain

import "github.com/shopspring/decimal"

// PostingJournal is the authoritative record of billed RPT/SEF amounts per
// (taxpayer, tax declaration, year). The ledger's assessment rows are seeded
// from it; this core never writes to it.
type PostingJournal struct {
	JournalID        int64           `json:"journalID"`
	TaxpayerID       string          `json:"taxpayerID"`
	TDNumber         string          `json:"tdNumber"`
	PropertyID       int64           `json:"propertyID"`
	TaxTransactionID int64           `json:"taxTransactionID"`
	TaxYear          int             `json:"taxYear"`
	RPTDue           decimal.Decimal `json:"rptDue"`
	SEFDue           decimal.Decimal `json:"sefDue"`
	TotalPaid        decimal.Decimal `json:"totalPaid"`
	Cancelled        bool            `json:"cancelled"`
}
