package models

import "github.com/shopspring/decimal"

// PostingJournal mirrors one row of the posting_journal table.
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
