package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EventKind classifies the accounting purpose of a ledger row. The codes are
// the ones carried over from the legacy treasury database and must not change.
type EventKind string

const (
	Assessment     EventKind = "ASS"
	Penalty        EventKind = "PEN"
	Discount       EventKind = "DED"
	Credit         EventKind = "TCR"
	CreditReversal EventKind = "TDF"
)

// DerivedKinds are the kinds regenerated wholesale by every recompute run.
var DerivedKinds = []EventKind{Penalty, Discount}

// CreditKinds are the kinds that represent tax credits in the ledger.
var CreditKinds = []EventKind{Credit, CreditReversal}

// TaxPeriod is the billing sub-period code of a due.
type TaxPeriod int

const (
	PeriodAnnual TaxPeriod = 99
	PeriodSemi1  TaxPeriod = 21
	PeriodSemi2  TaxPeriod = 22
	PeriodQ1     TaxPeriod = 41
	PeriodQ2     TaxPeriod = 42
	PeriodQ3     TaxPeriod = 43
	PeriodQ4     TaxPeriod = 44
)

// Description returns the display name of a period code.
func (p TaxPeriod) Description() string {
	switch p {
	case PeriodAnnual:
		return "YEARLY"
	case PeriodSemi1:
		return "1ST BI-ANNUAL"
	case PeriodSemi2:
		return "2ND BI-ANNUAL"
	case PeriodQ1:
		return "1ST QUARTER"
	case PeriodQ2:
		return "2ND QUARTER"
	case PeriodQ3:
		return "3RD QUARTER"
	case PeriodQ4:
		return "4TH QUARTER"
	default:
		return "YEARLY"
	}
}

// Earmark is the lifecycle tag of the due a ledger row participates in.
type Earmark string

const (
	EarmarkOpen        Earmark = "OPN"
	EarmarkInstallment Earmark = "INS"
	EarmarkDownpayment Earmark = "DBP"
	EarmarkPaid        Earmark = "PSD"
)

// DisplayStatus maps an earmark to the status shown on assessment views.
func (e Earmark) DisplayStatus() string {
	switch e {
	case EarmarkInstallment, EarmarkDownpayment:
		return "installment"
	case EarmarkPaid:
		return "paid"
	default:
		return "open"
	}
}

// AccountEntry is a single row of the taxpayer account ledger. Assessment rows
// are seeded from the posting journal; penalty and discount rows are derived
// from them by the posting engine; credit rows come from the credit service.
//
// Amounts on credit rows are nominal here. The storage layer owns the legacy
// doubling convention and converts at its boundary.
type AccountEntry struct {
	PostingID        int64           `json:"postingID"`
	TaxpayerID       string          `json:"taxpayerID"`
	PropertyID       int64           `json:"propertyID"`
	TaxYear          int             `json:"taxYear"`
	TaxPeriod        TaxPeriod       `json:"taxPeriod"`
	TaxTransactionID int64           `json:"taxTransactionID"`
	JournalID        int64           `json:"journalID"`
	EventKind        EventKind       `json:"eventKind"`
	DebitAmount      decimal.Decimal `json:"debitAmount"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	Earmark          Earmark         `json:"earmark"`
	RefPostingID     *int64          `json:"refPostingID,omitempty"`
	ValueDate        time.Time       `json:"valueDate"`
	TransactionDate  time.Time       `json:"transactionDate"`
	UserID           string          `json:"userID"`
	Cancelled        bool            `json:"cancelled"`
	MunicipalID      int             `json:"municipalID"`
}
