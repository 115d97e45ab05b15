package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountEntry mirrors one row of the account_entry table. DebitAmount holds
// the raw stored value: for credit kinds (TCR/TDF) that is twice the nominal
// amount, the legacy doubling convention the mapping layer undoes.
type AccountEntry struct {
	PostingID        int64           `json:"postingID"`
	TaxpayerID       string          `json:"taxpayerID"`
	PropertyID       int64           `json:"propertyID"`
	TaxYear          int             `json:"taxYear"`
	TaxPeriod        int             `json:"taxPeriod"`
	TaxTransactionID int64           `json:"taxTransactionID"`
	JournalID        int64           `json:"journalID"`
	EventKind        string          `json:"eventKind"`
	CaseType         string          `json:"caseType"`
	DebitAmount      decimal.Decimal `json:"debitAmount"`
	CreditAmount     decimal.Decimal `json:"creditAmount"`
	Earmark          string          `json:"earmark"`
	RefPostingID     *int64          `json:"refPostingID,omitempty"`
	ValueDate        time.Time       `json:"valueDate"`
	TransDate        time.Time       `json:"transDate"`
	UserID           string          `json:"userID"`
	Cancelled        bool            `json:"cancelled"`
	MunicipalID      int             `json:"municipalID"`
}
