package dto

import (
	"time"

	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddCreditRequest records one tax credit against a due. Amount is nominal;
// the storage doubling convention is not the caller's concern.
type AddCreditRequest struct {
	TaxpayerID string          `json:"taxpayerID" binding:"required"`
	PropertyID int64           `json:"propertyID" binding:"required"`
	TaxYear    int             `json:"taxYear" binding:"required,min=1900"`
	TaxPeriod  int             `json:"taxPeriod" binding:"required,oneof=99 21 22 41 42 43 44"`
	JournalID  int64           `json:"journalID" binding:"required"`
	Amount     decimal.Decimal `json:"amount" binding:"required"`
}

// RemoveCreditForDueRequest identifies the single due whose credits to remove.
type RemoveCreditForDueRequest struct {
	TaxpayerID string `json:"taxpayerID" binding:"required"`
	PropertyID int64  `json:"propertyID" binding:"required"`
	TaxYear    int    `json:"taxYear" binding:"required,min=1900"`
	TaxPeriod  int    `json:"taxPeriod" binding:"required,oneof=99 21 22 41 42 43 44"`
	JournalID  int64  `json:"journalID" binding:"required"`
}

// CreditResponse is the stored credit row returned to the caller.
type CreditResponse struct {
	PostingID  int64           `json:"postingID"`
	TaxpayerID string          `json:"taxpayerID"`
	PropertyID int64           `json:"propertyID"`
	TaxYear    int             `json:"taxYear"`
	TaxPeriod  int             `json:"taxPeriod"`
	JournalID  int64           `json:"journalID"`
	Amount     decimal.Decimal `json:"amount"`
	ValueDate  time.Time       `json:"valueDate"`
}

// ToCreditResponse converts a stored ledger row to its response DTO.
func ToCreditResponse(e *domain.AccountEntry) CreditResponse {
	return CreditResponse{
		PostingID:  e.PostingID,
		TaxpayerID: e.TaxpayerID,
		PropertyID: e.PropertyID,
		TaxYear:    e.TaxYear,
		TaxPeriod:  int(e.TaxPeriod),
		JournalID:  e.JournalID,
		Amount:     e.DebitAmount,
		ValueDate:  e.ValueDate,
	}
}

// DeletedResponse reports how many rows a delete removed.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
