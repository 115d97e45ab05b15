package dto

import (
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
)

// DueKeyRequest identifies one due to include in a posting run.
type DueKeyRequest struct {
	TaxTransactionID int64  `json:"taxTransactionID" binding:"required"`
	TaxpayerID       string `json:"taxpayerID" binding:"required"`
	PropertyID       int64  `json:"propertyID" binding:"required"`
	TaxYear          int    `json:"taxYear" binding:"required,min=1900"`
}

// PostPenaltiesRequest is the batch posting payload.
type PostPenaltiesRequest struct {
	AsOfDate string          `json:"asOfDate" binding:"required"`
	Records  []DueKeyRequest `json:"records" binding:"required,min=1,dive"`
}

// ToDomainDueKeys converts the request records to domain due keys.
func (r *PostPenaltiesRequest) ToDomainDueKeys() []domain.DueKey {
	keys := make([]domain.DueKey, len(r.Records))
	for i, rec := range r.Records {
		keys[i] = domain.DueKey{
			TaxTransactionID: rec.TaxTransactionID,
			TaxpayerID:       rec.TaxpayerID,
			PropertyID:       rec.PropertyID,
			TaxYear:          rec.TaxYear,
		}
	}
	return keys
}

// RecordErrorResponse is one fallback failure of a batch run.
type RecordErrorResponse struct {
	Record DueKeyRequest `json:"record"`
	Error  string        `json:"error"`
}

// PostingRunResponse is the batch posting outcome.
type PostingRunResponse struct {
	Processed int                   `json:"processed"`
	Total     int                   `json:"total"`
	Errors    []RecordErrorResponse `json:"errors"`
}

// ToPostingRunResponse converts a domain run result to its response DTO.
func ToPostingRunResponse(res domain.PostingRunResult) PostingRunResponse {
	errs := make([]RecordErrorResponse, len(res.Errors))
	for i, re := range res.Errors {
		errs[i] = RecordErrorResponse{
			Record: DueKeyRequest{
				TaxTransactionID: re.Record.TaxTransactionID,
				TaxpayerID:       re.Record.TaxpayerID,
				PropertyID:       re.Record.PropertyID,
				TaxYear:          re.Record.TaxYear,
			},
			Error: re.Error,
		}
	}
	return PostingRunResponse{Processed: res.Processed, Total: res.Total, Errors: errs}
}

// RecomputeRequest carries the as-of date for a single-taxpayer recompute.
// When the date is omitted the recompute runs as of the current date.
type RecomputeRequest struct {
	AsOfDate string `json:"asOfDate"`
}

// RecomputeResponse reports the rows deleted and inserted by a recompute.
type RecomputeResponse struct {
	Deleted  int64 `json:"deleted"`
	Inserted int   `json:"inserted"`
}

// ToRecomputeResponse converts a domain recompute result to its response DTO.
func ToRecomputeResponse(res domain.RecomputeResult) RecomputeResponse {
	return RecomputeResponse{Deleted: res.Deleted, Inserted: res.Inserted}
}

// InitializeDebitResponse reports how many journal rows were scanned when
// seeding assessment entries.
type InitializeDebitResponse struct {
	JournalRows int `json:"journalRows"`
}
