package domain

// DueKey identifies one due targeted by a posting run.
type DueKey struct {
	TaxTransactionID int64  `json:"taxTransactionID"`
	TaxpayerID       string `json:"taxpayerID"`
	PropertyID       int64  `json:"propertyID"`
	TaxYear          int    `json:"taxYear"`
}

// DueGroup is the grouping key for base ledger rows fetched in a batch run.
func (k DueKey) DueGroup() DueGroup {
	return DueGroup{TaxTransactionID: k.TaxTransactionID, TaxYear: k.TaxYear}
}

// DueGroup groups base ledger rows by tax transaction and year.
type DueGroup struct {
	TaxTransactionID int64
	TaxYear          int
}

// RecordError pairs a due key with the failure it hit during the per-record
// fallback of a batch run.
type RecordError struct {
	Record DueKey `json:"record"`
	Error  string `json:"error"`
}

// PostingRunResult is the outcome of a batch posting run. Partial success is a
// normal outcome: Processed counts the dues whose derived rows were rebuilt,
// Errors lists the rest.
type PostingRunResult struct {
	Processed int           `json:"processed"`
	Total     int           `json:"total"`
	Errors    []RecordError `json:"errors"`
}

// CreditKey scopes a pre-aggregated credit sum to the due it offsets.
type CreditKey struct {
	PropertyID int64
	TaxYear    int
	TaxPeriod  TaxPeriod
}

// RecomputeResult is the outcome of a single-taxpayer recompute.
type RecomputeResult struct {
	Deleted  int64 `json:"deleted"`
	Inserted int   `json:"inserted"`
}
