package services

import (
	"context"

	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PostingSvcFacade is the posting engine: the batch and single-taxpayer
// recompute operations over derived penalty/discount ledger rows.
type PostingSvcFacade interface {
	// PostPenalties recomputes the PEN/DED rows for a set of due keys as of
	// the given date. Partial success is a normal outcome; the result carries
	// per-record errors from the fallback path.
	PostPenalties(ctx context.Context, dueKeys []domain.DueKey, asOf domain.YearMonth) (domain.PostingRunResult, error)

	// ComputePenaltyDiscount recomputes the PEN/DED rows for one taxpayer.
	ComputePenaltyDiscount(ctx context.Context, taxpayerID string, asOf domain.YearMonth) (domain.RecomputeResult, error)

	// InitializeTaxpayerDebit seeds missing ASS ledger rows from the posting
	// journal for one taxpayer and returns the number of journal rows scanned.
	InitializeTaxpayerDebit(ctx context.Context, taxpayerID string) (int, error)
}

// CreditSvcFacade manages tax credit rows and derived-row removal.
type CreditSvcFacade interface {
	// AddTaxCredit inserts one TCR row for the nominal amount.
	AddTaxCredit(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, taxPeriod domain.TaxPeriod, journalID int64, amount decimal.Decimal) (*domain.AccountEntry, error)

	// RemoveCredits deletes the open TCR/TDF rows of a taxpayer.
	RemoveCredits(ctx context.Context, taxpayerID string) (int64, error)

	// RemoveCreditForDue deletes the open TCR rows of a single due.
	RemoveCreditForDue(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, taxPeriod domain.TaxPeriod, journalID int64) (int64, error)

	// RemovePenaltyDiscount deletes the open PEN/DED rows of a taxpayer.
	RemovePenaltyDiscount(ctx context.Context, taxpayerID string) (int64, error)
}

// DueSvcFacade is the read side: due summaries and posting candidates.
type DueSvcFacade interface {
	GetTaxDue(ctx context.Context, taxpayerID string) ([]domain.TaxYearSummary, error)
	GetTaxDueByTdno(ctx context.Context, taxpayerID, tdNumber string) ([]domain.DueSummary, error)
	GetAssessmentDetails(ctx context.Context, taxpayerID string) ([]domain.AssessmentDetail, error)
	ListPenaltyCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.PenaltyCandidate, error)
}
