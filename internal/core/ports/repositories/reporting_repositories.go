package repositories

import (
	"context"

	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
)

// DueRepository defines the read-side aggregation queries joining the ledger
// with the posting journal and assessments.
type DueRepository interface {
	// GetTaxDueByTdno returns the per-year due breakdown for one tax
	// declaration: assessment debits, penalty/discount debits, and nominal
	// credits (storage doubling undone in the query).
	GetTaxDueByTdno(ctx context.Context, taxpayerID, tdNumber string) ([]domain.DueSummary, error)

	// GetAssessmentDetails returns the manual-debit assessment view rows for a taxpayer.
	GetAssessmentDetails(ctx context.Context, taxpayerID string) ([]domain.AssessmentDetail, error)

	// ListPenaltyCandidates returns the open dues eligible for a posting run.
	ListPenaltyCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.PenaltyCandidate, error)
}
