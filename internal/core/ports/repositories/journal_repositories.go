package repositories

import (
	"context"

	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
)

// JournalRepository defines read operations over the posting journal, the
// external record of billed RPT/SEF amounts. This core never writes to it.
type JournalRepository interface {
	// FindBillableDues returns the non-cancelled journal rows for a taxpayer
	// from each property's assessment start year onward.
	FindBillableDues(ctx context.Context, taxpayerID string) ([]domain.PostingJournal, error)

	// ListTaxYearSummaries aggregates billed/paid totals per tax year for a taxpayer.
	ListTaxYearSummaries(ctx context.Context, taxpayerID string) ([]domain.TaxYearSummary, error)
}
