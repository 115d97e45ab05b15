package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portsrepo "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/repositories"
	"github.com/lgu-treasury/rpt_ledger_app/internal/models"
	"github.com/lgu-treasury/rpt_ledger_app/internal/utils/mapping"
)

type PgxJournalRepository struct {
	BaseRepository
}

// newPgxJournalRepository creates the read-only repository over the posting journal.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepository {
	return &PgxJournalRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.JournalRepository = (*PgxJournalRepository)(nil)

// FindBillableDues returns the non-cancelled journal rows of one taxpayer
// from each property's assessment start year onward. Rows billed before the
// assessment took effect are legacy noise and stay out of the ledger.
func (r *PgxJournalRepository) FindBillableDues(ctx context.Context, taxpayerID string) ([]domain.PostingJournal, error) {
	query := `
		SELECT pj.journal_id, pj.taxpayer_id, pj.tdno, pj.prop_id,
		       pj.taxtrans_id, pj.tax_year, pj.rpt_due, pj.sef_due,
		       pj.total_paid, pj.cancelled
		FROM posting_journal pj
		JOIN rpt_assessment ra ON pj.tdno = ra.tdno
		WHERE pj.taxpayer_id = $1
		  AND NOT pj.cancelled
		  AND pj.tax_year >= ra.start_year
		ORDER BY pj.tdno, pj.tax_year;
	`
	rows, err := r.Pool.Query(ctx, query, taxpayerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query billable dues for taxpayer "+taxpayerID, err)
	}
	defer rows.Close()

	dues := []domain.PostingJournal{}
	for rows.Next() {
		var m models.PostingJournal
		if err := rows.Scan(
			&m.JournalID,
			&m.TaxpayerID,
			&m.TDNumber,
			&m.PropertyID,
			&m.TaxTransactionID,
			&m.TaxYear,
			&m.RPTDue,
			&m.SEFDue,
			&m.TotalPaid,
			&m.Cancelled,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan posting journal row", err)
		}
		dues = append(dues, mapping.ToDomainPostingJournal(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating posting journal rows", err)
	}

	return dues, nil
}

// ListTaxYearSummaries aggregates billed/paid totals per tax year for one taxpayer.
func (r *PgxJournalRepository) ListTaxYearSummaries(ctx context.Context, taxpayerID string) ([]domain.TaxYearSummary, error) {
	query := `
		SELECT tax_year,
		       SUM(rpt_due) AS rpt_due,
		       SUM(sef_due) AS sef_due,
		       SUM(total_paid) AS total_paid,
		       SUM(rpt_due + sef_due) - SUM(total_paid) AS balance
		FROM posting_journal
		WHERE taxpayer_id = $1
		  AND NOT cancelled
		GROUP BY tax_year
		ORDER BY tax_year DESC;
	`
	rows, err := r.Pool.Query(ctx, query, taxpayerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query tax year summaries for taxpayer "+taxpayerID, err)
	}
	defer rows.Close()

	summaries := []domain.TaxYearSummary{}
	for rows.Next() {
		var s domain.TaxYearSummary
		if err := rows.Scan(&s.TaxYear, &s.RPTDue, &s.SEFDue, &s.TotalPaid, &s.Balance); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan tax year summary row", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating tax year summary rows", err)
	}

	return summaries, nil
}
