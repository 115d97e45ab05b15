package pgsql

import (
	"context"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portsrepo "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/repositories"
)

type dueRepository struct {
	BaseRepository
}

// newDueRepository creates the read-side repository joining ledger and journal.
func newDueRepository(pool *pgxpool.Pool) portsrepo.DueRepository {
	return &dueRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.DueRepository = (*dueRepository)(nil)

// GetTaxDueByTdno returns the per-year due breakdown for one tax declaration.
// Credit sums are halved in the query so the summary carries nominal amounts;
// total_tax_due = assessments + penalty/discount - credits.
func (r *dueRepository) GetTaxDueByTdno(ctx context.Context, taxpayerID, tdNumber string) ([]domain.DueSummary, error) {
	query := `
		SELECT tp.tax_year,
		       pj.tdno,
		       tp.prop_id,
		       tp.journal_id,
		       SUM(CASE WHEN tp.event_kind = 'ASS' THEN tp.debit_amount ELSE 0 END) AS amount_due,
		       SUM(CASE WHEN tp.event_kind IN ('PEN', 'DED') THEN tp.debit_amount ELSE 0 END) AS penalty_discount,
		       SUM(CASE WHEN tp.event_kind IN ('TCR', 'TDF') THEN tp.debit_amount / 2 ELSE 0 END) AS credits
		FROM account_entry tp
		JOIN posting_journal pj
		  ON tp.prop_id = pj.prop_id
		 AND tp.tax_year = pj.tax_year
		 AND tp.journal_id = pj.journal_id
		WHERE tp.taxpayer_id = $1
		  AND pj.tdno = $2
		  AND tp.earmark = 'OPN'
		GROUP BY tp.tax_year, pj.tdno, tp.prop_id, tp.journal_id
		ORDER BY tp.tax_year;
	`
	rows, err := r.Pool.Query(ctx, query, taxpayerID, tdNumber)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query dues for TD "+tdNumber, err)
	}
	defer rows.Close()

	summaries := []domain.DueSummary{}
	for rows.Next() {
		var s domain.DueSummary
		if err := rows.Scan(
			&s.TaxYear,
			&s.TDNumber,
			&s.PropertyID,
			&s.JournalID,
			&s.AmountDue,
			&s.PenaltyDiscount,
			&s.Credits,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan due summary row for TD "+tdNumber, err)
		}
		s.AmountDue = s.AmountDue.Round(2)
		s.PenaltyDiscount = s.PenaltyDiscount.Round(2)
		s.Credits = s.Credits.Round(2)
		s.TotalTaxDue = s.AmountDue.Add(s.PenaltyDiscount).Sub(s.Credits).Round(2)
		s.Period = domain.PeriodAnnual.Description()
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating due summary rows for TD "+tdNumber, err)
	}

	return summaries, nil
}

// GetAssessmentDetails returns the manual-debit assessment view for one
// taxpayer: assessed values joined from the TD record, ledger earmark mapped
// to the display status.
func (r *dueRepository) GetAssessmentDetails(ctx context.Context, taxpayerID string) ([]domain.AssessmentDetail, error) {
	query := `
		SELECT pj.tdno,
		       tp.tax_year,
		       ra.pin,
		       ra.land_assessed_value,
		       ra.bldg_assessed_value,
		       pj.rpt_due,
		       pj.sef_due,
		       tp.event_kind,
		       tp.earmark
		FROM account_entry tp
		JOIN posting_journal pj
		  ON tp.prop_id = pj.prop_id
		 AND tp.tax_year = pj.tax_year
		 AND tp.journal_id = pj.journal_id
		JOIN rpt_assessment ra ON pj.tdno = ra.tdno
		WHERE tp.taxpayer_id = $1
		  AND tp.event_kind = 'ASS'
		GROUP BY pj.tdno, tp.tax_year, ra.pin, ra.land_assessed_value,
		         ra.bldg_assessed_value, pj.rpt_due, pj.sef_due,
		         tp.event_kind, tp.earmark
		ORDER BY pj.tdno, tp.tax_year DESC;
	`
	rows, err := r.Pool.Query(ctx, query, taxpayerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query assessment details for taxpayer "+taxpayerID, err)
	}
	defer rows.Close()

	details := []domain.AssessmentDetail{}
	for rows.Next() {
		var (
			d       domain.AssessmentDetail
			kind    string
			earmark string
		)
		if err := rows.Scan(
			&d.TDNumber,
			&d.TaxYear,
			&d.PIN,
			&d.Land,
			&d.Improvements,
			&d.Basic,
			&d.SEF,
			&kind,
			&earmark,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan assessment detail row", err)
		}
		d.Land = d.Land.Round(2)
		d.Improvements = d.Improvements.Round(2)
		d.Total = d.Land.Add(d.Improvements).Round(2)
		d.Basic = d.Basic.Round(2)
		d.SEF = d.SEF.Round(2)
		d.Source = domain.EventKind(kind)
		d.Status = domain.Earmark(earmark).DisplayStatus()
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating assessment detail rows", err)
	}

	return details, nil
}

// ListPenaltyCandidates returns the open dues eligible for a posting run,
// one row per (TD, year), optionally filtered by tax year and TD number.
func (r *dueRepository) ListPenaltyCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.PenaltyCandidate, error) {
	query := `
		SELECT pj.tdno,
		       tp.tax_year,
		       MAX(tp.taxpayer_id) AS taxpayer_id,
		       MAX(tp.taxtrans_id) AS taxtrans_id,
		       MAX(pj.prop_id) AS prop_id
		FROM posting_journal pj
		JOIN account_entry tp
		  ON tp.taxtrans_id = pj.taxtrans_id
		 AND tp.tax_year = pj.tax_year
		WHERE tp.earmark = 'OPN'
		  AND tp.event_kind NOT IN ('TDF', 'TCR', 'PEN', 'DED')
	`
	args := []any{}
	if filter.TaxYear != 0 {
		args = append(args, filter.TaxYear)
		query += ` AND tp.tax_year = $` + strconv.Itoa(len(args))
	}
	if filter.TDNumber != "" {
		args = append(args, filter.TDNumber)
		query += ` AND pj.tdno = $` + strconv.Itoa(len(args))
	}
	query += `
		GROUP BY pj.tdno, tp.tax_year
		ORDER BY pj.tdno, tp.tax_year;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query penalty candidates", err)
	}
	defer rows.Close()

	candidates := []domain.PenaltyCandidate{}
	for rows.Next() {
		var c domain.PenaltyCandidate
		if err := rows.Scan(&c.TDNumber, &c.TaxYear, &c.TaxpayerID, &c.TaxTransactionID, &c.PropertyID); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan penalty candidate row", err)
		}
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating penalty candidate rows", err)
	}

	return candidates, nil
}
