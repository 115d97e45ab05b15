package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lgu-treasury/rpt_ledger_app/internal/apperrors"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	portsrepo "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/repositories"
	"github.com/lgu-treasury/rpt_ledger_app/internal/models"
	"github.com/lgu-treasury/rpt_ledger_app/internal/utils/mapping"
	"github.com/shopspring/decimal"
)

// insertChunkSize bounds the number of rows queued into one batch send so a
// single call stays within payload limits.
const insertChunkSize = 500

// postingIDLockID scopes the advisory lock guarding posting ID allocation.
const postingIDLockID = int64(4217001)

func kindStrings(kinds []domain.EventKind) []string {
	out := make([]string, len(kinds))
	for i, k := range kinds {
		out[i] = string(k)
	}
	return out
}

var (
	derivedKinds = kindStrings(domain.DerivedKinds)
	creditKinds  = kindStrings(domain.CreditKinds)
	nonBaseKinds = append(kindStrings(domain.DerivedKinds), kindStrings(domain.CreditKinds)...)
)

type PgxLedgerRepository struct {
	BaseRepository
}

// newPgxLedgerRepository creates the repository for the account-entry ledger.
func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const entryColumns = `
	posting_id, taxpayer_id, prop_id, tax_year, tax_period, taxtrans_id,
	journal_id, event_kind, case_type, debit_amount, credit_amount, earmark,
	ref_posting_id, value_date, trans_date, user_id, cancelled, municipal_id`

func scanEntry(row pgx.Row) (models.AccountEntry, error) {
	var m models.AccountEntry
	err := row.Scan(
		&m.PostingID,
		&m.TaxpayerID,
		&m.PropertyID,
		&m.TaxYear,
		&m.TaxPeriod,
		&m.TaxTransactionID,
		&m.JournalID,
		&m.EventKind,
		&m.CaseType,
		&m.DebitAmount,
		&m.CreditAmount,
		&m.Earmark,
		&m.RefPostingID,
		&m.ValueDate,
		&m.TransDate,
		&m.UserID,
		&m.Cancelled,
		&m.MunicipalID,
	)
	return m, err
}

// FindOpenBaseEntries retrieves the open base rows for the given tax
// transactions in one query, grouped by (taxTransactionID, taxYear). Derived
// and credit kinds are excluded: credits are folded into the computation base
// through SumOpenCredits instead.
func (r *PgxLedgerRepository) FindOpenBaseEntries(ctx context.Context, tx pgx.Tx, taxTransactionIDs []int64) (map[domain.DueGroup][]domain.AccountEntry, error) {
	groups := make(map[domain.DueGroup][]domain.AccountEntry)
	if len(taxTransactionIDs) == 0 {
		return groups, nil
	}

	query := `
		SELECT ` + entryColumns + `
		FROM account_entry
		WHERE taxtrans_id = ANY($1)
		  AND earmark = $2
		  AND NOT cancelled
		  AND event_kind <> ALL($3)
		ORDER BY taxtrans_id, tax_year, posting_id;
	`
	rows, err := r.queryOn(tx).Query(ctx, query, taxTransactionIDs, string(domain.EarmarkOpen), nonBaseKinds)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query open base entries", err)
	}
	defer rows.Close()

	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan base entry row", err)
		}
		d := mapping.ToDomainAccountEntry(m)
		key := domain.DueGroup{TaxTransactionID: d.TaxTransactionID, TaxYear: d.TaxYear}
		groups[key] = append(groups[key], d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating base entry rows", err)
	}

	return groups, nil
}

// FindOpenBaseEntriesByTaxpayer retrieves the open assessment rows of one
// taxpayer, the base set of the interactive recompute path.
func (r *PgxLedgerRepository) FindOpenBaseEntriesByTaxpayer(ctx context.Context, tx pgx.Tx, taxpayerID string) ([]domain.AccountEntry, error) {
	query := `
		SELECT ` + entryColumns + `
		FROM account_entry
		WHERE taxpayer_id = $1
		  AND earmark = $2
		  AND NOT cancelled
		  AND event_kind <> ALL($3)
		ORDER BY posting_id;
	`
	rows, err := r.queryOn(tx).Query(ctx, query, taxpayerID, string(domain.EarmarkOpen), nonBaseKinds)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query base entries for taxpayer "+taxpayerID, err)
	}
	defer rows.Close()

	entries := []models.AccountEntry{}
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan base entry row for taxpayer "+taxpayerID, err)
		}
		entries = append(entries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating base entry rows for taxpayer "+taxpayerID, err)
	}

	return mapping.ToDomainAccountEntrySlice(entries), nil
}

// SumOpenCredits pre-aggregates the nominal credit totals for every
// (property, year, period) combination in a single query. The stored amounts
// are halved here so callers never see the doubling convention.
func (r *PgxLedgerRepository) SumOpenCredits(ctx context.Context, tx pgx.Tx, propertyIDs []int64, taxYears []int) (map[domain.CreditKey]decimal.Decimal, error) {
	sums := make(map[domain.CreditKey]decimal.Decimal)
	if len(propertyIDs) == 0 || len(taxYears) == 0 {
		return sums, nil
	}

	query := `
		SELECT prop_id, tax_year, tax_period, SUM(debit_amount) / 2 AS credits
		FROM account_entry
		WHERE prop_id = ANY($1)
		  AND tax_year = ANY($2)
		  AND event_kind = ANY($3)
		  AND earmark = $4
		  AND NOT cancelled
		GROUP BY prop_id, tax_year, tax_period;
	`
	rows, err := r.queryOn(tx).Query(ctx, query, propertyIDs, taxYears, creditKinds, string(domain.EarmarkOpen))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query credit sums", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			propID  int64
			year    int
			period  int
			credits decimal.Decimal
		)
		if err := rows.Scan(&propID, &year, &period, &credits); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan credit sum row", err)
		}
		key := domain.CreditKey{PropertyID: propID, TaxYear: year, TaxPeriod: domain.TaxPeriod(period)}
		sums[key] = credits
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating credit sum rows", err)
	}

	return sums, nil
}

// AssessmentEntryExists reports whether an open ASS row already exists for the keys.
func (r *PgxLedgerRepository) AssessmentEntryExists(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, journalID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM account_entry
			WHERE taxpayer_id = $1 AND prop_id = $2 AND tax_year = $3
			  AND journal_id = $4 AND event_kind = $5 AND earmark = $6
		);
	`
	var exists bool
	err := r.Pool.QueryRow(ctx, query, taxpayerID, propertyID, taxYear, journalID,
		string(domain.Assessment), string(domain.EarmarkOpen)).Scan(&exists)
	if err != nil {
		return false, apperrors.NewAppError(500, "failed to check assessment entry existence", err)
	}
	return exists, nil
}

// NextPostingID allocates the next ledger posting ID within the transaction.
// An advisory transaction lock serializes every allocator, so max+1 cannot
// race with a concurrent run or single-row insert; the lock is held until the
// transaction ends, which keeps the allocated range reserved through the
// insert.
func (r *PgxLedgerRepository) NextPostingID(ctx context.Context, tx pgx.Tx) (int64, error) {
	if _, err := r.queryOn(tx).Exec(ctx, `SELECT pg_advisory_xact_lock($1);`, postingIDLockID); err != nil {
		return 0, apperrors.NewAppError(500, "failed to lock posting ID allocation", err)
	}
	var next int64
	err := r.queryOn(tx).QueryRow(ctx, `SELECT COALESCE(MAX(posting_id), 0) + 1 FROM account_entry;`).Scan(&next)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to allocate next posting ID", err)
	}
	return next, nil
}

// DeleteOpenDerived removes the open PEN/DED rows of the given tax
// transactions. Every recompute starts here: derived rows are regenerated
// wholesale, never patched.
func (r *PgxLedgerRepository) DeleteOpenDerived(ctx context.Context, tx pgx.Tx, taxTransactionIDs []int64) (int64, error) {
	if len(taxTransactionIDs) == 0 {
		return 0, nil
	}
	tag, err := tx.Exec(ctx, `
		DELETE FROM account_entry
		WHERE taxtrans_id = ANY($1)
		  AND earmark = $2
		  AND event_kind = ANY($3);
	`, taxTransactionIDs, string(domain.EarmarkOpen), derivedKinds)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete derived entries", err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOpenDerivedByTaxpayer removes the open PEN/DED rows of one taxpayer.
func (r *PgxLedgerRepository) DeleteOpenDerivedByTaxpayer(ctx context.Context, tx pgx.Tx, taxpayerID string) (int64, error) {
	tag, err := tx.Exec(ctx, `
		DELETE FROM account_entry
		WHERE taxpayer_id = $1
		  AND earmark = $2
		  AND event_kind = ANY($3);
	`, taxpayerID, string(domain.EarmarkOpen), derivedKinds)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete derived entries for taxpayer "+taxpayerID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOpenCreditsByTaxpayer removes the open TCR/TDF rows of one taxpayer.
func (r *PgxLedgerRepository) DeleteOpenCreditsByTaxpayer(ctx context.Context, taxpayerID string) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM account_entry
		WHERE taxpayer_id = $1
		  AND earmark = $2
		  AND event_kind = ANY($3);
	`, taxpayerID, string(domain.EarmarkOpen), creditKinds)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete credit entries for taxpayer "+taxpayerID, err)
	}
	return tag.RowsAffected(), nil
}

// DeleteOpenCreditForDue removes the open TCR rows of a single due.
func (r *PgxLedgerRepository) DeleteOpenCreditForDue(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, taxPeriod domain.TaxPeriod, journalID int64) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `
		DELETE FROM account_entry
		WHERE taxpayer_id = $1 AND prop_id = $2 AND tax_year = $3
		  AND tax_period = $4 AND journal_id = $5
		  AND event_kind = $6 AND earmark = $7;
	`, taxpayerID, propertyID, taxYear, int(taxPeriod), journalID,
		string(domain.Credit), string(domain.EarmarkOpen))
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to delete credit entry for due", err)
	}
	return tag.RowsAffected(), nil
}

const insertEntryQuery = `
	INSERT INTO account_entry (` + entryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);`

func insertArgs(m models.AccountEntry) []any {
	return []any{
		m.PostingID,
		m.TaxpayerID,
		m.PropertyID,
		m.TaxYear,
		m.TaxPeriod,
		m.TaxTransactionID,
		m.JournalID,
		m.EventKind,
		m.CaseType,
		m.DebitAmount,
		m.CreditAmount,
		m.Earmark,
		m.RefPostingID,
		m.ValueDate,
		m.TransDate,
		m.UserID,
		m.Cancelled,
		m.MunicipalID,
	}
}

// entryChunks splits staged rows into insert batches of at most size rows,
// preserving order.
func entryChunks(entries []domain.AccountEntry, size int) [][]domain.AccountEntry {
	chunks := make([][]domain.AccountEntry, 0, (len(entries)+size-1)/size)
	for start := 0; start < len(entries); start += size {
		end := start + size
		if end > len(entries) {
			end = len(entries)
		}
		chunks = append(chunks, entries[start:end])
	}
	return chunks
}

// BulkInsertEntries persists staged rows inside the transaction. Rows are
// queued into pgx batches of at most insertChunkSize so one send never exceeds
// payload limits; a failure in any chunk fails the whole call and the caller's
// transaction rolls the run back.
func (r *PgxLedgerRepository) BulkInsertEntries(ctx context.Context, tx pgx.Tx, entries []domain.AccountEntry) error {
	for _, chunk := range entryChunks(entries, insertChunkSize) {
		batch := &pgx.Batch{}
		for _, e := range chunk {
			batch.Queue(insertEntryQuery, insertArgs(mapping.ToModelAccountEntry(e))...)
		}

		br := tx.SendBatch(ctx, batch)
		if err := br.Close(); err != nil {
			return apperrors.NewAppError(500, "failed to execute ledger insert batch", err)
		}
	}
	return nil
}

// InsertEntry persists one row in its own transaction, allocating its posting
// ID inside it.
func (r *PgxLedgerRepository) InsertEntry(ctx context.Context, entry domain.AccountEntry) (*domain.AccountEntry, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	id, err := r.NextPostingID(ctx, tx)
	if err != nil {
		return nil, err
	}
	entry.PostingID = id

	if _, err := tx.Exec(ctx, insertEntryQuery, insertArgs(mapping.ToModelAccountEntry(entry))...); err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert ledger entry", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &entry, nil
}

// errNoRows reports a missing-row scan error.
func errNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
