package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-treasury/rpt_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// LedgerReader defines read operations over the account-entry ledger. Methods
// taking a pgx.Tx run inside a posting transaction so they observe the delete
// phase of the same run.
type LedgerReader interface {
	// FindOpenBaseEntries retrieves the open base rows (everything except
	// PEN/DED/TCR/TDF) for the given tax transactions, grouped by
	// (taxTransactionID, taxYear).
	FindOpenBaseEntries(ctx context.Context, tx pgx.Tx, taxTransactionIDs []int64) (map[domain.DueGroup][]domain.AccountEntry, error)

	// FindOpenBaseEntriesByTaxpayer retrieves the open assessment rows for one taxpayer.
	FindOpenBaseEntriesByTaxpayer(ctx context.Context, tx pgx.Tx, taxpayerID string) ([]domain.AccountEntry, error)

	// SumOpenCredits pre-aggregates nominal credit sums for all
	// (property, year, period) combinations in one query.
	SumOpenCredits(ctx context.Context, tx pgx.Tx, propertyIDs []int64, taxYears []int) (map[domain.CreditKey]decimal.Decimal, error)

	// AssessmentEntryExists reports whether an open ASS row already exists for the keys.
	AssessmentEntryExists(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, journalID int64) (bool, error)
}

// LedgerWriter defines write operations over the account-entry ledger.
type LedgerWriter interface {
	// NextPostingID allocates the next ledger posting ID (max + 1) within the
	// transaction. Callers assign sequentially increasing IDs from it for the
	// rest of the batch.
	NextPostingID(ctx context.Context, tx pgx.Tx) (int64, error)

	// DeleteOpenDerived removes the open PEN/DED rows for the given tax transactions.
	DeleteOpenDerived(ctx context.Context, tx pgx.Tx, taxTransactionIDs []int64) (int64, error)

	// DeleteOpenDerivedByTaxpayer removes the open PEN/DED rows for one taxpayer.
	DeleteOpenDerivedByTaxpayer(ctx context.Context, tx pgx.Tx, taxpayerID string) (int64, error)

	// DeleteOpenCreditsByTaxpayer removes the open TCR/TDF rows for one taxpayer.
	DeleteOpenCreditsByTaxpayer(ctx context.Context, taxpayerID string) (int64, error)

	// DeleteOpenCreditForDue removes the open TCR rows of a single due.
	DeleteOpenCreditForDue(ctx context.Context, taxpayerID string, propertyID int64, taxYear int, taxPeriod domain.TaxPeriod, journalID int64) (int64, error)

	// BulkInsertEntries persists staged rows inside the transaction, chunked to
	// bound payload size. Entries must already carry their posting IDs.
	BulkInsertEntries(ctx context.Context, tx pgx.Tx, entries []domain.AccountEntry) error

	// InsertEntry persists one row outside any caller transaction, allocating
	// its posting ID, and returns the stored entry.
	InsertEntry(ctx context.Context, entry domain.AccountEntry) (*domain.AccountEntry, error)
}

// LedgerRepositoryFacade combines the ledger reader and writer.
type LedgerRepositoryFacade interface {
	LedgerReader
	LedgerWriter
}

// LedgerRepositoryWithTx extends the facade with transaction control.
type LedgerRepositoryWithTx interface {
	LedgerRepositoryFacade
	TransactionManager
}
