package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires up all pgsql repositories over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:  newPgxLedgerRepository(pool),
		RateRepo:    newPgxRateRepository(pool),
		JournalRepo: newPgxJournalRepository(pool),
		DueRepo:     newDueRepository(pool),
	}
}
