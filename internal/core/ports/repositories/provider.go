package repositories

// RepositoryProvider bundles the repository implementations handed to the
// service container.
type RepositoryProvider struct {
	LedgerRepo  LedgerRepositoryWithTx
	RateRepo    RateRepository
	JournalRepo JournalRepository
	DueRepo     DueRepository
}
