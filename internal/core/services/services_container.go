package services

import (
	portsrepo "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/lgu-treasury/rpt_ledger_app/internal/core/ports/services"
	"github.com/lgu-treasury/rpt_ledger_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Posting = NewPostingService(
		repos.LedgerRepo,
		repos.RateRepo,
		repos.JournalRepo,
		cfg.MunicipalID,
	)
	container.Credit = NewCreditService(repos.LedgerRepo, cfg.MunicipalID)
	container.Due = NewDueService(repos.DueRepo, repos.JournalRepo)

	return container
}
