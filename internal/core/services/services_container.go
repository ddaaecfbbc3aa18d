package services

import (
	"github.com/hfa-project/home_finance_app/internal/core/ports"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/platform/config"
	"github.com/hfa-project/home_finance_app/internal/platform/metrics"
	"github.com/hfa-project/home_finance_app/internal/vault"
)

// NewServiceContainer creates and wires up all application services.
// credentialVault may be nil when no master secret is configured; connection
// creation and sync then fail with a configuration error while the read-only
// surfaces keep working.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	scrapers ports.ScraperRegistry,
	credentialVault *vault.Vault,
	sink metrics.Sink,
) *portssvc.ServiceContainer {
	normalizer := NewNormalizer(cfg.BaseCurrencyCode)
	deduper := NewDeduper()

	ruleSvc := NewRuleService(repos.RuleRepo, repos.CategoryRepo, repos.TransactionRepo)

	return &portssvc.ServiceContainer{
		Household:   NewHouseholdService(repos.HouseholdRepo),
		Connection:  NewConnectionService(repos.ConnectionRepo, credentialVault),
		Transaction: NewTransactionService(repos.TransactionRepo, repos.CategoryRepo),
		Category:    NewCategoryService(repos.CategoryRepo),
		Rule:        ruleSvc,
		Budget:      NewBudgetService(repos.BudgetRepo, repos.CategoryRepo, repos.TransactionRepo, sink),
		Sync: NewSyncService(
			repos.ConnectionRepo,
			repos.TransactionRepo,
			repos.SyncJobRepo,
			ruleSvc,
			normalizer,
			deduper,
			credentialVault,
			scrapers,
			sink,
			cfg.SyncConcurrency,
			cfg.SyncTimeout,
		),
	}
}
