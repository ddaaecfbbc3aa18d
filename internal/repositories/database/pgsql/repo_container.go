package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	householdRepo := newPgxHouseholdRepository(dbPool)
	connectionRepo := newPgxConnectionRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	ruleRepo := newPgxRuleRepository(dbPool)
	budgetRepo := newPgxBudgetRepository(dbPool)
	syncJobRepo := newPgxSyncJobRepository(dbPool)

	return portsrepo.RepositoryProvider{
		HouseholdRepo:   householdRepo,
		ConnectionRepo:  connectionRepo,
		TransactionRepo: transactionRepo,
		CategoryRepo:    categoryRepo,
		RuleRepo:        ruleRepo,
		BudgetRepo:      budgetRepo,
		SyncJobRepo:     syncJobRepo,
	}
}
