package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// TransactionReader defines read operations for persisted transactions
type TransactionReader interface {
	// FindTransactionByID retrieves one transaction scoped to a household.
	FindTransactionByID(ctx context.Context, householdID, transactionID string) (*domain.MappedTransaction, error)

	// FindExistingExternalIDs returns which of the given external ids are
	// already persisted for the household. This is the dedup existence check.
	FindExistingExternalIDs(ctx context.Context, householdID string, externalIDs []string) (map[string]bool, error)

	// ListTransactionsByMonth retrieves a household's transactions for one
	// calendar month, newest first, with cursor pagination.
	ListTransactionsByMonth(ctx context.Context, householdID string, from, to time.Time, limit int, nextToken *string) ([]domain.MappedTransaction, *string, error)

	// ListUncategorized retrieves transactions without a category assignment
	// for the given connection, oldest first.
	ListUncategorized(ctx context.Context, householdID, connectionID string) ([]domain.MappedTransaction, error)

	// SumExpenseAmounts sums expense-direction, non-ignored amounts for a
	// category within [from, to].
	SumExpenseAmounts(ctx context.Context, householdID, categoryID string, from, to time.Time) (decimal.Decimal, error)

	// ListRecentByAccount retrieves transactions of one external account on
	// a given day, used for near-duplicate review.
	ListRecentByAccount(ctx context.Context, householdID, externalAccountID string, day time.Time) ([]domain.MappedTransaction, error)
}

// TransactionWriter defines write operations for persisted transactions
type TransactionWriter interface {
	// SaveNewTransactions inserts the batch, skipping rows whose
	// (household, external id) already exists. Rows inserted before a
	// mid-batch failure stay persisted; the returned count reflects only
	// rows actually inserted. Insertion is idempotent per external id.
	SaveNewTransactions(ctx context.Context, txns []domain.MappedTransaction) (int, error)

	// SetTransactionCategory assigns (or clears, with nil) the category of
	// one transaction.
	SetTransactionCategory(ctx context.Context, householdID, transactionID string, categoryID *string, updatedBy string, updatedAt time.Time) error

	// SetTransactionIgnored flips the ignored flag of one transaction.
	SetTransactionIgnored(ctx context.Context, householdID, transactionID string, ignored bool, updatedBy string, updatedAt time.Time) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends the facade with transaction capabilities
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
