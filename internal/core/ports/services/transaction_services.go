package services

import (
	"context"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// TransactionReaderSvc defines read operations for persisted transactions
type TransactionReaderSvc interface {
	// ListTransactionsByMonth retrieves a page of a household's
	// transactions for one "YYYY-MM" month.
	ListTransactionsByMonth(ctx context.Context, householdID, month string, limit int, nextToken *string) ([]domain.MappedTransaction, *string, error)
}

// TransactionWriterSvc defines write operations for persisted transactions
type TransactionWriterSvc interface {
	// CategorizeTransaction assigns (or clears, with nil) a transaction's
	// category. It never creates rules implicitly.
	CategorizeTransaction(ctx context.Context, householdID, transactionID string, categoryID *string, actorUserID string) error

	// SetTransactionIgnored flips the ignored flag, excluding or including
	// the transaction in budget actuals.
	SetTransactionIgnored(ctx context.Context, householdID, transactionID string, ignored bool, actorUserID string) error
}

// TransactionSvcFacade combines all transaction service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
