package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
)

type transactionService struct {
	BaseService
	txnRepo      portsrepo.TransactionRepositoryFacade
	categoryRepo portsrepo.CategoryReader
}

// NewTransactionService creates the transaction service.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, categoryRepo portsrepo.CategoryReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:      txnRepo,
		categoryRepo: categoryRepo,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) ListTransactionsByMonth(ctx context.Context, householdID, month string, limit int, nextToken *string) ([]domain.MappedTransaction, *string, error) {
	from, to, err := monthRange(month)
	if err != nil {
		return nil, nil, err
	}
	txns, next, err := s.txnRepo.ListTransactionsByMonth(ctx, householdID, from, to, limit, nextToken)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, next, nil
}

// CategorizeTransaction assigns (or clears, with nil) a transaction's
// category. This never creates rules; turning a manual categorization into
// a rule is a separate operation on the rule service.
func (s *transactionService) CategorizeTransaction(ctx context.Context, householdID, transactionID string, categoryID *string, actorUserID string) error {
	if categoryID != nil {
		if _, err := s.categoryRepo.FindCategoryByID(ctx, householdID, *categoryID); err != nil {
			return fmt.Errorf("failed to load category: %w", err)
		}
	}
	if err := s.txnRepo.SetTransactionCategory(ctx, householdID, transactionID, categoryID, actorUserID, time.Now()); err != nil {
		return fmt.Errorf("failed to categorize transaction: %w", err)
	}
	s.LogInfo(ctx, "Transaction categorized", slog.String("transaction_id", transactionID))
	return nil
}

func (s *transactionService) SetTransactionIgnored(ctx context.Context, householdID, transactionID string, ignored bool, actorUserID string) error {
	if err := s.txnRepo.SetTransactionIgnored(ctx, householdID, transactionID, ignored, actorUserID, time.Now()); err != nil {
		return fmt.Errorf("failed to set ignored flag: %w", err)
	}
	return nil
}
