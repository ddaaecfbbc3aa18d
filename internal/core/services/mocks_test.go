package services_test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, householdID, transactionID string) (*domain.MappedTransaction, error) {
	args := m.Called(ctx, householdID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MappedTransaction), args.Error(1)
}

func (m *MockTransactionRepository) FindExistingExternalIDs(ctx context.Context, householdID string, externalIDs []string) (map[string]bool, error) {
	args := m.Called(ctx, householdID, externalIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactionsByMonth(ctx context.Context, householdID string, from, to time.Time, limit int, nextToken *string) ([]domain.MappedTransaction, *string, error) {
	args := m.Called(ctx, householdID, from, to, limit, nextToken)
	var txns []domain.MappedTransaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.MappedTransaction)
	}
	var token *string
	if args.Get(1) != nil {
		token = args.Get(1).(*string)
	}
	return txns, token, args.Error(2)
}

func (m *MockTransactionRepository) ListUncategorized(ctx context.Context, householdID, connectionID string) ([]domain.MappedTransaction, error) {
	args := m.Called(ctx, householdID, connectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MappedTransaction), args.Error(1)
}

func (m *MockTransactionRepository) SumExpenseAmounts(ctx context.Context, householdID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, householdID, categoryID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockTransactionRepository) ListRecentByAccount(ctx context.Context, householdID, externalAccountID string, day time.Time) ([]domain.MappedTransaction, error) {
	args := m.Called(ctx, householdID, externalAccountID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MappedTransaction), args.Error(1)
}

func (m *MockTransactionRepository) SaveNewTransactions(ctx context.Context, txns []domain.MappedTransaction) (int, error) {
	args := m.Called(ctx, txns)
	return args.Int(0), args.Error(1)
}

func (m *MockTransactionRepository) SetTransactionCategory(ctx context.Context, householdID, transactionID string, categoryID *string, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, householdID, transactionID, categoryID, updatedBy, updatedAt)
	return args.Error(0)
}

func (m *MockTransactionRepository) SetTransactionIgnored(ctx context.Context, householdID, transactionID string, ignored bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, householdID, transactionID, ignored, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock CategoryRepository ---
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindCategoryByID(ctx context.Context, householdID, categoryID string) (*domain.Category, error) {
	args := m.Called(ctx, householdID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context, householdID string) ([]domain.Category, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListCategoryIDs(ctx context.Context, householdID string) (map[string]bool, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]bool), args.Error(1)
}

func (m *MockCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

// --- Mock RuleRepository ---
type MockRuleRepository struct {
	mock.Mock
}

func (m *MockRuleRepository) FindRuleByID(ctx context.Context, householdID, ruleID string) (*domain.CategoryRule, error) {
	args := m.Called(ctx, householdID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CategoryRule), args.Error(1)
}

func (m *MockRuleRepository) ListRules(ctx context.Context, householdID string) ([]domain.CategoryRule, error) {
	args := m.Called(ctx, householdID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryRule), args.Error(1)
}

func (m *MockRuleRepository) SaveRule(ctx context.Context, rule domain.CategoryRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

func (m *MockRuleRepository) DeleteRules(ctx context.Context, householdID string, ruleIDs []string) (int, error) {
	args := m.Called(ctx, householdID, ruleIDs)
	return args.Int(0), args.Error(1)
}

func (m *MockRuleRepository) SetRulesActive(ctx context.Context, householdID string, ruleIDs []string, active bool) (int, error) {
	args := m.Called(ctx, householdID, ruleIDs, active)
	return args.Int(0), args.Error(1)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudget(ctx context.Context, householdID, categoryID, month string) (*domain.Budget, error) {
	args := m.Called(ctx, householdID, categoryID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) ListBudgetsByMonth(ctx context.Context, householdID, month string) ([]domain.Budget, error) {
	args := m.Called(ctx, householdID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

// --- Mock ConnectionRepository ---
type MockConnectionRepository struct {
	mock.Mock
}

func (m *MockConnectionRepository) FindConnectionByID(ctx context.Context, householdID, connectionID string) (*domain.Connection, error) {
	args := m.Called(ctx, householdID, connectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Connection), args.Error(1)
}

func (m *MockConnectionRepository) ListConnections(ctx context.Context, householdID string, activeOnly bool) ([]domain.Connection, error) {
	args := m.Called(ctx, householdID, activeOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Connection), args.Error(1)
}

func (m *MockConnectionRepository) SaveConnection(ctx context.Context, connection domain.Connection) error {
	args := m.Called(ctx, connection)
	return args.Error(0)
}

func (m *MockConnectionRepository) UpdateSyncOutcome(ctx context.Context, householdID, connectionID string, status domain.ConnectionSyncStatus, errorMessage string, syncedAt time.Time) error {
	args := m.Called(ctx, householdID, connectionID, status, errorMessage, syncedAt)
	return args.Error(0)
}

func (m *MockConnectionRepository) SetConnectionActive(ctx context.Context, householdID, connectionID string, active bool, updatedBy string, updatedAt time.Time) error {
	args := m.Called(ctx, householdID, connectionID, active, updatedBy, updatedAt)
	return args.Error(0)
}

// --- Mock SyncJobRepository ---
type MockSyncJobRepository struct {
	mock.Mock
}

func (m *MockSyncJobRepository) ListSyncJobsByConnection(ctx context.Context, householdID, connectionID string, limit int) ([]domain.SyncJob, error) {
	args := m.Called(ctx, householdID, connectionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SyncJob), args.Error(1)
}

func (m *MockSyncJobRepository) CreateSyncJob(ctx context.Context, job domain.SyncJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

func (m *MockSyncJobRepository) UpdateSyncJob(ctx context.Context, syncJobID string, status domain.SyncJobStatus, found, inserted int, errorMessage string, completedAt *time.Time) error {
	args := m.Called(ctx, syncJobID, status, found, inserted, errorMessage, completedAt)
	return args.Error(0)
}
