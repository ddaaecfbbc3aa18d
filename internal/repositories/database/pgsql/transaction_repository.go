package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	"github.com/hfa-project/home_finance_app/internal/models"
	"github.com/hfa-project/home_finance_app/internal/utils/mapping"
	"github.com/hfa-project/home_finance_app/internal/utils/pagination"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for persisted transactions.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `transaction_id, household_id, connection_id, external_id, external_account_id, date, description, merchant, amount, direction, notes, category_id, category_hint, ignored, created_at, created_by, last_updated_at, last_updated_by`

func scanTransaction(row pgx.CollectableRow) (models.Transaction, error) {
	var txn models.Transaction
	err := row.Scan(
		&txn.TransactionID,
		&txn.HouseholdID,
		&txn.ConnectionID,
		&txn.ExternalID,
		&txn.ExternalAccountID,
		&txn.Date,
		&txn.Description,
		&txn.Merchant,
		&txn.Amount,
		&txn.Direction,
		&txn.Notes,
		&txn.CategoryID,
		&txn.CategoryHint,
		&txn.Ignored,
		&txn.CreatedAt,
		&txn.CreatedBy,
		&txn.LastUpdatedAt,
		&txn.LastUpdatedBy,
	)
	return txn, err
}

// SaveNewTransactions inserts the batch row by row directly on the pool, so
// every row is durable once its insert returns. A mid-batch failure keeps
// the rows already inserted; the unique-constraint backstop on
// (household_id, external_id) makes a retry skip them. Returns how many rows
// were actually inserted.
func (r *PgxTransactionRepository) SaveNewTransactions(ctx context.Context, txns []domain.MappedTransaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (household_id, external_id) DO NOTHING;
	`

	inserted := 0
	for _, txn := range txns {
		model := mapping.ToModelTransaction(txn)
		cmdTag, err := r.Pool.Exec(ctx, query,
			model.TransactionID,
			model.HouseholdID,
			model.ConnectionID,
			model.ExternalID,
			model.ExternalAccountID,
			model.Date,
			model.Description,
			model.Merchant,
			model.Amount,
			model.Direction,
			model.Notes,
			model.CategoryID,
			model.CategoryHint,
			model.Ignored,
			model.CreatedAt,
			model.CreatedBy,
			model.LastUpdatedAt,
			model.LastUpdatedBy,
		)
		if err != nil {
			return inserted, fmt.Errorf("failed to insert transaction %s: %w", model.ExternalID, apperrors.NewAppError(500, "transaction insert failed", err))
		}
		inserted += int(cmdTag.RowsAffected())
	}
	return inserted, nil
}

// FindTransactionByID retrieves one transaction scoped to a household.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, householdID, transactionID string) (*domain.MappedTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE household_id = $1 AND transaction_id = $2;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", transactionID, err)
	}
	model, err := pgx.CollectOneRow(rows, scanTransaction)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}

	domainTxn := mapping.ToDomainTransaction(model)
	return &domainTxn, nil
}

// FindExistingExternalIDs returns which of the given external ids already
// exist for the household.
func (r *PgxTransactionRepository) FindExistingExternalIDs(ctx context.Context, householdID string, externalIDs []string) (map[string]bool, error) {
	existing := make(map[string]bool, len(externalIDs))
	if len(externalIDs) == 0 {
		return existing, nil
	}
	query := `SELECT external_id FROM transactions WHERE household_id = $1 AND external_id = ANY($2);`
	rows, err := r.Pool.Query(ctx, query, householdID, externalIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query existing external ids: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan external id: %w", err)
		}
		existing[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate external ids: %w", err)
	}
	return existing, nil
}

// ListTransactionsByMonth retrieves a page of a household's transactions
// within [from, to], newest first, keyset-paginated on (date, created_at).
func (r *PgxTransactionRepository) ListTransactionsByMonth(ctx context.Context, householdID string, from, to time.Time, limit int, nextToken *string) ([]domain.MappedTransaction, *string, error) {
	if limit <= 0 {
		limit = 50
	}

	args := []interface{}{householdID, from, to}
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE household_id = $1 AND date >= $2 AND date <= $3
	`
	if nextToken != nil {
		tokenDate, tokenCreatedAt, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
		}
		query += ` AND (date, created_at) < ($4, $5)`
		args = append(args, tokenDate, tokenCreatedAt)
	}
	// Fetch one extra row to know whether another page exists.
	query += fmt.Sprintf(` ORDER BY date DESC, created_at DESC LIMIT $%d;`, len(args)+1)
	args = append(args, limit+1)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan transactions: %w", err)
	}

	var newNextToken *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		token := pagination.EncodeToken(last.Date, last.CreatedAt)
		newNextToken = &token
	}
	return mapping.ToDomainTransactionSlice(modelTxns), newNextToken, nil
}

// ListUncategorized retrieves a connection's transactions without a category
// assignment, oldest first so rule application follows insertion order.
func (r *PgxTransactionRepository) ListUncategorized(ctx context.Context, householdID, connectionID string) ([]domain.MappedTransaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE household_id = $1 AND connection_id = $2 AND category_id IS NULL
		ORDER BY date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, connectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query uncategorized transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to scan uncategorized transactions: %w", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// SumExpenseAmounts sums expense-direction, non-ignored amounts for a
// category within [from, to].
func (r *PgxTransactionRepository) SumExpenseAmounts(ctx context.Context, householdID, categoryID string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE household_id = $1 AND category_id = $2
		  AND direction = 'EXPENSE' AND ignored = false
		  AND date >= $3 AND date <= $4;
	`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, householdID, categoryID, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses for category %s: %w", categoryID, err)
	}
	return sum, nil
}

// ListRecentByAccount retrieves one external account's transactions on a
// given day, for near-duplicate review.
func (r *PgxTransactionRepository) ListRecentByAccount(ctx context.Context, householdID, externalAccountID string, day time.Time) ([]domain.MappedTransaction, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1).Add(-time.Nanosecond)

	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE household_id = $1 AND external_account_id = $2 AND date >= $3 AND date <= $4
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, householdID, externalAccountID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions by account: %w", err)
	}
	defer rows.Close()

	modelTxns, err := pgx.CollectRows(rows, scanTransaction)
	if err != nil {
		return nil, fmt.Errorf("failed to scan transactions by account: %w", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

// SetTransactionCategory assigns (or clears, with nil) one transaction's category.
func (r *PgxTransactionRepository) SetTransactionCategory(ctx context.Context, householdID, transactionID string, categoryID *string, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET category_id = $3, last_updated_at = $4, last_updated_by = $5
		WHERE household_id = $1 AND transaction_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, householdID, transactionID, categoryID, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set category on transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SetTransactionIgnored flips one transaction's ignored flag.
func (r *PgxTransactionRepository) SetTransactionIgnored(ctx context.Context, householdID, transactionID string, ignored bool, updatedBy string, updatedAt time.Time) error {
	query := `
		UPDATE transactions
		SET ignored = $3, last_updated_at = $4, last_updated_by = $5
		WHERE household_id = $1 AND transaction_id = $2;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, householdID, transactionID, ignored, updatedAt, updatedBy)
	if err != nil {
		return fmt.Errorf("failed to set ignored flag on transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
