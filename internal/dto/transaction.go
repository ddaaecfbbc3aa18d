package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// TransactionResponse defines the transaction representation returned to clients.
type TransactionResponse struct {
	TransactionID     string          `json:"transactionID"`
	ConnectionID      string          `json:"connectionID"`
	ExternalID        string          `json:"externalID"`
	ExternalAccountID string          `json:"externalAccountID"`
	Date              time.Time       `json:"date"`
	Description       string          `json:"description"`
	Merchant          string          `json:"merchant,omitempty"`
	Amount            decimal.Decimal `json:"amount"`
	Direction         string          `json:"direction"`
	Notes             string          `json:"notes,omitempty"`
	CategoryID        *string         `json:"categoryID"`
	CategoryHint      string          `json:"categoryHint,omitempty"`
	Ignored           bool            `json:"ignored"`
}

// ListTransactionsResponse is a page of transactions plus the cursor for the
// next page, if any.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// CategorizeTransactionRequest assigns (or clears) a transaction's category.
// Rule creation from a manual categorization is a separate, explicit
// operation.
type CategorizeTransactionRequest struct {
	CategoryID *string `json:"categoryID"`
}

// SetIgnoredRequest flips a transaction's ignored flag.
type SetIgnoredRequest struct {
	Ignored *bool `json:"ignored" binding:"required"`
}

// ToTransactionResponse maps a domain MappedTransaction to its response form.
func ToTransactionResponse(t *domain.MappedTransaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:     t.TransactionID,
		ConnectionID:      t.ConnectionID,
		ExternalID:        t.ExternalID,
		ExternalAccountID: t.ExternalAccountID,
		Date:              t.Date,
		Description:       t.Description,
		Merchant:          t.Merchant,
		Amount:            t.Amount,
		Direction:         string(t.Direction),
		Notes:             t.Notes,
		CategoryID:        t.CategoryID,
		CategoryHint:      t.CategoryHint,
		Ignored:           t.Ignored,
	}
}

// ToTransactionResponseSlice maps a slice of domain MappedTransactions.
func ToTransactionResponseSlice(ts []domain.MappedTransaction) []TransactionResponse {
	rs := make([]TransactionResponse, len(ts))
	for i := range ts {
		rs[i] = ToTransactionResponse(&ts[i])
	}
	return rs
}
