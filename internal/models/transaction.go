package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction maps to the transactions table. The unique constraint on
// (household_id, external_id) is the final dedup backstop under concurrent
// syncs.
type Transaction struct {
	TransactionID     string          `db:"transaction_id"`
	HouseholdID       string          `db:"household_id"`
	ConnectionID      string          `db:"connection_id"`
	ExternalID        string          `db:"external_id"`
	ExternalAccountID string          `db:"external_account_id"`
	Date              time.Time       `db:"date"`
	Description       string          `db:"description"`
	Merchant          string          `db:"merchant"`
	Amount            decimal.Decimal `db:"amount"`
	Direction         string          `db:"direction"`
	Notes             string          `db:"notes"`
	CategoryID        *string         `db:"category_id"`
	CategoryHint      string          `db:"category_hint"`
	Ignored           bool            `db:"ignored"`
	AuditFields
}
