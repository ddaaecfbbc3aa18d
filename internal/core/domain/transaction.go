package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RawRecordType distinguishes a one-off charge from an installment payment.
type RawRecordType string

const (
	RawRecordNormal      RawRecordType = "normal"
	RawRecordInstallment RawRecordType = "installments"
)

// RawRecordStatus is the provider-reported settlement state of a record.
type RawRecordStatus string

const (
	RawRecordCompleted RawRecordStatus = "completed"
	RawRecordPending   RawRecordStatus = "pending"
)

// InstallmentInfo describes which payment of an installment plan a record is.
type InstallmentInfo struct {
	Number int `json:"number"` // 1-based payment index
	Total  int `json:"total"`
}

// RawScrapedRecord is the provider-specific shape produced by the external
// scraper collaborator. It is immutable once received.
type RawScrapedRecord struct {
	Type             RawRecordType    `json:"type"`
	Identifier       string           `json:"identifier"` // Optional provider id; empty when the provider omits one
	Date             time.Time        `json:"date"`
	ProcessedDate    time.Time        `json:"processedDate"`
	OriginalAmount   decimal.Decimal  `json:"originalAmount"`
	OriginalCurrency string           `json:"originalCurrency"`
	ChargedAmount    decimal.Decimal  `json:"chargedAmount"`
	ChargedCurrency  string           `json:"chargedCurrency"`
	Description      string           `json:"description"`
	Memo             string           `json:"memo"` // Optional
	Installments     *InstallmentInfo `json:"installments"`
	Status           RawRecordStatus  `json:"status"`
	Category         string           `json:"category"` // Optional provider category hint, passed through verbatim
}

// ScrapedAccount groups one scrape's records under the provider account
// they belong to. The account number feeds the external id of every record.
type ScrapedAccount struct {
	AccountNumber string             `json:"accountNumber"`
	Records       []RawScrapedRecord `json:"txns"`
}

// Direction indicates whether money entered or left the account.
type Direction string

const (
	DirectionIncome  Direction = "INCOME"
	DirectionExpense Direction = "EXPENSE"
)

// MappedTransaction is the normalized, deduplication-ready form of one raw
// scraped record. Amount is always non-negative; the sign lives in Direction.
type MappedTransaction struct {
	TransactionID     string          `json:"transactionID"` // Primary Key (UUID), assigned at persistence
	HouseholdID       string          `json:"householdID"`
	ConnectionID      string          `json:"connectionID"`
	ExternalID        string          `json:"externalID"` // "{accountID}_{identifier-or-hash}", primary dedup key
	ExternalAccountID string          `json:"externalAccountID"`
	Date              time.Time       `json:"date"` // Day granularity; time of day is dropped
	Description       string          `json:"description"`
	Merchant          string          `json:"merchant"` // Derived; empty when extraction found nothing usable
	Amount            decimal.Decimal `json:"amount"`
	Direction         Direction       `json:"direction"`
	Notes             string          `json:"notes"` // Installment/memo/foreign-currency annotations, " | " joined
	CategoryID        *string         `json:"categoryID"`
	CategoryHint      string          `json:"categoryHint"` // Provider-supplied, fallback signal only
	Ignored           bool            `json:"ignored"`      // Excluded from budget actuals
	AuditFields
}

// DayKey returns the transaction date truncated to day granularity in UTC.
// Two records differing only in time of day share the same key.
func (t MappedTransaction) DayKey() string {
	return t.Date.UTC().Format("2006-01-02")
}
