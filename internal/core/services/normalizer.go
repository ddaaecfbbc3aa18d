package services

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// notesDelimiter joins the assembled note parts.
const notesDelimiter = " | "

// merchantMaxLength caps extracted merchant names.
const merchantMaxLength = 100

// transactionTypePrefixes are stripped from the description before merchant
// extraction, case-insensitively.
var transactionTypePrefixes = []string{
	"charge",
	"payment",
	"transfer",
	"standing order",
	"withdrawal",
}

// Normalizer converts raw scraped records into mapped transactions.
type Normalizer struct {
	baseCurrency string
}

// NewNormalizer creates a Normalizer for a household base currency.
func NewNormalizer(baseCurrency string) *Normalizer {
	return &Normalizer{baseCurrency: baseCurrency}
}

// NormalizeBatch maps a batch of raw records belonging to one external
// account. Pending records are excluded entirely: they never reach
// persistence.
func (n *Normalizer) NormalizeBatch(records []domain.RawScrapedRecord, householdID, connectionID, accountID string) []domain.MappedTransaction {
	mapped := make([]domain.MappedTransaction, 0, len(records))
	for _, rec := range records {
		if rec.Status == domain.RawRecordPending {
			continue
		}
		mapped = append(mapped, n.NormalizeRecord(rec, householdID, connectionID, accountID))
	}
	return mapped
}

// NormalizeRecord maps one raw scraped record into its normalized form.
func (n *Normalizer) NormalizeRecord(rec domain.RawScrapedRecord, householdID, connectionID, accountID string) domain.MappedTransaction {
	direction := domain.DirectionIncome
	if rec.ChargedAmount.IsNegative() {
		direction = domain.DirectionExpense
	}

	return domain.MappedTransaction{
		HouseholdID:       householdID,
		ConnectionID:      connectionID,
		ExternalID:        n.externalID(rec, accountID),
		ExternalAccountID: accountID,
		Date:              dayOf(rec.Date),
		Description:       rec.Description,
		Merchant:          ExtractMerchant(rec.Description),
		Amount:            rec.ChargedAmount.Abs(),
		Direction:         direction,
		Notes:             n.assembleNotes(rec),
		CategoryHint:      rec.Category,
	}
}

// externalID builds "{accountID}_{identifier}" when the provider supplies an
// identifier, otherwise "{accountID}_{digest}" over the identifying fields.
// The digest is deterministic for identical input and is the sole dedup key
// when providers omit identifiers.
func (n *Normalizer) externalID(rec domain.RawScrapedRecord, accountID string) string {
	if rec.Identifier != "" {
		return fmt.Sprintf("%s_%s", accountID, rec.Identifier)
	}
	parts := []string{
		accountID,
		dayOf(rec.Date).Format("2006-01-02"),
		rec.ChargedAmount.StringFixed(2),
		rec.Description,
	}
	if rec.Installments != nil {
		parts = append(parts, fmt.Sprintf("%d/%d", rec.Installments.Number, rec.Installments.Total))
	}
	return fmt.Sprintf("%s_%s", accountID, digest16(parts...))
}

// assembleNotes appends, in order and only if present: the installment
// annotation, the memo, and the foreign-currency annotation.
func (n *Normalizer) assembleNotes(rec domain.RawScrapedRecord) string {
	var parts []string
	if rec.Type == domain.RawRecordInstallment && rec.Installments != nil {
		parts = append(parts, fmt.Sprintf("payment %d/%d", rec.Installments.Number, rec.Installments.Total))
	}
	if rec.Memo != "" {
		parts = append(parts, rec.Memo)
	}
	if rec.OriginalCurrency != "" && rec.OriginalCurrency != n.baseCurrency {
		parts = append(parts, fmt.Sprintf("%s %s", rec.OriginalAmount.String(), rec.OriginalCurrency))
	}
	return strings.Join(parts, notesDelimiter)
}

// ExtractMerchant derives a merchant name from a description: known
// transaction-type prefixes are stripped case-insensitively, remainders
// shorter than 3 characters yield no merchant, and the text preceding a
// " - " separator wins, capped at 100 characters.
func ExtractMerchant(description string) string {
	text := strings.TrimSpace(description)
	lower := strings.ToLower(text)
	for _, prefix := range transactionTypePrefixes {
		if strings.HasPrefix(lower, prefix) {
			text = strings.TrimSpace(text[len(prefix):])
			text = strings.TrimSpace(strings.TrimPrefix(text, ":"))
			break
		}
	}
	// Length rules count characters, not bytes, so non-ASCII descriptions
	// (Hebrew bank feeds) are measured and capped without splitting a rune.
	if utf8.RuneCountInString(text) < 3 {
		return ""
	}
	if idx := strings.Index(text, " - "); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	if runes := []rune(text); len(runes) > merchantMaxLength {
		text = string(runes[:merchantMaxLength])
	}
	return text
}

// dayOf truncates a timestamp to day granularity in UTC.
func dayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
