package mapping

import (
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/models"
)

// ToModelTransaction converts a domain MappedTransaction to a model Transaction
func ToModelTransaction(d domain.MappedTransaction) models.Transaction {
	return models.Transaction{
		TransactionID:     d.TransactionID,
		HouseholdID:       d.HouseholdID,
		ConnectionID:      d.ConnectionID,
		ExternalID:        d.ExternalID,
		ExternalAccountID: d.ExternalAccountID,
		Date:              d.Date,
		Description:       d.Description,
		Merchant:          d.Merchant,
		Amount:            d.Amount,
		Direction:         string(d.Direction),
		Notes:             d.Notes,
		CategoryID:        d.CategoryID,
		CategoryHint:      d.CategoryHint,
		Ignored:           d.Ignored,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain MappedTransaction
func ToDomainTransaction(m models.Transaction) domain.MappedTransaction {
	return domain.MappedTransaction{
		TransactionID:     m.TransactionID,
		HouseholdID:       m.HouseholdID,
		ConnectionID:      m.ConnectionID,
		ExternalID:        m.ExternalID,
		ExternalAccountID: m.ExternalAccountID,
		Date:              m.Date,
		Description:       m.Description,
		Merchant:          m.Merchant,
		Amount:            m.Amount,
		Direction:         domain.Direction(m.Direction),
		Notes:             m.Notes,
		CategoryID:        m.CategoryID,
		CategoryHint:      m.CategoryHint,
		Ignored:           m.Ignored,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain form
func ToDomainTransactionSlice(ms []models.Transaction) []domain.MappedTransaction {
	ds := make([]domain.MappedTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
