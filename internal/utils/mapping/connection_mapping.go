package mapping

import (
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/models"
)

// ToModelConnection converts a domain Connection to a model Connection
func ToModelConnection(d domain.Connection) models.Connection {
	return models.Connection{
		ConnectionID:         d.ConnectionID,
		HouseholdID:          d.HouseholdID,
		Provider:             string(d.Provider),
		Name:                 d.Name,
		EncryptedCredentials: d.EncryptedCredentials,
		IsActive:             d.IsActive,
		LastSyncAt:           d.LastSyncAt,
		LastSyncStatus:       string(d.LastSyncStatus),
		LastSyncError:        d.LastSyncError,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainConnection converts a model Connection to a domain Connection
func ToDomainConnection(m models.Connection) domain.Connection {
	return domain.Connection{
		ConnectionID:         m.ConnectionID,
		HouseholdID:          m.HouseholdID,
		Provider:             domain.Provider(m.Provider),
		Name:                 m.Name,
		EncryptedCredentials: m.EncryptedCredentials,
		IsActive:             m.IsActive,
		LastSyncAt:           m.LastSyncAt,
		LastSyncStatus:       domain.ConnectionSyncStatus(m.LastSyncStatus),
		LastSyncError:        m.LastSyncError,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainConnectionSlice converts a slice of model Connections to domain form
func ToDomainConnectionSlice(ms []models.Connection) []domain.Connection {
	ds := make([]domain.Connection, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainConnection(m)
	}
	return ds
}
