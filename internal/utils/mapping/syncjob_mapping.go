package mapping

import (
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	"github.com/hfa-project/home_finance_app/internal/models"
)

// ToModelSyncJob converts a domain SyncJob to a model SyncJob
func ToModelSyncJob(d domain.SyncJob) models.SyncJob {
	return models.SyncJob{
		SyncJobID:         d.SyncJobID,
		HouseholdID:       d.HouseholdID,
		ConnectionID:      d.ConnectionID,
		Status:            string(d.Status),
		StartedAt:         d.StartedAt,
		CompletedAt:       d.CompletedAt,
		TransactionsFound: d.TransactionsFound,
		TransactionsNew:   d.TransactionsNew,
		ErrorMessage:      d.ErrorMessage,
	}
}

// ToDomainSyncJob converts a model SyncJob to a domain SyncJob
func ToDomainSyncJob(m models.SyncJob) domain.SyncJob {
	return domain.SyncJob{
		SyncJobID:         m.SyncJobID,
		HouseholdID:       m.HouseholdID,
		ConnectionID:      m.ConnectionID,
		Status:            domain.SyncJobStatus(m.Status),
		StartedAt:         m.StartedAt,
		CompletedAt:       m.CompletedAt,
		TransactionsFound: m.TransactionsFound,
		TransactionsNew:   m.TransactionsNew,
		ErrorMessage:      m.ErrorMessage,
	}
}

// ToDomainSyncJobSlice converts a slice of model SyncJobs to domain form
func ToDomainSyncJobSlice(ms []models.SyncJob) []domain.SyncJob {
	ds := make([]domain.SyncJob, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSyncJob(m)
	}
	return ds
}
