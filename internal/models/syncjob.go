package models

import "time"

// SyncJob maps to the sync_jobs table. Rows are append-only.
type SyncJob struct {
	SyncJobID         string     `db:"sync_job_id"`
	HouseholdID       string     `db:"household_id"`
	ConnectionID      string     `db:"connection_id"`
	Status            string     `db:"status"`
	StartedAt         time.Time  `db:"started_at"`
	CompletedAt       *time.Time `db:"completed_at"`
	TransactionsFound int        `db:"transactions_found"`
	TransactionsNew   int        `db:"transactions_new"`
	ErrorMessage      string     `db:"error_message"`
}
