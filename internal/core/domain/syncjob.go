package domain

import "time"

// SyncJobStatus is the per-connection attempt state machine:
// pending -> running -> {succeeded, failed}.
type SyncJobStatus string

const (
	SyncJobPending   SyncJobStatus = "PENDING"
	SyncJobRunning   SyncJobStatus = "RUNNING"
	SyncJobSucceeded SyncJobStatus = "SUCCEEDED"
	SyncJobFailed    SyncJobStatus = "FAILED"
)

// SyncJob is one append-only audit row for a single connection attempt
// within a sync cycle. Rows are never updated after reaching a terminal
// status and never deleted.
type SyncJob struct {
	SyncJobID         string        `json:"syncJobID"` // Primary Key (UUID)
	HouseholdID       string        `json:"householdID"`
	ConnectionID      string        `json:"connectionID"`
	Status            SyncJobStatus `json:"status"`
	StartedAt         time.Time     `json:"startedAt"`
	CompletedAt       *time.Time    `json:"completedAt"`
	TransactionsFound int           `json:"transactionsFound"`
	TransactionsNew   int           `json:"transactionsNew"`
	ErrorMessage      string        `json:"errorMessage"`
}

// ConnectionSyncDetail is the per-connection slice of an aggregate result.
type ConnectionSyncDetail struct {
	ConnectionID      string        `json:"connectionID"`
	Provider          Provider      `json:"provider"`
	Status            SyncJobStatus `json:"status"`
	TransactionsFound int           `json:"transactionsFound"`
	TransactionsNew   int           `json:"transactionsNew"`
	ErrorMessage      string        `json:"errorMessage,omitempty"`
}

// SyncResult is the aggregate outcome of one sync cycle. It is returned even
// on partial failure; only a configuration-level fault prevents a cycle from
// producing one.
type SyncResult struct {
	ConnectionsAttempted int                    `json:"connectionsAttempted"`
	ConnectionsSucceeded int                    `json:"connectionsSucceeded"`
	TransactionsNew      int                    `json:"transactionsNew"`
	Errors               []string               `json:"errors"`
	Details              []ConnectionSyncDetail `json:"details"`
	Duration             time.Duration          `json:"duration"`
}
