package dto

import (
	"time"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// TriggerSyncRequest optionally narrows a sync cycle to one connection.
// Absent, all of the household's active connections are synced.
type TriggerSyncRequest struct {
	ConnectionID *string `json:"connectionID"`
}

// ConnectionSyncDetailResponse is the per-connection slice of a sync result.
type ConnectionSyncDetailResponse struct {
	ConnectionID      string `json:"connectionID"`
	Provider          string `json:"provider"`
	Status            string `json:"status"`
	TransactionsFound int    `json:"transactionsFound"`
	TransactionsNew   int    `json:"transactionsNew"`
	ErrorMessage      string `json:"errorMessage,omitempty"`
}

// SyncResultResponse is the aggregate outcome of one sync cycle. Success
// means every attempted connection succeeded; partial failures still return
// this shape with the per-connection errors listed.
type SyncResultResponse struct {
	Success              bool                           `json:"success"`
	Message              string                         `json:"message"`
	ConnectionsAttempted int                            `json:"connectionsAttempted"`
	ConnectionsSucceeded int                            `json:"connectionsSucceeded"`
	TransactionsNew      int                            `json:"transactionsNew"`
	Errors               []string                       `json:"errors"`
	Details              []ConnectionSyncDetailResponse `json:"details"`
	DurationMillis       int64                          `json:"durationMillis"`
}

// SyncJobResponse is one row of the append-only sync audit trail.
type SyncJobResponse struct {
	SyncJobID         string     `json:"syncJobID"`
	ConnectionID      string     `json:"connectionID"`
	Status            string     `json:"status"`
	StartedAt         time.Time  `json:"startedAt"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	TransactionsFound int        `json:"transactionsFound"`
	TransactionsNew   int        `json:"transactionsNew"`
	ErrorMessage      string     `json:"errorMessage,omitempty"`
}

// ToSyncResultResponse maps a domain SyncResult to its response form.
func ToSyncResultResponse(r *domain.SyncResult) SyncResultResponse {
	details := make([]ConnectionSyncDetailResponse, len(r.Details))
	for i, d := range r.Details {
		details[i] = ConnectionSyncDetailResponse{
			ConnectionID:      d.ConnectionID,
			Provider:          string(d.Provider),
			Status:            string(d.Status),
			TransactionsFound: d.TransactionsFound,
			TransactionsNew:   d.TransactionsNew,
			ErrorMessage:      d.ErrorMessage,
		}
	}
	success := len(r.Errors) == 0
	message := "sync completed"
	if !success {
		message = "sync completed with errors"
	}
	errs := r.Errors
	if errs == nil {
		errs = []string{}
	}
	return SyncResultResponse{
		Success:              success,
		Message:              message,
		ConnectionsAttempted: r.ConnectionsAttempted,
		ConnectionsSucceeded: r.ConnectionsSucceeded,
		TransactionsNew:      r.TransactionsNew,
		Errors:               errs,
		Details:              details,
		DurationMillis:       r.Duration.Milliseconds(),
	}
}

// ToSyncJobResponseSlice maps domain SyncJobs to their response form.
func ToSyncJobResponseSlice(js []domain.SyncJob) []SyncJobResponse {
	rs := make([]SyncJobResponse, len(js))
	for i, j := range js {
		rs[i] = SyncJobResponse{
			SyncJobID:         j.SyncJobID,
			ConnectionID:      j.ConnectionID,
			Status:            string(j.Status),
			StartedAt:         j.StartedAt,
			CompletedAt:       j.CompletedAt,
			TransactionsFound: j.TransactionsFound,
			TransactionsNew:   j.TransactionsNew,
			ErrorMessage:      j.ErrorMessage,
		}
	}
	return rs
}
