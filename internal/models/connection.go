package models

import "time"

// Connection maps to the connections table. Credentials are stored only as
// an opaque vault blob.
type Connection struct {
	ConnectionID         string     `db:"connection_id"`
	HouseholdID          string     `db:"household_id"`
	Provider             string     `db:"provider"`
	Name                 string     `db:"name"`
	EncryptedCredentials string     `db:"encrypted_credentials"`
	IsActive             bool       `db:"is_active"`
	LastSyncAt           *time.Time `db:"last_sync_at"`
	LastSyncStatus       string     `db:"last_sync_status"`
	LastSyncError        string     `db:"last_sync_error"`
	AuditFields
}
