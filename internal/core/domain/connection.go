package domain

import "time"

// Provider identifies which bank a connection scrapes. The provider tag
// selects the credential shape and the scraper implementation; there is no
// per-provider subtype hierarchy.
type Provider string

const (
	ProviderHapoalim  Provider = "hapoalim"
	ProviderLeumi     Provider = "leumi"
	ProviderDiscount  Provider = "discount"
	ProviderIsracard  Provider = "isracard"
	ProviderMax       Provider = "max"
	ProviderCalOnline Provider = "visaCal"
)

// CredentialShape lists the credential fields a provider requires.
// Creating a connection validates the submitted credential payload against
// the shape of its provider tag.
type CredentialShape struct {
	Provider Provider `json:"provider"`
	Fields   []string `json:"fields"` // e.g. ["username","password"] or ["id","card6Digits","password"]
}

// credentialShapes is the tagged-union registry of supported providers.
var credentialShapes = map[Provider]CredentialShape{
	ProviderHapoalim:  {Provider: ProviderHapoalim, Fields: []string{"userCode", "password"}},
	ProviderLeumi:     {Provider: ProviderLeumi, Fields: []string{"username", "password"}},
	ProviderDiscount:  {Provider: ProviderDiscount, Fields: []string{"id", "password", "num"}},
	ProviderIsracard:  {Provider: ProviderIsracard, Fields: []string{"id", "card6Digits", "password"}},
	ProviderMax:       {Provider: ProviderMax, Fields: []string{"username", "password"}},
	ProviderCalOnline: {Provider: ProviderCalOnline, Fields: []string{"username", "password"}},
}

// ShapeForProvider returns the credential shape for a provider tag and
// whether the provider is known.
func ShapeForProvider(p Provider) (CredentialShape, bool) {
	shape, ok := credentialShapes[p]
	return shape, ok
}

// ConnectionCredentials is the decrypted credential payload for one
// connection. It exists only in memory for the duration of a single scraper
// invocation and is never persisted in plaintext.
type ConnectionCredentials map[string]string

// ConnectionSyncStatus tracks the outcome of the most recent sync attempt.
type ConnectionSyncStatus string

const (
	ConnectionSyncNever     ConnectionSyncStatus = "NEVER"
	ConnectionSyncSucceeded ConnectionSyncStatus = "SUCCEEDED"
	ConnectionSyncFailed    ConnectionSyncStatus = "FAILED"
)

// Connection represents one scraped bank connection belonging to a household.
// EncryptedCredentials is an opaque vault blob; the plaintext shape is
// determined by the Provider tag.
type Connection struct {
	ConnectionID         string               `json:"connectionID"` // Primary Key (UUID)
	HouseholdID          string               `json:"householdID"`  // FK -> households
	Provider             Provider             `json:"provider"`
	Name                 string               `json:"name"`                 // User-given label
	EncryptedCredentials string               `json:"-"`                    // Vault blob, never serialized outward
	IsActive             bool                 `json:"isActive"`             // Inactive connections are skipped by sync-all
	LastSyncAt           *time.Time           `json:"lastSyncAt"`           // Nil until the first attempt
	LastSyncStatus       ConnectionSyncStatus `json:"lastSyncStatus"`
	LastSyncError        string               `json:"lastSyncError"` // Message of the most recent failure, if any
	AuditFields
}
