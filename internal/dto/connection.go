package dto

import (
	"time"

	"github.com/hfa-project/home_finance_app/internal/core/domain"
)

// CreateConnectionRequest defines the payload for creating a bank connection.
// Credentials are validated against the provider's credential shape,
// encrypted immediately, and never echoed back.
type CreateConnectionRequest struct {
	Provider    string            `json:"provider" binding:"required"`
	Name        string            `json:"name" binding:"required"`
	Credentials map[string]string `json:"credentials" binding:"required"`
}

// ConnectionResponse defines the connection representation returned to
// clients. The credential blob is deliberately absent.
type ConnectionResponse struct {
	ConnectionID   string     `json:"connectionID"`
	Provider       string     `json:"provider"`
	Name           string     `json:"name"`
	IsActive       bool       `json:"isActive"`
	LastSyncAt     *time.Time `json:"lastSyncAt,omitempty"`
	LastSyncStatus string     `json:"lastSyncStatus"`
	LastSyncError  string     `json:"lastSyncError,omitempty"`
}

// ToConnectionResponse maps a domain Connection to its response form.
func ToConnectionResponse(c *domain.Connection) ConnectionResponse {
	return ConnectionResponse{
		ConnectionID:   c.ConnectionID,
		Provider:       string(c.Provider),
		Name:           c.Name,
		IsActive:       c.IsActive,
		LastSyncAt:     c.LastSyncAt,
		LastSyncStatus: string(c.LastSyncStatus),
		LastSyncError:  c.LastSyncError,
	}
}

// ToConnectionResponseSlice maps a slice of domain Connections.
func ToConnectionResponseSlice(cs []domain.Connection) []ConnectionResponse {
	rs := make([]ConnectionResponse, len(cs))
	for i := range cs {
		rs[i] = ToConnectionResponse(&cs[i])
	}
	return rs
}
