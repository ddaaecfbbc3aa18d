package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hfa-project/home_finance_app/internal/apperrors"
	"github.com/hfa-project/home_finance_app/internal/core/domain"
	portsrepo "github.com/hfa-project/home_finance_app/internal/core/ports/repositories"
	portssvc "github.com/hfa-project/home_finance_app/internal/core/ports/services"
	"github.com/hfa-project/home_finance_app/internal/dto"
	"github.com/hfa-project/home_finance_app/internal/vault"
)

type connectionService struct {
	BaseService
	connectionRepo portsrepo.ConnectionRepositoryFacade
	vault          *vault.Vault
}

// NewConnectionService creates the bank connection service.
func NewConnectionService(connectionRepo portsrepo.ConnectionRepositoryFacade, v *vault.Vault) portssvc.ConnectionSvcFacade {
	return &connectionService{
		connectionRepo: connectionRepo,
		vault:          v,
	}
}

var _ portssvc.ConnectionSvcFacade = (*connectionService)(nil)

func (s *connectionService) GetConnection(ctx context.Context, householdID, connectionID string) (*domain.Connection, error) {
	connection, err := s.connectionRepo.FindConnectionByID(ctx, householdID, connectionID)
	if err != nil {
		return nil, fmt.Errorf("failed to find connection: %w", err)
	}
	return connection, nil
}

func (s *connectionService) ListConnections(ctx context.Context, householdID string) ([]domain.Connection, error) {
	connections, err := s.connectionRepo.ListConnections(ctx, householdID, false)
	if err != nil {
		return nil, fmt.Errorf("failed to list connections: %w", err)
	}
	return connections, nil
}

// CreateConnection validates the credential payload against the provider's
// shape, encrypts it, and persists the connection. Plaintext credentials do
// not survive this call.
func (s *connectionService) CreateConnection(ctx context.Context, householdID string, req dto.CreateConnectionRequest, creatorUserID string) (*domain.Connection, error) {
	if s.vault == nil {
		return nil, fmt.Errorf("master secret not configured: %w", apperrors.ErrConfiguration)
	}
	provider := domain.Provider(req.Provider)
	shape, ok := domain.ShapeForProvider(provider)
	if !ok {
		return nil, fmt.Errorf("unknown provider %q: %w", req.Provider, apperrors.ErrValidation)
	}
	if err := validateCredentialShape(shape, req.Credentials); err != nil {
		return nil, err
	}

	blob, err := s.vault.Encrypt(req.Credentials)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt credentials: %w", err)
	}

	now := time.Now()
	connection := domain.Connection{
		ConnectionID:         uuid.NewString(),
		HouseholdID:          householdID,
		Provider:             provider,
		Name:                 req.Name,
		EncryptedCredentials: blob,
		IsActive:             true,
		LastSyncStatus:       domain.ConnectionSyncNever,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}
	if err := s.connectionRepo.SaveConnection(ctx, connection); err != nil {
		return nil, fmt.Errorf("failed to save connection: %w", err)
	}
	s.LogInfo(ctx, "Connection created",
		slog.String("connection_id", connection.ConnectionID),
		slog.String("provider", string(provider)))
	return &connection, nil
}

func (s *connectionService) SetConnectionActive(ctx context.Context, householdID, connectionID string, active bool, actorUserID string) error {
	if err := s.connectionRepo.SetConnectionActive(ctx, householdID, connectionID, active, actorUserID, time.Now()); err != nil {
		return fmt.Errorf("failed to toggle connection: %w", err)
	}
	return nil
}

// validateCredentialShape checks the payload carries exactly the provider's
// declared fields, all non-empty. Missing and unexpected fields are both
// rejected so a typo cannot slip a credential past encryption.
func validateCredentialShape(shape domain.CredentialShape, credentials map[string]string) error {
	var missing, unexpected []string
	expected := make(map[string]bool, len(shape.Fields))
	for _, field := range shape.Fields {
		expected[field] = true
		if v, ok := credentials[field]; !ok || v == "" {
			missing = append(missing, field)
		}
	}
	for field := range credentials {
		if !expected[field] {
			unexpected = append(unexpected, field)
		}
	}
	if len(missing) == 0 && len(unexpected) == 0 {
		return nil
	}
	sort.Strings(missing)
	sort.Strings(unexpected)
	return fmt.Errorf("credential payload does not match provider %s shape (missing %v, unexpected %v): %w",
		shape.Provider, missing, unexpected, apperrors.ErrValidation)
}
