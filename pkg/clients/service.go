package clients

import (
	"context"
	"fmt"
	"log/slog"
)

// ClientService provides methods for managing authorized clients
type ClientService struct {
	repository ClientsRepository
}

// NewClientService creates a new client service with the provided repository
func NewClientService(repository ClientsRepository) *ClientService {
	return &ClientService{
		repository: repository,
	}
}

// CreateClient registers a new client. The returned client carries the
// plaintext secret; it is the caller's only chance to read it.
func (s *ClientService) CreateClient(ctx context.Context, params CreateClientParams) (*Client, error) {
	client, err := s.repository.Create(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	slog.Info("created client", "client", client)
	return client, nil
}

// GetClient retrieves a client by id
func (s *ClientService) GetClient(ctx context.Context, id string) (*Client, error) {
	return s.repository.FindByID(ctx, id)
}

// GetUserClients lists the clients owned by a user
func (s *ClientService) GetUserClients(ctx context.Context, userID string) ([]*Client, error) {
	return s.repository.FindByUserID(ctx, userID)
}

// UpdateClient applies a partial update to a client
func (s *ClientService) UpdateClient(ctx context.Context, id string, params UpdateClientParams) (*Client, error) {
	client, err := s.repository.UpdateByID(ctx, id, params)
	if err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}
	return client, nil
}

// RotateSecret replaces a client secret and returns the client with the new
// plaintext secret set
func (s *ClientService) RotateSecret(ctx context.Context, id, secret string) (*Client, error) {
	client, err := s.repository.UpdateByID(ctx, id, UpdateClientParams{Secret: &secret})
	if err != nil {
		return nil, fmt.Errorf("failed to rotate client secret: %w", err)
	}
	if client != nil {
		slog.Info("rotated client secret", "client", client)
	}
	return client, nil
}

// RevokeClient marks a client as revoked; revoked clients never authenticate
func (s *ClientService) RevokeClient(ctx context.Context, id string) (*Client, error) {
	revoked := true
	client, err := s.repository.UpdateByID(ctx, id, UpdateClientParams{Revoked: &revoked})
	if err != nil {
		return nil, fmt.Errorf("failed to revoke client: %w", err)
	}
	if client != nil {
		slog.Info("revoked client", "client", client)
	}
	return client, nil
}

// DeleteClient removes a client and reports the number of rows affected
func (s *ClientService) DeleteClient(ctx context.Context, id string) (int64, error) {
	return s.repository.DeleteByID(ctx, id)
}
