package clients

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/tendant/simple-clients/pkg/secrets"
)

// InMemoryClientsRepository implements ClientsRepository using in-memory
// storage. Useful for development, demos and tests; all data is lost when the
// process stops.
type InMemoryClientsRepository struct {
	clients   map[string]*Client
	hasher    secrets.SecretHasher
	generator *secrets.Generator
	mutex     sync.RWMutex
}

// NewInMemoryClientsRepository creates an in-memory clients repository.
// Starts empty - clients are added through Create.
func NewInMemoryClientsRepository(hasher secrets.SecretHasher, generator *secrets.Generator) *InMemoryClientsRepository {
	return &InMemoryClientsRepository{
		clients:   make(map[string]*Client),
		hasher:    hasher,
		generator: generator,
	}
}

// FindByID retrieves a client by id, excluding expired clients
func (r *InMemoryClientsRepository) FindByID(ctx context.Context, id string) (*Client, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	client, exists := r.clients[id]
	if !exists || expired(client) {
		return nil, nil
	}
	return cloneClient(client)
}

// FindByApiKey retrieves a client by API key, excluding expired clients
func (r *InMemoryClientsRepository) FindByApiKey(ctx context.Context, key string) (*Client, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	for _, client := range r.clients {
		if client.ApiKey != "" && client.ApiKey == key && !expired(client) {
			return cloneClient(client)
		}
	}
	return nil, nil
}

// FindByUserID lists the clients owned by a user
func (r *InMemoryClientsRepository) FindByUserID(ctx context.Context, userID string) ([]*Client, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	var owned []*Client
	for _, client := range r.clients {
		if client.UserID == userID {
			clone, err := cloneClient(client)
			if err != nil {
				return nil, err
			}
			owned = append(owned, clone)
		}
	}
	return owned, nil
}

// Create stores a new client and returns it with the plaintext secret set
func (r *InMemoryClientsRepository) Create(ctx context.Context, params CreateClientParams) (*Client, error) {
	plainText := params.Secret
	if plainText == "" {
		generated, err := r.generator.Generate()
		if err != nil {
			return nil, fmt.Errorf("failed to generate client secret: %w", err)
		}
		plainText = generated
	}

	hashedSecret, err := r.hasher.Hash(plainText)
	if err != nil {
		return nil, fmt.Errorf("failed to hash client secret: %w", err)
	}

	id := params.ID
	if id == "" {
		id = uuid.Must(uuid.NewV7()).String()
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.clients[id]; exists {
		return nil, fmt.Errorf("client already exists: %s", id)
	}

	client := &Client{
		ID:                   id,
		Name:                 params.Name,
		UserID:               params.UserID,
		HashedSecret:         hashedSecret,
		ApiKey:               plainText,
		IpAddresses:          NormalizeIpAddresses(params.IpAddresses),
		Scopes:               NormalizeScopes(params.Scopes),
		PersonalAccessClient: params.PersonalAccessClient,
		PasswordClient:       params.PasswordClient,
		Revoked:              params.Revoked,
		ExpiresAt:            params.ExpiresAt,
	}
	r.clients[id] = client

	result, err := cloneClient(client)
	if err != nil {
		return nil, err
	}
	result.PlainTextSecret = plainText
	return result, nil
}

// UpdateByID applies the non-nil fields of params to an existing client
func (r *InMemoryClientsRepository) UpdateByID(ctx context.Context, id string, params UpdateClientParams) (*Client, error) {
	var plainText string
	var hashedSecret string
	if params.Secret != nil {
		plainText = *params.Secret
		hashed, err := r.hasher.Hash(plainText)
		if err != nil {
			return nil, fmt.Errorf("failed to hash client secret: %w", err)
		}
		hashedSecret = hashed
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	client, exists := r.clients[id]
	if !exists {
		return nil, nil
	}

	if params.Name != nil {
		client.Name = *params.Name
	}
	if params.UserID != nil {
		client.UserID = *params.UserID
	}
	if params.Secret != nil {
		client.HashedSecret = hashedSecret
		client.ApiKey = plainText
	}
	if params.IpAddresses != nil {
		client.IpAddresses = NormalizeIpAddresses(params.IpAddresses)
	}
	if params.Scopes != nil {
		client.Scopes = NormalizeScopes(params.Scopes)
	}
	if params.PersonalAccessClient != nil {
		client.PersonalAccessClient = *params.PersonalAccessClient
	}
	if params.PasswordClient != nil {
		client.PasswordClient = *params.PasswordClient
	}
	if params.Revoked != nil {
		client.Revoked = *params.Revoked
	}
	if params.ExpiresAt != nil {
		client.ExpiresAt = params.ExpiresAt
	}

	result, err := cloneClient(client)
	if err != nil {
		return nil, err
	}
	result.PlainTextSecret = plainText
	return result, nil
}

// DeleteByID removes a client and reports the number of entries removed
func (r *InMemoryClientsRepository) DeleteByID(ctx context.Context, id string) (int64, error) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exists := r.clients[id]; !exists {
		return 0, nil
	}
	delete(r.clients, id)
	return 1, nil
}

func expired(client *Client) bool {
	return client.ExpiresAt != nil && client.ExpiresAt.Before(time.Now())
}

// cloneClient deep-copies a stored client so callers never share slices with
// the repository
func cloneClient(client *Client) (*Client, error) {
	clone := &Client{}
	if err := copier.CopyWithOption(clone, client, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy client: %w", err)
	}
	return clone, nil
}
