package clients

import (
	"context"
	"time"
)

// ClientsRepository defines the interface for client data access operations
type ClientsRepository interface {
	// FindByID retrieves a client by its primary identifier; returns
	// (nil, nil) when no live client matches
	FindByID(ctx context.Context, id string) (*Client, error)

	// FindByApiKey retrieves a client by its API key; returns (nil, nil)
	// when no live client matches
	FindByApiKey(ctx context.Context, key string) (*Client, error)

	// FindByUserID lists the clients owned by a user
	FindByUserID(ctx context.Context, userID string) ([]*Client, error)

	// Create stores a new client: assigns an id when absent, hashes the
	// provided or generated secret, normalizes scope and IP defaults. The
	// returned client carries the plaintext secret, the only time it is
	// exposed.
	Create(ctx context.Context, params CreateClientParams) (*Client, error)

	// UpdateByID applies the non-nil fields of params to an existing client
	// and returns the updated client, or (nil, nil) when the id is unknown
	UpdateByID(ctx context.Context, id string, params UpdateClientParams) (*Client, error)

	// DeleteByID removes a client and reports the number of rows affected
	DeleteByID(ctx context.Context, id string) (int64, error)
}

// CreateClientParams represents parameters for creating a new client
type CreateClientParams struct {
	ID                   string // assigned when empty
	Name                 string
	UserID               string
	Secret               string // generated when empty
	IpAddresses          []string
	Scopes               []string
	PersonalAccessClient bool
	PasswordClient       bool
	Revoked              bool
	ExpiresAt            *time.Time
}

// UpdateClientParams represents parameters for a partial client update.
// Pointer fields and nil slices mean "leave unchanged".
type UpdateClientParams struct {
	Name                 *string
	UserID               *string
	Secret               *string // re-hashed and rotated when set
	IpAddresses          []string
	Scopes               []string
	PersonalAccessClient *bool
	PasswordClient       *bool
	Revoked              *bool
	ExpiresAt            *time.Time
}

// NormalizeScopes applies the creation default: a client either has an
// explicit scope set or unrestricted access
func NormalizeScopes(scopes []string) []string {
	if len(scopes) == 0 {
		return []string{Wildcard}
	}
	return scopes
}

// NormalizeIpAddresses applies the creation default: an empty allow-list
// means any origin, never deny-all
func NormalizeIpAddresses(ips []string) []string {
	if len(ips) == 0 {
		return []string{Wildcard}
	}
	return ips
}
