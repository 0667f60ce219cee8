package guard

import (
	"log/slog"
	"net/http"

	"github.com/tendant/simple-clients/pkg/clients"
	"github.com/tendant/simple-clients/pkg/credentials"
	"github.com/tendant/simple-clients/pkg/errors"
	"github.com/tendant/simple-clients/pkg/secrets"
)

// RequestClientsProvider resolves the authenticated client for a request.
// (nil, nil) means the provider's transport was not used by this request; an
// error is a terminal rejection.
type RequestClientsProvider interface {
	GetRequestClient(r *http.Request) (*clients.Client, error)
}

// ErrNoCredentials is returned when no supported transport carried
// credentials. The composite provider treats it as "try the next provider".
var ErrNoCredentials = errors.New(errors.ErrCodeAuthFailed, "authorization headers and cookies not found")

// ApiKeyClientsProvider resolves clients by the API key carried under the
// access_token or api_key Authorization scheme. Key match is the whole check;
// there is no secret verification step.
type ApiKeyClientsProvider struct {
	repository clients.ClientsRepository
}

// NewApiKeyClientsProvider creates an API key client provider
func NewApiKeyClientsProvider(repository clients.ClientsRepository) *ApiKeyClientsProvider {
	return &ApiKeyClientsProvider{repository: repository}
}

// GetRequestClient implements RequestClientsProvider
func (p *ApiKeyClientsProvider) GetRequestClient(r *http.Request) (*clients.Client, error) {
	key := credentials.ApiKeyFromRequest(r)
	if key == "" {
		return nil, ErrNoCredentials
	}

	client, err := p.repository.FindByApiKey(r.Context(), key)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to look up client by api key")
	}
	if client == nil {
		return nil, errors.New(errors.ErrCodeClientNotFound, "access client not found")
	}
	return client, nil
}

// CredentialClientsProvider resolves clients through a credentials extractor
// (usually the full pipeline): fetch by id, then verify the claimed secret.
type CredentialClientsProvider struct {
	extractor  credentials.Extractor
	verifier   secrets.SecretVerifier
	repository clients.ClientsRepository
}

// NewCredentialClientsProvider creates a credentials-based client provider
func NewCredentialClientsProvider(extractor credentials.Extractor, verifier secrets.SecretVerifier, repository clients.ClientsRepository) *CredentialClientsProvider {
	return &CredentialClientsProvider{
		extractor:  extractor,
		verifier:   verifier,
		repository: repository,
	}
}

// GetRequestClient implements RequestClientsProvider
func (p *CredentialClientsProvider) GetRequestClient(r *http.Request) (*clients.Client, error) {
	creds, err := p.extractor.Attempt(r)
	if err != nil {
		return nil, err
	}
	if creds == nil {
		return nil, ErrNoCredentials
	}
	return p.GetClientByCredentials(r, creds)
}

// GetClientByCredentials fetches the candidate client and verifies the
// claimed secret; an unknown id and a failed verification are
// indistinguishable to the caller.
func (p *CredentialClientsProvider) GetClientByCredentials(r *http.Request, creds *credentials.Credentials) (*clients.Client, error) {
	client, err := p.repository.FindByID(r.Context(), creds.ID)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "failed to look up client")
	}
	if client == nil {
		return nil, errors.New(errors.ErrCodeClientNotFound, "access client not found")
	}

	ok, err := p.verifier.Verify(creds.Secret, client.HashedSecret)
	if err != nil || !ok {
		slog.Debug("client secret verification failed", "clientId", creds.ID, "error", err)
		return nil, errors.New(errors.ErrCodeClientNotFound, "access client not found")
	}
	return client, nil
}

// CompositeClientsProvider tries providers in order and returns the first
// resolved client. A provider reporting ErrNoCredentials yields to the next
// one; any other error is terminal.
type CompositeClientsProvider struct {
	providers []RequestClientsProvider
}

// NewCompositeClientsProvider creates a composite provider
func NewCompositeClientsProvider(providers ...RequestClientsProvider) *CompositeClientsProvider {
	return &CompositeClientsProvider{providers: providers}
}

// GetRequestClient implements RequestClientsProvider
func (p *CompositeClientsProvider) GetRequestClient(r *http.Request) (*clients.Client, error) {
	for _, provider := range p.providers {
		client, err := provider.GetRequestClient(r)
		if err != nil {
			if errors.IsCode(err, errors.ErrCodeAuthFailed) {
				continue
			}
			return nil, err
		}
		if client != nil {
			return client, nil
		}
	}
	return nil, ErrNoCredentials
}

// NewClientsProvider assembles the default composite: API key lookup first,
// then the credentials pipeline with secret verification.
func NewClientsProvider(repository clients.ClientsRepository, verifier secrets.SecretVerifier, cfg credentials.PipelineConfig) *CompositeClientsProvider {
	return NewCompositeClientsProvider(
		NewApiKeyClientsProvider(repository),
		NewCredentialClientsProvider(credentials.NewPipeline(cfg), verifier, repository),
	)
}
