package guard

import (
	stderrors "errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/tendant/simple-clients/pkg/clients"
	"github.com/tendant/simple-clients/pkg/credentials"
	"github.com/tendant/simple-clients/pkg/errors"
	"github.com/tendant/simple-clients/pkg/secrets"
)

// Guard enforces client authentication and authorization in front of
// downstream handlers. Every rejection is a 401 carrying the triggering
// message; no internal error detail leaks past this boundary.
type Guard struct {
	provider RequestClientsProvider
	notFound string
}

// GuardOption configures a Guard
type GuardOption func(*Guard)

// WithNotFoundMessage overrides the message used when no client resolves
func WithNotFoundMessage(message string) GuardOption {
	return func(g *Guard) {
		g.notFound = message
	}
}

// New creates a Guard around a client provider
func New(provider RequestClientsProvider, opts ...GuardOption) *Guard {
	g := &Guard{provider: provider}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// NewClientsGuard creates the default guard: API key lookup first, then the
// full credentials pipeline with secret verification.
func NewClientsGuard(repository clients.ClientsRepository, verifier secrets.SecretVerifier, cfg credentials.PipelineConfig) *Guard {
	return New(NewClientsProvider(repository, verifier, cfg))
}

// NewBasicAuthGuard creates a guard accepting only Basic-Auth credentials
func NewBasicAuthGuard(repository clients.ClientsRepository, verifier secrets.SecretVerifier) *Guard {
	provider := NewCredentialClientsProvider(credentials.NewBasicExtractor(), verifier, repository)
	return New(provider, WithNotFoundMessage("basic auth client not found"))
}

// NewApiKeyGuard creates a guard accepting only API key credentials
func NewApiKeyGuard(repository clients.ClientsRepository) *Guard {
	return New(NewApiKeyClientsProvider(repository))
}

// Clients returns a middleware that resolves and validates the request
// client against the required scopes, attaches it to the request context and
// continues downstream. Any failure stops the request with a 401.
func (g *Guard) Clients(scopes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			client, err := g.resolve(r)
			if err != nil {
				g.unauthorized(w, r, err)
				return
			}

			if err := client.Validate(scopes, credentials.RequestIP(r)); err != nil {
				slog.Debug("client failed validation", "client", client, "error", err)
				g.unauthorized(w, r, err)
				return
			}

			// The host request may have been cancelled while we were
			// resolving; never proceed downstream in that case
			if r.Context().Err() != nil {
				return
			}

			next.ServeHTTP(w, r.WithContext(WithRequestClient(r.Context(), client)))
		})
	}
}

// FirstPartyClients returns a middleware that additionally requires the
// resolved client to be first-party (personal-access or password-grant).
func (g *Guard) FirstPartyClients(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		client, err := g.resolve(r)
		if err != nil {
			g.unauthorized(w, r, err)
			return
		}

		if !client.FirstParty() {
			g.unauthorized(w, r, errors.New(errors.ErrCodeNotFirstParty,
				"client does not have the required privileges"))
			return
		}

		if r.Context().Err() != nil {
			return
		}

		next.ServeHTTP(w, r.WithContext(WithRequestClient(r.Context(), client)))
	})
}

func (g *Guard) resolve(r *http.Request) (*clients.Client, error) {
	client, err := g.provider.GetRequestClient(r)
	if err != nil {
		if g.notFound != "" && errors.IsCode(err, errors.ErrCodeClientNotFound) {
			return nil, errors.New(errors.ErrCodeClientNotFound, g.notFound)
		}
		return nil, err
	}
	if client == nil {
		message := g.notFound
		if message == "" {
			message = "access client not found"
		}
		return nil, errors.New(errors.ErrCodeClientNotFound, message)
	}
	return client, nil
}

// unauthorized writes the uniform 401 rejection, preserving the triggering
// message verbatim as the error detail
func (g *Guard) unauthorized(w http.ResponseWriter, r *http.Request, err error) {
	message := err.Error()
	var structured *errors.Error
	if stderrors.As(err, &structured) {
		message = structured.Message
	}

	render.Status(r, http.StatusUnauthorized)
	render.JSON(w, r, map[string]interface{}{
		"status": http.StatusUnauthorized,
		"error":  message,
	})
}
