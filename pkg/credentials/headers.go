package credentials

import (
	"net/http"
)

// Header and body field names searched, in precedence order, for the custom
// header credential pair. The list is long to support legacy callers.
var (
	clientIDHeaders     = []string{"x-authorization-client-id", "x-client-id", "x-authorization-client-token"}
	clientSecretHeaders = []string{"x-client-secret", "x-authorization-client-secret", "x-authorization-client-token"}
)

const (
	clientIDField     = "client_id"
	clientSecretField = "client_secret"
)

// HeaderExtractor resolves credentials from custom x-client-* headers with the
// request body fields client_id/client_secret as fallback. Both sides must
// resolve; when only one is present the extractor yields nothing so the
// pipeline falls through to the next transport.
type HeaderExtractor struct{}

// NewHeaderExtractor creates a header/body pair credentials extractor
func NewHeaderExtractor() *HeaderExtractor {
	return &HeaderExtractor{}
}

// Attempt implements Extractor
func (e *HeaderExtractor) Attempt(r *http.Request) (*Credentials, error) {
	secret := firstHeaderOrField(r, clientSecretHeaders, clientSecretField)
	if secret == "" {
		return nil, nil
	}

	id := firstHeaderOrField(r, clientIDHeaders, clientIDField)
	if id == "" {
		return nil, nil
	}

	return New(id, secret), nil
}

func firstHeaderOrField(r *http.Request, headers []string, field string) string {
	for _, name := range headers {
		if value := r.Header.Get(name); value != "" {
			return value
		}
	}
	return r.PostFormValue(field)
}
