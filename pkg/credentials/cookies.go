package credentials

import (
	"net/http"
)

// Cookie names for the plain cookie credential pair
const (
	ClientIDCookie     = "clientid"
	ClientSecretCookie = "clientsecret"
)

// CookieExtractor resolves credentials from the clientid/clientsecret cookie
// pair; both cookies must be present.
type CookieExtractor struct{}

// NewCookieExtractor creates a cookie pair credentials extractor
func NewCookieExtractor() *CookieExtractor {
	return &CookieExtractor{}
}

// Attempt implements Extractor
func (e *CookieExtractor) Attempt(r *http.Request) (*Credentials, error) {
	id := CookieValue(r, ClientIDCookie)
	if id == "" {
		return nil, nil
	}

	secret := CookieValue(r, ClientSecretCookie)
	if secret == "" {
		return nil, nil
	}

	return New(id, secret), nil
}
