package credentials

import (
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/tendant/simple-clients/pkg/errors"
)

// BasicExtractor resolves credentials from an HTTP Basic Authorization header.
// Once the "Basic " prefix matched, an undecodable payload or a payload
// without a colon is a malformed-input error, not a silent miss.
type BasicExtractor struct{}

// NewBasicExtractor creates a Basic-Auth credentials extractor
func NewBasicExtractor() *BasicExtractor {
	return &BasicExtractor{}
}

// Attempt implements Extractor
func (e *BasicExtractor) Attempt(r *http.Request) (*Credentials, error) {
	payload := AuthorizationHeaderValue(r, "basic")
	if payload == "" {
		return nil, nil
	}

	decoded, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidCredentials, "malformed basic auth payload")
	}

	id, secret, found := strings.Cut(string(decoded), ":")
	if !found {
		return nil, errors.New(errors.ErrCodeInvalidCredentials, "malformed basic auth payload: missing colon separator")
	}

	return New(id, secret), nil
}
