package credentials

import (
	"net/http"
)

// Credentials is a resolved client identity claim extracted from a request,
// prior to store verification. Immutable, never persisted; its lifetime is a
// single request.
type Credentials struct {
	ID     string
	Secret string
}

// New creates a Credentials value
func New(id, secret string) *Credentials {
	return &Credentials{ID: id, Secret: secret}
}

// Extractor attempts to produce credentials from one transport.
//
// The contract distinguishes "absent" from "malformed": a transport whose
// marker (header prefix, cookie name) is missing returns (nil, nil) so the
// pipeline can try the next extractor; a transport whose marker matched but
// whose payload is invalid (bad base64, bad JWT signature, expired token)
// returns an error which is terminal for the request.
type Extractor interface {
	Attempt(r *http.Request) (*Credentials, error)
}

// ExtractorFunc adapts a function to the Extractor interface
type ExtractorFunc func(r *http.Request) (*Credentials, error)

// Attempt implements Extractor
func (f ExtractorFunc) Attempt(r *http.Request) (*Credentials, error) {
	return f(r)
}
