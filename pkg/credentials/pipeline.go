package credentials

import (
	"log/slog"
	"net/http"
)

// Pipeline composes extractors in a fixed precedence order with first-match
// semantics.
//
// The default order is: cookie pair, custom header/body pair, Basic auth,
// JWT cookie, JWT header. A transport whose marker is absent yields to the
// next extractor; the first hard error (present but malformed transport)
// stops the chain.
type Pipeline struct {
	extractors []Extractor
}

// PipelineConfig carries the transport settings for the default pipeline
type PipelineConfig struct {
	// AppKey verifies JWT client credentials
	AppKey string
	// JwtHeaderMethod is the Authorization scheme marking a JWT credential;
	// defaults to "jwt"
	JwtHeaderMethod string
	// JwtCookieName is the cookie carrying a JWT credential; defaults to
	// "jwt-cookie"
	JwtCookieName string
}

// NewPipeline creates the default extraction pipeline
func NewPipeline(cfg PipelineConfig) *Pipeline {
	return NewPipelineWithExtractors(
		NewCookieExtractor(),
		NewHeaderExtractor(),
		NewBasicExtractor(),
		NewJwtCookieExtractor(cfg.AppKey, cfg.JwtCookieName),
		NewJwtHeaderExtractor(cfg.AppKey, cfg.JwtHeaderMethod),
	)
}

// NewPipelineWithExtractors creates a pipeline with an explicit extractor
// order
func NewPipelineWithExtractors(extractors ...Extractor) *Pipeline {
	return &Pipeline{extractors: extractors}
}

// Attempt implements Extractor; it returns the first extracted credentials,
// (nil, nil) when every transport is absent, or the first hard error.
func (p *Pipeline) Attempt(r *http.Request) (*Credentials, error) {
	for _, extractor := range p.extractors {
		creds, err := extractor.Attempt(r)
		if err != nil {
			slog.Debug("credential extraction failed", "extractor", extractor, "error", err)
			return nil, err
		}
		if creds != nil {
			return creds, nil
		}
	}
	return nil, nil
}
