// Package guard enforces client authentication and authorization as HTTP
// middleware.
//
// Providers resolve the caller identity: by API key, or through the
// credentials pipeline with a repository fetch and secret verification; the
// composite provider tries the API key first. The Guard middleware wraps a
// provider, validates the resolved client (revocation, scopes, origin),
// attaches it to the request context and rejects with a uniform 401 on any
// failure.
package guard
