package credentials

import (
	"net/http"
)

// Authorization schemes marking an API key credential
const (
	AccessTokenMethod = "access_token"
	ApiKeyMethod      = "api_key"
)

// ApiKeyFromRequest returns the API key carried by the Authorization header
// under the access_token or api_key scheme, or empty string. API keys are
// matched directly against the stored key, bypassing the id/secret
// verification step, so this is not an Extractor.
func ApiKeyFromRequest(r *http.Request) string {
	if key := AuthorizationHeaderValue(r, AccessTokenMethod); key != "" {
		return key
	}
	return AuthorizationHeaderValue(r, ApiKeyMethod)
}
