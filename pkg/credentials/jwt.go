package credentials

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/tendant/simple-clients/pkg/errors"
)

// Default transport markers for JWT client credentials
const (
	DefaultJwtHeaderMethod = "jwt"
	DefaultJwtCookieName   = "jwt-cookie"
)

// Claim names carrying the client identity inside a signed credential token
const (
	JwtClientIDClaim     = "client_id"
	JwtClientSecretClaim = "client_secret"
)

// JwtHeaderExtractor resolves credentials from a signed token in the
// Authorization header, marked with a configurable scheme token (default
// "jwt"). A present but unverifiable token is a hard error: expiry and
// signature failures never fall through to the next transport.
type JwtHeaderExtractor struct {
	auth   *jwtauth.JWTAuth
	method string
}

// NewJwtHeaderExtractor creates a JWT Authorization-header extractor verifying
// tokens against the application key
func NewJwtHeaderExtractor(appKey, method string) *JwtHeaderExtractor {
	if method == "" {
		method = DefaultJwtHeaderMethod
	}
	return &JwtHeaderExtractor{
		auth:   jwtauth.New("HS256", []byte(appKey), nil),
		method: method,
	}
}

// Attempt implements Extractor
func (e *JwtHeaderExtractor) Attempt(r *http.Request) (*Credentials, error) {
	tokenStr := AuthorizationHeaderValue(r, e.method)
	if tokenStr == "" {
		return nil, nil
	}
	return credentialsFromToken(r, e.auth, tokenStr)
}

// JwtCookieExtractor resolves the same signed token format from a named
// cookie (default "jwt-cookie").
type JwtCookieExtractor struct {
	auth   *jwtauth.JWTAuth
	cookie string
}

// NewJwtCookieExtractor creates a JWT cookie extractor verifying tokens
// against the application key
func NewJwtCookieExtractor(appKey, cookieName string) *JwtCookieExtractor {
	if cookieName == "" {
		cookieName = DefaultJwtCookieName
	}
	return &JwtCookieExtractor{
		auth:   jwtauth.New("HS256", []byte(appKey), nil),
		cookie: cookieName,
	}
}

// Attempt implements Extractor
func (e *JwtCookieExtractor) Attempt(r *http.Request) (*Credentials, error) {
	tokenStr := CookieValue(r, e.cookie)
	if tokenStr == "" {
		return nil, nil
	}
	return credentialsFromToken(r, e.auth, tokenStr)
}

func credentialsFromToken(r *http.Request, ja *jwtauth.JWTAuth, tokenStr string) (*Credentials, error) {
	token, err := jwtauth.VerifyToken(ja, tokenStr)
	if err != nil {
		if jwtauth.ErrorReason(err) == jwtauth.ErrExpired {
			return nil, errors.Wrap(err, errors.ErrCodeTokenExpired, "client credentials token expired")
		}
		return nil, errors.Wrap(err, errors.ErrCodeTokenInvalid, "invalid client credentials token")
	}

	claims, err := token.AsMap(r.Context())
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeTokenInvalid, "invalid client credentials token")
	}

	id, _ := claims[JwtClientIDClaim].(string)
	secret, _ := claims[JwtClientSecretClaim].(string)
	if id == "" || secret == "" {
		return nil, errors.New(errors.ErrCodeTokenInvalid, "client credentials token missing identity claims")
	}

	return New(id, secret), nil
}
