package tokens

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ClientClaims carries a client credential pair inside a signed token
type ClientClaims struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	jwt.RegisteredClaims
}

// ClientTokenGenerator mints and parses signed client credential tokens.
// Tokens are HS256-signed with the application key, the same key the
// credential extractors verify against.
type ClientTokenGenerator struct {
	AppKey string
	Issuer string
}

// NewClientTokenGenerator creates a ClientTokenGenerator
func NewClientTokenGenerator(appKey, issuer string) *ClientTokenGenerator {
	return &ClientTokenGenerator{
		AppKey: appKey,
		Issuer: issuer,
	}
}

// GenerateToken creates a signed credential token for the client id/secret
// pair with the given lifetime
func (g *ClientTokenGenerator) GenerateToken(clientID, clientSecret string, expiry time.Duration) (string, time.Time, error) {
	now := time.Now().UTC()
	claims := ClientClaims{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now.Add(-5 * time.Minute)),
			Issuer:    g.Issuer,
			Subject:   clientID,
			ID:        uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString([]byte(g.AppKey))
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign client token: %w", err)
	}
	return ss, claims.ExpiresAt.Time, nil
}

// ParseToken parses and validates a client credential token
func (g *ClientTokenGenerator) ParseToken(tokenStr string) (*ClientClaims, error) {
	claims := &ClientClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(g.AppKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse client token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid client token")
	}
	return claims, nil
}
