package secrets

import (
	"crypto/subtle"
	"errors"
)

// PlaintextHasher implements SecretHasher without hashing. The stored value is
// the secret itself; comparison runs in constant time. Intended for
// deployments where secrets are random API keys managed out of band.
type PlaintextHasher struct{}

// Hash implements SecretHasher.Hash
func (h *PlaintextHasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret cannot be empty")
	}
	return secret, nil
}

// Verify implements SecretHasher.Verify
func (h *PlaintextHasher) Verify(secret, storedSecret string) (bool, error) {
	if secret == "" || storedSecret == "" {
		return false, errors.New("secret and stored secret cannot be empty")
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(storedSecret)) == 1, nil
}
