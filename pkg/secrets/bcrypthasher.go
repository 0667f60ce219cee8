package secrets

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements SecretHasher using bcrypt
type BcryptHasher struct{}

// Hash implements SecretHasher.Hash
func (h *BcryptHasher) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret cannot be empty")
	}

	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hashedBytes), nil
}

// Verify implements SecretHasher.Verify
func (h *BcryptHasher) Verify(secret, hashedSecret string) (bool, error) {
	if secret == "" || hashedSecret == "" {
		return false, errors.New("secret and hashed secret cannot be empty")
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashedSecret), []byte(secret))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil // Secret doesn't match, but not an error
		}
		return false, err
	}

	return true, nil
}
