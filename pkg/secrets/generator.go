package secrets

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"

	"github.com/tendant/simple-clients/pkg/errors"
)

// MinSecretLength is the minimum entropy, in bytes, of a generated client
// secret. Shorter configured lengths are raised to this value.
const MinSecretLength = 32

// GeneratorFunc produces a client secret. Deployments may plug their own
// source in place of the default crypto/rand generator.
type GeneratorFunc func() (string, error)

// Generator creates client secrets and API keys
type Generator struct {
	length int
	prefix string
	custom GeneratorFunc
}

// GeneratorOption configures a Generator
type GeneratorOption func(*Generator)

// WithLength sets the entropy in bytes of generated secrets
func WithLength(length int) GeneratorOption {
	return func(g *Generator) {
		g.length = length
	}
}

// WithPrefix prepends a marker to generated secrets as "<prefix>_<secret>"
func WithPrefix(prefix string) GeneratorOption {
	return func(g *Generator) {
		g.prefix = prefix
	}
}

// WithGeneratorFunc replaces the default crypto/rand source
func WithGeneratorFunc(fn GeneratorFunc) GeneratorOption {
	return func(g *Generator) {
		g.custom = fn
	}
}

// NewGenerator creates a secret generator. A custom generator func is probed
// once here so a broken configuration fails at startup rather than on the
// first create request.
func NewGenerator(opts ...GeneratorOption) (*Generator, error) {
	g := &Generator{length: MinSecretLength}
	for _, opt := range opts {
		opt(g)
	}

	if g.length < MinSecretLength {
		g.length = MinSecretLength
	}

	if g.custom != nil {
		value, err := g.custom()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfiguration, "custom secret generator failed")
		}
		if value == "" {
			return nil, errors.Configuration("custom secret generator must return a non-empty string")
		}
	}

	return g, nil
}

// Generate returns a new client secret
func (g *Generator) Generate() (string, error) {
	if g.custom != nil {
		value, err := g.custom()
		if err != nil {
			return "", fmt.Errorf("custom secret generator failed: %w", err)
		}
		if value == "" {
			return "", errors.Configuration("custom secret generator must return a non-empty string")
		}
		return value, nil
	}

	buf := make([]byte, g.length)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	key := hex.EncodeToString(buf)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%s", g.prefix, key), nil
	}
	return key, nil
}
