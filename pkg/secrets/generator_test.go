package secrets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-clients/pkg/errors"
)

func TestGenerator_Generate(t *testing.T) {
	t.Run("DefaultLength", func(t *testing.T) {
		generator, err := NewGenerator()
		require.NoError(t, err)

		secret, err := generator.Generate()
		require.NoError(t, err)
		// 32 bytes hex-encoded
		assert.Len(t, secret, 64)
	})

	t.Run("ConfiguredLength", func(t *testing.T) {
		generator, err := NewGenerator(WithLength(48))
		require.NoError(t, err)

		secret, err := generator.Generate()
		require.NoError(t, err)
		assert.Len(t, secret, 96)
	})

	t.Run("ShortLengthRaisedToMinimum", func(t *testing.T) {
		generator, err := NewGenerator(WithLength(8))
		require.NoError(t, err)

		secret, err := generator.Generate()
		require.NoError(t, err)
		assert.Len(t, secret, MinSecretLength*2)
	})

	t.Run("Prefix", func(t *testing.T) {
		generator, err := NewGenerator(WithPrefix("acme"))
		require.NoError(t, err)

		secret, err := generator.Generate()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(secret, "acme_"))
		assert.Len(t, secret, len("acme_")+64)
	})

	t.Run("Unique", func(t *testing.T) {
		generator, err := NewGenerator()
		require.NoError(t, err)

		first, err := generator.Generate()
		require.NoError(t, err)
		second, err := generator.Generate()
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
}

func TestGenerator_CustomFunc(t *testing.T) {
	t.Run("Used", func(t *testing.T) {
		generator, err := NewGenerator(WithGeneratorFunc(func() (string, error) {
			return "fixed-secret", nil
		}))
		require.NoError(t, err)

		secret, err := generator.Generate()
		require.NoError(t, err)
		assert.Equal(t, "fixed-secret", secret)
	})

	t.Run("FailingFuncRejectedAtConstruction", func(t *testing.T) {
		_, err := NewGenerator(WithGeneratorFunc(func() (string, error) {
			return "", fmt.Errorf("entropy source offline")
		}))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
	})

	t.Run("EmptyResultRejectedAtConstruction", func(t *testing.T) {
		_, err := NewGenerator(WithGeneratorFunc(func() (string, error) {
			return "", nil
		}))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeConfiguration))
	})
}
