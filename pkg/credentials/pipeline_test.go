package credentials

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-clients/pkg/errors"
)

func newTestPipeline() *Pipeline {
	return NewPipeline(PipelineConfig{AppKey: testAppKey})
}

func TestPipeline_Attempt(t *testing.T) {
	pipeline := newTestPipeline()

	t.Run("NothingPresent", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)

		creds, err := pipeline.Attempt(r)
		require.NoError(t, err)
		assert.Nil(t, creds)
	})

	t.Run("CookiePairBeatsBasic", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: ClientIDCookie, Value: "cookie-client"})
		r.AddCookie(&http.Cookie{Name: ClientSecretCookie, Value: "cookie-secret"})
		r.Header.Set("Authorization", basicAuthHeader("basic-client", "basic-secret"))

		creds, err := pipeline.Attempt(r)
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, "cookie-client", creds.ID)
	})

	t.Run("HeaderPairBeatsBasic", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("x-client-id", "header-client")
		r.Header.Set("x-client-secret", "header-secret")
		r.Header.Set("Authorization", basicAuthHeader("basic-client", "basic-secret"))

		creds, err := pipeline.Attempt(r)
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, "header-client", creds.ID)
	})

	t.Run("BasicBeatsJwtCookie", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", basicAuthHeader("basic-client", "basic-secret"))
		r.AddCookie(&http.Cookie{
			Name:  DefaultJwtCookieName,
			Value: mintCredentialToken(t, testAppKey, time.Hour),
		})

		creds, err := pipeline.Attempt(r)
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, "basic-client", creds.ID)
	})

	t.Run("JwtHeaderAlone", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "jwt "+mintCredentialToken(t, testAppKey, time.Hour))

		creds, err := pipeline.Attempt(r)
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, "client-1", creds.ID)
	})

	t.Run("IncompleteCookiePairFallsThroughToBasic", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{Name: ClientIDCookie, Value: "cookie-client"})
		r.Header.Set("Authorization", basicAuthHeader("basic-client", "basic-secret"))

		creds, err := pipeline.Attempt(r)
		require.NoError(t, err)
		require.NotNil(t, creds)
		assert.Equal(t, "basic-client", creds.ID)
	})

	t.Run("MalformedBasicStopsChain", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.Header.Set("Authorization", "Basic !!!")
		r.AddCookie(&http.Cookie{
			Name:  DefaultJwtCookieName,
			Value: mintCredentialToken(t, testAppKey, time.Hour),
		})

		creds, err := pipeline.Attempt(r)
		require.Error(t, err)
		assert.Nil(t, creds)
		assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidCredentials))
	})

	t.Run("ExpiredJwtIsTerminal", func(t *testing.T) {
		r := httptest.NewRequest("GET", "/", nil)
		r.AddCookie(&http.Cookie{
			Name:  DefaultJwtCookieName,
			Value: mintCredentialToken(t, testAppKey, -10*time.Minute),
		})

		creds, err := pipeline.Attempt(r)
		require.Error(t, err)
		assert.Nil(t, creds)
		assert.True(t, errors.IsCode(err, errors.ErrCodeTokenExpired))
	})
}
