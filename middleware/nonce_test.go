package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGenerateNonce(t *testing.T) {
	nonce1, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEmpty(t, nonce1)

	nonce2, err := GenerateNonce()
	assert.NoError(t, err)
	assert.NotEqual(t, nonce1, nonce2)
}

func TestCSPNonce(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := CSPNonce()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))

	nonce := c.Get(string(NonceKey)).(string)
	assert.NotEmpty(t, nonce)
	assert.Equal(t, nonce, GetNonce(c.Request().Context()))

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "nonce-"+nonce)
	assert.Contains(t, csp, "connect-src 'self'")
	assert.Contains(t, csp, "form-action 'self'")
	assert.NotContains(t, csp, "web3forms", "the relay is only contacted server-side")
}

func TestGetNonce(t *testing.T) {
	ctx := context.WithValue(context.Background(), NonceKey, "test-nonce")
	assert.Equal(t, "test-nonce", GetNonce(ctx))
	assert.Equal(t, "", GetNonce(context.Background()))
}

func TestBuildCSP(t *testing.T) {
	csp := buildCSP("abc")

	assert.Contains(t, csp, "script-src 'self' 'nonce-abc' https://unpkg.com;")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.Equal(t, len(pagePolicy), strings.Count(csp, ";")+1)

	// The shared policy is not mutated between requests
	other := buildCSP("xyz")
	assert.NotContains(t, other, "nonce-abc")
	assert.Equal(t, []string{"'self'", htmxOrigin}, pagePolicy[1].sources)
}
