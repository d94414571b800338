package middleware

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"revenue_leak_audit/config"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestGetCSRFToken(t *testing.T) {
	e := echo.New()

	t.Run("TokenExists", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set(CSRFContextKey, "test-csrf-token")
		assert.Equal(t, "test-csrf-token", GetCSRFToken(c))
	})

	t.Run("TokenMissing", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		assert.Equal(t, "", GetCSRFToken(c))
	})

	t.Run("TokenInvalidType", func(t *testing.T) {
		c := e.NewContext(nil, nil)
		c.Set(CSRFContextKey, 123)
		assert.Equal(t, "", GetCSRFToken(c))
	})
}

func TestCSRF(t *testing.T) {
	e := echo.New()
	cfg := &config.Config{Environment: "test"}
	handler := CSRF(cfg)(func(c echo.Context) error {
		return c.String(http.StatusOK, GetCSRFToken(c))
	})

	t.Run("GetIssuesToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, handler(c))
		assert.NotEmpty(t, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Set-Cookie"), "_csrf=")
	})

	t.Run("PostWithoutTokenRejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader("fullName=x"))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		err := handler(c)
		he, ok := err.(*echo.HTTPError)
		if assert.True(t, ok) {
			assert.Contains(t, []int{http.StatusBadRequest, http.StatusForbidden}, he.Code)
		}
	})

	t.Run("PostWithMatchingTokenAccepted", func(t *testing.T) {
		form := url.Values{CSRFFormField: {"known-token"}}
		req := httptest.NewRequest(http.MethodPost, "/apply", strings.NewReader(form.Encode()))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
		req.AddCookie(&http.Cookie{Name: "_csrf", Value: "known-token"})
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		assert.NoError(t, handler(c))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
