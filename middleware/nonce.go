package middleware

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

type contextKey string

// NonceKey holds the per-request script nonce in both the echo and the request context
const NonceKey contextKey = "csp_nonce"

// htmxOrigin serves the htmx script
const htmxOrigin = "https://unpkg.com"

// cspDirective is one policy entry. Script sources get the request nonce appended.
type cspDirective struct {
	name    string
	sources []string
}

// The relay is called server-side, so the page only ever talks to itself
var pagePolicy = []cspDirective{
	{"default-src", []string{"'self'"}},
	{"script-src", []string{"'self'", htmxOrigin}},
	{"style-src", []string{"'self'", "'unsafe-inline'", "https://fonts.googleapis.com"}},
	{"img-src", []string{"'self'", "data:"}},
	{"font-src", []string{"'self'", "https://fonts.gstatic.com"}},
	{"connect-src", []string{"'self'"}},
	{"frame-ancestors", []string{"'none'"}},
	{"form-action", []string{"'self'"}},
}

// GenerateNonce returns 16 random bytes, base64url encoded
func GenerateNonce() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// buildCSP renders the page policy with the nonce allowed for scripts
func buildCSP(nonce string) string {
	parts := make([]string, 0, len(pagePolicy))
	for _, d := range pagePolicy {
		sources := d.sources
		if d.name == "script-src" {
			sources = append([]string{sources[0], "'nonce-" + nonce + "'"}, sources[1:]...)
		}
		parts = append(parts, d.name+" "+strings.Join(sources, " "))
	}
	return strings.Join(parts, "; ")
}

// CSPNonce sets the Content-Security-Policy header and exposes the nonce to templates.
// A request whose nonce cannot be generated fails rather than running without one.
func CSPNonce() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			nonce, err := GenerateNonce()
			if err != nil {
				c.Logger().Errorf("Failed to generate CSP nonce: %v", err)
				return echo.NewHTTPError(http.StatusInternalServerError)
			}

			c.Set(string(NonceKey), nonce)
			c.SetRequest(c.Request().WithContext(context.WithValue(c.Request().Context(), NonceKey, nonce)))
			c.Response().Header().Set("Content-Security-Policy", buildCSP(nonce))

			return next(c)
		}
	}
}

// GetNonce retrieves the nonce from a request context
func GetNonce(ctx context.Context) string {
	nonce, _ := ctx.Value(NonceKey).(string)
	return nonce
}
