package middleware

import (
	"net/http"
	"revenue_leak_audit/config"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

const (
	// CSRFContextKey is where Echo's CSRF middleware stores the token
	CSRFContextKey = "csrf"
	// CSRFHeader is sent by HTMX on every request via hx-headers
	CSRFHeader = "X-CSRF-Token"
	// CSRFFormField is the hidden input name used by non-HTMX forms
	CSRFFormField = "_csrf"
)

// CSRF protects the state-changing application endpoints
func CSRF(cfg *config.Config) echo.MiddlewareFunc {
	return echomiddleware.CSRFWithConfig(echomiddleware.CSRFConfig{
		TokenLookup:    "header:" + CSRFHeader + ",form:" + CSRFFormField,
		ContextKey:     CSRFContextKey,
		CookieName:     "_csrf",
		CookiePath:     "/",
		CookieHTTPOnly: true,
		CookieSecure:   cfg.IsProduction(),
		CookieSameSite: http.SameSiteLaxMode,
	})
}

// GetCSRFToken retrieves the CSRF token from the Echo context
// This token should be included in forms and AJAX requests
func GetCSRFToken(c echo.Context) string {
	token := c.Get(CSRFContextKey)
	if token == nil {
		return ""
	}
	if tokenStr, ok := token.(string); ok {
		return tokenStr
	}
	return ""
}
