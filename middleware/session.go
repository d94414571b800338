package middleware

import (
	"net/http"
	"revenue_leak_audit/config"
	"revenue_leak_audit/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the visitor session cookie
	SessionCookieName = "rla_session"
	// ContextKeyFlow is the context key for the visitor's application flow
	ContextKeyFlow = "application_flow"
	// ContextKeySessionID is the context key for the visitor session ID
	ContextKeySessionID = "session_id"
)

// VisitorSession attaches the visitor's page state to the request.
// A visitor without a valid session cookie gets a fresh ID and an idle flow.
func VisitorSession(cfg *config.Config, store *services.PageStore) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				if _, err := uuid.Parse(cookie.Value); err == nil {
					id = cookie.Value
				}
			}

			if id == "" {
				id = uuid.New().String()
				setSessionCookie(c, cfg, id)
			}

			c.Set(ContextKeySessionID, id)
			c.Set(ContextKeyFlow, store.GetOrCreate(id))

			return next(c)
		}
	}
}

// GetApplicationFlow retrieves the visitor's application flow from the Echo context
func GetApplicationFlow(c echo.Context) *services.ApplicationFlow {
	flow, ok := c.Get(ContextKeyFlow).(*services.ApplicationFlow)
	if !ok {
		return nil
	}
	return flow
}

// GetSessionID retrieves the visitor session ID from the Echo context
func GetSessionID(c echo.Context) string {
	id, _ := c.Get(ContextKeySessionID).(string)
	return id
}

func setSessionCookie(c echo.Context, cfg *config.Config, id string) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cfg.SessionTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   cfg.IsProduction(),
	}
	c.SetCookie(cookie)
}
