package handlers

import (
	"net/http"
	"revenue_leak_audit/config"
	"revenue_leak_audit/middleware"
	"revenue_leak_audit/services"
	"revenue_leak_audit/templates/components"
	"revenue_leak_audit/templates/partials"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// scrollLockEvent is dispatched on the client to toggle the body scroll lock after a swap
const scrollLockEvent = "scroll-lock"

func isHTMX(c echo.Context) bool {
	return c.Request().Header.Get("HX-Request") == "true"
}

// render writes a templ component with the given status code
func render(c echo.Context, status int, component templ.Component) error {
	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(status)
	return component.Render(c.Request().Context(), c.Response().Writer)
}

// currentFlow returns the visitor's flow or a 500 if the session middleware did not run
func currentFlow(c echo.Context) (*services.ApplicationFlow, error) {
	flow := middleware.GetApplicationFlow(c)
	if flow == nil {
		c.Logger().Error("Application flow missing from context")
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Session unavailable")
	}
	return flow, nil
}

// applicationView snapshots the flow for rendering
func applicationView(c echo.Context, flow *services.ApplicationFlow) partials.ApplicationView {
	cfg := getConfig(c)
	return partials.ApplicationView{
		State:        flow.State(),
		CSRFToken:    middleware.GetCSRFToken(c),
		ContactEmail: cfg.ContactEmail,
		ResetDelay:   flow.ResetDelay(),
	}
}

func getConfig(c echo.Context) *config.Config {
	return c.Get("config").(*config.Config)
}

func sessionID(c echo.Context) string {
	return middleware.GetSessionID(c)
}

// triggerScrollLock tells the client whether page scrolling should be suspended
func triggerScrollLock(c echo.Context, suspended bool) {
	c.Response().Header().Set("HX-Trigger", components.JSON(map[string]interface{}{
		scrollLockEvent: map[string]bool{"suspended": suspended},
	}))
}
