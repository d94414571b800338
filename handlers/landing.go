package handlers

import (
	"net/http"
	"revenue_leak_audit/templates/pages"
	"time"

	"github.com/labstack/echo/v4"
)

// LandingHandler renders the landing page with the visitor's modal state
func LandingHandler(c echo.Context) error {
	flow, err := currentFlow(c)
	if err != nil {
		return err
	}

	cfg := getConfig(c)
	return render(c, http.StatusOK, pages.Landing(pages.LandingView{
		SEO:         GetSEO(cfg, "landing"),
		Application: applicationView(c, flow),
		Year:        time.Now().Year(),
	}))
}

// HealthHandler reports liveness for load balancers
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
