package pages

import (
	"revenue_leak_audit/models"
	"revenue_leak_audit/templates/components"
	"revenue_leak_audit/templates/partials"
	"strconv"
)

// LandingView holds the data for the landing page
type LandingView struct {
	SEO         *models.SEO
	Application partials.ApplicationView
	Year        int
}

func (v LandingView) layoutOptions() components.LayoutOptions {
	return components.LayoutOptions{
		CSRFToken:       v.Application.CSRFToken,
		ScrollSuspended: v.Application.State.ScrollSuspended,
	}
}

// stepNumber drops the leading zero of a watermark number ("01" -> "1")
func stepNumber(num string) string {
	n, err := strconv.Atoi(num)
	if err != nil {
		return num
	}
	return strconv.Itoa(n)
}
