package handlers

import (
	"revenue_leak_audit/config"
	"revenue_leak_audit/models"
	"strings"
)

const ogImagePath = "/static/images/og-image.png"

// SEO configurations for public pages, keyed by page name. Canonical and OG image
// paths are relative and resolved against APP_URL.
var pageSEO = map[string]*models.SEO{
	"landing": {
		Title:       "Revenue Leak Audit | Your Website Isn't Broken. It's Leaking Revenue.",
		Description: "A structural revenue diagnosis for growth-stage businesses doing $500K–$2M. We find where your website loses conversions, authority, and organic visibility, and show you how to fix it.",
		Keywords:    "website audit, conversion audit, revenue leak, conversion rate optimization, SEO audit",
		Canonical:   "/",
		OGImage:     ogImagePath,
		OGType:      "website",
		TwitterCard: "summary_large_image",
		Locale:      "en",
	},
}

// GetSEO returns the SEO configuration for a page with absolute URLs
func GetSEO(cfg *config.Config, page string) *models.SEO {
	seo, ok := pageSEO[page]
	if !ok {
		return models.DefaultSEO("Revenue Leak Audit", "")
	}

	// Return a copy to avoid mutations
	copy := *seo
	base := strings.TrimRight(cfg.AppURL, "/")
	copy.Canonical = base + seo.Canonical
	copy.OGImage = base + seo.OGImage
	if !cfg.IsProduction() {
		copy.WithNoIndex()
	}
	return &copy
}
