package handlers

import (
	"encoding/xml"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSitemapHandler(t *testing.T) {
	_, c, rec := setupEcho(http.MethodGet, "/sitemap.xml", nil)

	require.NoError(t, GetSitemapHandler(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "<?xml"))

	var urlSet struct {
		URLs []SitemapURL `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(rec.Body.Bytes(), &urlSet))
	require.Len(t, urlSet.URLs, 1)
	assert.Equal(t, "https://audit.example.com/", urlSet.URLs[0].Loc)
}

func TestGetRobotsHandler(t *testing.T) {
	t.Run("non-production disallows crawling", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/robots.txt", nil)

		require.NoError(t, GetRobotsHandler(c))

		assert.Contains(t, rec.Body.String(), "Disallow: /\n")
		assert.NotContains(t, rec.Body.String(), "Sitemap:")
	})

	t.Run("production points to the sitemap", func(t *testing.T) {
		_, c, rec := setupEcho(http.MethodGet, "/robots.txt", nil)
		cfg := testConfig()
		cfg.Environment = "production"
		c.Set("config", cfg)

		require.NoError(t, GetRobotsHandler(c))

		assert.Contains(t, rec.Body.String(), "Allow: /\n")
		assert.Contains(t, rec.Body.String(), "Sitemap: https://audit.example.com/sitemap.xml")
	})
}
