package pages

import (
	"bytes"
	"context"
	"revenue_leak_audit/models"
	"revenue_leak_audit/templates/partials"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderLanding(t *testing.T, view LandingView) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Landing(view).Render(context.Background(), &buf))
	return buf.String()
}

func testView() LandingView {
	return LandingView{
		SEO: models.DefaultSEO("Revenue Leak Audit", "Find the leaks"),
		Application: partials.ApplicationView{
			CSRFToken:    "token-abc",
			ContactEmail: "jc@markethunterz.com",
		},
		Year: 2026,
	}
}

func TestLandingSections(t *testing.T) {
	html := renderLanding(t, testView())

	for _, class := range []string{"hero", "problem", "diagnosis", "deliverables", "framework", "audience", "belief", "next-steps", "final-cta"} {
		assert.Contains(t, html, `<section class="`+class+` fade-in">`, class)
	}
	for _, item := range deliverables {
		assert.Contains(t, html, item.Num)
	}
	for _, item := range frameworkLayers {
		assert.Contains(t, html, "icon-"+item.Icon)
	}
	assert.Contains(t, html, `<div class="step-num">1</div>`)
	assert.Contains(t, html, `<div class="step-watermark">01</div>`)
	assert.Contains(t, html, "© 2026 MarketHunterz. All rights reserved.")
	assert.Contains(t, html, `href="mailto:jc@markethunterz.com"`)
}

func TestLandingApplyButtons(t *testing.T) {
	html := renderLanding(t, testView())

	// Nav, hero and final call-to-action all open the modal
	assert.Equal(t, 3, strings.Count(html, `action="/apply/open"`))
	assert.Equal(t, 3, strings.Count(html, `hx-post="/apply/open"`))
	assert.Contains(t, html, `hx-headers="{&#34;X-CSRF-Token&#34;:&#34;token-abc&#34;}"`)
}

func TestLandingModalState(t *testing.T) {
	t.Run("closed", func(t *testing.T) {
		html := renderLanding(t, testView())
		assert.Contains(t, html, `<body class="page"`)
		assert.Contains(t, html, `<div id="application-modal"></div>`)
	})

	t.Run("open", func(t *testing.T) {
		view := testView()
		view.Application.State.ModalOpen = true
		view.Application.State.ScrollSuspended = true

		html := renderLanding(t, view)
		assert.Contains(t, html, `<body class="page overflow-hidden"`)
		assert.Contains(t, html, `class="modal-backdrop"`)
	})
}
