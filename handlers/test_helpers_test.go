package handlers

import (
	"context"
	"io"
	"net/http/httptest"
	"net/url"
	"revenue_leak_audit/config"
	"revenue_leak_audit/middleware"
	"revenue_leak_audit/models"
	"revenue_leak_audit/services"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
)

const testContactEmail = "audits@example.com"

func testConfig() *config.Config {
	return &config.Config{
		Environment:       "test",
		AppURL:            "https://audit.example.com",
		RelayProvider:     config.RelayLog,
		SuccessResetDelay: config.DefaultSuccessResetDelay,
		ContactEmail:      testContactEmail,
	}
}

func setupEcho(method, path string, body io.Reader) (*echo.Echo, echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, body)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	// Add config to context
	c.Set("config", testConfig())

	return e, c, rec
}

// setupHTMX builds a context for an HTMX request carrying the given form values
func setupHTMX(method, path string, form url.Values) (echo.Context, *httptest.ResponseRecorder) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	_, c, rec := setupEcho(method, path, body)
	if form != nil {
		c.Request().Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	}
	c.Request().Header.Set("HX-Request", "true")
	return c, rec
}

// stubRelay records submissions and answers with a fixed reply
type stubRelay struct {
	mu       sync.Mutex
	calls    int
	payloads []*services.Payload
	resp     *services.RelayResponse
	err      error
}

func (s *stubRelay) Submit(ctx context.Context, payload *services.Payload) (*services.RelayResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.payloads = append(s.payloads, payload)
	return s.resp, s.err
}

func (s *stubRelay) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

// newTestFlow creates a flow whose success reset never fires on its own
func newTestFlow(relay services.Relay) *services.ApplicationFlow {
	return services.NewApplicationFlow(services.FlowOptions{
		Relay:      relay,
		RelayName:  "stub",
		ResetDelay: config.DefaultSuccessResetDelay,
		AfterFunc: func(d time.Duration, f func()) services.Timer {
			return heldTimer{}
		},
	})
}

func attachFlow(c echo.Context, flow *services.ApplicationFlow) {
	c.Set(middleware.ContextKeyFlow, flow)
	c.Set(middleware.ContextKeySessionID, "test-session")
}

func applicationForm(record models.FormRecord) url.Values {
	form := url.Values{}
	for _, name := range models.ApplicationFields {
		form.Set(name, record.Get(name))
	}
	return form
}

func completeRecord() models.FormRecord {
	return models.FormRecord{
		FullName:       "Jane Doe",
		Company:        "Acme Inc",
		Email:          "jane@acme.test",
		BrandChannel:   "https://acme.test",
		Offer:          "Consulting",
		Implementation: models.ImplementationYes,
	}
}
